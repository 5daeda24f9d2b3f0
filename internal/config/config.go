package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todue.db"
	EnvConfigPath         = "TODUE_CONFIG"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	Edit      string `toml:"edit"`
	Save      string `toml:"save"`
	Cancel    string `toml:"cancel"`
	Confirm   string `toml:"confirm"`
	Picker    string `toml:"picker"`
	NextField string `toml:"next_field"`
	Clear     string `toml:"clear"`
}

// Colors are the urgency tier colors, any value lipgloss accepts.
type Colors struct {
	High   string `toml:"high"`
	Medium string `toml:"medium"`
	Low    string `toml:"low"`
}

type Config struct {
	DBPath  string `toml:"db_path"`
	Backend string `toml:"backend"`
	Watch   bool   `toml:"watch"`
	LogFile string `toml:"log_file"`
	Keys    Keymap `toml:"keys"`
	Colors  Colors `toml:"colors"`
}

// ResolveConfigPath returns $TODUE_CONFIG or ~/.config/todue/config.toml.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expand(p)
	}
	return filepath.Join(defaultDir(), DefaultConfigFileName)
}

func defaultDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "todue")
}

func expand(p string) string {
	if e, err := homedir.Expand(p); err == nil {
		return e
	}
	return p
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist yet. Missing fields keep their default values.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolved(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = Default().DBPath
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg.resolved(), nil
}

func (c Config) resolved() Config {
	c.DBPath = expand(c.DBPath)
	c.LogFile = expand(c.LogFile)
	return c
}

// Validate rejects backends the storage layer does not know.
func (c Config) Validate() error {
	switch c.Backend {
	case "", "sqlite", "diskv", "memory":
		return nil
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, diskv or memory)", c.Backend)
	}
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		DBPath:  filepath.Join(defaultDir(), DefaultDBName),
		Backend: "sqlite",
		Watch:   true,
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Up:        "k",
			Down:      "j",
			Toggle:    " ",
			Delete:    "d",
			Edit:      "e",
			Save:      "enter",
			Cancel:    "esc",
			Confirm:   "enter",
			Picker:    "ctrl+t",
			NextField: "tab",
			Clear:     "C",
		},
		Colors: Colors{
			High:   "#ff4d4d",
			Medium: "#ffa500",
			Low:    "#2ecc71",
		},
	}
}
