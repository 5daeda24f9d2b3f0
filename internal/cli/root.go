// Package cli implements the todue command line: the interactive list by
// default, plus one subcommand per task operation.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"todue/internal/clierr"
	"todue/internal/config"
	"todue/internal/date"
	"todue/internal/output"
	"todue/internal/storage"
	"todue/internal/task"
	"todue/internal/ui"
)

// app is the state shared by all commands of one invocation.
type app struct {
	configPath string
	dbPath     string
	backend    string
	jsonOut    bool
	htmlOut    bool
	noColor    bool
	verbose    bool

	cfg     config.Config
	store   *task.Store
	logger  *log.Logger
	closers []func() error
	now     func() time.Time
	confirm func(label string) (bool, error)
}

func newApp() *app {
	return &app{now: time.Now, confirm: promptConfirm}
}

// Execute runs the command line and exits with the error's exit code.
func Execute() {
	a := newApp()
	err := newRootCmd(a).Execute()
	if err == nil {
		return
	}

	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		cliErr = clierr.Wrap(clierr.InternalError, err)
	}
	if a.jsonOut {
		_ = output.JSON(os.Stdout, map[string]any{
			"error": map[string]string{"code": cliErr.Code, "message": cliErr.Message},
		})
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cliErr.ExitCode())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "todue",
		Short: "A task list with due dates",
		Long: `todue keeps a list of tasks with due dates and shows how urgent each one is.
Run todue without arguments to open the interactive list.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noColor || os.Getenv("NO_COLOR") != "" {
				output.DisableColor()
			}
			if skipSetup(cmd) {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
		RunE: func(*cobra.Command, []string) error {
			return ui.Run(a.store, a.cfg, a.logger)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $"+config.EnvConfigPath+" or ~/.config/todue/config.toml)")
	flags.StringVar(&a.dbPath, "db", "", "override the storage path from the config")
	flags.StringVar(&a.backend, "backend", "", "override the storage backend (sqlite, diskv)")
	flags.BoolVar(&a.jsonOut, "json", false, "output as JSON")
	flags.BoolVar(&a.noColor, "no-color", false, "disable color output")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newCompleteCmd(a, "done", true),
		newCompleteCmd(a, "undo", false),
		newEditCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newVersionCmd(),
	)
	return root
}

// skipSetup reports commands that never touch the task list.
func skipSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return cmd.HasParent() && cmd.Parent().Name() == "completion"
}

// setup loads the config and opens the store, unless a store was provided
// already.
func (a *app) setup(cmd *cobra.Command) error {
	if a.store != nil {
		if a.logger == nil {
			a.logger = log.New(io.Discard, "", 0)
		}
		return nil
	}

	path := a.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return clierr.Wrap(clierr.ConfigError, fmt.Errorf("load config: %w", err))
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.backend != "" {
		cfg.Backend = a.backend
	}
	a.cfg = cfg

	switch {
	case cfg.LogFile != "":
		f, err := tea.LogToFile(cfg.LogFile, "todue")
		if err != nil {
			return clierr.Wrap(clierr.ConfigError, fmt.Errorf("open log file: %w", err))
		}
		a.closers = append(a.closers, f.Close)
		a.logger = log.Default()
	case a.verbose:
		a.logger = log.New(cmd.ErrOrStderr(), "todue: ", log.LstdFlags)
	default:
		a.logger = log.New(io.Discard, "", 0)
	}

	backend, err := storage.Open(cfg.Backend, cfg.DBPath)
	if err != nil {
		return clierr.Wrap(clierr.StorageError, fmt.Errorf("open storage: %w", err))
	}
	a.closers = append(a.closers, backend.Close)
	a.logger.Printf("using %s storage at %s", cfg.Backend, cfg.DBPath)
	a.store = task.NewStore(storage.NewDocument(backend, a.logger))
	return nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *app) today() date.Date {
	return date.Of(a.now())
}

// resolveID finds the task an id argument refers to: an exact id, or a
// prefix matching exactly one task. A miss is reported as ok=false.
func (a *app) resolveID(arg string) (string, bool, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", false, clierr.New(clierr.InvalidInput, "task id is empty")
	}
	var matches []string
	for _, t := range a.store.List() {
		if t.ID == arg {
			return t.ID, true, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", false, nil
	case 1:
		return matches[0], true, nil
	default:
		return "", false, clierr.Newf(clierr.InvalidInput, "id %q is ambiguous: matches %d tasks", arg, len(matches))
	}
}

func storageErr(err error) error {
	return clierr.Wrap(clierr.StorageError, err)
}
