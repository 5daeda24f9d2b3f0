package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores each key as one file directly under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

func OpenDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("diskv base path is empty")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverse,
			TempDir:           filepath.Join(basePath, ".tmp"),
			// No cache: another process may rewrite the file underneath us.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

func flatTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func flatInverse(pk *diskv.PathKey) string {
	return pk.FileName
}

func (s *Diskv) Read(key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return val, nil
}

func (s *Diskv) Write(key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Diskv) Erase(key string) error {
	err := s.d.Erase(key)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erase %s: %w", key, err)
	}
	return nil
}

func (s *Diskv) Close() error { return nil }

// WatchPaths reports the file that holds key.
func (s *Diskv) WatchPaths(key string) (string, []string) {
	abs, err := filepath.Abs(s.basePath)
	if err != nil {
		abs = s.basePath
	}
	return abs, []string{key}
}
