package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/impral/pkg"
)

// Base names of the files kept in the configuration and cache directories.
const (
	baseConfig     = "config.toml"
	baseConfigJSON = "config.json"
	baseHistory    = "history"
)

var defaultDirMode os.FileMode = 0o700

func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

func cachePath(elem ...string) string {
	return filepath.Join(append([]string{pkg.CacheDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
