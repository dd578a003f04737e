package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name of the running executable without its
// extension. It names the configuration and cache directories.
//
// Debugger builds (__debug_bin*) report [Name], and leading dots are removed.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		return prefixOf(id)
	},
)

var debugBin = regexp.MustCompile(`^__debug_bin\d*$`)

func prefixOf(path string) string {
	id := strings.TrimLeft(filepath.Base(path), ".")
	id = strings.TrimSuffix(id, filepath.Ext(id))
	id = debugBin.ReplaceAllString(id, Name)

	if id == "" || id == string(filepath.Separator) {
		return Name
	}

	return id
}

// userDir returns the [Prefix] directory under base, falling back to dotDir
// in the home directory and then to the working directory.
func userDir(base func() (string, error), dotDir string) string {
	dir, err := base()
	if err != nil {
		if dir, err = os.UserHomeDir(); err == nil {
			dir = filepath.Join(dir, dotDir)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// ConfigDir returns the configuration directory.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory for transient files such as REPL history
// and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})
