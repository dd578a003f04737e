//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the command name. It appears in help text and names the
	// configuration and cache directories.
	Name = "impral"
	// Description is a one-line summary of the project for help output.
	Description = "Parse and inspect IMPRAL command expressions"
	// EnvPrefix prefixes every environment variable the program reads.
	EnvPrefix = "IMPRAL_"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
