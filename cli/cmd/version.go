package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/impral/pkg"
)

// Version prints the program version.
type Version struct{}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	stdout, _ := stdio(ctx)

	if _, err := fmt.Fprintln(stdout, pkg.Name, pkg.Version()); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}
