package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "impral" {
		t.Errorf("Name = %q", Name)
	}

	if !strings.HasPrefix(EnvPrefix, strings.ToUpper(Name)) {
		t.Errorf("EnvPrefix %q does not start with the upper-case name", EnvPrefix)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("failed to read VERSION file: %v", err)
	}

	want := strings.TrimSpace(string(buf))
	if got := Version(); got != want || got == "" {
		t.Errorf("Version() = %q, want %q", got, want)
	}

	if strings.Count(Version(), ".") != 2 {
		t.Errorf("Version() = %q is not major.minor.patch", Version())
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/impral", "impral"},
		{"impral.exe", "impral"},
		{"/tmp/__debug_bin123", Name},
		{"/tmp/__debug_bin", Name},
		{"./.hidden", "hidden"},
		{"...", Name},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := prefixOf(tt.path); got != tt.want {
				t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDirs(t *testing.T) {
	for name, dir := range map[string]string{
		"config": ConfigDir(),
		"cache":  CacheDir(),
	} {
		if filepath.Base(dir) != Prefix() {
			t.Errorf("%s dir %q does not end in %q", name, dir, Prefix())
		}
	}
}
