package profile

import (
	"slices"
	"testing"
)

func TestNew_Options(t *testing.T) {
	c := New(WithMode("cpu"), nil, WithPath("/tmp/p"), WithQuiet(true))

	mode, path, quiet := c()
	if mode != "cpu" || path != "/tmp/p" || !quiet {
		t.Errorf("New() = (%q, %q, %v)", mode, path, quiet)
	}

	mode, path, quiet = WithMode("")(c)()
	if mode != "" || path != "/tmp/p" || !quiet {
		t.Errorf("WithMode did not preserve other fields: (%q, %q, %v)", mode, path, quiet)
	}
}

func TestStart_EmptyMode(t *testing.T) {
	stop := New(WithPath(t.TempDir())).Start()
	if _, ok := stop.(ignore); !ok {
		t.Fatalf("expected a no-op stopper, got %T", stop)
	}

	stop.Stop()
	stop.Stop()
}

func TestStart_UnknownMode(t *testing.T) {
	stop := New(WithMode("bogus")).Start()
	if _, ok := stop.(ignore); !ok {
		t.Fatalf("expected a no-op stopper, got %T", stop)
	}

	if Enabled("bogus") {
		t.Error("bogus mode reported as enabled")
	}
}

func TestModes_Sorted(t *testing.T) {
	got := slices.Collect(Modes())
	if !slices.IsSorted(got) {
		t.Errorf("Modes() not sorted: %v", got)
	}

	for _, m := range got {
		if !Enabled(m) {
			t.Errorf("mode %q not enabled", m)
		}
	}
}
