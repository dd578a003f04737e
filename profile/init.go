package profile

import "iter"

// Tag is the build tag that enables profiling. It also names the default
// subdirectory for profile output.
const Tag = "pprof"

// Config returns the profiler mode, output directory, and quiet flag.
type Config func() (mode, path string, quiet bool)

// Option modifies a [Config].
type Option func(Config) Config

// Stopper stops a running profiler. Stop is safe to call more than once.
type Stopper interface{ Stop() }

// New returns a Config with opts applied over an empty configuration.
func New(opts ...Option) Config {
	c := Config(func() (string, string, bool) { return "", "", false })

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// Start starts profiling in the configured mode.
//
// Start returns a no-op Stopper when the mode is empty or unknown, or when
// the program was built without the pprof tag.
func (c Config) Start() Stopper {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// Enabled reports whether mode names a profiling mode available in this
// build.
func Enabled(mode string) bool {
	for m := range Modes() {
		if m == mode {
			return true
		}
	}

	return false
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithPath sets the profile output directory.
func WithPath(path string) Option {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

type ignore struct{}

func (ignore) Stop() {}

// modeSeq yields names in order.
func modeSeq(names []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}
