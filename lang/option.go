package lang

import (
	"github.com/xyproto/env/v2"

	"github.com/ardnew/impral/lang/parser"
	"github.com/ardnew/impral/log"
)

// DefaultMaxDepth is the default bound on expression nesting depth.
const DefaultMaxDepth = parser.DefaultMaxDepth

// Environment variables consulted for option defaults.
const (
	// EnvMaxDepth overrides [DefaultMaxDepth].
	EnvMaxDepth = "IMPRAL_MAX_DEPTH"
	// EnvNoCache disables the parse cache when set to a true value.
	EnvNoCache = "IMPRAL_NO_CACHE"
	// EnvCacheSize overrides [DefaultCacheSize].
	EnvCacheSize = "IMPRAL_CACHE_SIZE"
)

// options holds parse configuration.
// Only maxDepth affects the parsed result, so only it is part of the cache
// key.
type options struct {
	maxDepth int
	cache    bool
	logger   log.Logger
}

// Option configures parsing behavior.
type Option func(*options)

// WithMaxDepth sets the maximum nesting depth of parsed expressions.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithCache enables or disables the content-hash parse cache.
func WithCache(enable bool) Option {
	return func(o *options) {
		o.cache = enable
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// makeOptions applies opts over the defaults taken from the environment.
func makeOptions(opts ...Option) options {
	o := options{
		maxDepth: env.Int(EnvMaxDepth, DefaultMaxDepth),
		cache:    !env.Bool(EnvNoCache),
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.maxDepth < 1 {
		o.maxDepth = DefaultMaxDepth
	}

	return o
}
