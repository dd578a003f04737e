// Package profile wraps [github.com/pkg/profile] behind the pprof build tag.
//
// Without the tag, [Modes] is empty and [Config.Start] always returns a no-op
// [Stopper], so callers never need their own build constraints:
//
//	stop := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//		profile.WithQuiet(true),
//	).Start()
//	defer stop.Stop()
//
// Build with profiling support using:
//
//	go build -tags pprof .
//
// Profiles are written to the configured directory and can be inspected with
// go tool pprof.
package profile
