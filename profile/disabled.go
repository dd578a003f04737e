//go:build !pprof

package profile

import "iter"

// Modes yields nothing when built without the pprof tag.
func Modes() iter.Seq[string] { return modeSeq(nil) }

func start(string, string, bool) Stopper { return ignore{} }
