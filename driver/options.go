package driver

import "github.com/rs/zerolog"

// Options configures one Run invocation.
type Options struct {
	// Logger receives structured progress/diagnostic events. The zero
	// value is zerolog's disabled logger, matching the package's
	// "library code never panics or prints on its own" convention.
	Logger zerolog.Logger

	// OutDir is the directory result_<sectorId> files are written to.
	// Defaults to the current directory.
	OutDir string
}
