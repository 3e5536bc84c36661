// Package kernel implements the reduction kernel: system generation
// from seeds and IBP templates, ordered Gaussian elimination over
// GF(p), and master/pivot bookkeeping for one sector.
package kernel

import "errors"

// ErrModularSingularity is returned when a pivot division in ModP
// would divide by zero at the chosen prime — the caller may retry the
// whole reduction at a different prime (spec.md §4.8's documented
// retry contract; this module fixes one prime per run, so retrying
// means re-invoking driver.Run with a different sample).
var ErrModularSingularity = errors.New("kernel: modular singularity")
