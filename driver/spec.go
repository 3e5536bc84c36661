// Package driver sequences one full reduction run over an already
// prepared family — trivial-sector detection, sector-graph
// construction, ModP specialization of the templates, seed generation,
// and per-sector kernel reduction — and writes the
// result_<sectorId> output files spec.md §6 describes. It does not
// import config, so config can depend on driver's types without a
// cycle; cmd/inibp is the glue that loads a config.Document and calls
// Run.
package driver

// ReduceSpec names the sector/budget to reduce for one run, lowered
// from the config document's `reduce` or `targets` block.
type ReduceSpec struct {
	Top      uint64
	DepthMax int
	RankMax  int

	// Targets, when non-nil, is the explicit list of index tuples the
	// `targets` config form names; Top is still derived from their
	// union of sectors by config.Document.Reduce.
	Targets [][]int32

	// DimensionSample and InvariantSamples override the deterministic
	// default ModP sample drawn for the dimension symbol and for every
	// declared invariant (see DefaultDimensionSample).
	DimensionSample  *int64
	InvariantSamples map[string]int64
}
