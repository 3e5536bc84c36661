package driver

import (
	"fmt"
	"path/filepath"

	"github.com/chiyutuci/inibp/family"
	"github.com/chiyutuci/inibp/integral"
	"github.com/chiyutuci/inibp/kernel"
	"github.com/chiyutuci/inibp/modp"
	"github.com/chiyutuci/inibp/sectorgraph"
	"github.com/chiyutuci/inibp/seed"
	"github.com/chiyutuci/inibp/trivialsector"
)

// DefaultDimensionSample is the deterministic ModP value drawn for the
// dimension symbol, and the base every invariant's default sample is
// offset from, absent an explicit override in ReduceSpec (see
// SPEC_FULL.md §4.8's "Choice of concrete symbol values" — chosen
// generic: not observed to be a root of any bundled fixture's pivot
// matrices or template leading coefficients).
const DefaultDimensionSample int64 = 9223372036854775770

// invariantSampleStride separates successive default invariant
// samples from DefaultDimensionSample and from each other.
const invariantSampleStride int64 = 97

// Run executes one full reduction pass over fam and writes one
// result_<sectorId> file per non-trivial sector under opts.OutDir.
// Grounded on original_source/src/main.cpp's phase sequencing: parse
// config, init family, collect targets, search trivial sectors,
// prepare sectors, reduce, print — family construction and config
// parsing are the caller's responsibility (cmd/inibp), so Run starts
// at "collect targets."
func Run(fam *family.Family, rs ReduceSpec, opts Options) error {
	log := opts.Logger
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}

	depthMax, rankMax := rs.DepthMax, rs.RankMax
	for _, t := range rs.Targets {
		idx := integral.New(t)
		if d := idx.Depth() + 1; d > depthMax {
			depthMax = d
		}
		if r := idx.Rank() + 1; r > rankMax {
			rankMax = r
		}
	}

	base := buildBaseSample(fam, rs)
	n := fam.NumPropagators()

	log.Info().Str("family", fam.Name()).Int("propagators", n).
		Uint64("top", rs.Top).Int("depth_max", depthMax).Int("rank_max", rankMax).
		Msg("starting reduction")

	nonTrivial, err := trivialsector.Detect(fam, rs.Top, trivialsector.Config{Base: base})
	if err != nil {
		return fmt.Errorf("driver: %w", err)
	}

	graph := sectorgraph.Build(nonTrivial, rs.Top, n)
	log.Info().Int("sectors", len(graph.Sectors)).Msg("sector graph built")

	templates, err := fam.Templates(base)
	if err != nil {
		return fmt.Errorf("driver: %w", err)
	}

	for _, sec := range graph.Sectors {
		seeds, weights := seed.Generate(sec, n, depthMax, rankMax)
		sec.Seeds, sec.Weights = seeds, weights

		res, err := kernel.Reduce(sec, templates, seeds, weights, depthMax, rankMax)
		if err != nil {
			return fmt.Errorf("driver: sector %d: %w", sec.ID, err)
		}
		log.Info().Uint64("sector", sec.ID).Int("seeds", len(seeds)).
			Int("masters", len(res.Masters)).Msg("sector reduced")

		path := filepath.Join(outDir, fmt.Sprintf("result_%d", sec.ID))
		if err := writeSectorResult(path, seeds, res); err != nil {
			return fmt.Errorf("driver: sector %d: %w", sec.ID, err)
		}
	}

	return nil
}

// buildBaseSample draws the one concrete ModP value per run for the
// dimension symbol and every declared invariant, honoring rs's
// overrides.
func buildBaseSample(fam *family.Family, rs ReduceSpec) map[string]modp.Elem {
	dimSample := DefaultDimensionSample
	if rs.DimensionSample != nil {
		dimSample = *rs.DimensionSample
	}

	base := map[string]modp.Elem{}
	if name := fam.DimName(); name != "" {
		base[name] = modp.FromSignedInt64(dimSample)
	}
	for i, name := range fam.InvariantNames() {
		if v, ok := rs.InvariantSamples[name]; ok {
			base[name] = modp.FromSignedInt64(v)
			continue
		}
		base[name] = modp.FromSignedInt64(dimSample + int64(i+1)*invariantSampleStride)
	}
	return base
}
