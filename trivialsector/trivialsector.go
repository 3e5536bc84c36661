// Package trivialsector implements the k-equation solvability test that
// prunes sectors whose corresponding integral vanishes identically,
// before seed generation and reduction ever touch them.
package trivialsector

import (
	"fmt"

	"github.com/chiyutuci/inibp/family"
	"github.com/chiyutuci/inibp/modp"
	"github.com/chiyutuci/inibp/symbolic"
)

// Config fixes the finite-field sample point TrivialSectorOracle
// evaluates the k-equation at: Base supplies the dimension symbol and
// every declared invariant (the same sample a driver run passes to
// family.Templates), and Samples is the number of GF(p) assignments of
// a candidate sector's surviving a_i to probe per sector.
type Config struct {
	Base    map[string]modp.Elem
	Samples int
}

// Detect implements the scan spec.md §4.5 describes: masks from top
// down to (1<<L)-1, skipping masks that are subsets of masks already
// recorded non-trivial, marking each remaining mask trivial when its
// k-equation has no solution and non-trivial (added to the skip set)
// otherwise. See DESIGN.md for why solvability is tested by sampling
// rather than symbolic monomial grouping.
func Detect(fam *family.Family, top uint64, cfg Config) ([]bool, error) {
	n := fam.NumPropagators()
	indices := fam.IndexSymbols()
	g := fam.GPoly()

	dG := make([]symbolic.Expr, n)
	for i := 0; i < n; i++ {
		dG[i] = g.Diff(indices[i])
	}

	samples := cfg.Samples
	if samples <= 0 {
		samples = 2 * n
	}

	lowMask := uint64(1)<<uint(fam.NumInternals()) - 1

	nonTrivial := make([]bool, top+1)
	var nonTrivialMasks []uint64

	sector := top
	for {
		if sector&top == sector {
			skip := false
			for _, m := range nonTrivialMasks {
				if sector&m == sector {
					skip = true
					break
				}
			}
			if !skip {
				solvable, err := solveKEquation(g, dG, indices, n, sector, cfg.Base, samples)
				if err != nil {
					return nil, fmt.Errorf("trivialsector: sector %d: %w", sector, err)
				}
				if solvable {
					nonTrivial[sector] = true
					nonTrivialMasks = append(nonTrivialMasks, sector)
				}
			}
		}
		if sector == lowMask {
			break
		}
		sector--
	}
	return nonTrivial, nil
}
