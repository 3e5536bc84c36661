// Package seed generates the corner-anchored set of integral tuples
// (seeds) a sector's reduction is bootstrapped from, and the weight
// table that orders them for the elimination system.
package seed

import (
	"math/bits"

	"github.com/chiyutuci/inibp/integral"
	"github.com/chiyutuci/inibp/sectorgraph"
)

// Generate builds the seeds and weight table for sec, a sector of an
// n-propagator topology, bounded by depthMax and rankMax. Grounded on
// sector.cpp's Sector::_generate_seeds: the corner seed (all sector
// lines at power 1, everything else at 0) is always weight 0, since
// depth and rank compositions are enumerated starting from the all-zero
// composition.
func Generate(sec *sectorgraph.Sector, n, depthMax, rankMax int) ([]integral.Integral, map[string]int) {
	lines := make([]bool, n)
	for i := 0; i < n; i++ {
		lines[i] = sec.ID&(1<<uint(i)) != 0
	}
	ell := bits.OnesCount64(sec.ID)
	zeros := n - ell

	var seeds []integral.Integral
	for d := 0; d <= depthMax-ell; d++ {
		if zeros == 0 {
			for _, depthComb := range Compositions(ell, d) {
				seeds = append(seeds, buildSeed(lines, n, depthComb, nil))
			}
			continue
		}
		for r := 0; r <= rankMax; r++ {
			for _, depthComb := range Compositions(ell, d) {
				for _, rankComb := range Compositions(zeros, r) {
					seeds = append(seeds, buildSeed(lines, n, depthComb, rankComb))
				}
			}
		}
	}

	weights := make(map[string]int, len(seeds))
	for i, s := range seeds {
		weights[s.Key()] = i
	}
	return seeds, weights
}

func buildSeed(lines []bool, n int, depthComb, rankComb []int) integral.Integral {
	out := make(integral.Integral, n)
	posLines, posZeros := 0, 0
	for i := 0; i < n; i++ {
		if lines[i] {
			out[i] = 1 + int32(depthComb[posLines])
			posLines++
		} else {
			out[i] = -int32(rankComb[posZeros])
			posZeros++
		}
	}
	return out
}
