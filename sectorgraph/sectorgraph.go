// Package sectorgraph builds the DAG of non-trivial sectors ordered by
// descending propagator count, with each sector's immediate super- and
// sub-sector masks, the structure SeedGenerator and ReductionKernel
// walk top-down during a reduction run.
package sectorgraph

import (
	"math/bits"
	"sort"

	"github.com/chiyutuci/inibp/integral"
)

// Sector is one node of the graph: a propagator-presence mask, its
// immediate neighbors in the subset lattice (SuperSectors: every
// one-line extension within the top sector, trivial or not;
// SubSectors: only the one-line removals recorded non-trivial), and
// (once SeedGenerator has run) the seeds and weight table
// driving this sector's contribution to the reduction system.
type Sector struct {
	ID           uint64
	SuperSectors []uint64
	SubSectors   []uint64

	Seeds   []integral.Integral
	Weights map[string]int
}

// Graph is the full non-trivial-sector lattice for one reduction run.
type Graph struct {
	N   int
	Top uint64

	Sectors []*Sector // ordered by (popcount desc, mask desc)
	index   map[uint64]int
}

// Get returns the sector with the given mask, if it was recorded
// non-trivial.
func (g *Graph) Get(id uint64) (*Sector, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.Sectors[i], true
}

// Build constructs the graph from a trivial-sector boolean vector
// (indexed by mask, true meaning non-trivial — trivialsector.Detect's
// output) and the topology's top sector and propagator count.
// Grounded on family.cpp's Reduce::prepare_sectors.
func Build(nonTrivial []bool, top uint64, n int) *Graph {
	var masks []uint64
	for m := uint64(0); m < uint64(len(nonTrivial)); m++ {
		if nonTrivial[m] {
			masks = append(masks, m)
		}
	}
	sort.Slice(masks, func(i, j int) bool {
		pi, pj := bits.OnesCount64(masks[i]), bits.OnesCount64(masks[j])
		if pi != pj {
			return pi > pj
		}
		return masks[i] > masks[j]
	})

	idx := make(map[uint64]int, len(masks))
	for i, m := range masks {
		idx[m] = i
	}

	lines := make([]bool, n)
	for i := 0; i < n; i++ {
		lines[i] = top&(1<<uint(i)) != 0
	}

	sectors := make([]*Sector, len(masks))
	for i, id := range masks {
		s := &Sector{ID: id}
		for j := 0; j < n; j++ {
			if lines[j] && id&(1<<uint(j)) == 0 {
				s.SuperSectors = append(s.SuperSectors, id|(1<<uint(j)))
			}
		}
		for j := 0; j < n; j++ {
			if id&(1<<uint(j)) == 0 {
				continue
			}
			sub := id ^ (1 << uint(j))
			if _, ok := idx[sub]; ok {
				s.SubSectors = append(s.SubSectors, sub)
			}
		}
		sectors[i] = s
	}

	return &Graph{N: n, Top: top, Sectors: sectors, index: idx}
}
