package sectorgraph

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrdersByPopcountThenMaskDescending(t *testing.T) {
	// n=3, every mask except the empty one is non-trivial.
	nonTrivial := make([]bool, 8)
	for m := uint64(1); m < 8; m++ {
		nonTrivial[m] = true
	}
	g := Build(nonTrivial, 0b111, 3)

	require.Len(t, g.Sectors, 7)
	for i := 1; i < len(g.Sectors); i++ {
		pi := bits.OnesCount64(g.Sectors[i-1].ID)
		pj := bits.OnesCount64(g.Sectors[i].ID)
		if pi == pj {
			assert.Greater(t, g.Sectors[i-1].ID, g.Sectors[i].ID)
		} else {
			assert.Greater(t, pi, pj)
		}
	}
}

func TestBuildSuperSubSectors(t *testing.T) {
	nonTrivial := make([]bool, 8)
	nonTrivial[0b111] = true
	nonTrivial[0b011] = true
	nonTrivial[0b001] = true
	g := Build(nonTrivial, 0b111, 3)

	sub, ok := g.Get(0b011)
	require.True(t, ok)
	assert.ElementsMatch(t, []uint64{0b111}, sub.SuperSectors)
	assert.ElementsMatch(t, []uint64{0b001}, sub.SubSectors)

	top, ok := g.Get(0b111)
	require.True(t, ok)
	assert.Empty(t, top.SuperSectors)
	assert.ElementsMatch(t, []uint64{0b011}, top.SubSectors)

	leaf, ok := g.Get(0b001)
	require.True(t, ok)
	assert.Empty(t, leaf.SubSectors)
}

func TestBuildSkipsTrivialMasks(t *testing.T) {
	nonTrivial := make([]bool, 8)
	nonTrivial[0b111] = true
	nonTrivial[0b001] = true // 0b011 left trivial (false)
	g := Build(nonTrivial, 0b111, 3)

	top, ok := g.Get(0b111)
	require.True(t, ok)
	assert.Empty(t, top.SubSectors) // 0b011 isn't recorded, so no edge to it

	_, ok = g.Get(0b011)
	assert.False(t, ok)
}

func TestGetMissingMask(t *testing.T) {
	g := Build(make([]bool, 4), 0b11, 2)
	_, ok := g.Get(0b11)
	assert.False(t, ok)
}
