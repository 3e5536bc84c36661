package seed

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chiyutuci/inibp/sectorgraph"
)

func binom(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	num, den := 1, 1
	for i := 0; i < k; i++ {
		num *= n - i
		den *= i + 1
	}
	return num / den
}

func TestCompositionsCount(t *testing.T) {
	cases := []struct{ n, s int }{{1, 0}, {1, 5}, {3, 0}, {3, 4}, {4, 6}}
	for _, c := range cases {
		got := Compositions(c.n, c.s)
		want := binom(c.n+c.s-1, c.s)
		assert.Lenf(t, got, want, "n=%d s=%d", c.n, c.s)
		for _, comb := range got {
			assert.Len(t, comb, c.n)
			sum := 0
			for _, v := range comb {
				sum += v
			}
			assert.Equal(t, c.s, sum)
		}
	}
}

func TestCompositionsConcurrentSafe(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Compositions(3, n%5)
		}(i)
	}
	wg.Wait()
}

// TestGenerateSeedsMatchSectorMask checks that every generated seed's
// derived Sector() mask equals the sector it was generated for: line
// positions always land strictly positive, zero positions never do.
func TestGenerateSeedsMatchSectorMask(t *testing.T) {
	sec := &sectorgraph.Sector{ID: 0b011}
	n, depthMax, rankMax := 3, 3, 2

	seeds, weights := Generate(sec, n, depthMax, rankMax)
	for _, s := range seeds {
		assert.Equal(t, sec.ID, s.Sector())
	}
	for i, s := range seeds {
		assert.Equal(t, i, weights[s.Key()])
	}
	assert.Equal(t, sec.ID, seeds[0].Sector())
}

func TestGenerateCornerSeedIsWeightZero(t *testing.T) {
	sec := &sectorgraph.Sector{ID: 0b101}
	seeds, weights := Generate(sec, 3, 2, 1)

	corner := seeds[0]
	for i, v := range corner {
		if sec.ID&(1<<uint(i)) != 0 {
			assert.EqualValues(t, 1, v)
		} else {
			assert.EqualValues(t, 0, v)
		}
	}
	assert.Equal(t, 0, weights[corner.Key()])
}

func TestGenerateSeedsCount(t *testing.T) {
	sec := &sectorgraph.Sector{ID: 0b11} // ell=2, one zero line out of n=3
	n, depthMax, rankMax := 3, 3, 2
	ell, zeros := 2, 1

	seeds, _ := Generate(sec, n, depthMax, rankMax)

	want := 0
	for d := 0; d <= depthMax-ell; d++ {
		dcount := binom(ell+d-1, d)
		for r := 0; r <= rankMax; r++ {
			want += dcount * binom(zeros+r-1, r)
		}
	}
	assert.Len(t, seeds, want)
}
