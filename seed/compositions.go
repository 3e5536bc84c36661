package seed

import "sync"

// compositions memoizes Compositions(number, sum) across the whole
// process: every sector of a run shares the same small set of
// (number, sum) keys, so a single process-wide cache (guarded by a
// mutex, since reduction of independent sectors may run concurrently)
// avoids recomputation. Grounded on sector.cpp's static `combinations`
// map.
var (
	compMu       sync.Mutex
	compositions = map[[2]int][][]int{}
)

// Compositions returns every way to distribute sum as a sequence of
// number non-negative integers, in the order
// compositions[(number,sum)] = concatenation over i in 0..sum of
// { [i] ++ c : c in compositions[(number-1, sum-i)] }.
func Compositions(number, sum int) [][]int {
	compMu.Lock()
	defer compMu.Unlock()
	return compositionsLocked(number, sum)
}

func compositionsLocked(number, sum int) [][]int {
	key := [2]int{number, sum}
	if v, ok := compositions[key]; ok {
		return v
	}

	var out [][]int
	switch {
	case number == 0:
		if sum == 0 {
			out = [][]int{{}}
		}
	case number == 1:
		out = [][]int{{sum}}
	case sum == 0:
		out = [][]int{make([]int, number)}
	default:
		for i := 0; i <= sum; i++ {
			for _, c := range compositionsLocked(number-1, sum-i) {
				nc := make([]int, 0, number)
				nc = append(nc, i)
				nc = append(nc, c...)
				out = append(out, nc)
			}
		}
	}
	compositions[key] = out
	return out
}
