package driver

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chiyutuci/inibp/integral"
	"github.com/chiyutuci/inibp/kernel"
)

// writeSectorResult writes one result_<sectorId> file: for every
// reduced (pivot) seed, a line naming the seed followed by a line
// naming its linear combination of masters, in ascending weight order
// for determinism (spec.md §8 scenario 5). A seed reducing to zero is
// emitted as the literal "0".
func writeSectorResult(path string, seeds []integral.Integral, res *kernel.Result) error {
	weights := make([]int, 0, len(res.Reductions))
	for w := range res.Reductions {
		weights = append(weights, w)
	}
	sort.Ints(weights)

	var sb strings.Builder
	for _, w := range weights {
		fmt.Fprintln(&sb, seeds[w].String())
		combo := res.Reductions[w]
		if len(combo) == 0 {
			sb.WriteString("0\n")
			continue
		}
		parts := make([]string, len(combo))
		for i, t := range combo {
			parts[i] = fmt.Sprintf("%s * %s", t.Coeff.String(), seeds[t.Weight].String())
		}
		fmt.Fprintln(&sb, strings.Join(parts, " + "))
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
