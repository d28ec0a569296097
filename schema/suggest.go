package schema

import (
	"github.com/caliper-org/caliper/units"
)

// maxSuggestDistance is how far a typo may drift from a known alias and
// still earn a did-you-mean.
const maxSuggestDistance = 2

// suggestUnit returns the registered alias closest to the unknown one, or
// "" when nothing is near. With a dimension the search stays inside it;
// otherwise every dimension competes.
func suggestUnit(reg *units.Registry, alias, dimension string) string {
	want := units.Fold(alias)
	if want == "" {
		return ""
	}
	dims := []string{dimension}
	if dimension == "" {
		dims = reg.Dimensions()
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, dim := range dims {
		for _, sym := range reg.UnitsIn(dim) {
			u, err := reg.Resolve(sym, dim)
			if err != nil {
				continue
			}
			for _, name := range u.Names() {
				cand := units.Fold(name)
				if delta := len(cand) - len(want); delta > maxSuggestDistance || -delta > maxSuggestDistance {
					continue
				}
				d := editDistance(want, cand, bestDist)
				if d < bestDist || (d == bestDist && best != "" && name < best) {
					best = name
					bestDist = d
				}
			}
		}
	}
	if bestDist > maxSuggestDistance {
		return ""
	}
	return best
}

// editDistance is a bounded Levenshtein distance: once every cell of a row
// exceeds the limit the result cannot come back under it, so it bails with
// limit+1.
func editDistance(a, b string, limit int) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d := prev[j] + 1
			if ins := cur[j-1] + 1; ins < d {
				d = ins
			}
			if sub := prev[j-1] + cost; sub < d {
				d = sub
			}
			cur[j] = d
			if d < rowMin {
				rowMin = d
			}
		}
		if rowMin > limit {
			return limit + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
