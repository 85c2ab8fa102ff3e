package selector

import (
	"sort"

	"github.com/rileyhilliard/mosdef/internal/display"
)

// Match pairs a display with the selector that claimed it.
type Match struct {
	Display  display.Display
	Selector Selector
}

// Order returns every display matched by sels, each exactly once, claimed by
// its highest-precedence selector. Selectors of equal rank keep argument
// order. Candidates are scanned by ID, so the result does not depend on the
// order of displays.
func Order(displays []display.Display, sels []Selector) []Match {
	ranked := make([]Selector, len(sels))
	copy(ranked, sels)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank() < ranked[j].Rank()
	})

	candidates := display.SortByIndex(displays)
	added := make(map[string]bool, len(candidates))

	var out []Match
	for _, s := range ranked {
		for _, d := range candidates {
			if added[d.DevicePath] || !s.Match(d) {
				continue
			}
			added[d.DevicePath] = true
			out = append(out, Match{Display: d, Selector: s})
		}
	}
	return out
}

// Displays strips the selector from a list of matches.
func Displays(matches []Match) []display.Display {
	out := make([]display.Display, len(matches))
	for i, m := range matches {
		out[i] = m.Display
	}
	return out
}
