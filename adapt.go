package fuzzex

import (
	"fmt"

	"github.com/coregx/fuzzex/engine"
)

// adapt copies a native match into a Match. names holds one entry per
// group including group 0 and fixes the group count; a native match
// reporting a different count cannot be converted.
func adapt(native engine.Match, names []string) (Match, error) {
	n := native.NumGroups()
	if n != len(names) {
		return Match{}, fmt.Errorf("native match has %d groups, pattern declares %d", n, len(names))
	}
	groups := make([]Submatch, n)
	for i := range groups {
		text, ok, err := native.Group(i)
		if err != nil {
			return Match{}, err
		}
		if !ok {
			if i == 0 {
				return Match{}, fmt.Errorf("group 0 did not participate")
			}
			groups[i] = Submatch{Start: -1, End: -1}
			continue
		}
		start, end, err := native.Span(i)
		if err != nil {
			return Match{}, err
		}
		if start < 0 || end < start {
			return Match{}, fmt.Errorf("group %d has invalid span (%d, %d)", i, start, end)
		}
		groups[i] = Submatch{Text: text, Start: start, End: end, Matched: true}
	}
	m := Match{groups: groups, names: names}
	if fm, ok := native.(engine.FuzzyMatch); ok {
		m.fuzzy.Substitutions, m.fuzzy.Insertions, m.fuzzy.Deletions = fm.FuzzyCounts()
	}
	return m, nil
}
