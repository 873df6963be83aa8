package fuzzex

import (
	"fmt"
)

// Submatch is one capture group of a Match. Start and End are character
// (Unicode code point) offsets into the subject. A group that did not
// take part in the match has Matched false and offsets -1, -1.
type Submatch struct {
	Text    string
	Start   int
	End     int
	Matched bool
}

// FuzzyCounts holds the errors a fuzzy match needed.
type FuzzyCounts struct {
	Substitutions int
	Insertions    int
	Deletions     int
}

// Total returns the number of errors of all kinds.
func (c FuzzyCounts) Total() int {
	return c.Substitutions + c.Insertions + c.Deletions
}

// Match is one match of a Regex. Group 0 is the whole match; groups
// 1..NumGroups()-1 are the capturing groups in pattern order. A Match is
// an immutable value that does not refer back to the Regex or the engine.
type Match struct {
	groups []Submatch
	names  []string
	fuzzy  FuzzyCounts
}

// NumGroups returns the number of groups, including group 0.
func (m Match) NumGroups() int {
	return len(m.groups)
}

func (m Match) check(op string, i int) error {
	if i < 0 || i >= len(m.groups) {
		return &Error{
			Kind:       KindIndexOutOfRange,
			Op:         op,
			Diagnostic: fmt.Sprintf("group %d not in [0, %d]", i, len(m.groups)-1),
		}
	}
	return nil
}

// Group returns group i.
func (m Match) Group(i int) (Submatch, error) {
	if err := m.check("group", i); err != nil {
		return Submatch{}, err
	}
	return m.groups[i], nil
}

// Groups returns a copy of the capturing groups 1..NumGroups()-1. The
// whole match is not included; use Group(0) or Text for it.
func (m Match) Groups() []Submatch {
	if len(m.groups) == 0 {
		return nil
	}
	return append([]Submatch{}, m.groups[1:]...)
}

// Start returns the start offset of group i, or -1 if it did not match.
func (m Match) Start(i int) (int, error) {
	if err := m.check("start", i); err != nil {
		return -1, err
	}
	return m.groups[i].Start, nil
}

// End returns the end offset of group i, or -1 if it did not match.
func (m Match) End(i int) (int, error) {
	if err := m.check("end", i); err != nil {
		return -1, err
	}
	return m.groups[i].End, nil
}

// Span returns the start and end offsets of group i.
func (m Match) Span(i int) (start, end int, err error) {
	if err := m.check("span", i); err != nil {
		return -1, -1, err
	}
	return m.groups[i].Start, m.groups[i].End, nil
}

// Text returns the text of the whole match.
func (m Match) Text() string {
	if len(m.groups) == 0 {
		return ""
	}
	return m.groups[0].Text
}

// Named returns the group called name.
func (m Match) Named(name string) (Submatch, error) {
	for i, n := range m.names {
		if n != "" && n == name {
			return m.groups[i], nil
		}
	}
	return Submatch{}, &Error{
		Kind:       KindIndexOutOfRange,
		Op:         "named",
		Diagnostic: fmt.Sprintf("no group named %q", name),
	}
}

// GroupDict returns the named groups keyed by name.
func (m Match) GroupDict() map[string]Submatch {
	d := make(map[string]Submatch)
	for i, n := range m.names {
		if n != "" {
			d[n] = m.groups[i]
		}
	}
	return d
}

// FuzzyCounts returns the errors the match needed. It is zero for exact
// matches and for engines without fuzzy matching.
func (m Match) FuzzyCounts() FuzzyCounts {
	return m.fuzzy
}

func (m Match) String() string {
	if len(m.groups) == 0 {
		return "<match>"
	}
	return fmt.Sprintf("<match span=(%d, %d) text=%q>", m.groups[0].Start, m.groups[0].End, m.groups[0].Text)
}
