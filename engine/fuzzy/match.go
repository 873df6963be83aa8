package fuzzy

import (
	"fmt"

	"github.com/coregx/fuzzex/engine"
)

// match is a native match: byte offsets into the subject plus the fuzzy
// error counts.
type match struct {
	subj  *subject
	caps  []int
	found counts
}

func (m *match) NumGroups() int {
	return len(m.caps) / 2
}

func (m *match) check(i int) error {
	if i < 0 || i >= m.NumGroups() {
		return fmt.Errorf("%w: %d (match has %d groups)", engine.ErrNoGroup, i, m.NumGroups())
	}
	return nil
}

func (m *match) Group(i int) (string, bool, error) {
	if err := m.check(i); err != nil {
		return "", false, err
	}
	s, e := m.caps[2*i], m.caps[2*i+1]
	if s < 0 {
		return "", false, nil
	}
	return m.subj.text[s:e], true, nil
}

func (m *match) Span(i int) (int, int, error) {
	if err := m.check(i); err != nil {
		return -1, -1, err
	}
	s, e := m.caps[2*i], m.caps[2*i+1]
	if s < 0 {
		return -1, -1, nil
	}
	idx := m.subj.index()
	return idx.CharOffset(s), idx.CharOffset(e), nil
}

func (m *match) FuzzyCounts() (sub, ins, del int) {
	return m.found[errSub], m.found[errIns], m.found[errDel]
}
