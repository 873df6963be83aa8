package fuzzy

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrBacktrackLimit is returned when one search attempt exceeds the
// configured number of matcher steps.
var ErrBacktrackLimit = errors.New("fuzzy: backtrack limit exceeded")

// cont is the rest of the match after a node has matched up to pos.
type cont func(pos int) bool

// machine is a backtracking matcher over a program's node tree. Fuzzy atoms
// try an exact match first, then a substitution, an insertion and finally a
// deletion, so the first match found at a start position is the one with
// errors as late as possible. A machine is scratch space reused by every
// search of its Context.
type machine struct {
	p    *program
	text string

	caps  []int
	best  []int
	costs []counts // per fuzzy region
	total counts
	found counts

	start int
	steps int
	limit int
	err   error
}

func (m *machine) reset(p *program, text string, limit int) {
	m.p, m.text, m.limit, m.err = p, text, limit, nil
	n := 2 * (p.numGroups + 1)
	if cap(m.caps) < n {
		m.caps = make([]int, n)
		m.best = make([]int, n)
	}
	m.caps, m.best = m.caps[:n], m.best[:n]
	if cap(m.costs) < len(p.constraints) {
		m.costs = make([]counts, len(p.constraints))
	}
	m.costs = m.costs[:len(p.constraints)]
}

// run finds the leftmost match starting at byte offset from or later. On
// success the byte offsets of the groups are in m.best and the error counts
// in m.found.
func (m *machine) run(p *program, s *subject, from, limit int) (bool, error) {
	m.reset(p, s.text, limit)
	var haystack []byte
	if p.tracker != nil {
		p.tracker.Reset()
		haystack = s.bytes()
	}

	for at := from; at <= len(m.text); {
		if p.tracker != nil && p.tracker.Active() {
			c := p.tracker.Find(haystack, at)
			if c < 0 {
				if p.tracker.Active() {
					return false, nil
				}
			} else {
				at = c
			}
		}
		if m.try(at) {
			if p.tracker != nil {
				p.tracker.ConfirmMatch()
			}
			return true, nil
		}
		if m.err != nil {
			return false, m.err
		}
		if p.anchored || at == len(m.text) {
			break
		}
		_, w := utf8.DecodeRuneInString(m.text[at:])
		at += w
	}
	return false, nil
}

func (m *machine) try(at int) bool {
	for i := range m.caps {
		m.caps[i] = -1
	}
	clear(m.costs)
	m.total = counts{}
	m.start = at
	m.steps = 0
	return m.match(m.p.root, at, m.accept)
}

func (m *machine) accept(pos int) bool {
	copy(m.best, m.caps)
	m.found = m.total
	return true
}

// tick counts one matcher step and reports whether the budget allows it.
func (m *machine) tick() bool {
	if m.err != nil {
		return false
	}
	m.steps++
	if m.steps > m.limit {
		m.err = fmt.Errorf("%w: %d steps from offset %d", ErrBacktrackLimit, m.limit, m.start)
		return false
	}
	return true
}

func (m *machine) match(n *node, pos int, k cont) bool {
	if !m.tick() {
		return false
	}
	switch n.op {
	case opChar, opClass, opAnyNotNL, opAny:
		return m.atom(n, pos, k)
	case opString:
		if len(m.text)-pos >= len(n.str) && m.text[pos:pos+len(n.str)] == n.str {
			return k(pos + len(n.str))
		}
		return false
	case opEmpty:
		return k(pos)
	case opFail:
		return false
	case opConcat:
		return m.concat(n.subs, pos, k)
	case opAlt:
		for _, sub := range n.subs {
			if m.match(sub, pos, k) {
				return true
			}
			if m.err != nil {
				return false
			}
		}
		return false
	case opRepeat:
		return m.repeat(n, 0, pos, k)
	case opCapture:
		return m.capture(n, pos, k)
	case opRegion:
		return m.region(n, pos, k)
	case opBeginLine:
		return (pos == 0 || m.text[pos-1] == '\n') && k(pos)
	case opEndLine:
		return (pos == len(m.text) || m.text[pos] == '\n') && k(pos)
	case opBeginText:
		return pos == 0 && k(pos)
	case opEndText:
		return pos == len(m.text) && k(pos)
	case opWordBoundary:
		return m.atBoundary(pos) && k(pos)
	case opNoWordBoundary:
		return !m.atBoundary(pos) && k(pos)
	}
	return false
}

func (m *machine) concat(subs []*node, pos int, k cont) bool {
	switch len(subs) {
	case 0:
		return k(pos)
	case 1:
		return m.match(subs[0], pos, k)
	}
	return m.match(subs[0], pos, func(p int) bool {
		return m.concat(subs[1:], p, k)
	})
}

func (m *machine) repeat(n *node, count, pos int, k cont) bool {
	more := func() bool {
		if n.max >= 0 && count >= n.max {
			return false
		}
		return m.match(n.subs[0], pos, func(p int) bool {
			// An empty iteration past the minimum cannot make progress.
			if p == pos && count >= n.min {
				return false
			}
			return m.repeat(n, count+1, p, k)
		})
	}
	if count < n.min {
		return more()
	}
	if n.greedy {
		return more() || (m.err == nil && k(pos))
	}
	return k(pos) || (m.err == nil && more())
}

func (m *machine) capture(n *node, pos int, k cont) bool {
	i := 2 * n.idx
	old0, old1 := m.caps[i], m.caps[i+1]
	m.caps[i] = pos
	ok := m.match(n.subs[0], pos, func(p int) bool {
		start, end := m.caps[i], m.caps[i+1]
		m.caps[i], m.caps[i+1] = pos, p
		if k(p) {
			return true
		}
		m.caps[i], m.caps[i+1] = start, end
		return false
	})
	m.caps[i], m.caps[i+1] = old0, old1
	return ok
}

// region matches a fuzzy region with fresh error counts and checks the
// constraint's minimums when it ends.
func (m *machine) region(n *node, pos int, k cont) bool {
	id := n.idx
	saved := m.costs[id]
	m.costs[id] = counts{}
	c := m.p.constraints[id]
	ok := m.match(n.subs[0], pos, func(p int) bool {
		inner := m.costs[id]
		if !c.satisfied(inner) {
			return false
		}
		if k(p) {
			return true
		}
		m.costs[id] = inner
		return false
	})
	m.costs[id] = saved
	return ok
}

func (m *machine) atom(n *node, pos int, k cont) bool {
	r, w := utf8.RuneError, 0
	if pos < len(m.text) {
		r, w = utf8.DecodeRuneInString(m.text[pos:])
	}
	exact := w > 0 && n.accepts(r)
	if exact {
		if k(pos + w) {
			return true
		}
		if m.err != nil {
			return false
		}
	}
	if len(n.regions) == 0 {
		return false
	}

	// Substitution: the subject character stands in for the atom.
	if w > 0 && !exact && m.allow(n, errSub) {
		m.charge(n, errSub, 1)
		if k(pos + w) {
			return true
		}
		m.charge(n, errSub, -1)
		if m.err != nil {
			return false
		}
	}
	// Insertion: an extra subject character before the atom. Never at the
	// start of a match, where dropping the character is always cheaper.
	if w > 0 && pos > m.start && m.allow(n, errIns) {
		m.charge(n, errIns, 1)
		if m.tick() && m.atom(n, pos+w, k) {
			return true
		}
		m.charge(n, errIns, -1)
		if m.err != nil {
			return false
		}
	}
	// Deletion: the atom is missing from the subject.
	if m.allow(n, errDel) {
		m.charge(n, errDel, 1)
		if k(pos) {
			return true
		}
		m.charge(n, errDel, -1)
	}
	return false
}

func (m *machine) allow(n *node, k errKind) bool {
	for _, id := range n.regions {
		if !m.p.constraints[id].canAdd(m.costs[id], k) {
			return false
		}
	}
	return true
}

func (m *machine) charge(n *node, k errKind, d int) {
	for _, id := range n.regions {
		m.costs[id][k] += d
	}
	m.total[k] += d
}

// atBoundary reports whether pos is between an ASCII word character and a
// non-word character.
func (m *machine) atBoundary(pos int) bool {
	before := pos > 0 && isWordByte(m.text[pos-1])
	after := pos < len(m.text) && isWordByte(m.text[pos])
	return before != after
}

func isWordByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
