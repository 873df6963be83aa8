// Package prefilter finds candidate match positions with fast literal scans
// so that the matcher only runs where a match can start.
//
// The strategy is chosen from the literal prefixes of the pattern:
//   - one single-byte literal: simd.Memchr
//   - one longer literal: simd.Memmem
//   - several literals: an Aho-Corasick automaton
//
// Example:
//
//	re, _ := syntax.Parse("(hello|world)", syntax.Perl)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(re)
//	pf := prefilter.New(prefixes)
//	pos := pf.Find([]byte("foo hello bar"), 0) // 4
package prefilter

import (
	"bytes"

	"github.com/coregx/fuzzex/literal"
	"github.com/coregx/fuzzex/simd"
)

// Prefilter reports the next position at which a match may start.
type Prefilter interface {
	// Find returns the first candidate position at or after start, or -1 if
	// no match can start in haystack[start:]. A candidate still has to be
	// verified by the matcher.
	Find(haystack []byte, start int) int

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int
}

// New builds the prefilter for a set of prefix literals. It returns nil when
// prefixes is empty or contains the empty literal, since then every position
// is a candidate.
func New(prefixes *literal.Seq) Prefilter {
	if prefixes.IsEmpty() {
		return nil
	}
	lits := prefixes.Bytes()
	seq := make([]literal.Literal, len(lits))
	for i, b := range lits {
		seq[i] = literal.NewLiteral(bytes.Clone(b), false)
	}
	set := literal.NewSeq(seq...)
	set.Minimize()

	needles := set.Bytes()
	if len(needles[0]) == 0 {
		return nil
	}
	if len(needles) == 1 {
		if len(needles[0]) == 1 {
			return &memchrPrefilter{needle: needles[0][0]}
		}
		return &memmemPrefilter{needle: needles[0]}
	}
	return newAhoCorasick(needles)
}

type memchrPrefilter struct {
	needle byte
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		start = 0
	}
	return simd.MemchrAt(haystack, p.needle, start)
}

func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

type memmemPrefilter struct {
	needle []byte
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		start = 0
	}
	if start >= len(haystack) {
		return -1
	}
	return simd.MemmemAt(haystack, p.needle, start)
}

func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}
