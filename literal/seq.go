// Package literal extracts literal byte sequences from parsed patterns for
// prefilter construction.
//
// A Literal is a concrete byte sequence that every match must begin with;
// a Seq is a set of alternative literals (from alternations such as
// /foo|bar/ or small classes such as /[abc]/). An empty Seq means no literal
// requirement could be proven and the caller must scan every position.
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte sequence extracted from a pattern. Complete reports
// whether the literal is an entire match rather than just its prefix.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

func (l Literal) String() string {
	if l.Complete {
		return "literal{" + string(l.Bytes) + ", complete}"
	}
	return "literal{" + string(l.Bytes) + "}"
}

// Seq is a set of alternative literals.
type Seq struct {
	literals []Literal
}

// NewSeq creates a Seq from lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals. A nil Seq has length 0.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence holds no literal.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// Bytes returns the literal byte sequences in order.
func (s *Seq) Bytes() [][]byte {
	out := make([][]byte, s.Len())
	for i := range out {
		out[i] = s.literals[i].Bytes
	}
	return out
}

// incomplete returns a copy of s with every literal marked as a prefix.
func (s *Seq) incomplete() *Seq {
	lits := make([]Literal, s.Len())
	for i, l := range s.literals {
		lits[i] = NewLiteral(l.Bytes, false)
	}
	return NewSeq(lits...)
}

// Minimize drops literals that have a shorter literal of the set as a
// prefix: any position where "foobar" starts is also a position where "foo"
// starts, so ["foo", "foobar"] scans the same as ["foo"]. Duplicates are
// removed too. The result is ordered shortest first.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})
	kept := s.literals[:0:0]
	for _, cur := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(cur.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by every literal.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return nil
	}
	prefix := s.literals[0].Bytes
	for _, l := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(l.Bytes) && prefix[n] == l.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
		if n == 0 {
			return nil
		}
	}
	return bytes.Clone(prefix)
}
