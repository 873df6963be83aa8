// Package conv converts between byte offsets and character (Unicode code
// point) offsets of a subject string.
//
// Engines work on UTF-8 bytes; the public API reports character offsets.
// An Index is built once per subject and answers both directions. Invalid
// UTF-8 bytes count as one character each, matching utf8.RuneCountInString.
package conv

import (
	"sort"
	"unicode/utf8"

	"github.com/coregx/fuzzex/simd"
)

// Index maps offsets of one string. The zero value indexes the empty string.
type Index struct {
	// starts[i] is the byte offset of character i; starts[n] == len(s).
	// nil when the string is pure ASCII and offsets coincide.
	starts []int
	chars  int
}

// NewIndex builds an Index for s.
func NewIndex(s string) *Index {
	if simd.IsASCIIString(s) {
		return &Index{chars: len(s)}
	}
	starts := make([]int, 0, utf8.RuneCountInString(s)+1)
	for i := 0; i < len(s); {
		starts = append(starts, i)
		_, w := utf8.DecodeRuneInString(s[i:])
		i += w
	}
	n := len(starts)
	starts = append(starts, len(s))
	return &Index{starts: starts, chars: n}
}

// Len returns the number of characters in the indexed string.
func (x *Index) Len() int {
	return x.chars
}

// ByteOffset returns the byte offset of character c. c is clamped to
// [0, Len()].
func (x *Index) ByteOffset(c int) int {
	if c <= 0 {
		return 0
	}
	if c > x.chars {
		c = x.chars
	}
	if x.starts == nil {
		return c
	}
	return x.starts[c]
}

// CharOffset returns the character offset of byte offset b. A b inside a
// multi-byte sequence maps to the character that contains it.
func (x *Index) CharOffset(b int) int {
	if b <= 0 {
		return 0
	}
	if x.starts == nil {
		return min(b, x.chars)
	}
	i := sort.SearchInts(x.starts, b)
	if i < len(x.starts) && x.starts[i] == b {
		return i
	}
	return i - 1
}
