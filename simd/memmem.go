package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. An empty needle matches at 0.
//
// Candidates are found by scanning for the needle's rarest byte with Memchr
// and verified in place, which skips most of the haystack on typical input.
//
//	simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab")) // 5
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare, off := RareByte(needle)
	last := len(haystack) - len(needle)
	from := off
	for from < len(haystack) {
		c := MemchrAt(haystack, rare, from)
		if c < 0 {
			return -1
		}
		start := c - off
		if start > last {
			return -1
		}
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		from = c + 1
	}
	return -1
}

// MemmemAt is like Memmem but starts the scan at offset at and returns an
// absolute index.
func MemmemAt(haystack, needle []byte, at int) int {
	if at < 0 {
		at = 0
	}
	if at > len(haystack) {
		return -1
	}
	i := Memmem(haystack[at:], needle)
	if i < 0 {
		return -1
	}
	return at + i
}
