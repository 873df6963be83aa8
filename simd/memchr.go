package simd

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

const (
	lo8 = uint64(0x0101010101010101)
	hi8 = uint64(0x8080808080808080)
)

// vectorized reports whether the runtime's IndexByte runs on wide vector
// registers on this CPU.
var vectorized = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present.
func Memchr(haystack []byte, needle byte) int {
	if vectorized {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrSWAR(haystack, needle)
}

// MemchrAt is like Memchr but starts the scan at offset at and returns an
// absolute index.
func MemchrAt(haystack []byte, needle byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	if at < 0 {
		at = 0
	}
	i := Memchr(haystack[at:], needle)
	if i < 0 {
		return -1
	}
	return at + i
}

// memchrSWAR compares eight bytes at a time: after XOR with the broadcast
// needle a matching byte becomes zero, and the classic zero-byte test
// (v - 0x01..) & ^v & 0x80.. flags it.
func memchrSWAR(haystack []byte, needle byte) int {
	n := len(haystack)
	mask := uint64(needle) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		v := binary.LittleEndian.Uint64(haystack[i:]) ^ mask
		if z := (v - lo8) & ^v & hi8; z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}
