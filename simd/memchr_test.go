package simd

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		name     string
		haystack []byte
		needle   byte
		want     int
	}{
		{"empty_haystack", []byte{}, 'a', -1},
		{"single_match", []byte{'a'}, 'a', 0},
		{"single_no_match", []byte{'a'}, 'b', -1},
		{"first_position", []byte("hello"), 'h', 0},
		{"last_position", []byte("hello"), 'o', 4},
		{"returns_first", []byte("hello world"), 'o', 4},
		{"null_byte", []byte{1, 2, 0, 3}, 0, 2},
		{"high_byte", []byte{1, 2, 255, 4}, 255, 2},
		{"past_first_word", []byte("the quick brown fox jumps over the lazy dog"), 'z', 37},
		{"last_char_long", []byte("the quick brown fox jumps over the lazy dog"), 'g', 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memchr(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
			if got := memchrSWAR(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("memchrSWAR(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

// TestMemchrSWARAgainstStdlib checks every needle position across the
// 8-byte chunk boundary.
func TestMemchrSWARAgainstStdlib(t *testing.T) {
	for size := 0; size < 40; size++ {
		for pos := 0; pos < size; pos++ {
			h := bytes.Repeat([]byte{'.'}, size)
			h[pos] = 'x'
			if got, want := memchrSWAR(h, 'x'), bytes.IndexByte(h, 'x'); got != want {
				t.Fatalf("size=%d pos=%d: got %d, want %d", size, pos, got, want)
			}
		}
	}
}

func TestMemchrAt(t *testing.T) {
	h := []byte("a,b,c")
	tests := []struct {
		at, want int
	}{
		{0, 1}, {1, 1}, {2, 3}, {4, -1}, {5, -1}, {-3, 1},
	}
	for _, tt := range tests {
		if got := MemchrAt(h, ',', tt.at); got != tt.want {
			t.Errorf("MemchrAt(%q, ',', %d) = %d, want %d", h, tt.at, got, tt.want)
		}
	}
}

func TestIsASCII(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"hello", true},
		{"hello world, plain text", true},
		{"héllo", false},
		{strings.Repeat("a", 17) + "é", false},
		{strings.Repeat("z", 64), true},
	}
	for _, tt := range tests {
		if got := IsASCII([]byte(tt.in)); got != tt.want {
			t.Errorf("IsASCII(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got := IsASCIIString(tt.in); got != tt.want {
			t.Errorf("IsASCIIString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
