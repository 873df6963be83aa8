// Package simd provides byte-scanning primitives used by the literal
// prefilters: single-byte search, substring search and ASCII detection.
//
// Each primitive has a portable SWAR (SIMD Within A Register) implementation
// that processes eight bytes per step. On CPUs with wide vector units
// (AVX2 on amd64, ASIMD on arm64) single-byte search is routed to the Go
// runtime's vectorized IndexByte instead, selected once at package init via
// golang.org/x/sys/cpu.
package simd
