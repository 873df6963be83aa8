package simd_test

import (
	"fmt"

	"github.com/coregx/fuzzex/simd"
)

func ExampleMemmem() {
	haystack := []byte("Content-Type: text/plain\r\nContent-Length: 1234\r\n")
	fmt.Println(simd.Memmem(haystack, []byte("Content-Length:")))
	// Output: 26
}

func ExampleMemchr() {
	fmt.Println(simd.Memchr([]byte("key=value"), '='))
	// Output: 3
}
