package prefilter

import "github.com/coregx/ahocorasick"

// ahoCorasickPrefilter scans for several literals at once.
type ahoCorasickPrefilter struct {
	auto  *ahocorasick.Automaton
	bytes int
}

// newAhoCorasick returns nil when the automaton cannot be built.
func newAhoCorasick(needles [][]byte) Prefilter {
	builder := ahocorasick.NewBuilder()
	size := 0
	for _, n := range needles {
		builder.AddPattern(n)
		size += len(n)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto, bytes: size}
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		start = 0
	}
	if start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// HeapBytes approximates the automaton size by the bytes of its patterns.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.bytes
}
