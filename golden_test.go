package fuzzex

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestSubstituteGolden(t *testing.T) {
	cases := []struct {
		pattern string
		text    string
		repl    string
	}{
		{`\d+`, "There are 123 apples", "NUM"},
		{`x*`, "axc", "-"},
		{`(\w+)@(\w+)`, "a@b c@d", `\2 at \1`},
		{`(?P<user>\w+)@`, "bob@x", `<\g<user>>`},
		{`(rust){e<=2}`, "I like ruxy.", "Rust"},
		{`é`, "café é", "e"},
		{`(?:colou?r){s<=1}`, "colour, color, colar, cooler", "C"},
	}

	var buf bytes.Buffer
	for _, c := range cases {
		re, err := Compile(c.pattern)
		require.NoError(t, err)
		got, err := re.Substitute(c.text, c.repl)
		require.NoError(t, err)
		require.NoError(t, re.Close())
		fmt.Fprintf(&buf, "%s %q %q -> %q\n", c.pattern, c.text, c.repl, got)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "substitute", buf.Bytes())
}
