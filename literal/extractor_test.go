package literal

import (
	"regexp/syntax"
	"slices"
	"testing"
)

func extract(t *testing.T, pattern string, config Config) []string {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	seq := New(config).ExtractPrefixes(re)
	out := make([]string, seq.Len())
	for i := range out {
		out[i] = string(seq.Get(i).Bytes)
	}
	return out
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"hello", []string{"hello"}},
		{"hello.*world", []string{"hello"}},
		{"(hello|world)", []string{"hello", "world"}},
		{"^foo", []string{"foo"}},
		{`\bfoo`, []string{"foo"}},
		{"[abc]", []string{"a", "b", "c"}},
		{`\d+`, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		{"(?:ab){2,}", []string{"ab"}},
		{"café", []string{"café"}},

		// No provable requirement.
		{".*foo", nil},
		{"a*b", nil},
		{"a?b", nil},
		{"(?:ab){0,3}", nil},
		{"[a-z]", nil},
		{"(?i)foo", nil},
		{"foo|.", nil},
		{"foo|", nil},
		{"", nil},
		{"^$", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := extract(t, tt.pattern, DefaultConfig())
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExtractPrefixes(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestExtractPrefixesLimits(t *testing.T) {
	config := DefaultConfig()
	config.MaxLiterals = 2
	if got := extract(t, "foo|bar|qux", config); len(got) != 0 {
		t.Errorf("over MaxLiterals: got %q, want none", got)
	}

	config = DefaultConfig()
	config.MaxLiteralLen = 3
	if got := extract(t, "abcdef", config); !slices.Equal(got, []string{"abc"}) {
		t.Errorf("truncated: got %q, want [abc]", got)
	}

	config = DefaultConfig()
	config.MaxLiteralLen = 2
	// é is two bytes and must not be split.
	if got := extract(t, "aé", config); !slices.Equal(got, []string{"a"}) {
		t.Errorf("utf8 truncation: got %q, want [a]", got)
	}
}

func TestExtractPrefixesCompleteness(t *testing.T) {
	re, _ := syntax.Parse("foo", syntax.Perl)
	seq := New(DefaultConfig()).ExtractPrefixes(re)
	if seq.Len() != 1 || !seq.Get(0).Complete {
		t.Fatalf("foo: want one complete literal, got %v", seq.literals)
	}

	re, _ = syntax.Parse("foo[0-9]", syntax.Perl)
	seq = New(DefaultConfig()).ExtractPrefixes(re)
	if seq.Len() != 1 || seq.Get(0).Complete {
		t.Fatalf("foo[0-9]: want one prefix literal, got %v", seq.literals)
	}
}
