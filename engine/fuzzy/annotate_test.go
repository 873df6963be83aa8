package fuzzy

import (
	"strings"
	"testing"
)

func TestAnnotate(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
		cons    int
	}{
		{"abc", "abc", 0},
		{"x{2,3}", "x{2,3}", 0},
		{`\{e<=1}`, `\{e<=1}`, 0},
		{"(rust){e<=2}", "(?P<__fz0>(rust))", 1},
		{"a+{i}", "(?P<__fz0>a+)", 1},
		{"x{2}{e<=1}", "(?P<__fz0>x{2})", 1},
		{`\d{e<=1}x`, `(?P<__fz0>\d)x`, 1},
		{`\p{Greek}{e<=1}`, `(?P<__fz0>\p{Greek})`, 1},
		{"[a-c]{e<=1}", "(?P<__fz0>[a-c])", 1},
		{"[{]{e<=1}", "(?P<__fz0>[{])", 1},
		{"[]x]{s}", "(?P<__fz0>[]x])", 1},
		{"ab|é{d}", "ab|(?P<__fz0>é)", 1},
		{"a{e<=1}{s<=1}", "(?P<__fz1>(?P<__fz0>a))", 2},
		{"((ab){e<=1}c){e<=2}", "(?P<__fz1>((?P<__fz0>(ab))c))", 2},
		{"(?:foo){i<=1,s<=2}bar", "(?P<__fz0>(?:foo))bar", 1},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, cons, err := annotate(tt.pattern)
			if err != nil {
				t.Fatalf("annotate(%q): %v", tt.pattern, err)
			}
			if got != tt.want {
				t.Errorf("annotate(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
			if len(cons) != tt.cons {
				t.Errorf("annotate(%q) found %d constraints, want %d", tt.pattern, len(cons), tt.cons)
			}
		})
	}
}

func TestAnnotateErrors(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"{e<=1}", "nothing to apply to"},
		{"(a|{e})", "nothing to apply to"},
		{"a{e<<2}", "malformed term"},
		{"a{3<=e<=1}", "empty range"},
	}
	for _, tt := range tests {
		_, _, err := annotate(tt.pattern)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("annotate(%q) error = %v, want it to contain %q", tt.pattern, err, tt.want)
		}
	}
}
