package fuzzy

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/coregx/fuzzex/engine"
)

func mustCompile(t *testing.T, c *Context, pattern string) engine.Program {
	t.Helper()
	p, err := c.Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return p
}

// findAll collects group-0 spans the way the binding iterates.
func findAll(t *testing.T, p engine.Program, text string) [][2]int {
	t.Helper()
	var spans [][2]int
	n := len([]rune(text))
	for pos := 0; pos <= n; {
		m, err := p.Search(text, pos)
		if err != nil {
			t.Fatalf("Search(%q, %d): %v", text, pos, err)
		}
		if m == nil {
			break
		}
		s, e, _ := m.Span(0)
		spans = append(spans, [2]int{s, e})
		if e > s {
			pos = e
		} else {
			pos = e + 1
		}
	}
	return spans
}

func TestSearch(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    [][2]int
	}{
		{`\d+`, "123 abc 456", [][2]int{{0, 3}, {8, 11}}},
		{"a.c", "abc aXc", [][2]int{{0, 3}, {4, 7}}},
		{"", "ab", [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{"x*", "axc", [][2]int{{0, 0}, {1, 2}, {2, 2}, {3, 3}}},
		{"a+?", "aaa", [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{`w\pL+`, "héllo wörld", [][2]int{{6, 11}}},
		{"(?i)hello", "say HeLLo", [][2]int{{4, 9}}},
		{"^abc", "xabc", nil},
		{"^abc", "abcabc", [][2]int{{0, 3}}},
		{`\bcat\b`, "concat cat", [][2]int{{7, 10}}},
		{"(?m)^b", "a\nb", [][2]int{{2, 3}}},
		{"a$", "aa", [][2]int{{1, 2}}},
		{"hello|world", "world, hello", [][2]int{{0, 5}, {7, 12}}},
		{"[^a]", "aé", [][2]int{{1, 2}}},

		// Fuzzy.
		{"(rust){e<=2}", "ruxy", [][2]int{{0, 4}}},
		{"(?:cats){e<=1}", "cat", [][2]int{{0, 3}}},
		{"(?:cat){e<=1}", "xcat", [][2]int{{1, 4}}},
		{"(?:abc){i<=1}", "xabxc", [][2]int{{1, 5}}},
		{"(?:hello){s<=1}", "hallo world", [][2]int{{0, 5}}},
		{"(?:hello){d<=1}", "hllo", [][2]int{{0, 4}}},
		{"(?:café){e<=1}", "le cafe", [][2]int{{3, 7}}},
		{"(?:abc){1<=e<=1}", "abc", [][2]int{{0, 2}}},
		{"(?:ab){e<=1}", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			c := New(engine.Options{EnablePrefilter: true})
			p := mustCompile(t, c, tt.pattern)
			got := findAll(t, p, tt.text)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("spans = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuzzyCounts(t *testing.T) {
	tests := []struct {
		pattern       string
		text          string
		sub, ins, del int
	}{
		{"(rust){e<=2}", "ruxy", 2, 0, 0},
		{"(?:cats){e<=1}", "cat", 0, 0, 1},
		{"(?:abc){i<=1}", "xabxc", 0, 1, 0},
		{"(?:a(?:bc){s<=1}d){e<=1}", "abxd", 1, 0, 0},
		{"(?:hello){e<=1}", "hello", 0, 0, 0},
	}

	for _, tt := range tests {
		c := New(engine.Options{})
		m, err := mustCompile(t, c, tt.pattern).Search(tt.text, 0)
		if err != nil || m == nil {
			t.Fatalf("%q on %q: match=%v err=%v", tt.pattern, tt.text, m, err)
		}
		sub, ins, del := m.(engine.FuzzyMatch).FuzzyCounts()
		if sub != tt.sub || ins != tt.ins || del != tt.del {
			t.Errorf("%q on %q: counts = (%d, %d, %d), want (%d, %d, %d)",
				tt.pattern, tt.text, sub, ins, del, tt.sub, tt.ins, tt.del)
		}
	}
}

func TestGroups(t *testing.T) {
	c := New(engine.Options{})
	p := mustCompile(t, c, `(\w+)@(?P<domain>\w+)\.com`)
	if p.NumGroups() != 2 {
		t.Fatalf("NumGroups = %d, want 2", p.NumGroups())
	}
	if got := fmt.Sprint(p.GroupNames()); got != "[  domain]" {
		t.Errorf("GroupNames = %q", got)
	}

	m, err := p.Search("mail bob@example.com now", 0)
	if err != nil || m == nil {
		t.Fatalf("Search: %v %v", m, err)
	}
	if m.NumGroups() != 3 {
		t.Fatalf("match NumGroups = %d, want 3", m.NumGroups())
	}
	want := []struct {
		text       string
		start, end int
	}{
		{"bob@example.com", 5, 20},
		{"bob", 5, 8},
		{"example", 9, 16},
	}
	for i, w := range want {
		text, ok, err := m.Group(i)
		if err != nil || !ok || text != w.text {
			t.Errorf("Group(%d) = %q, %v, %v; want %q", i, text, ok, err, w.text)
		}
		s, e, _ := m.Span(i)
		if s != w.start || e != w.end {
			t.Errorf("Span(%d) = (%d, %d), want (%d, %d)", i, s, e, w.start, w.end)
		}
	}

	if _, _, err := m.Group(3); !errors.Is(err, engine.ErrNoGroup) {
		t.Errorf("Group(3) error = %v, want ErrNoGroup", err)
	}
	if _, _, err := m.Span(-1); !errors.Is(err, engine.ErrNoGroup) {
		t.Errorf("Span(-1) error = %v, want ErrNoGroup", err)
	}
}

func TestGroupsInsideFuzzyRegion(t *testing.T) {
	c := New(engine.Options{})
	p := mustCompile(t, c, "(a)(rust){e<=2}(b)")
	if p.NumGroups() != 3 {
		t.Fatalf("NumGroups = %d, want 3", p.NumGroups())
	}
	m, err := p.Search("aruxyb", 0)
	if err != nil || m == nil {
		t.Fatalf("Search: %v %v", m, err)
	}
	for i, want := range []string{"aruxyb", "a", "ruxy", "b"} {
		if got, _, _ := m.Group(i); got != want {
			t.Errorf("Group(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestNonParticipatingGroup(t *testing.T) {
	c := New(engine.Options{})
	m, err := mustCompile(t, c, "(a)|(b)").Search("b", 0)
	if err != nil || m == nil {
		t.Fatalf("Search: %v %v", m, err)
	}
	if _, ok, _ := m.Group(1); ok {
		t.Error("group 1 should not participate")
	}
	if s, e, _ := m.Span(1); s != -1 || e != -1 {
		t.Errorf("Span(1) = (%d, %d), want (-1, -1)", s, e)
	}
	if s, e, _ := m.Span(2); s != 0 || e != 1 {
		t.Errorf("Span(2) = (%d, %d), want (0, 1)", s, e)
	}
}

func TestSearchPastEnd(t *testing.T) {
	c := New(engine.Options{})
	m, err := mustCompile(t, c, "").Search("ab", 3)
	if err != nil || m != nil {
		t.Errorf("Search past end = %v, %v; want nil, nil", m, err)
	}
}

func TestBacktrackLimit(t *testing.T) {
	c := New(engine.Options{MaxBacktrack: 10_000})
	p := mustCompile(t, c, "(a*)*b")
	_, err := p.Search(strings.Repeat("a", 30), 0)
	if !errors.Is(err, ErrBacktrackLimit) {
		t.Fatalf("Search error = %v, want ErrBacktrackLimit", err)
	}

	// The machine recovers for the next search.
	m, err := p.Search("aab", 0)
	if err != nil || m == nil {
		t.Fatalf("Search after limit: %v %v", m, err)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"(", "missing closing )"},
		{"a{e<<2}", "invalid fuzzy constraint"},
		{"{e<=1}", "nothing to apply to"},
		{"(?P<__fz0>x)", "invalid named capture"},
		{"(a{e<=1}", "missing closing )"},
	}
	for _, tt := range tests {
		c := New(engine.Options{})
		_, err := c.Compile(tt.pattern)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Compile(%q) error = %v, want it to contain %q", tt.pattern, err, tt.want)
		}
	}
}

func TestPrefilterOnlyForExactPatterns(t *testing.T) {
	c := New(engine.Options{EnablePrefilter: true})
	if p := mustCompile(t, c, "hello").(*program); p.pf == nil {
		t.Error("literal pattern has no prefilter")
	}
	if p := mustCompile(t, c, "(?:hello){e<=1}").(*program); p.pf != nil {
		t.Error("fuzzy pattern must not use a prefilter")
	}

	c = New(engine.Options{EnablePrefilter: false})
	if p := mustCompile(t, c, "hello").(*program); p.pf != nil {
		t.Error("prefilter built though disabled")
	}
}

func TestReleaseAndStats(t *testing.T) {
	c := New(engine.Options{})
	p1 := mustCompile(t, c, "a")
	p2 := mustCompile(t, c, "b")
	if s := c.Stats(); s.Compiled != 2 || s.Live != 2 {
		t.Fatalf("Stats = %+v", s)
	}

	if err := c.Release(p1); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := c.Release(p1); !errors.Is(err, engine.ErrReleased) {
		t.Errorf("second Release = %v, want ErrReleased", err)
	}
	if _, err := p1.Search("a", 0); !errors.Is(err, engine.ErrReleased) {
		t.Errorf("Search after Release = %v, want ErrReleased", err)
	}
	if _, err := p1.Substitute("a", "b"); !errors.Is(err, engine.ErrReleased) {
		t.Errorf("Substitute after Release = %v, want ErrReleased", err)
	}

	other := New(engine.Options{})
	if err := other.Release(p2); err == nil {
		t.Error("Release of a foreign program succeeded")
	}

	s := c.Stats()
	if s.Released != 1 || s.Live != 1 {
		t.Errorf("Stats = %+v, want Released 1, Live 1", s)
	}
}

func TestOpenRegistered(t *testing.T) {
	e, err := engine.Open(Name, engine.Options{})
	if err != nil {
		t.Fatalf("Open(%q): %v", Name, err)
	}
	if e.Name() != Name {
		t.Errorf("Name() = %q", e.Name())
	}
}
