// Package dotnet adapts github.com/dlclark/regexp2 to the engine boundary.
//
// regexp2 implements the .NET regular-expression dialect with a
// backtracking matcher: lookaround, backreferences, balancing groups and
// per-search timeouts, but no fuzzy constraints. Substitution templates use
// the .NET syntax ($1, ${name}, $$, $0).
//
// The engine registers itself as "regexp2" with package engine.
package dotnet

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dlclark/regexp2"

	"github.com/coregx/fuzzex/engine"
)

// Name is the name the engine registers under.
const Name = "regexp2"

func init() {
	engine.Register(Name, Open)
}

// Context owns the programs compiled through it and the rune form of the
// last subject searched. A Context is not safe for concurrent use.
type Context struct {
	opts  engine.Options
	live  map[*program]struct{}
	subj  *subject
	stats engine.Stats
}

// New creates a Context.
func New(opts engine.Options) *Context {
	return &Context{opts: opts, live: make(map[*program]struct{})}
}

// Open is the engine.Factory for the regexp2 engine.
func Open(opts engine.Options) (engine.Engine, error) {
	if opts.MatchTimeout < 0 {
		return nil, fmt.Errorf("regexp2: negative match timeout %v", opts.MatchTimeout)
	}
	return New(opts), nil
}

func (c *Context) Name() string {
	return Name
}

func (c *Context) Compile(pattern string) (engine.Program, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	if c.opts.MatchTimeout > 0 {
		re.MatchTimeout = c.opts.MatchTimeout
	}
	nums := re.GetGroupNumbers()
	names := make([]string, len(nums))
	for i, n := range nums {
		if name := re.GroupNameFromNumber(n); name != strconv.Itoa(n) {
			names[i] = name
		}
	}
	p := &program{ctx: c, re: re, pattern: pattern, nums: nums, names: names}
	c.live[p] = struct{}{}
	c.stats.Compiled++
	return p, nil
}

func (c *Context) Release(prog engine.Program) error {
	p, ok := prog.(*program)
	if !ok || p.ctx != c {
		return errors.New("regexp2: program does not belong to this context")
	}
	if p.released {
		return engine.ErrReleased
	}
	p.released = true
	p.re = nil
	delete(c.live, p)
	c.stats.Released++
	return nil
}

func (c *Context) Stats() engine.Stats {
	s := c.stats
	s.Live = len(c.live)
	return s
}

type subject struct {
	text  string
	runes []rune
}

func (c *Context) runes(text string) []rune {
	if c.subj == nil || c.subj.text != text {
		c.subj = &subject{text: text, runes: []rune(text)}
	}
	return c.subj.runes
}

type program struct {
	ctx      *Context
	re       *regexp2.Regexp
	pattern  string
	nums     []int // group index -> regexp2 group number
	names    []string
	released bool
}

func (p *program) NumGroups() int {
	return len(p.nums) - 1
}

func (p *program) GroupNames() []string {
	return append([]string(nil), p.names...)
}

func (p *program) String() string {
	return p.pattern
}

func (p *program) Search(text string, pos int) (engine.Match, error) {
	if p.released {
		return nil, engine.ErrReleased
	}
	p.ctx.stats.Searches++
	r := p.ctx.runes(text)
	if pos < 0 {
		pos = 0
	}
	if pos > len(r) {
		return nil, nil
	}
	m, err := p.re.FindRunesMatchStartingAt(r, pos)
	if err != nil || m == nil {
		return nil, err
	}
	return &match{m: m, nums: p.nums}, nil
}

func (p *program) Substitute(text, tmpl string) (string, error) {
	if p.released {
		return "", engine.ErrReleased
	}
	p.ctx.stats.Searches++
	return p.re.Replace(text, tmpl, -1, -1)
}

type match struct {
	m    *regexp2.Match
	nums []int
}

func (m *match) NumGroups() int {
	return len(m.nums)
}

func (m *match) group(i int) (*regexp2.Group, error) {
	if i < 0 || i >= len(m.nums) {
		return nil, fmt.Errorf("%w: %d (match has %d groups)", engine.ErrNoGroup, i, len(m.nums))
	}
	g := m.m.GroupByNumber(m.nums[i])
	if g == nil {
		return nil, fmt.Errorf("regexp2: group number %d missing from match", m.nums[i])
	}
	return g, nil
}

func (m *match) Group(i int) (string, bool, error) {
	g, err := m.group(i)
	if err != nil {
		return "", false, err
	}
	if len(g.Captures) == 0 {
		return "", false, nil
	}
	return g.String(), true, nil
}

func (m *match) Span(i int) (int, int, error) {
	g, err := m.group(i)
	if err != nil {
		return -1, -1, err
	}
	if len(g.Captures) == 0 {
		return -1, -1, nil
	}
	return g.Index, g.Index + g.Length, nil
}
