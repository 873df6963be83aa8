// Package fuzzy is a backtracking regular-expression engine with
// error-tolerant (approximate) matching.
//
// Patterns use RE2/Perl syntax as accepted by regexp/syntax, plus fuzzy
// constraints written in braces after an item:
//
//	(rust){e<=2}         at most two errors of any kind
//	(?:foo){i<=1,s<=2}   one insertion, two substitutions, no deletions
//	(?:cat){1<=e<=3}     between one and three errors
//	(?:abc){2i+2d+1s<=4} weighted cost limit
//
// An insertion is an extra subject character, a deletion a pattern
// character missing from the subject, and a substitution one character
// standing in for another. Searches return the leftmost match; among
// matches at the same start the first found is reported, preferring exact
// characters over substitutions, insertions and deletions in that order.
//
// The engine registers itself as "fuzzy" with package engine.
package fuzzy

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/coregx/fuzzex/engine"
	"github.com/coregx/fuzzex/internal/conv"
	"github.com/coregx/fuzzex/literal"
)

// Name is the name the engine registers under.
const Name = "fuzzy"

// DefaultMaxBacktrack is the step budget per start position when
// engine.Options leaves MaxBacktrack at zero.
const DefaultMaxBacktrack = 1_000_000

func init() {
	engine.Register(Name, Open)
}

type options struct {
	maxBacktrack int
	prefilter    bool
	maxLiterals  int
}

// Context is the engine's execution context. It owns every program it
// compiles, the matcher scratch space and an index of the last subject
// searched. A Context is not safe for concurrent use.
type Context struct {
	opts  options
	live  map[*program]struct{}
	subj  *subject
	m     machine
	stats engine.Stats
}

// New creates a Context.
func New(opts engine.Options) *Context {
	o := options{
		maxBacktrack: opts.MaxBacktrack,
		prefilter:    opts.EnablePrefilter,
		maxLiterals:  opts.MaxLiterals,
	}
	if o.maxBacktrack <= 0 {
		o.maxBacktrack = DefaultMaxBacktrack
	}
	if o.maxLiterals <= 0 {
		o.maxLiterals = literal.DefaultConfig().MaxLiterals
	}
	return &Context{opts: o, live: make(map[*program]struct{})}
}

// Open is the engine.Factory for the fuzzy engine.
func Open(opts engine.Options) (engine.Engine, error) {
	return New(opts), nil
}

func (c *Context) Name() string {
	return Name
}

func (c *Context) Compile(pattern string) (engine.Program, error) {
	p, err := compile(pattern, c.opts)
	if err != nil {
		return nil, err
	}
	p.ctx = c
	c.live[p] = struct{}{}
	c.stats.Compiled++
	return p, nil
}

func (c *Context) Release(prog engine.Program) error {
	p, ok := prog.(*program)
	if !ok || p.ctx != c {
		return errors.New("fuzzy: program does not belong to this context")
	}
	if p.released {
		return engine.ErrReleased
	}
	p.released = true
	delete(c.live, p)
	c.stats.Released++
	return nil
}

func (c *Context) Stats() engine.Stats {
	s := c.stats
	s.Live = len(c.live)
	return s
}

// subject caches per-string data shared by consecutive searches of the
// same text, as in a find-all loop.
type subject struct {
	text string
	buf  []byte
	idx  *conv.Index
}

func (c *Context) subject(text string) *subject {
	if c.subj == nil || c.subj.text != text {
		c.subj = &subject{text: text}
	}
	return c.subj
}

func (s *subject) bytes() []byte {
	if s.buf == nil {
		s.buf = []byte(s.text)
	}
	return s.buf
}

func (s *subject) index() *conv.Index {
	if s.idx == nil {
		s.idx = conv.NewIndex(s.text)
	}
	return s.idx
}

func (p *program) NumGroups() int {
	return p.numGroups
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
	c := p.ctx
	c.stats.Searches++
	s := c.subject(text)
	idx := s.index()
	if pos > idx.Len() {
		return nil, nil
	}
	ok, err := c.m.run(p, s, idx.ByteOffset(pos), c.opts.maxBacktrack)
	if err != nil || !ok {
		return nil, err
	}
	return &match{subj: s, caps: append([]int(nil), c.m.best...), found: c.m.found}, nil
}

func (p *program) Substitute(text, tmpl string) (string, error) {
	if p.released {
		return "", engine.ErrReleased
	}
	t, err := p.parseTemplate(tmpl)
	if err != nil {
		return "", fmt.Errorf("fuzzy: %w", err)
	}
	c := p.ctx
	s := c.subject(text)

	var b strings.Builder
	last, pos := 0, 0
	for pos <= len(text) {
		c.stats.Searches++
		ok, err := c.m.run(p, s, pos, c.opts.maxBacktrack)
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		start, end := c.m.best[0], c.m.best[1]
		b.WriteString(text[last:start])
		t.expand(&b, text, c.m.best)
		last = end
		if end > start {
			pos = end
			continue
		}
		if end == len(text) {
			break
		}
		_, w := utf8.DecodeRuneInString(text[end:])
		pos = end + w
	}
	b.WriteString(text[last:])
	return b.String(), nil
}
