package fuzzy

import (
	"fmt"
	"regexp/syntax"
	"strconv"
	"strings"
	"unicode"

	"github.com/coregx/fuzzex/literal"
	"github.com/coregx/fuzzex/prefilter"
)

type opcode uint8

const (
	opChar opcode = iota
	opClass
	opAnyNotNL
	opAny
	opString
	opEmpty
	opFail
	opConcat
	opAlt
	opRepeat
	opCapture
	opRegion
	opBeginLine
	opEndLine
	opBeginText
	opEndText
	opWordBoundary
	opNoWordBoundary
)

// node is one element of the matcher's tree.
type node struct {
	op opcode

	r      rune   // opChar
	fold   bool   // opChar
	ranges []rune // opClass: sorted lo, hi pairs
	str    string // opString

	min, max int // opRepeat; max < 0 is unbounded
	greedy   bool

	idx int // opCapture: group index; opRegion: constraint index

	subs []*node

	// regions lists the fuzzy regions enclosing an atom, outermost first.
	regions []int
}

// accepts reports whether the atom n matches r exactly.
func (n *node) accepts(r rune) bool {
	switch n.op {
	case opChar:
		return r == n.r || (n.fold && foldEqual(r, n.r))
	case opClass:
		for i := 0; i < len(n.ranges); i += 2 {
			if r < n.ranges[i] {
				return false
			}
			if r <= n.ranges[i+1] {
				return true
			}
		}
		return false
	case opAnyNotNL:
		return r != '\n'
	case opAny:
		return true
	}
	return false
}

func foldEqual(a, b rune) bool {
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

// program is a compiled pattern.
type program struct {
	ctx     *Context
	pattern string
	root    *node

	numGroups   int
	names       []string
	constraints []*constraint

	// anchored is set when every match must start at offset 0.
	anchored bool

	pf       prefilter.Prefilter
	tracker  *prefilter.Tracker
	released bool
}

// compile parses pattern and builds its program.
func compile(pattern string, opts options) (*program, error) {
	rewritten, cons, err := annotate(pattern)
	if err != nil {
		return nil, &syntax.Error{Code: errInvalidConstraint, Expr: err.Error()}
	}
	re, err := syntax.Parse(rewritten, syntax.Perl)
	if err != nil {
		if rewritten != pattern {
			// Report the error against the text the caller wrote.
			if _, origErr := syntax.Parse(pattern, syntax.Perl); origErr != nil {
				return nil, origErr
			}
		}
		return nil, err
	}

	b := &builder{cons: cons, groups: map[int]int{}, names: []string{""}}
	if err := b.number(re); err != nil {
		return nil, err
	}
	tree := b.build(re, nil)

	p := &program{
		pattern:     pattern,
		root:        &node{op: opCapture, idx: 0, subs: []*node{tree}},
		numGroups:   len(b.names) - 1,
		names:       b.names,
		constraints: cons,
		anchored:    anchoredStart(re),
	}
	if len(cons) == 0 && opts.prefilter {
		config := literal.DefaultConfig()
		config.MaxLiterals = opts.maxLiterals
		p.pf = prefilter.New(literal.New(config).ExtractPrefixes(re))
		p.tracker = prefilter.NewTracker(p.pf, prefilter.DefaultTrackerConfig())
	}
	return p, nil
}

// errInvalidConstraint is the syntax.ErrorCode reported for a malformed
// fuzzy constraint.
const errInvalidConstraint syntax.ErrorCode = "invalid fuzzy constraint"

// builder turns a syntax tree into matcher nodes.
type builder struct {
	cons   []*constraint
	groups map[int]int // syntax capture index -> user group index
	names  []string
}

// number assigns user group indexes in pattern order, skipping region
// groups.
func (b *builder) number(re *syntax.Regexp) error {
	if re.Op == syntax.OpCapture {
		if strings.HasPrefix(re.Name, regionPrefix) {
			id, err := strconv.Atoi(strings.TrimPrefix(re.Name, regionPrefix))
			if err != nil || id < 0 || id >= len(b.cons) {
				return &syntax.Error{Code: syntax.ErrInvalidNamedCapture, Expr: re.Name}
			}
		} else {
			b.groups[re.Cap] = len(b.names)
			b.names = append(b.names, re.Name)
		}
	}
	for _, sub := range re.Sub {
		if err := b.number(sub); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) build(re *syntax.Regexp, regions []int) *node {
	switch re.Op {
	case syntax.OpNoMatch:
		return &node{op: opFail}
	case syntax.OpEmptyMatch:
		return &node{op: opEmpty}
	case syntax.OpLiteral:
		fold := re.Flags&syntax.FoldCase != 0
		if !fold && len(regions) == 0 {
			return &node{op: opString, str: string(re.Rune)}
		}
		if len(re.Rune) == 1 {
			return &node{op: opChar, r: re.Rune[0], fold: fold, regions: regions}
		}
		subs := make([]*node, len(re.Rune))
		for i, r := range re.Rune {
			subs[i] = &node{op: opChar, r: r, fold: fold, regions: regions}
		}
		return &node{op: opConcat, subs: subs}
	case syntax.OpCharClass:
		return &node{op: opClass, ranges: re.Rune, regions: regions}
	case syntax.OpAnyCharNotNL:
		return &node{op: opAnyNotNL, regions: regions}
	case syntax.OpAnyChar:
		return &node{op: opAny, regions: regions}
	case syntax.OpBeginLine:
		return &node{op: opBeginLine}
	case syntax.OpEndLine:
		return &node{op: opEndLine}
	case syntax.OpBeginText:
		return &node{op: opBeginText}
	case syntax.OpEndText:
		return &node{op: opEndText}
	case syntax.OpWordBoundary:
		return &node{op: opWordBoundary}
	case syntax.OpNoWordBoundary:
		return &node{op: opNoWordBoundary}
	case syntax.OpCapture:
		if strings.HasPrefix(re.Name, regionPrefix) {
			id, _ := strconv.Atoi(strings.TrimPrefix(re.Name, regionPrefix))
			inner := append(regions[:len(regions):len(regions)], id)
			return &node{op: opRegion, idx: id, subs: []*node{b.build(re.Sub[0], inner)}}
		}
		return &node{op: opCapture, idx: b.groups[re.Cap], subs: []*node{b.build(re.Sub[0], regions)}}
	case syntax.OpStar:
		return b.repeat(re, 0, -1, regions)
	case syntax.OpPlus:
		return b.repeat(re, 1, -1, regions)
	case syntax.OpQuest:
		return b.repeat(re, 0, 1, regions)
	case syntax.OpRepeat:
		return b.repeat(re, re.Min, re.Max, regions)
	case syntax.OpConcat, syntax.OpAlternate:
		op := opConcat
		if re.Op == syntax.OpAlternate {
			op = opAlt
		}
		subs := make([]*node, len(re.Sub))
		for i, sub := range re.Sub {
			subs[i] = b.build(sub, regions)
		}
		return &node{op: op, subs: subs}
	}
	panic(fmt.Sprintf("fuzzy: unexpected syntax op %v", re.Op))
}

func (b *builder) repeat(re *syntax.Regexp, lo, hi int, regions []int) *node {
	return &node{
		op:     opRepeat,
		min:    lo,
		max:    hi,
		greedy: re.Flags&syntax.NonGreedy == 0,
		subs:   []*node{b.build(re.Sub[0], regions)},
	}
}

func anchoredStart(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText:
		return true
	case syntax.OpConcat:
		return len(re.Sub) > 0 && anchoredStart(re.Sub[0])
	case syntax.OpCapture:
		return anchoredStart(re.Sub[0])
	}
	return false
}
