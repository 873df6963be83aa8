package literal

import (
	"regexp/syntax"
	"unicode/utf8"
)

// Config bounds literal extraction.
type Config struct {
	// MaxLiterals caps the size of a Seq. A pattern that would need more
	// alternatives yields no literals at all. Default: 64.
	MaxLiterals int

	// MaxLiteralLen truncates long literals; the truncated bytes are still a
	// valid prefix of every match. Default: 64.
	MaxLiteralLen int

	// MaxClassSize is the largest character class that is expanded into one
	// literal per member. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor walks a parsed pattern and proves which literals every match
// must start with.
//
//	re, _ := syntax.Parse("(hello|world)", syntax.Perl)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(re)
//	// prefixes = ["hello", "world"]
type Extractor struct {
	config Config
}

// New creates an Extractor.
func New(config Config) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns a Seq such that every match of re begins with one
// of its literals, or an empty Seq when no such set can be proven.
//
//	"hello"        -> ["hello"]
//	"(foo|bar)"    -> ["foo", "bar"]
//	"hello.*world" -> ["hello"]
//	"\d+"          -> ["0", ..., "9"]
//	"foo|.*"       -> []
//	"(?i)foo"      -> []
func (e *Extractor) ExtractPrefixes(re *syntax.Regexp) *Seq {
	return e.prefixes(re, 0)
}

func (e *Extractor) prefixes(re *syntax.Regexp, depth int) *Seq {
	if depth > 100 {
		return NewSeq()
	}

	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 || len(re.Rune) == 0 {
			return NewSeq()
		}
		b := []byte(string(re.Rune))
		if len(b) > e.config.MaxLiteralLen {
			return NewSeq(NewLiteral(truncate(b, e.config.MaxLiteralLen), false))
		}
		return NewSeq(NewLiteral(b, true))

	case syntax.OpCharClass:
		return e.expandClass(re)

	case syntax.OpCapture:
		return e.prefixes(re.Sub[0], depth+1)

	case syntax.OpPlus:
		return e.prefixes(re.Sub[0], depth+1).incomplete()

	case syntax.OpRepeat:
		if re.Min < 1 {
			return NewSeq()
		}
		return e.prefixes(re.Sub[0], depth+1).incomplete()

	case syntax.OpConcat:
		i := 0
		for i < len(re.Sub) && zeroWidth(re.Sub[i].Op) {
			i++
		}
		if i == len(re.Sub) {
			return NewSeq()
		}
		first := e.prefixes(re.Sub[i], depth+1)
		if i+1 < len(re.Sub) {
			return first.incomplete()
		}
		return first

	case syntax.OpAlternate:
		var all []Literal
		for _, sub := range re.Sub {
			seq := e.prefixes(sub, depth+1)
			// One branch without a literal requirement voids the whole set.
			if seq.IsEmpty() {
				return NewSeq()
			}
			all = append(all, seq.literals...)
			if len(all) > e.config.MaxLiterals {
				return NewSeq()
			}
		}
		return NewSeq(all...)
	}
	return NewSeq()
}

// expandClass turns a small class into one literal per member.
func (e *Extractor) expandClass(re *syntax.Regexp) *Seq {
	count := 0
	for i := 0; i < len(re.Rune); i += 2 {
		count += int(re.Rune[i+1]-re.Rune[i]) + 1
		if count > e.config.MaxClassSize || count > e.config.MaxLiterals {
			return NewSeq()
		}
	}
	lits := make([]Literal, 0, count)
	for i := 0; i < len(re.Rune); i += 2 {
		for r := re.Rune[i]; r <= re.Rune[i+1]; r++ {
			lits = append(lits, NewLiteral(utf8.AppendRune(nil, r), true))
		}
	}
	return NewSeq(lits...)
}

func zeroWidth(op syntax.Op) bool {
	switch op {
	case syntax.OpBeginLine, syntax.OpBeginText, syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	}
	return false
}

// truncate cuts b to at most n bytes without splitting a UTF-8 sequence.
func truncate(b []byte, n int) []byte {
	for n > 0 && n < len(b) && !utf8.RuneStart(b[n]) {
		n--
	}
	return b[:n]
}
