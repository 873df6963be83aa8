// Package fuzzex provides fuzzy (approximate) regular-expression matching.
//
// Patterns are compiled and executed by an engine behind package engine.
// The default engine, "fuzzy", accepts Perl/RE2 syntax plus error
// tolerance written in braces after an item:
//
//	re := fuzzex.MustCompile(`(rust){e<=2}`)
//	ok, _ := re.IsMatch("ruxy") // true: two substitutions
//
// The "regexp2" engine runs the .NET dialect instead. The engine is chosen
// once per process by Init or the FUZZEX_ENGINE environment variable.
//
// All calls into the engine are serialized by one process-wide mutex, so a
// Regex may be used from any number of goroutines. Results are plain Go
// values copied out of the engine before the mutex is released.
//
// Offsets are character (Unicode code point) offsets, not byte offsets:
//
//	re := fuzzex.MustCompile(`w\pL+`)
//	m, _ := re.Search("héllo wörld")
//	m.Span(0) // 6, 11
//
// Every error returned by this package is an *Error whose Kind tells the
// failure apart; see the Err* sentinels for use with errors.Is.
package fuzzex

import (
	"fmt"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/coregx/fuzzex/engine"
	"github.com/coregx/fuzzex/internal/conv"
)

// Regex is a compiled pattern. It is safe for concurrent use.
//
// The engine object behind a Regex is released by Close, or by the garbage
// collector once the Regex is unreachable.
type Regex struct {
	rt        *runtimeContext
	h         *handle
	pattern   string
	numSubexp int
	names     []string // one per group, group 0 included
	cleanup   runtime.Cleanup
}

// Compile compiles pattern with the runtime's engine. The engine is the
// only judge of the syntax; a rejected pattern yields an error of kind
// KindCompile carrying the engine's diagnostic.
//
// Example:
//
//	re, err := fuzzex.Compile(`(?:color){s<=1}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return defaultRuntime.compileRegex(pattern)
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regexp: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

func (rt *runtimeContext) compileRegex(pattern string) (*Regex, error) {
	if err := rt.ensure(); err != nil {
		return nil, err
	}
	h, err := rt.compile(pattern)
	if err != nil {
		return nil, err
	}
	// Group metadata is read once; programs never change after compile.
	names, err := call(rt, func(engine.Engine) ([]string, error) {
		return h.prog.GroupNames(), nil
	})
	if err != nil {
		if _, rerr := rt.release(h); rerr != nil {
			err = fmt.Errorf("%w (release: %v)", err, rerr)
		}
		return nil, newError(KindExtraction, "compile", pattern, err)
	}
	r := &Regex{
		rt:        rt,
		h:         h,
		pattern:   pattern,
		numSubexp: len(names) - 1,
		names:     names,
	}
	r.cleanup = runtime.AddCleanup(r, rt.collect, h)
	return r, nil
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of capturing groups in the pattern.
func (r *Regex) NumSubexp() int {
	return r.numSubexp
}

// SubexpNames returns the names of the groups, index 0 for the whole
// match. Unnamed groups have an empty name.
func (r *Regex) SubexpNames() []string {
	return append([]string(nil), r.names...)
}

// Close releases the engine object. Later operations on r fail with an
// error of kind KindExec. Close is idempotent.
func (r *Regex) Close() error {
	r.cleanup.Stop()
	_, err := r.rt.release(r.h)
	runtime.KeepAlive(r)
	if err != nil {
		return newError(KindExec, "close", r.pattern, err)
	}
	return nil
}

// IsMatch reports whether text contains a match anywhere.
func (r *Regex) IsMatch(text string) (bool, error) {
	m, err := r.rt.search(r.h, "is_match", r.pattern, text, 0, r.names)
	runtime.KeepAlive(r)
	return m != nil, err
}

// Search returns the leftmost match in text, or nil if there is none.
func (r *Regex) Search(text string) (*Match, error) {
	m, err := r.rt.search(r.h, "search", r.pattern, text, 0, r.names)
	runtime.KeepAlive(r)
	return m, err
}

// FindAll returns all non-overlapping matches in text, left to right. Each
// search resumes where the previous match ended, or one character later
// if that match was empty.
//
// Example:
//
//	re := fuzzex.MustCompile(`\d+`)
//	ms, _ := re.FindAll("123 abc 456")
//	// ms[0].Span(0) == 0, 3
//	// ms[1].Span(0) == 8, 11
func (r *Regex) FindAll(text string) ([]Match, error) {
	return r.findAll("find_all", text)
}

// FindAllString returns one string per match FindAll would return. For a
// pattern with exactly one capturing group it is the text of that group
// (empty if the group did not take part); otherwise it is the text of the
// whole match.
func (r *Regex) FindAllString(text string) ([]string, error) {
	ms, err := r.findAll("find_all", text)
	if err != nil {
		return nil, err
	}
	g := 0
	if r.numSubexp == 1 {
		g = 1
	}
	out := make([]string, len(ms))
	for i := range ms {
		out[i] = ms[i].groups[g].Text
	}
	return out, nil
}

func (r *Regex) findAll(op, text string) ([]Match, error) {
	defer runtime.KeepAlive(r)
	chars := utf8.RuneCountInString(text)
	var out []Match
	for pos := 0; pos <= chars; {
		m, err := r.rt.search(r.h, op, r.pattern, text, pos, r.names)
		if err != nil {
			return nil, err
		}
		if m == nil {
			break
		}
		out = append(out, *m)
		start, end := m.groups[0].Start, m.groups[0].End
		if end > start {
			pos = end
		} else {
			pos = end + 1
		}
	}
	return out, nil
}

// Substitute replaces every match in text with the expansion of repl. The
// template syntax is the engine's: the fuzzy engine takes \1, \g<1> and
// \g<name> group references, regexp2 takes $1 and ${name}. Matches are
// found as by FindAll.
//
// Example:
//
//	re := fuzzex.MustCompile(`\d+`)
//	s, _ := re.Substitute("There are 123 apples", "NUM")
//	// s == "There are NUM apples"
func (r *Regex) Substitute(text, repl string) (string, error) {
	s, err := r.rt.substitute(r.h, r.pattern, text, repl)
	runtime.KeepAlive(r)
	return s, err
}

// Split slices text into the substrings between matches. The text of each
// capturing group of a match is inserted after the substring before it; a
// group that did not take part inserts "".
//
// The count determines the number of splits:
//
//	n > 0: at most n-1 splits; the last substring will be the unsplit remainder.
//	n == 0: the result is nil
//	n < 0: all splits
//
// Example:
//
//	re := fuzzex.MustCompile(`,`)
//	parts, _ := re.Split("a,b,c", 2)
//	// parts = ["a", "b,c"]
//
//	re = fuzzex.MustCompile(`(,)`)
//	parts, _ = re.Split("a,b", -1)
//	// parts = ["a", ",", "b"]
func (r *Regex) Split(text string, n int) ([]string, error) {
	if n == 0 {
		return nil, nil
	}
	ms, err := r.findAll("split", text)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return []string{text}, nil
	}

	idx := conv.NewIndex(text)
	result := make([]string, 0, (len(ms)+1)*(r.numSubexp+1))
	last := 0
	for i := range ms {
		if n > 0 && i == n-1 {
			break
		}
		start := idx.ByteOffset(ms[i].groups[0].Start)
		result = append(result, text[last:start])
		for _, g := range ms[i].groups[1:] {
			result = append(result, g.Text)
		}
		last = idx.ByteOffset(ms[i].groups[0].End)
	}
	result = append(result, text[last:])
	return result, nil
}

// QuoteMeta escapes every metacharacter in s, including the braces that
// open fuzzy constraints. The result matches s literally.
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

