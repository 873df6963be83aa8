// Package engine defines the boundary between the fuzzex binding and the
// regular-expression engines it drives.
//
// An Engine is an execution context: it compiles patterns into Programs,
// runs searches and substitutions, and owns every object it hands out until
// Release. Engines are not safe for concurrent use; the binding serializes
// all calls into one Engine.
//
// Offsets crossing this boundary are character (Unicode code point) offsets
// into the subject string.
package engine

import (
	"errors"
	"time"
)

var (
	// ErrUnavailable is returned by Open for an engine name that is not
	// registered.
	ErrUnavailable = errors.New("engine: not available")

	// ErrReleased is returned when a released Program is used.
	ErrReleased = errors.New("engine: program released")

	// ErrNoGroup is returned by Match accessors for a group index that does
	// not exist.
	ErrNoGroup = errors.New("engine: no such group")
)

// Options configure an Engine when it is opened. Engines ignore the fields
// that do not apply to them.
type Options struct {
	// MaxBacktrack bounds the matcher steps spent on one start position.
	// Zero means the engine default.
	MaxBacktrack int

	// EnablePrefilter allows literal prefilters for patterns without fuzzy
	// constraints.
	EnablePrefilter bool

	// MaxLiterals bounds the literal set a prefilter is built from.
	MaxLiterals int

	// MatchTimeout bounds one search in engines that measure time. Zero
	// means no timeout.
	MatchTimeout time.Duration
}

// Stats counts objects and calls of an Engine.
type Stats struct {
	Compiled uint64
	Released uint64
	Searches uint64

	// Live is the number of compiled programs not yet released.
	Live int
}

// Engine is an opened execution context.
type Engine interface {
	// Name returns the name the engine was registered under.
	Name() string

	// Compile compiles pattern. The returned error carries the engine's
	// diagnostic text.
	Compile(pattern string) (Program, error)

	// Release frees p. Releasing a program twice returns ErrReleased.
	Release(p Program) error

	// Stats returns a snapshot of the engine counters.
	Stats() Stats
}

// Program is a compiled pattern owned by an Engine.
type Program interface {
	// NumGroups returns the number of capturing groups, excluding the whole
	// match.
	NumGroups() int

	// GroupNames returns the names of groups 0..NumGroups(); unnamed groups
	// have an empty name.
	GroupNames() []string

	// Search returns the leftmost match that starts at or after character
	// position pos, or nil if there is none. Anchors and word boundaries
	// see the whole of text.
	Search(text string, pos int) (Match, error)

	// Substitute replaces every non-overlapping match in text with the
	// expansion of template, in the engine's own template syntax.
	Substitute(text, template string) (string, error)
}

// Match is an engine-native match. It stays valid until the next call into
// the same Engine.
type Match interface {
	// NumGroups returns the number of groups including group 0.
	NumGroups() int

	// Group returns the text of group i and whether it participated.
	Group(i int) (text string, ok bool, err error)

	// Span returns the character offsets of group i, or -1, -1 if it did
	// not participate.
	Span(i int) (start, end int, err error)
}

// FuzzyMatch is implemented by matches of engines with fuzzy matching.
type FuzzyMatch interface {
	Match

	// FuzzyCounts returns the substitutions, insertions and deletions the
	// match needed.
	FuzzyCounts() (sub, ins, del int)
}
