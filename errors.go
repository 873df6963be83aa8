package fuzzex

import (
	"errors"
	"strconv"
)

// Kind classifies a fuzzex error.
type Kind int

const (
	// KindEngineUnavailable reports that the engine could not be opened.
	// It is sticky: once initialization fails every later call reports the
	// same error.
	KindEngineUnavailable Kind = iota + 1

	// KindCompile reports a pattern the engine rejected.
	KindCompile

	// KindExec reports a failure during search or substitution, including
	// use of a closed Regex and exhausted match budgets.
	KindExec

	// KindExtraction reports a native match that could not be converted.
	KindExtraction

	// KindIndexOutOfRange reports a group index outside [0, NumGroups).
	KindIndexOutOfRange
)

var kindNames = [...]string{
	KindEngineUnavailable: "EngineUnavailable",
	KindCompile:           "CompileError",
	KindExec:              "ExecError",
	KindExtraction:        "ExtractionError",
	KindIndexOutOfRange:   "IndexOutOfRange",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Sentinel errors, one per Kind. Every *Error unwraps to the sentinel of
// its kind, so callers can test with errors.Is.
var (
	ErrEngineUnavailable = errors.New("fuzzex: engine unavailable")
	ErrCompile           = errors.New("fuzzex: compile error")
	ErrExec              = errors.New("fuzzex: exec error")
	ErrExtraction        = errors.New("fuzzex: extraction error")
	ErrIndexOutOfRange   = errors.New("fuzzex: group index out of range")
)

func (k Kind) sentinel() error {
	switch k {
	case KindEngineUnavailable:
		return ErrEngineUnavailable
	case KindCompile:
		return ErrCompile
	case KindExec:
		return ErrExec
	case KindExtraction:
		return ErrExtraction
	case KindIndexOutOfRange:
		return ErrIndexOutOfRange
	}
	return nil
}

// Error is the error type returned by every fuzzex operation.
//
// Diagnostic holds the engine's message text as it was reported. Engine
// error values are not retained.
type Error struct {
	Kind       Kind
	Op         string // operation, e.g. "compile", "find_all"
	Pattern    string // pattern source, empty when not applicable
	Diagnostic string
}

func (e *Error) Error() string {
	s := "fuzzex: " + e.Op
	if e.Pattern != "" {
		s += " `" + e.Pattern + "`"
	}
	s += ": " + e.Kind.String()
	if e.Diagnostic != "" {
		s += ": " + e.Diagnostic
	}
	return s
}

// Unwrap returns the sentinel for e.Kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func newError(kind Kind, op, pattern string, cause error) *Error {
	e := &Error{Kind: kind, Op: op, Pattern: pattern}
	if cause != nil {
		e.Diagnostic = cause.Error()
	}
	return e
}

// IsKind reports whether err is a fuzzex *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
