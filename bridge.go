package fuzzex

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/coregx/fuzzex/engine"
)

// errEnginePanic marks a panic raised inside the engine.
var errEnginePanic = errors.New("engine panic")

// handle is the native compiled object together with its release state.
// Both are only touched with the runtime mutex held.
type handle struct {
	prog     engine.Program
	released bool
}

// call runs f with the runtime mutex held. A panic in f is returned as an
// error wrapping errEnginePanic.
func call[T any](rt *runtimeContext, f func(engine.Engine) (T, error)) (v T, err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errEnginePanic, r)
		}
	}()
	return f(rt.eng)
}

func (rt *runtimeContext) compile(pattern string) (*handle, error) {
	prog, err := call(rt, func(e engine.Engine) (engine.Program, error) {
		return e.Compile(pattern)
	})
	if err != nil {
		if errors.Is(err, errEnginePanic) {
			return nil, newError(KindExec, "compile", pattern, err)
		}
		return nil, newError(KindCompile, "compile", pattern, err)
	}
	return &handle{prog: prog}, nil
}

// search runs one search step from character position pos and adapts the
// result while the mutex is still held. It returns nil when nothing
// matches.
func (rt *runtimeContext) search(h *handle, op, pattern, text string, pos int, names []string) (*Match, error) {
	var adaptErr error
	m, err := call(rt, func(engine.Engine) (*Match, error) {
		if h.released {
			return nil, engine.ErrReleased
		}
		native, err := h.prog.Search(text, pos)
		if err != nil || native == nil {
			return nil, err
		}
		m, err := adapt(native, names)
		if err != nil {
			adaptErr = err
			return nil, err
		}
		return &m, nil
	})
	switch {
	case adaptErr != nil:
		return nil, newError(KindExtraction, op, pattern, adaptErr)
	case err != nil:
		return nil, newError(KindExec, op, pattern, err)
	}
	return m, nil
}

func (rt *runtimeContext) substitute(h *handle, pattern, text, repl string) (string, error) {
	s, err := call(rt, func(engine.Engine) (string, error) {
		if h.released {
			return "", engine.ErrReleased
		}
		return h.prog.Substitute(text, repl)
	})
	if err != nil {
		return "", newError(KindExec, "substitute", pattern, err)
	}
	return s, nil
}

// release frees h once. It reports whether this call released it.
func (rt *runtimeContext) release(h *handle) (bool, error) {
	return call(rt, func(e engine.Engine) (bool, error) {
		if h.released {
			return false, nil
		}
		h.released = true
		return true, e.Release(h.prog)
	})
}

// collect is the cleanup run when a Regex becomes unreachable without
// being closed.
func (rt *runtimeContext) collect(h *handle) {
	released, err := rt.release(h)
	if released {
		rt.log.Debug("fuzzex: released unreachable pattern",
			slog.String("pattern", fmt.Sprint(h.prog)),
			slog.Any("error", err))
	}
}
