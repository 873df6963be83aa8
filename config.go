package fuzzex

import (
	"log/slog"
	"time"

	"github.com/coregx/fuzzex/engine"
	"github.com/coregx/fuzzex/engine/fuzzy"
)

// Config configures the process-wide runtime. It is applied by Init before
// the first operation; later changes have no effect.
type Config struct {
	// Engine is the registered engine name ("fuzzy" or "regexp2").
	Engine string

	// MaxBacktrack bounds the fuzzy matcher's steps per start position.
	// Searches that exceed it fail with an ExecError.
	MaxBacktrack int

	// EnablePrefilter lets the fuzzy engine skip ahead with literal
	// prefilters on patterns without fuzzy constraints.
	EnablePrefilter bool

	// MaxLiterals bounds the prefix literal set a prefilter is built from.
	MaxLiterals int

	// MatchTimeout bounds one regexp2 search. Zero means no timeout.
	MatchTimeout time.Duration

	// Logger receives debug records about initialization and handle
	// cleanup. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when Init is not called.
//
// Example:
//
//	cfg := fuzzex.DefaultConfig()
//	cfg.MaxBacktrack = 100_000
//	if err := fuzzex.Init(cfg); err != nil {
//		log.Fatal(err)
//	}
func DefaultConfig() Config {
	return Config{
		Engine:          fuzzy.Name,
		MaxBacktrack:    fuzzy.DefaultMaxBacktrack,
		EnablePrefilter: true,
		MaxLiterals:     64,
	}
}

// Validate checks that every field is in range.
//
// Valid ranges:
//   - Engine: non-empty
//   - MaxBacktrack: 1 to 1,000,000,000
//   - MaxLiterals: 1 to 1,000 when EnablePrefilter is set
//   - MatchTimeout: not negative
func (c Config) Validate() error {
	if c.Engine == "" {
		return &ConfigError{Field: "Engine", Message: "must name a registered engine"}
	}
	if c.MaxBacktrack < 1 || c.MaxBacktrack > 1_000_000_000 {
		return &ConfigError{Field: "MaxBacktrack", Message: "must be between 1 and 1,000,000,000"}
	}
	if c.EnablePrefilter && (c.MaxLiterals < 1 || c.MaxLiterals > 1_000) {
		return &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 1,000"}
	}
	if c.MatchTimeout < 0 {
		return &ConfigError{Field: "MatchTimeout", Message: "must not be negative"}
	}
	return nil
}

func (c Config) options() engine.Options {
	return engine.Options{
		MaxBacktrack:    c.MaxBacktrack,
		EnablePrefilter: c.EnablePrefilter,
		MaxLiterals:     c.MaxLiterals,
		MatchTimeout:    c.MatchTimeout,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "fuzzex: invalid config: " + e.Field + ": " + e.Message
}
