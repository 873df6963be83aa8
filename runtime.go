package fuzzex

import (
	"log/slog"
	"os"
	"sync"

	"github.com/coregx/fuzzex/engine"
	_ "github.com/coregx/fuzzex/engine/dotnet" // registers "regexp2"
)

// EngineEnv names the environment variable that selects the engine when
// Init is not called.
const EngineEnv = "FUZZEX_ENGINE"

// runtimeContext is the process-wide execution context: the opened engine,
// the mutex serializing every call into it, and the initialization outcome.
type runtimeContext struct {
	once sync.Once
	mu   sync.Mutex // held for every call into eng

	cfg Config
	log *slog.Logger
	eng engine.Engine
	err error // sticky
}

var defaultRuntime = &runtimeContext{}

// Init initializes the runtime with cfg. It must be called before any other
// fuzzex function to take effect; once the runtime is initialized, Init
// only reports the outcome of the first initialization. An invalid cfg is
// rejected with a *ConfigError and leaves the runtime untouched.
func Init(cfg Config) error {
	return defaultRuntime.init(cfg)
}

// EnsureInitialized opens the engine if that has not happened yet. Every
// operation calls it; calling it directly surfaces engine problems early.
// A failure is of kind KindEngineUnavailable and is returned unchanged by
// every later call.
func EnsureInitialized() error {
	return defaultRuntime.ensure()
}

// EngineStats reports the counters of the runtime's engine, including the
// number of compiled patterns not yet released.
func EngineStats() (engine.Stats, error) {
	if err := defaultRuntime.ensure(); err != nil {
		return engine.Stats{}, err
	}
	return defaultRuntime.stats(), nil
}

func (rt *runtimeContext) init(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	applied := false
	rt.once.Do(func() {
		applied = true
		rt.open(cfg)
	})
	if !applied {
		rt.log.Debug("fuzzex: runtime already initialized, configuration ignored",
			slog.String("engine", rt.cfg.Engine),
			slog.String("requested", cfg.Engine))
	}
	return rt.err
}

func (rt *runtimeContext) ensure() error {
	rt.once.Do(func() {
		rt.open(configFromEnv())
	})
	return rt.err
}

func configFromEnv() Config {
	cfg := DefaultConfig()
	if name := os.Getenv(EngineEnv); name != "" {
		cfg.Engine = name
	}
	return cfg
}

func (rt *runtimeContext) open(cfg Config) {
	rt.cfg = cfg
	rt.log = cfg.logger()
	eng, err := engine.Open(cfg.Engine, cfg.options())
	if err != nil {
		rt.err = newError(KindEngineUnavailable, "init", "", err)
		rt.log.Debug("fuzzex: engine unavailable",
			slog.String("engine", cfg.Engine),
			slog.Any("error", err))
		return
	}
	rt.eng = eng
	rt.log.Debug("fuzzex: runtime initialized",
		slog.String("engine", eng.Name()),
		slog.Int("max_backtrack", cfg.MaxBacktrack),
		slog.Bool("prefilter", cfg.EnablePrefilter))
}

func (rt *runtimeContext) stats() engine.Stats {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.eng.Stats()
}
