// Package app wires the tutoring services together: logger, event
// store, LLM provider, retrieval, and the four pipeline services.
package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/genmentor/genmentor/internal/content"
	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/llm"
	"github.com/genmentor/genmentor/internal/rag"
	"github.com/genmentor/genmentor/internal/schedule"
	"github.com/genmentor/genmentor/internal/skillgap"
	"github.com/genmentor/genmentor/internal/store"
	"github.com/genmentor/genmentor/internal/tutor"
)

// Options configures App construction.
type Options struct {
	// DBPath is the SQLite file for request auditing. Empty disables
	// event recording.
	DBPath string

	// LLM provider configuration. Zero value means discover from env.
	LLM llm.Config

	// RAG configures retrieval. Left zero, retrieval is attempted from
	// env and silently disabled when unconfigured.
	RAG rag.Config

	Logger *zap.Logger
}

// App holds the wired services. Construct with New, release with Close.
type App struct {
	Logger    *zap.Logger
	Provider  llm.Provider
	Retrieval *rag.Manager // nil when retrieval is unconfigured

	SkillGaps *skillgap.Service
	Profiles  *learner.Manager
	Scheduler *schedule.Scheduler
	Content   *content.Generator
	Tutor     *tutor.Tutor

	st *store.Store
}

// New builds the full service graph. Retrieval is optional: a missing
// Tavily or embedding key logs a warning and leaves Retrieval nil, and
// content generation degrades to no external resources.
func New(ctx context.Context, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(os.Getenv("GENMENTOR_DEBUG") != "")
	}

	cfg := opts.LLM
	if cfg.Provider == "" {
		if env := llm.ConfigFromEnv(); env.Validate() == nil {
			cfg = env
		} else if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		} else {
			cfg = env
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("llm config: %w", err)
	}

	a := &App{Logger: logger}

	events := store.EventRepo(store.NopEventRepo{})
	if opts.DBPath != "" {
		st, err := store.Open(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.st = st
		events = st.EventRepo()
	}

	provider, err := llm.NewProvider(ctx, cfg, logger, events)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Provider = provider

	ragCfg := opts.RAG
	if ragCfg.TavilyAPIKey == "" && ragCfg.OpenAIAPIKey == "" {
		ragCfg = rag.ConfigFromEnv()
	}
	if ragCfg.TavilyAPIKey != "" && ragCfg.OpenAIAPIKey != "" {
		mgr, err := rag.NewManager(ragCfg, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("retrieval: %w", err)
		}
		a.Retrieval = mgr
	} else {
		logger.Warn("retrieval disabled: Tavily or embedding API key not configured")
	}

	a.SkillGaps = skillgap.NewService(provider, logger)
	a.Profiles = learner.NewManager(provider, logger)
	a.Scheduler = schedule.NewScheduler(provider, logger)

	var retriever content.ContextRetriever
	var chatRetriever tutor.Retriever
	if a.Retrieval != nil {
		retriever = a.Retrieval
		chatRetriever = a.Retrieval
	}
	a.Content = content.NewGenerator(provider, retriever, content.Config{}, logger)
	a.Tutor = tutor.New(provider, chatRetriever, logger)

	return a, nil
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.st != nil {
		return a.st.Close()
	}
	return nil
}

// NewLogger builds a console logger on stderr. Debug enables verbose
// pipeline logging.
func NewLogger(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}
