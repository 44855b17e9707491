// Command readme-maker generates README files for GitHub repositories.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zaibi117/readme-maker/internal/adapters/driven/ai"
	"github.com/zaibi117/readme-maker/internal/adapters/driven/auth"
	"github.com/zaibi117/readme-maker/internal/adapters/driven/config/file"
	"github.com/zaibi117/readme-maker/internal/adapters/driven/storage/memory"
	"github.com/zaibi117/readme-maker/internal/adapters/driven/storage/sqlite"
	"github.com/zaibi117/readme-maker/internal/adapters/driving/cli"
	"github.com/zaibi117/readme-maker/internal/chunker"
	"github.com/zaibi117/readme-maker/internal/connectors/github"
	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
	"github.com/zaibi117/readme-maker/internal/core/services"
	"github.com/zaibi117/readme-maker/internal/logger"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	cache, docs, closeStore, err := openStorage(settings)
	if err != nil {
		return err
	}
	defer closeStore()

	promptDir := ""
	if settings.DataDir != "" {
		promptDir = filepath.Join(settings.DataDir, "prompts")
	}
	prompts, err := file.NewPromptStore(promptDir, services.DefaultPrompts())
	if err != nil {
		return fmt.Errorf("opening prompts: %w", err)
	}

	// One limiter per process so the window spans every run.
	limiter := services.NewRateLimiter(settings.Limiter.MaxRequests, settings.Limiter.Window)

	factory := &processorFactory{
		settings: settingsService,
		limiter:  limiter,
		prompts:  prompts,
		cache:    cache,
		docs:     docs,
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Settings:     settingsService,
		Library:      services.NewLibraryService(cache, docs),
		Validator:    ai.NewConfigValidator(),
		NewProcessor: factory.New,
		WatchPrompts: func(ctx context.Context) error {
			return prompts.Watch(ctx, func(name string) {
				logger.Info("Reloaded prompt %s", name)
			})
		},
	})

	return cli.ExecuteContext(context.Background())
}

// openStorage opens the configured persistence backend.
func openStorage(settings *domain.AppSettings) (driven.SummaryCache, driven.DocumentStore, func(), error) {
	if settings.Storage == domain.StorageMemory {
		return memory.NewSummaryCache(), memory.NewDocumentStore(), func() {}, nil
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing database: %v", err)
		}
	}
	return store.SummaryCache(), store.DocumentStore(), closeFn, nil
}

// processorFactory builds a processor from the settings current at call time.
type processorFactory struct {
	settings *services.SettingsService
	limiter  *services.RateLimiter
	prompts  driven.PromptStore
	cache    driven.SummaryCache
	docs     driven.DocumentStore
}

func (f *processorFactory) New(opts cli.ProcessorOptions) (driving.RepositoryProcessor, error) {
	if err := f.settings.Validate(); err != nil {
		return nil, err
	}
	settings, err := f.settings.Get()
	if err != nil {
		return nil, err
	}

	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using %s model %s", settings.LLM.Provider, llm.ModelName())

	summarizer := services.NewChunkSummarizer(llm, f.limiter, f.prompts,
		services.SummarizerConfigForTier(settings.Pipeline.Tier))
	synthesizer := services.NewReadmeSynthesizer(llm, f.limiter, f.prompts,
		services.DefaultSynthesizerConfig())

	patterns := append(append([]string(nil), settings.IgnorePatterns...), opts.IgnorePatterns...)
	selector := services.NewFileSelector(services.WithIgnorePatterns(patterns...))

	host := github.NewClient(auth.NewTokenProvider(settings))

	cfg := services.DefaultProcessorConfig()
	cfg.MaxFiles = settings.Pipeline.MaxFiles
	cfg.DownloadBatchSize = settings.Pipeline.DownloadBatchSize
	cfg.SummaryBatchSize = settings.Pipeline.SummaryBatchSize
	if opts.MaxFiles > 0 {
		cfg.MaxFiles = opts.MaxFiles
	}

	return services.NewProcessor(
		host, chunker.New(), selector, summarizer, synthesizer, f.cache, f.docs,
		services.WithProcessorConfig(cfg),
		services.WithStatusObserver(statusLogger{}),
	), nil
}

// statusLogger writes every transition to the debug log.
type statusLogger struct{}

func (statusLogger) OnStatus(s domain.ProcessingStatus) {
	logger.Debug("status %s %d%%: %s", s.Stage, s.Progress, s.Message)
}
