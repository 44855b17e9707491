// Package cli provides the cobra command tree for readme-maker.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
	"github.com/zaibi117/readme-maker/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// verbose enables debug logging.
var verbose bool

// ProcessorOptions are per-run overrides applied when building a processor.
type ProcessorOptions struct {
	// IgnorePatterns are added to the configured gitignore-style patterns.
	IgnorePatterns []string

	// MaxFiles overrides pipeline.max_files when positive.
	MaxFiles int
}

// ProcessorFactory builds a processor from the current settings.
type ProcessorFactory func(opts ProcessorOptions) (driving.RepositoryProcessor, error)

// PromptWatcher reloads prompt templates until ctx is done.
type PromptWatcher func(ctx context.Context) error

// Services holds the dependencies the commands use.
type Services struct {
	Settings     driving.SettingsService
	Library      driving.ReadmeLibrary
	Validator    driven.LLMValidator
	NewProcessor ProcessorFactory
	WatchPrompts PromptWatcher
}

var (
	settingsService  driving.SettingsService
	libraryService   driving.ReadmeLibrary
	llmValidator     driven.LLMValidator
	processorFactory ProcessorFactory
	promptWatcher    PromptWatcher
)

var rootCmd = &cobra.Command{
	Use:   "readme-maker",
	Short: "Generate README files for GitHub repositories",
	Long: `readme-maker reads a GitHub repository, summarises its most relevant
source files with an LLM and writes a README.md from those summaries.

Summaries are cached per repository, so a README can be regenerated with
--from-cache without touching GitHub or re-summarising.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// SetServices installs the services used by the commands.
func SetServices(s Services) {
	settingsService = s.Settings
	libraryService = s.Library
	llmValidator = s.Validator
	processorFactory = s.NewProcessor
	promptWatcher = s.WatchPrompts
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
