package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zaibi117/readme-maker/internal/adapters/driving/tui"
	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

var generateCmd = &cobra.Command{
	Use:   "generate <owner/repo|url>",
	Short: "Generate a README for a GitHub repository",
	Long: `Generate a README.md for a GitHub repository.

The repository tree is fetched, the most relevant source files are selected,
downloaded, chunked and summarised, and the summaries are synthesised into a
README. Summaries are cached so the README can be rebuilt with --from-cache.

Press Ctrl-C to stop a run; summaries produced so far stay in memory only.

Examples:
  readme-maker generate octo/hello
  readme-maker generate https://github.com/octo/hello -o README.md
  readme-maker generate octo/hello --from-cache
  readme-maker generate octo/hello --ignore "docs/**" --max-files 20`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	generateFromCache bool
	generateOut       string
	generateTUI       bool
	generateIgnore    []string
	generateMaxFiles  int
)

func init() {
	generateCmd.Flags().BoolVar(&generateFromCache, "from-cache", false, "Build from cached summaries")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Write the README to this file instead of stdout")
	generateCmd.Flags().BoolVar(&generateTUI, "tui", false, "Show an interactive progress view")
	generateCmd.Flags().StringSliceVar(&generateIgnore, "ignore", nil, "Extra gitignore-style pattern to exclude (repeatable)")
	generateCmd.Flags().IntVar(&generateMaxFiles, "max-files", 0, "Maximum number of files to download (0 = configured)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if processorFactory == nil {
		return errors.New("processor not configured")
	}

	owner, repo, err := domain.ParseRepoRef(args[0])
	if err != nil {
		return err
	}

	proc, err := processorFactory(ProcessorOptions{
		IgnorePatterns: generateIgnore,
		MaxFiles:       generateMaxFiles,
	})
	if err != nil {
		return fmt.Errorf("failed to create processor: %w", err)
	}

	ctx := commandContext(cmd)

	var res *driving.Result
	if generateTUI && term.IsTerminal(int(os.Stdout.Fd())) {
		res, err = tui.Run(ctx, &tui.Ports{Processor: proc}, tui.Job{
			Owner:     owner,
			Repo:      repo,
			FromCache: generateFromCache,
		})
	} else {
		res, err = runPlain(ctx, cmd.ErrOrStderr(), proc, owner, repo, generateFromCache)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) && generateFromCache {
			return fmt.Errorf("no cached summaries for %s; run without --from-cache first", domain.RepoKey(owner, repo))
		}
		return err
	}

	if res.Stopped {
		cmd.PrintErrf("Stopped after %d summarised chunks\n", len(res.Chunks))
		return nil
	}

	if err := writeReadme(cmd, res.Document); err != nil {
		return err
	}
	printStats(cmd.ErrOrStderr(), res)
	return nil
}

// runPlain runs the processor, printing each status transition to w and
// stopping the run on SIGINT or SIGTERM.
func runPlain(
	ctx context.Context,
	w io.Writer,
	proc driving.RepositoryProcessor,
	owner, repo string,
	fromCache bool,
) (*driving.Result, error) {
	sigCtx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigCtx.Done():
			proc.Stop()
		case <-done:
		}
	}()

	updates, unsubscribe := proc.Subscribe(32)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		printStatuses(w, updates)
	}()

	var (
		res *driving.Result
		err error
	)
	if fromCache {
		res, err = proc.ProcessFromCache(ctx, owner, repo)
	} else {
		res, err = proc.Process(ctx, owner, repo)
	}

	unsubscribe()
	wg.Wait()
	return res, err
}

// printStatuses writes one line per stage change until updates closes.
func printStatuses(w io.Writer, updates <-chan domain.ProcessingStatus) {
	var last domain.Stage
	for s := range updates {
		if s.Stage == domain.StageIdle || s.Stage == last {
			continue
		}
		last = s.Stage
		if s.Stage == domain.StageError {
			fmt.Fprintf(w, "[%3d%%] %s: %s\n", s.Progress, s.Message, s.Error)
			continue
		}
		fmt.Fprintf(w, "[%3d%%] %s\n", s.Progress, s.Message)
	}
}

func writeReadme(cmd *cobra.Command, doc string) error {
	if generateOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), doc)
		if len(doc) > 0 && doc[len(doc)-1] != '\n' {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	}

	if err := os.WriteFile(generateOut, []byte(doc), 0o644); err != nil { //nolint:gosec // README is world-readable
		return fmt.Errorf("failed to write %s: %w", generateOut, err)
	}
	cmd.PrintErrf("README written to %s\n", generateOut)
	return nil
}

func printStats(w io.Writer, res *driving.Result) {
	source := "repository"
	if res.FromCache {
		source = "cache"
	}
	fmt.Fprintf(w, "Built from %s: %d chunks (%d summarised, %d skipped, %d failed) in %s\n",
		source, res.Stats.Total, res.Stats.Successful, res.Stats.Skipped, res.Stats.Failed,
		res.Duration.Round(time.Millisecond))
	if res.Warning != nil {
		fmt.Fprintf(w, "Warning: fallback README written (%v)\n", res.Warning)
	}
	if res.DocumentID == "" {
		fmt.Fprintln(w, "Warning: README was not saved to the document store")
	}
}
