package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached summaries",
	Long:  `List, inspect or clear the per-repository chunk summaries kept between runs.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached repositories",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheShowCmd = &cobra.Command{
	Use:   "show <owner/repo|url>",
	Short: "Show cached summaries for a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheShow,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [owner/repo|url]",
	Short: "Clear cached summaries",
	Long: `Clear the cached summaries of one repository, or of every repository with --all.

With --readme the stored README is removed as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCacheClear,
}

var (
	cacheClearAll    bool
	cacheClearReadme bool
)

func init() {
	cacheClearCmd.Flags().BoolVar(&cacheClearAll, "all", false, "Clear every cached repository")
	cacheClearCmd.Flags().BoolVar(&cacheClearReadme, "readme", false, "Also delete the stored README")

	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	records, err := libraryService.ListSummaries(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list cache: %w", err)
	}
	if len(records) == 0 {
		cmd.Println("No cached summaries.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REPOSITORY\tCHUNKS\tSUMMARISED\tFAILED\tUPDATED")
	for i := range records {
		r := &records[i]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n",
			r.Key, r.Stats.Total, r.Stats.Successful, r.Stats.Failed,
			r.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	owner, repo, err := domain.ParseRepoRef(args[0])
	if err != nil {
		return err
	}

	rec, err := libraryService.Summaries(commandContext(cmd), owner, repo)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No cached summaries for %s\n", domain.RepoKey(owner, repo))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}

	cmd.Printf("%s (%d chunks, %d summarised, %d failed)\n\n",
		rec.Key, rec.Stats.Total, rec.Stats.Successful, rec.Stats.Failed)

	var file string
	for _, c := range rec.Chunks {
		if c.File != file {
			if file != "" {
				cmd.Println()
			}
			file = c.File
			cmd.Printf("%s\n", file)
		}
		summary := c.Summary
		if !c.HasValidSummary() {
			summary = "(failed) " + summary
		}
		cmd.Printf("  [%d] %s\n", c.Index, summary)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	ctx := commandContext(cmd)

	if cacheClearAll {
		if len(args) > 0 {
			return errors.New("--all does not take a repository")
		}
		records, err := libraryService.ListSummaries(ctx)
		if err != nil {
			return fmt.Errorf("failed to list cache: %w", err)
		}
		for i := range records {
			if err := clearRepository(cmd, records[i].Owner, records[i].Repo); err != nil {
				return err
			}
		}
		cmd.Printf("Cleared %d cached repositories\n", len(records))
		return nil
	}

	if len(args) == 0 {
		return errors.New("repository required (or use --all)")
	}
	owner, repo, err := domain.ParseRepoRef(args[0])
	if err != nil {
		return err
	}
	if err := clearRepository(cmd, owner, repo); err != nil {
		return err
	}
	cmd.Printf("Cleared %s\n", domain.RepoKey(owner, repo))
	return nil
}

func clearRepository(cmd *cobra.Command, owner, repo string) error {
	ctx := commandContext(cmd)
	if err := libraryService.ClearSummaries(ctx, owner, repo); err != nil {
		return fmt.Errorf("failed to clear %s: %w", domain.RepoKey(owner, repo), err)
	}
	if cacheClearReadme {
		if err := libraryService.DeleteReadme(ctx, owner, repo); err != nil {
			return fmt.Errorf("failed to delete README for %s: %w", domain.RepoKey(owner, repo), err)
		}
	}
	return nil
}
