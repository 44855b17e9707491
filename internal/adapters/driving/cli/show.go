package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// defaultRenderWidth is used when stdout is not a terminal.
const defaultRenderWidth = 80

var showCmd = &cobra.Command{
	Use:   "show <owner/repo|url>",
	Short: "Print the last generated README",
	Long: `Print the most recently generated README for a repository.

Use --render to format the markdown for the terminal and --info to print
the document metadata instead of its content.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var (
	showRender bool
	showInfo   bool
)

func init() {
	showCmd.Flags().BoolVarP(&showRender, "render", "r", false, "Render markdown for the terminal")
	showCmd.Flags().BoolVar(&showInfo, "info", false, "Show document metadata")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	owner, repo, err := domain.ParseRepoRef(args[0])
	if err != nil {
		return err
	}
	key := domain.RepoKey(owner, repo)

	doc, err := libraryService.Readme(commandContext(cmd), owner, repo)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no README generated yet for %s; run 'readme-maker generate %s'", key, key)
	}
	if err != nil {
		return fmt.Errorf("failed to load README: %w", err)
	}

	if showInfo {
		cmd.Printf("Repository:  %s\n", doc.Key)
		cmd.Printf("ID:          %s\n", doc.ID)
		cmd.Printf("Generated:   %s\n", doc.GeneratedAt.Local().Format(time.RFC3339))
		cmd.Printf("Chunks:      %d\n", doc.ChunkCount)
		cmd.Printf("Duration:    %s\n", doc.ProcessingTime.Round(time.Millisecond))
		cmd.Printf("From cache:  %t\n", doc.FromCache)
		return nil
	}

	content := doc.Content
	if showRender {
		content, err = renderMarkdown(content, terminalWidth())
		if err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}

// renderMarkdown formats markdown for terminal display.
func renderMarkdown(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultRenderWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultRenderWidth
	}
	return w
}
