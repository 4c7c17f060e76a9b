package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/services"
)

var (
	searchLimit   int
	searchJSON    bool
	searchNoCache bool
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	idStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	descriptionStyle = lipgloss.NewStyle().PaddingLeft(6)
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search the papis library",
	Long: `Runs the same search the GNOME Shell overview runs and prints the results.
All terms must match; a term of the form key:value only matches the named
info.yaml key. Without terms every document is listed.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "scan the libraries instead of using the index")
	rootCmd.AddCommand(searchCmd)
}

// searchResult is one row of search output.
type searchResult struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	index, err := openIndex(searchNoCache)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer index.Close()

	if searchNoCache {
		if _, err := newIndexService(index, false, nil).Reindex(ctx); err != nil {
			return err
		}
	}

	provider := services.NewSearchProviderService(index, nil)
	ids := provider.InitialResultSet(ctx, domain.SearchTerms(args))
	if searchLimit > 0 && len(ids) > searchLimit {
		ids = ids[:searchLimit]
	}

	metas := provider.ResultMetas(ctx, ids)
	results := make([]searchResult, len(metas))
	for i, meta := range metas {
		results[i] = searchResult{ID: meta.ID}
		if meta.Name != nil {
			results[i].Name = *meta.Name
		}
		if meta.Description != nil {
			results[i].Description = *meta.Description
		}
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchTable(cmd, results)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, results []searchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []searchResult) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	width := terminalWidth()
	for i, r := range results {
		title := r.Name
		if title == "" {
			title = r.ID
		}

		cmd.Printf("  [%d] %s %s\n", i+1, titleStyle.Render(title), idStyle.Render(r.ID))
		if r.Description != "" {
			cmd.Println(descriptionStyle.Width(width).Render(truncate(r.Description, 3*width)))
		}
		cmd.Println()
	}
}

// terminalWidth returns the width of stdout or 80 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
