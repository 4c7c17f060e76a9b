package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the document index",
	Long:  `Scan the configured papis libraries and rebuild the sqlite index.`,
	Args:  cobra.NoArgs,
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	index, err := openIndex(false)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer index.Close()

	n, err := newIndexService(index, false, nil).Reindex(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Indexed %d documents\n", n)
	return nil
}
