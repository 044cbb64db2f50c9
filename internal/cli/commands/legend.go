package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/leaplineage/internal/mermaid"
	"github.com/spf13/cobra"
)

// NewLegendCommand creates the legend command.
func NewLegendCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Generate a legend diagram",
		Long: `Generate a Mermaid diagram explaining node shapes, data level colors,
and connection styles used in lineage diagrams.`,
		Example: `  # Print the legend to stdout
  leaplineage legend

  # Write the legend next to the main diagram
  leaplineage legend -o legend.mmd`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			legend := mermaid.Legend()
			if outputPath == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), legend)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(legend+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outputPath, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output file (default: stdout)")

	return cmd
}
