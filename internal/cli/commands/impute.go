package commands

import (
	"github.com/leapstack-labs/leaplineage/internal/impute"
	"github.com/spf13/cobra"
)

// NewImputeCommand creates the impute command.
func NewImputeCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "impute [nodes-file]",
		Short: "Add placeholder nodes for missing references",
		Long: `Find node ids that are referenced in select_from or connections but
never declared, and append placeholder entries for them.

Placeholders use the id as label and leave data_type and data_level null
for manual completion. The file is rewritten through a comment-preserving
round trip, so existing comments and key order survive. Without -o the
file is updated in place.`,
		Example: `  # Impute the default nodes file in place
  leaplineage impute

  # Impute a specific file into a new one
  leaplineage impute lineage.yaml -o lineage_complete.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			inputPath := cmdCtx.Cfg.NodesFile
			if len(args) == 1 {
				inputPath = args[0]
			}
			out := outputPath
			if out == "" {
				out = inputPath
			}

			stats, err := impute.File(inputPath, out)
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Println(stats.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output file (default: in place)")

	return cmd
}
