package commands

import (
	"github.com/leapstack-labs/leaplineage/internal/sqlextract"
	"github.com/spf13/cobra"
)

// ExtractOptions holds options for the extract command.
type ExtractOptions struct {
	OutputPath string
	Append     bool
	Update     bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <pattern>",
		Short: "Extract lineage nodes from SQL files",
		Long: `Scan SQL files for CREATE TABLE and CREATE VIEW statements and write
the resulting nodes to a lineage YAML file.

Each schema-qualified target becomes a node whose select_from list holds
the tables referenced in the statement body. The data_level field is left
null for manual completion. Glob patterns support ** for recursive
matching.`,
		Example: `  # Extract from one directory of SQL files
  leaplineage extract 'models/*.sql' -o lineage.yaml

  # Recurse into subdirectories
  leaplineage extract 'models/**/*.sql' -o lineage.yaml

  # Add newly discovered tables to an existing file
  leaplineage extract 'models/**/*.sql' -o lineage.yaml --append

  # Also fill null fields and merge references on existing entries
  leaplineage extract 'models/**/*.sql' -o lineage.yaml --update`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputPath, "out", "o", "", "Output lineage YAML file (required)")
	cmd.Flags().BoolVar(&opts.Append, "append", false, "Add new nodes to an existing file")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "Merge into existing entries as well")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExtract(cmd *cobra.Command, pattern string, opts *ExtractOptions) error {
	cmdCtx := NewCommandContext(cmd)

	tables, err := sqlextract.FromFiles(cmd.Context(), pattern, cmdCtx.Logger)
	if err != nil {
		return err
	}

	stats, err := sqlextract.WriteTables(tables, opts.OutputPath, sqlextract.WriteOptions{
		Append: opts.Append,
		Update: opts.Update,
	})
	if err != nil {
		return err
	}

	cmdCtx.Renderer.Println(stats.String())
	return nil
}
