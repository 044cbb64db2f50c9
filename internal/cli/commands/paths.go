package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/graph"
	"github.com/spf13/cobra"
)

// NewPathsCommand creates the paths command.
func NewPathsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths <from> <to>",
		Short: "Show all simple paths between two nodes",
		Long: `Enumerate every path from one node to another that visits no node
twice. Useful for tracing exactly how data from a source reaches a
downstream table.`,
		Example: `  # How does raw order data reach the revenue report?
  leaplineage paths raw.orders exports.revenue_report

  # Output as JSON
  leaplineage paths raw.orders exports.revenue_report --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(cmd, args[0], args[1])
		},
	}

	return cmd
}

func runPaths(cmd *cobra.Command, fromID, toID string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	g, _, _, err := loadLineage(cmdCtx.Cfg.NodesFile)
	if err != nil {
		return err
	}
	for _, id := range []string{fromID, toID} {
		if !g.HasNode(id) {
			return &graph.UnknownNodeError{ID: id}
		}
	}

	paths := g.AllSimplePaths(fromID, toID)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := output.PathsOutput{From: fromID, To: toID, Paths: paths}
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Paths from %s to %s (%d)", fromID, toID, len(paths))))
		for _, path := range paths {
			r.Printf("- %s\n", strings.Join(path, " -> "))
		}
		return nil
	default:
		r.Header(1, fmt.Sprintf("Paths from %s to %s (%d)", fromID, toID, len(paths)))
		if len(paths) == 0 {
			r.Println(r.Styles().Muted.Render("No paths found."))
			return nil
		}
		for _, path := range paths {
			r.Printf("  %s\n", strings.Join(path, " -> "))
		}
		return nil
	}
}
