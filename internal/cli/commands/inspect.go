package commands

import (
	"encoding/json"
	"fmt"

	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/graph"
	"github.com/spf13/cobra"
)

// InspectOptions holds options for the inspect command.
type InspectOptions struct {
	Upstream   bool
	Downstream bool
	Depth      int
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <node-id>",
		Short: "Show upstream and downstream lineage for a node",
		Long: `Display everything a node reads from (upstream) and everything that
reads from it (downstream).

The lineage shows how data flows through the warehouse, helping you
understand the impact of changes and debug data issues.`,
		Example: `  # Full lineage for a node
  leaplineage inspect marts.fct_orders

  # Only upstream dependencies
  leaplineage inspect marts.fct_orders --downstream=false

  # Limit traversal depth
  leaplineage inspect marts.fct_orders --depth 2

  # Output as JSON
  leaplineage inspect marts.fct_orders --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Upstream, "upstream", true, "Include upstream dependencies")
	cmd.Flags().BoolVar(&opts.Downstream, "downstream", true, "Include downstream dependents")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Max traversal depth (0 = unlimited)")

	return cmd
}

func runInspect(cmd *cobra.Command, nodeID string, opts *InspectOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	g, _, _, err := loadLineage(cmdCtx.Cfg.NodesFile)
	if err != nil {
		return err
	}
	if !g.HasNode(nodeID) {
		return &graph.UnknownNodeError{ID: nodeID}
	}

	var upstream, downstream []string
	if opts.Upstream {
		upstream = g.Upstream(nodeID, opts.Depth)
	}
	if opts.Downstream {
		downstream = g.Downstream(nodeID, opts.Depth)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return inspectJSON(r, nodeID, upstream, downstream)
	case output.ModeMarkdown:
		return inspectMarkdown(r, nodeID, opts, upstream, downstream)
	default:
		return inspectText(r, nodeID, opts, upstream, downstream)
	}
}

// inspectText outputs lineage in styled text format.
func inspectText(r *output.Renderer, nodeID string, opts *InspectOptions, upstream, downstream []string) error {
	styles := r.Styles()

	r.Header(1, fmt.Sprintf("Lineage for %s", nodeID))

	if opts.Upstream {
		r.Println(styles.Header2.Render(fmt.Sprintf("Upstream dependencies (%d):", len(upstream))))
		for _, id := range upstream {
			r.Printf("  %s\n", styles.NodeID.Render(id))
		}
		r.Println("")
	}

	if opts.Downstream {
		r.Println(styles.Header2.Render(fmt.Sprintf("Downstream dependents (%d):", len(downstream))))
		for _, id := range downstream {
			r.Printf("  %s\n", styles.NodeID.Render(id))
		}
	}

	return nil
}

// inspectMarkdown outputs lineage in markdown format.
func inspectMarkdown(r *output.Renderer, nodeID string, opts *InspectOptions, upstream, downstream []string) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Lineage for %s", nodeID)))
	r.Println("")

	if opts.Upstream {
		r.Println(output.FormatHeader(2, fmt.Sprintf("Upstream dependencies (%d)", len(upstream))))
		for _, id := range upstream {
			r.Printf("- %s\n", id)
		}
		r.Println("")
	}

	if opts.Downstream {
		r.Println(output.FormatHeader(2, fmt.Sprintf("Downstream dependents (%d)", len(downstream))))
		for _, id := range downstream {
			r.Printf("- %s\n", id)
		}
	}

	return nil
}

// inspectJSON outputs lineage in JSON format.
func inspectJSON(r *output.Renderer, nodeID string, upstream, downstream []string) error {
	out := output.InspectOutput{
		Root:       nodeID,
		Upstream:   upstream,
		Downstream: downstream,
		Stats: output.InspectStats{
			UpstreamCount:   len(upstream),
			DownstreamCount: len(downstream),
		},
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
