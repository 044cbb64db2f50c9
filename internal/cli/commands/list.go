package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/graph"
	"github.com/leapstack-labs/leaplineage/internal/model"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [nodes-file]",
		Short: "List all lineage nodes",
		Long: `List every declared node with its type, level, and direct
dependencies.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all nodes
  leaplineage list

  # List nodes as JSON
  leaplineage list --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	nodesFile := cmdCtx.Cfg.NodesFile
	if len(args) == 1 {
		nodesFile = args[0]
	}

	g, nodes, _, err := loadLineage(nodesFile)
	if err != nil {
		return err
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listJSON(r, g, nodes)
	case output.ModeMarkdown:
		return listMarkdown(r, g, nodes)
	default:
		return listText(r, g, nodes)
	}
}

// listText outputs nodes as a styled table.
func listText(r *output.Renderer, g *graph.Graph, nodes []model.Node) error {
	r.Header(1, fmt.Sprintf("Nodes (%d total)", len(nodes)))

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Label", "Type", "Level", "Upstream", "Downstream"})

	for _, n := range nodes {
		t.AppendRow(table.Row{
			n.ID,
			n.Label,
			string(n.DataType),
			string(n.DataLevel),
			len(g.Upstream(n.ID, 1)),
			len(g.Downstream(n.ID, 1)),
		})
	}

	t.Render()
	r.Printf("(%d nodes, %d edges)\n", g.NodeCount(), g.EdgeCount())
	return nil
}

// listMarkdown outputs nodes in markdown format.
func listMarkdown(r *output.Renderer, g *graph.Graph, nodes []model.Node) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Nodes (%d total)", len(nodes))))
	r.Println("")

	for _, n := range nodes {
		r.Println(output.FormatHeader(2, n.ID))
		r.Println(output.FormatKeyValue("Label", n.Label))
		r.Println(output.FormatKeyValue("Type", string(n.DataType)))
		r.Println(output.FormatKeyValue("Level", string(n.DataLevel)))

		if upstream := g.Upstream(n.ID, 1); len(upstream) > 0 {
			r.Println(output.FormatKeyValue("Reads from", strings.Join(upstream, ", ")))
		}
		if downstream := g.Downstream(n.ID, 1); len(downstream) > 0 {
			r.Println(output.FormatKeyValue("Read by", strings.Join(downstream, ", ")))
		}
		r.Println("")
	}

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Total Nodes", fmt.Sprintf("%d", g.NodeCount())))
	r.Println(output.FormatKeyValue("Total Edges", fmt.Sprintf("%d", g.EdgeCount())))
	return nil
}

// listJSON outputs nodes in JSON format.
func listJSON(r *output.Renderer, g *graph.Graph, nodes []model.Node) error {
	listOutput := output.ListOutput{
		Nodes: make([]output.NodeInfo, 0, len(nodes)),
		Summary: output.ListSummary{
			TotalNodes: g.NodeCount(),
			TotalEdges: g.EdgeCount(),
			ByLevel:    make(map[string]int),
		},
	}

	for _, n := range nodes {
		listOutput.Nodes = append(listOutput.Nodes, output.NodeInfo{
			ID:         n.ID,
			Label:      n.Label,
			DataType:   string(n.DataType),
			DataLevel:  string(n.DataLevel),
			Upstream:   g.Upstream(n.ID, 1),
			Downstream: g.Downstream(n.ID, 1),
		})
		listOutput.Summary.ByLevel[string(n.DataLevel)]++
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(listOutput)
}
