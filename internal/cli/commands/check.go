package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/impute"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [nodes-file]",
		Short: "Check the lineage graph for problems",
		Long: `Check the lineage graph for cycles and for references to node ids that
are never declared.

A healthy warehouse lineage is acyclic; cycles usually indicate a
circular dependency that was declared by mistake. Missing references can
be fixed automatically with the impute command.`,
		Example: `  # Report problems
  leaplineage check

  # Fail with a non-zero exit code when problems exist
  leaplineage check --strict

  # Output as JSON
  leaplineage check --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when problems are found")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, strict bool) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	nodesFile := cmdCtx.Cfg.NodesFile
	if len(args) == 1 {
		nodesFile = args[0]
	}

	g, _, _, err := loadLineage(nodesFile)
	if err != nil {
		return err
	}
	missing, err := missingReferences(nodesFile)
	if err != nil {
		return err
	}

	result := output.CheckOutput{
		Acyclic:        g.IsAcyclic(),
		Cycles:         g.FindCycles(),
		MissingNodeIDs: missing,
		NodeCount:      g.NodeCount(),
		EdgeCount:      g.EdgeCount(),
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	case output.ModeMarkdown:
		checkMarkdown(r, result)
	default:
		checkText(r, result)
	}

	if strict && (!result.Acyclic || len(result.MissingNodeIDs) > 0) {
		return fmt.Errorf("lineage check failed: %d cycle(s), %d missing reference(s)",
			len(result.Cycles), len(result.MissingNodeIDs))
	}
	return nil
}

// missingReferences reads the raw records from the nodes file and returns
// referenced ids that are never declared. The raw document is used instead
// of the loaded graph so malformed records still contribute references.
func missingReferences(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc struct {
		Nodes []any `yaml:"nodes"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return impute.MissingIDs(doc.Nodes), nil
}

// checkText outputs check results in styled text format.
func checkText(r *output.Renderer, result output.CheckOutput) {
	styles := r.Styles()

	r.Header(1, "Lineage Check")
	r.Printf("Nodes: %d, edges: %d\n\n", result.NodeCount, result.EdgeCount)

	if result.Acyclic {
		r.Println(styles.Success.Render("No cycles found"))
	} else {
		r.Println(styles.Error.Render(fmt.Sprintf("%d cycle(s) found:", len(result.Cycles))))
		for _, cycle := range result.Cycles {
			r.Printf("  %s\n", strings.Join(cycle, " -> "))
		}
	}
	r.Println("")

	if len(result.MissingNodeIDs) == 0 {
		r.Println(styles.Success.Render("No missing references"))
	} else {
		r.Println(styles.Warning.Render(fmt.Sprintf("%d missing reference(s):", len(result.MissingNodeIDs))))
		for _, id := range result.MissingNodeIDs {
			r.Printf("  %s\n", id)
		}
		r.Println("")
		r.Println(styles.Muted.Render("Run 'leaplineage impute' to add placeholder nodes."))
	}
}

// checkMarkdown outputs check results in markdown format.
func checkMarkdown(r *output.Renderer, result output.CheckOutput) {
	r.Println(output.FormatHeader(1, "Lineage Check"))
	r.Println("")
	r.Println(output.FormatKeyValue("Nodes", fmt.Sprintf("%d", result.NodeCount)))
	r.Println(output.FormatKeyValue("Edges", fmt.Sprintf("%d", result.EdgeCount)))
	r.Println(output.FormatKeyValue("Acyclic", fmt.Sprintf("%t", result.Acyclic)))
	r.Println("")

	if len(result.Cycles) > 0 {
		r.Println(output.FormatHeader(2, "Cycles"))
		for _, cycle := range result.Cycles {
			r.Printf("- %s\n", strings.Join(cycle, " -> "))
		}
		r.Println("")
	}

	if len(result.MissingNodeIDs) > 0 {
		r.Println(output.FormatHeader(2, "Missing References"))
		for _, id := range result.MissingNodeIDs {
			r.Printf("- %s\n", id)
		}
	}
}
