package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/leaplineage/internal/graph"
	"github.com/leapstack-labs/leaplineage/internal/mermaid"
	"github.com/leapstack-labs/leaplineage/internal/model"
	"github.com/spf13/cobra"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	OutputPath      string
	Direction       string
	Focus           []string
	FilterDirection string
	Depth           int
	DirectOnly      bool
	Watch           bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [nodes-file]",
		Short: "Generate a Mermaid lineage diagram",
		Long: `Generate a Mermaid flowchart from the lineage nodes file.

Without --focus the full graph is rendered. With --focus the diagram is
restricted to the focus nodes plus everything reachable in the chosen
filter direction, optionally bounded by --depth.`,
		Example: `  # Render the full graph to stdout
  leaplineage generate

  # Write to a file with top-to-bottom layout
  leaplineage generate -o lineage.mmd --direction TB

  # Everything feeding the orders fact table, two hops out
  leaplineage generate --focus marts.fct_orders --filter-direction upstream --depth 2

  # Focus nodes and their direct neighbors only
  leaplineage generate --focus marts.fct_orders --direct-only

  # Regenerate whenever the nodes file changes
  leaplineage generate -o lineage.mmd --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputPath, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", "", "Diagram direction (LR|RL|TB|BT)")
	cmd.Flags().StringSliceVar(&opts.Focus, "focus", nil, "Node ids to focus the diagram on")
	cmd.Flags().StringVar(&opts.FilterDirection, "filter-direction", "", "Traversal direction for --focus (upstream|downstream|both)")
	cmd.Flags().IntVar(&opts.Depth, "depth", -1, "Max traversal depth for --focus (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.DirectOnly, "direct-only", false, "Keep only focus nodes and their direct neighbors")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Regenerate when the nodes file changes (requires -o)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, opts *GenerateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	nodesFile := cfg.NodesFile
	if len(args) == 1 {
		nodesFile = args[0]
	}

	if opts.Watch && opts.OutputPath == "" {
		return fmt.Errorf("--watch requires an output file (-o)")
	}

	render := func() error {
		diagram, err := buildDiagram(cmdCtx, nodesFile, opts)
		if err != nil {
			return err
		}
		if opts.OutputPath == "" {
			cmdCtx.Renderer.Println(diagram)
			return nil
		}
		if err := os.WriteFile(opts.OutputPath, []byte(diagram+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.OutputPath, err)
		}
		if cfg.Verbose {
			cmdCtx.Logger.Info("diagram written", "path", opts.OutputPath)
		}
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}
	return watchAndRender(cmd, cmdCtx, nodesFile, render)
}

// watchAndRender re-runs render on every change to the nodes file until the
// command context is cancelled.
func watchAndRender(cmd *cobra.Command, cmdCtx *CommandContext, nodesFile string, render func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(nodesFile); err != nil {
		return fmt.Errorf("watching %s: %w", nodesFile, err)
	}

	cmdCtx.Renderer.Printf("Watching %s for changes (Ctrl+C to stop)\n", nodesFile)

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Editors that replace the file drop the watch; re-add it.
			_ = watcher.Add(nodesFile)
			if err := render(); err != nil {
				cmdCtx.Renderer.Warnf("regeneration failed: %v", err)
				continue
			}
			cmdCtx.Logger.Info("diagram regenerated", "trigger", event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Renderer.Warnf("watch error: %v", err)
		}
	}
}

// buildDiagram loads the lineage file, applies any focus filter, and
// renders the Mermaid text.
func buildDiagram(cmdCtx *CommandContext, nodesFile string, opts *GenerateOptions) (string, error) {
	cfg := cmdCtx.Cfg

	g, nodes, conns, err := loadLineage(nodesFile)
	if err != nil {
		return "", err
	}

	if len(opts.Focus) > 0 {
		if err := validateFocus(g, opts.Focus); err != nil {
			return "", err
		}

		if opts.DirectOnly {
			nodes, conns = g.DirectSubgraph(opts.Focus)
		} else {
			filterDir := cfg.FilterDirection
			if opts.FilterDirection != "" {
				filterDir = opts.FilterDirection
			}
			dir, err := graph.ParseDirection(strings.ToLower(filterDir))
			if err != nil {
				return "", err
			}
			depth := cfg.Depth
			if opts.Depth >= 0 {
				depth = opts.Depth
			}
			nodes, conns = g.FilteredSubgraph(opts.Focus, dir, depth)
		}
	} else if opts.DirectOnly {
		return "", fmt.Errorf("--direct-only requires --focus")
	}

	dirToken := cfg.Direction
	if opts.Direction != "" {
		dirToken = opts.Direction
	}
	diagramDir, err := mermaid.ParseDirection(dirToken)
	if err != nil {
		return "", err
	}

	gen := mermaid.NewGenerator(nodes, conns, diagramDir)
	for level, style := range cfg.LevelStyles {
		gen.SetLevelStyle(model.DataLevel(level), style)
	}
	return gen.Generate(), nil
}

// validateFocus rejects focus ids that are not in the graph.
func validateFocus(g *graph.Graph, focus []string) error {
	var unknown []string
	for _, id := range focus {
		if !g.HasNode(id) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown focus node(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}
