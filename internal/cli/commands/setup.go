package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/leapstack-labs/leaplineage/internal/cli/config"
	"github.com/leapstack-labs/leaplineage/internal/cli/output"
	"github.com/leapstack-labs/leaplineage/internal/graph"
	"github.com/leapstack-labs/leaplineage/internal/loader"
	"github.com/leapstack-labs/leaplineage/internal/model"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's config and
// output settings.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	depth := 0
	if v := os.Getenv("LEAPLINEAGE_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			depth = n
		}
	}

	return &config.Config{
		NodesFile:       getEnvOrDefault("LEAPLINEAGE_NODES_FILE", config.DefaultNodesFile),
		Direction:       getEnvOrDefault("LEAPLINEAGE_DIRECTION", config.DefaultDirection),
		FilterDirection: getEnvOrDefault("LEAPLINEAGE_FILTER_DIRECTION", config.DefaultFilterDirection),
		Depth:           depth,
		OutputFormat:    os.Getenv("LEAPLINEAGE_OUTPUT"),
		Verbose:         os.Getenv("LEAPLINEAGE_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadLineage reads the nodes file and builds the lineage graph.
func loadLineage(path string) (*graph.Graph, []model.Node, []model.Connection, error) {
	nodes, conns, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading %s: %w", path, err)
	}
	g, err := graph.New(nodes, conns)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building lineage graph from %s: %w", path, err)
	}
	return g, nodes, conns, nil
}
