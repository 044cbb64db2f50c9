package config

import (
	"fmt"
	"strings"
)

var validDirections = map[string]bool{"LR": true, "RL": true, "TB": true, "BT": true}

var validFilterDirections = map[string]bool{"upstream": true, "downstream": true, "both": true}

var validOutputs = map[string]bool{"auto": true, "text": true, "markdown": true, "json": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.NodesFile == "" {
		return fmt.Errorf("nodes_file is required")
	}
	if !validDirections[strings.ToUpper(c.Direction)] {
		return fmt.Errorf("invalid direction %q (expected LR, RL, TB, or BT)", c.Direction)
	}
	if !validFilterDirections[strings.ToLower(c.FilterDirection)] {
		return fmt.Errorf("invalid filter_direction %q (expected upstream, downstream, or both)", c.FilterDirection)
	}
	if c.OutputFormat != "" && !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output %q (expected auto, text, markdown, or json)", c.OutputFormat)
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth must be zero or positive, got %d", c.Depth)
	}
	return nil
}
