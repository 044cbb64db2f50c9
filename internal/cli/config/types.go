// Package config provides configuration management for the LeapLineage CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	NodesFile       string            `koanf:"nodes_file"`
	Direction       string            `koanf:"direction"`
	FilterDirection string            `koanf:"filter_direction"`
	Depth           int               `koanf:"depth"`
	OutputFormat    string            `koanf:"output"`
	Verbose         bool              `koanf:"verbose"`
	LevelStyles     map[string]string `koanf:"level_styles"`
}

// Default configuration values.
const (
	DefaultNodesFile       = "lineage.yaml"
	DefaultDirection       = "LR"
	DefaultFilterDirection = "both"
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
