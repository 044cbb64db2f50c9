package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultNodesFile, cfg.NodesFile)
	assert.Equal(t, DefaultDirection, cfg.Direction)
	assert.Equal(t, DefaultFilterDirection, cfg.FilterDirection)
	assert.Equal(t, 0, cfg.Depth)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	content := `nodes_file: warehouse.yaml
direction: TB
level_styles:
  fact: "fill:#ff0000"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaplineage.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "warehouse.yaml", cfg.NodesFile)
	assert.Equal(t, "TB", cfg.Direction)
	assert.Equal(t, "fill:#ff0000", cfg.LevelStyles["fact"])
	assert.Equal(t, "leaplineage.yaml", GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaplineage.yaml"),
		[]byte("direction: TB\n"), 0o644))
	t.Setenv("LEAPLINEAGE_DIRECTION", "RL")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "RL", cfg.Direction)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("LEAPLINEAGE_DIRECTION", "RL")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("direction", "", "")
	require.NoError(t, flags.Parse([]string{"--direction", "BT"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "BT", cfg.Direction)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("direction", "TB", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	// Flag default must not shadow the config default.
	assert.Equal(t, DefaultDirection, cfg.Direction)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	_, err := LoadConfig("nope.yaml", nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		NodesFile:       "lineage.yaml",
		Direction:       "LR",
		FilterDirection: "both",
		OutputFormat:    "auto",
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Direction = "diagonal"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.FilterDirection = "sideways"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.OutputFormat = "xml"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Depth = -1
	assert.Error(t, bad.Validate())

	bad = valid
	bad.NodesFile = ""
	assert.Error(t, bad.Validate())
}
