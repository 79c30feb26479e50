package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("data-dir", "", "")
	fs.String("pointer", "", "")
	fs.String("catalog-url", "", "")
	fs.BoolP("verbose", "v", false, "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultSource, cfg.Source)
	assert.Empty(t, cfg.DataDir)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mtstash.yaml")
	content := "data_dir: /srv/tensors\nsource: observatory\nverbose: true\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "/srv/tensors", cfg.DataDir)
	assert.Equal(t, "observatory", cfg.Source)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mtstash.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("source: from-file\n"), 0o644))

	t.Setenv("MTSTASH_SOURCE", "from-env")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Source)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()

	t.Setenv("MTSTASH_DATA_DIR", "/from/env")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--data-dir", "/from/flag"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.DataDir)
}

func TestLoadConfig_PointerFlagMapsToPointerPath(t *testing.T) {
	ResetConfig()

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--pointer", "/etc/mtstash.ini"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "/etc/mtstash.ini", cfg.PointerPath)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()

	fs := newFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	// Defaults survive when no flag was set.
	assert.Equal(t, DefaultSource, cfg.Source)
}
