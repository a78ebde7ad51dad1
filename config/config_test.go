package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, []int{240, 360, 480}, cfg.Output.Resolutions)
	assert.Equal(t, 90, cfg.Output.JPEGQuality)
	assert.Equal(t, 30, cfg.Style.PixelsPerModule)
	assert.Equal(t, 0.75, cfg.Style.DotSizeFactor)
	assert.Nil(t, cfg.Style.BatchSeed)
	assert.False(t, cfg.Settings.Debug)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dotqr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  dir: from-file
  resolutions: [100, 200]
style:
  module-color: navy
  dot-size-variance: 0.03
  batch-seed: 7
settings:
  debug: true
`), 0o644))

	t.Setenv("DOTQR_STYLE_EYE_FRAME_COLOR", "#0d3d2e")
	t.Setenv("DOTQR_OUTPUT_DIR", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("out", "", "")
	flags.Int("pixels-per-module", 0, "")
	flags.Int("batch-seed", 0, "")
	require.NoError(t, flags.Parse([]string{"--pixels-per-module=12"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Output.Dir, "env beats file; unchanged flag does not")
	assert.Equal(t, []int{100, 200}, cfg.Output.Resolutions)
	assert.Equal(t, "navy", cfg.Style.ModuleColor)
	assert.Equal(t, "#0d3d2e", cfg.Style.EyeFrameColor)
	assert.Equal(t, 12, cfg.Style.PixelsPerModule)
	assert.InDelta(t, 0.03, cfg.Style.DotSizeVariance, 1e-12)
	require.NotNil(t, cfg.Style.BatchSeed)
	assert.Equal(t, 7, *cfg.Style.BatchSeed)
	assert.True(t, cfg.Logger().Debug)

	require.NoError(t, flags.Parse([]string{"--out=from-flag", "--batch-seed=3"}))
	cfg, err = Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Output.Dir)
	assert.Equal(t, 3, *cfg.Style.BatchSeed)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveWidths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dotqr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  resolutions: [240, 0]\n"), 0o644))
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.IntSlice("resolutions", nil, "")
	require.NoError(t, flags.Parse([]string{"--resolutions=120,-5"}))
	_, err = Load("", flags)
	assert.ErrorIs(t, err, ErrInvalid)
}
