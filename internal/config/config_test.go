package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	viper.Reset()
	if yaml == "" {
		return Load(filepath.Join(t.TempDir(), "absent.yaml"))
	}
	path := filepath.Join(t.TempDir(), "xpec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return Load(path)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, "")
	require.NoError(t, err)

	assert.Equal(t, "System Specification", cfg.Title)
	assert.Equal(t, "cover", cfg.BackgroundFit)
	assert.Equal(t, 0.55, cfg.Overlay.Opacity)
	assert.Empty(t, cfg.BackgroundImage)

	w, h, err := cfg.Size()
	require.NoError(t, err)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 675, h)
}

func TestLoadFileOverrides(t *testing.T) {
	cfg, err := load(t, `
title: "Gaming Rig"
image_size: "1920x1080"
background_fit: contain
background_overlay:
  color: "#000000"
  opacity: 0.3
accent_color: "#ff6b35"
`)
	require.NoError(t, err)

	assert.Equal(t, "Gaming Rig", cfg.Title)
	assert.Equal(t, "contain", cfg.BackgroundFit)
	assert.Equal(t, "#000000", cfg.Overlay.Color)
	assert.Equal(t, 0.3, cfg.Overlay.Opacity)
	assert.Equal(t, "#ff6b35", cfg.AccentColor)
	// Untouched keys keep their defaults.
	assert.Equal(t, "#e8ecf2", cfg.TextColor)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XPEC_TITLE", "From Env")
	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Title)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := load(t, "background_fit: tiled\n")
	assert.ErrorContains(t, err, "background_fit")

	_, err = load(t, "background_overlay:\n  opacity: 1.5\n")
	assert.ErrorContains(t, err, "opacity")

	_, err = load(t, "image_size: huge\n")
	assert.ErrorContains(t, err, "image_size")
}
