package bot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
watermark:
  logo_path: assets/logo.png
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Core.Telegram.Token)
	assert.Equal(t, "longpoll", cfg.Core.Telegram.RunMode)
	assert.Equal(t, "assets/logo.png", cfg.Watermark.LogoPath)
	assert.Equal(t, 60, cfg.Watermark.DefaultDarkness)
	assert.Equal(t, "bottom-left", cfg.Watermark.DefaultCorner)
	assert.Equal(t, 95, cfg.Watermark.JPEGQuality)
	assert.Equal(t, "Watermark Bot", cfg.Branding.Name)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
watermark:
  logo_path: /opt/logo.png
  default_darkness: 40
  default_corner: top-right
  jpeg_quality: 85
branding:
  name: Stamper
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Watermark.DefaultDarkness)
	assert.Equal(t, "top-right", cfg.Watermark.DefaultCorner)
	assert.Equal(t, 85, cfg.Watermark.JPEGQuality)
	assert.Equal(t, "Stamper", cfg.Branding.Name)
}

func TestLoadConfigClampsOutOfRange(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
watermark:
  logo_path: assets/logo.png
  default_darkness: 150
  jpeg_quality: 500
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Watermark.DefaultDarkness)
	assert.Equal(t, 95, cfg.Watermark.JPEGQuality)
}

func TestLoadConfigRequiresLogoPath(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logo_path")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
