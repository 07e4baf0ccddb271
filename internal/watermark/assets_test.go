package watermark

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLogo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	pngData := solidPNG(t, 30, 30, color.NRGBA{B: 255, A: 255})
	require.NoError(t, os.WriteFile(path, pngData, 0o644))

	data, err := LoadLogo(path)
	require.NoError(t, err)
	assert.Equal(t, pngData, data)
}

func TestLoadLogoMissingFile(t *testing.T) {
	_, err := LoadLogo(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, ErrLogoMissing)
}

func TestLoadLogoCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))

	_, err := LoadLogo(path)
	assert.ErrorIs(t, err, ErrDecode)
}
