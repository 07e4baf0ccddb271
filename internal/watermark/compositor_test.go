package watermark

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return img
}

func pixelAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func TestCompositeKeepsCanvasSize(t *testing.T) {
	out, err := Compositor{}.Composite(solidPNG(t, 800, 600, white), 60, solidPNG(t, 400, 100, red), CornerBottomLeft)
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestScaleLogoDimensions(t *testing.T) {
	tests := []struct {
		logoW, logoH int
		canvasW      int
		wantW, wantH int
	}{
		{400, 100, 800, 160, 40},
		{33, 77, 1000, 200, 467},
		{100, 100, 500, 100, 100},
		{3, 3, 10, 2, 2},
	}
	for _, tt := range tests {
		logo := image.NewNRGBA(image.Rect(0, 0, tt.logoW, tt.logoH))
		scaled := scaleLogo(logo, tt.canvasW)
		assert.Equal(t, tt.wantW, scaled.Bounds().Dx(), "%dx%d on %d: width", tt.logoW, tt.logoH, tt.canvasW)
		assert.Equal(t, tt.wantH, scaled.Bounds().Dy(), "%dx%d on %d: height", tt.logoW, tt.logoH, tt.canvasW)
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		percent int
		want    uint8
	}{
		{0, 255},
		{60, 102},
		{100, 0},
		{-10, 255},
		{150, 0},
	}
	for _, tt := range tests {
		img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
		darken(img, tt.percent)
		got := img.NRGBAAt(1, 1)
		assert.Equal(t, tt.want, got.R, "darken(%d) red", tt.percent)
		assert.Equal(t, tt.want, got.G, "darken(%d) green", tt.percent)
		assert.Equal(t, tt.want, got.B, "darken(%d) blue", tt.percent)
		assert.Equal(t, uint8(255), got.A, "darken(%d) alpha", tt.percent)
	}
}

func TestCompositeDarkensCanvas(t *testing.T) {
	// Sample far away from the bottom-left logo region.
	out, err := Compositor{}.Composite(solidPNG(t, 200, 200, white), 60, solidPNG(t, 10, 10, red), CornerBottomLeft)
	require.NoError(t, err)

	px := pixelAt(decodeJPEG(t, out), 150, 30)
	assert.InDelta(t, 102, int(px.R), 8)
	assert.InDelta(t, 102, int(px.G), 8)
	assert.InDelta(t, 102, int(px.B), 8)
}

func TestCompositeOpacityMonotonic(t *testing.T) {
	original := solidPNG(t, 200, 200, white)
	logo := solidPNG(t, 10, 10, red)

	light, err := Compositor{}.Composite(original, 30, logo, CornerBottomLeft)
	require.NoError(t, err)
	dark, err := Compositor{}.Composite(original, 80, logo, CornerBottomLeft)
	require.NoError(t, err)

	lp := pixelAt(decodeJPEG(t, light), 150, 30)
	dp := pixelAt(decodeJPEG(t, dark), 150, 30)
	assert.Greater(t, lp.R, dp.R)
	assert.Greater(t, lp.G, dp.G)
	assert.Greater(t, lp.B, dp.B)
}

func TestCompositePlacement(t *testing.T) {
	// 400x300 canvas, 50x50 logo scales to 80x80 with 20px padding.
	original := solidPNG(t, 400, 300, white)
	logo := solidPNG(t, 50, 50, red)

	tests := []struct {
		corner       Corner
		logoX, logoY int
		bareX, bareY int
	}{
		{CornerTopLeft, 60, 60, 340, 240},
		{CornerTopRight, 340, 60, 60, 240},
		{CornerBottomLeft, 60, 240, 340, 60},
		{CornerBottomRight, 340, 240, 60, 60},
		{Corner("middle"), 60, 240, 340, 60},
	}
	for _, tt := range tests {
		out, err := Compositor{}.Composite(original, 0, logo, tt.corner)
		require.NoError(t, err, "corner %q", tt.corner)
		img := decodeJPEG(t, out)

		at := pixelAt(img, tt.logoX, tt.logoY)
		assert.Greater(t, at.R, uint8(200), "corner %q: logo red", tt.corner)
		assert.Less(t, at.G, uint8(100), "corner %q: logo green", tt.corner)

		off := pixelAt(img, tt.bareX, tt.bareY)
		assert.Greater(t, off.G, uint8(200), "corner %q: canvas untouched", tt.corner)
		assert.Greater(t, off.B, uint8(200), "corner %q: canvas untouched", tt.corner)
	}
}

func TestCompositeDeterministic(t *testing.T) {
	original := solidPNG(t, 100, 80, white)
	logo := solidPNG(t, 20, 20, red)

	a, err := Compositor{}.Composite(original, 60, logo, CornerTopRight)
	require.NoError(t, err)
	b, err := Compositor{}.Composite(original, 60, logo, CornerTopRight)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompositeErrors(t *testing.T) {
	valid := solidPNG(t, 50, 50, white)
	garbage := []byte("not an image at all")

	_, err := Compositor{}.Composite(garbage, 60, valid, CornerBottomLeft)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = Compositor{}.Composite(valid, 60, nil, CornerBottomLeft)
	assert.ErrorIs(t, err, ErrLogoMissing)

	_, err = Compositor{}.Composite(valid, 60, garbage, CornerBottomLeft)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(solidPNG(t, 5, 5, white)))
	assert.ErrorIs(t, Validate([]byte("garbage")), ErrDecode)
	assert.ErrorIs(t, Validate(nil), ErrDecode)
}
