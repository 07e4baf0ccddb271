package watermark

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"math"

	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	// logoWidthRatio fixes the logo width at 20% of the canvas width.
	logoWidthRatio = 0.2

	// DefaultJPEGQuality is used when no quality override is configured.
	DefaultJPEGQuality = 95
)

// Compositor renders watermarked images. It carries only immutable encoding
// settings and is safe for concurrent use from any number of goroutines.
type Compositor struct {
	// JPEGQuality in [1,100]; values outside fall back to DefaultJPEGQuality.
	JPEGQuality int
}

// Composite darkens the original by darknessPercent, overlays the logo at
// the given corner and returns the result encoded as JPEG. The original and
// logo must be decodable raster images (JPEG, PNG, GIF or WebP);
// undecodable input fails with ErrDecode, a missing logo with ErrLogoMissing.
func (cp Compositor) Composite(original []byte, darknessPercent int, logo []byte, corner Corner) ([]byte, error) {
	if len(logo) == 0 {
		return nil, ErrLogoMissing
	}

	base, err := decodeNRGBA(original)
	if err != nil {
		return nil, fmt.Errorf("original: %w", err)
	}
	mark, err := decodeNRGBA(logo)
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}

	darken(base, darknessPercent)

	canvas := base.Bounds()
	scaled := scaleLogo(mark, canvas.Dx())
	x, y := corner.Offset(canvas.Dx(), canvas.Dy(), scaled.Bounds().Dx(), scaled.Bounds().Dy())
	target := scaled.Bounds().Add(image.Pt(x, y))
	draw.Draw(base, target, scaled, scaled.Bounds().Min, draw.Over)

	quality := cp.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, base, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate reports whether data carries a decodable raster image header.
// It is the cheap check used before committing bytes into a session.
func Validate(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// decodeNRGBA decodes data and guarantees a straight-alpha NRGBA result,
// adding a fully opaque alpha channel when the source has none.
func decodeNRGBA(data []byte) (*image.NRGBA, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if n, ok := src.(*image.NRGBA); ok {
		return n, nil
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}

// darken composites a uniform black layer with alpha round(255·percent/100)
// over the whole canvas. Since the layer is black, alpha-over reduces each
// channel to (255−alpha)/255 of its value; the canvas becomes fully opaque.
func darken(img *image.NRGBA, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	alpha := uint32(math.Round(255 * float64(percent) / 100))
	keep := 255 - alpha
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = uint8(uint32(pix[i+0]) * keep / 255)
		pix[i+1] = uint8(uint32(pix[i+1]) * keep / 255)
		pix[i+2] = uint8(uint32(pix[i+2]) * keep / 255)
		pix[i+3] = 0xFF
	}
}

// scaleLogo resizes the logo to 20% of the canvas width, preserving aspect
// ratio, with Catmull-Rom resampling for quality.
func scaleLogo(logo *image.NRGBA, canvasWidth int) *image.NRGBA {
	lb := logo.Bounds()
	targetW := int(float64(canvasWidth) * logoWidthRatio)
	if targetW < 1 {
		targetW = 1
	}
	targetH := int(math.Round(float64(lb.Dy()) * float64(targetW) / float64(lb.Dx())))
	if targetH < 1 {
		targetH = 1
	}
	if targetW == lb.Dx() && targetH == lb.Dy() {
		return logo
	}
	dst := image.NewNRGBA(image.Rect(0, 0, targetW, targetH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), logo, lb, xdraw.Src, nil)
	return dst
}
