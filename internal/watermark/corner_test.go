package watermark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCorner(t *testing.T) {
	tests := []struct {
		input    string
		expected Corner
	}{
		{"top-left", CornerTopLeft},
		{"top-right", CornerTopRight},
		{"bottom-left", CornerBottomLeft},
		{"bottom-right", CornerBottomRight},
		{"  Top-Right  ", CornerTopRight},
		{"BOTTOM-RIGHT", CornerBottomRight},
		{"", CornerBottomLeft},
		{"center", CornerBottomLeft},
		{"top", CornerBottomLeft},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseCorner(tt.input), "ParseCorner(%q)", tt.input)
	}
}

func TestCornersListsAllAnchors(t *testing.T) {
	assert.Len(t, Corners(), 4)
	for _, c := range Corners() {
		assert.Equal(t, c, ParseCorner(string(c)))
	}
}

func TestOffset(t *testing.T) {
	const (
		imgW, imgH   = 800, 600
		logoW, logoH = 160, 40
	)
	tests := []struct {
		corner Corner
		x, y   int
	}{
		{CornerTopLeft, 20, 20},
		{CornerTopRight, 620, 20},
		{CornerBottomLeft, 20, 540},
		{CornerBottomRight, 620, 540},
		{Corner("nonsense"), 20, 540},
	}
	for _, tt := range tests {
		x, y := tt.corner.Offset(imgW, imgH, logoW, logoH)
		assert.Equal(t, tt.x, x, "corner %q x", tt.corner)
		assert.Equal(t, tt.y, y, "corner %q y", tt.corner)
	}
}
