package watermark

import "strings"

// Corner identifies one of the four placement anchors for the logo.
type Corner string

const (
	CornerTopLeft     Corner = "top-left"
	CornerTopRight    Corner = "top-right"
	CornerBottomLeft  Corner = "bottom-left"
	CornerBottomRight Corner = "bottom-right"

	// CornerDefault is the fallback for any unrecognized corner value.
	CornerDefault = CornerBottomLeft
)

// cornerPadding is the fixed distance in pixels from the two edges
// adjacent to the selected corner.
const cornerPadding = 20

// ParseCorner normalizes a raw corner string. Unknown values resolve to
// CornerDefault; invalid input is a fallback here, not an error.
func ParseCorner(raw string) Corner {
	switch Corner(strings.ToLower(strings.TrimSpace(raw))) {
	case CornerTopLeft:
		return CornerTopLeft
	case CornerTopRight:
		return CornerTopRight
	case CornerBottomLeft:
		return CornerBottomLeft
	case CornerBottomRight:
		return CornerBottomRight
	default:
		return CornerDefault
	}
}

// Corners lists the accepted placement anchors in menu order.
func Corners() []Corner {
	return []Corner{CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight}
}

// Offset computes the top-left position of a logo of size logoW×logoH on a
// canvas of size imgW×imgH for the receiver corner.
func (c Corner) Offset(imgW, imgH, logoW, logoH int) (x, y int) {
	switch ParseCorner(string(c)) {
	case CornerTopLeft:
		return cornerPadding, cornerPadding
	case CornerTopRight:
		return imgW - logoW - cornerPadding, cornerPadding
	case CornerBottomRight:
		return imgW - logoW - cornerPadding, imgH - logoH - cornerPadding
	default:
		return cornerPadding, imgH - logoH - cornerPadding
	}
}
