package watermark

import "errors"

var (
	// ErrDecode indicates the provided bytes are not a decodable raster image.
	ErrDecode = errors.New("watermark: image is not decodable")
	// ErrLogoMissing indicates the default logo asset is required but unavailable.
	ErrLogoMissing = errors.New("watermark: default logo unavailable")
)
