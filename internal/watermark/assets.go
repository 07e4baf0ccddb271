package watermark

import (
	"fmt"
	"os"
)

// LoadLogo reads the default logo asset from disk and verifies it decodes.
// Absence or corruption of the asset is reported once at startup instead of
// per request; callers treat a failure here as fatal.
func LoadLogo(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLogoMissing, path, err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("logo asset %s: %w", path, err)
	}
	return data, nil
}
