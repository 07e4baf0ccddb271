package bootstrap

import (
	"fmt"

	coreconfig "github.com/m3rciful/markbot/core/config"
	"github.com/m3rciful/markbot/core/logger"
)

// Options control the generic bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	// LogoPath locates the default logo asset; empty skips asset loading.
	LogoPath string

	LoggerInit func(*coreconfig.Config) error
	LoadLogo   func(path string) ([]byte, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	// DefaultLogo is the decode-validated default logo asset bytes.
	DefaultLogo []byte
}

// Run initializes the logger and loads the default logo asset. A missing or
// undecodable asset aborts startup; every session that relies on the default
// logo would fail otherwise, so it is reported once here instead of
// per-request.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	res := &Result{}
	if opts.LogoPath != "" {
		if opts.LoadLogo == nil {
			return nil, fmt.Errorf("bootstrap: LoadLogo is required when LogoPath is set")
		}
		logo, err := opts.LoadLogo(opts.LogoPath)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: logo asset load failed: %w", err)
		}
		res.DefaultLogo = logo
	}

	return res, nil
}
