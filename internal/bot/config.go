package bot

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/markbot/core/config"
	"github.com/m3rciful/markbot/internal/watermark"
)

// WatermarkConfig holds compositing defaults and the logo asset location.
type WatermarkConfig struct {
	LogoPath string `yaml:"logo_path" envconfig:"WATERMARK_LOGO_PATH"`
	// DefaultDarkness seeds new sessions; 0 means "use the built-in 60".
	DefaultDarkness int    `yaml:"default_darkness" envconfig:"WATERMARK_DEFAULT_DARKNESS"`
	DefaultCorner   string `yaml:"default_corner" envconfig:"WATERMARK_DEFAULT_CORNER"`
	JPEGQuality     int    `yaml:"jpeg_quality" envconfig:"WATERMARK_JPEG_QUALITY"`
}

// BrandingConfig carries the presentation-only knobs that used to be code
// forks between bot variants.
type BrandingConfig struct {
	Name string `yaml:"name" envconfig:"BOT_NAME"`
}

// Config aggregates the core runtime configuration with the app sections.
type Config struct {
	Core      coreconfig.Config `yaml:",inline"`
	Watermark WatermarkConfig   `yaml:"watermark"`
	Branding  BrandingConfig    `yaml:"branding"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config { return &c.Core }

// LoadConfig reads configuration from a YAML file and environment variables
// and normalizes both the core and the watermark sections.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	if cfg.Watermark.LogoPath == "" {
		return fmt.Errorf("watermark.logo_path is required")
	}
	if cfg.Watermark.DefaultDarkness <= 0 {
		cfg.Watermark.DefaultDarkness = 60
	}
	if cfg.Watermark.DefaultDarkness > 100 {
		cfg.Watermark.DefaultDarkness = 100
	}
	if cfg.Watermark.DefaultCorner == "" {
		cfg.Watermark.DefaultCorner = string(watermark.CornerDefault)
	}
	if cfg.Watermark.JPEGQuality <= 0 || cfg.Watermark.JPEGQuality > 100 {
		cfg.Watermark.JPEGQuality = watermark.DefaultJPEGQuality
	}
	if cfg.Branding.Name == "" {
		cfg.Branding.Name = "Watermark Bot"
	}
	return nil
}
