package extract

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/syllabus/pkg/formatting"
)

// Config controls PDF validation and the scanned-document fallback.
type Config struct {
	MaxFileSize string `toml:"max_file_size"`
	// ScannedThreshold is the minimum character count of the first page's
	// text layer below which the PDF is treated as scanned.
	ScannedThreshold int    `toml:"scanned_threshold"`
	OCRLanguage      string `toml:"ocr_language"`
	OCRPages         int    `toml:"ocr_pages"`
	VisionPages      int    `toml:"vision_pages"`
	DPI              int    `toml:"dpi"`

	maxBytes int64
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	MaxFileSize      string
	ScannedThreshold string
	OCRLanguage      string
	OCRPages         string
	VisionPages      string
	DPI              string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.MaxFileSize != "" {
		c.MaxFileSize = overlay.MaxFileSize
	}
	if overlay.ScannedThreshold != 0 {
		c.ScannedThreshold = overlay.ScannedThreshold
	}
	if overlay.OCRLanguage != "" {
		c.OCRLanguage = overlay.OCRLanguage
	}
	if overlay.OCRPages != 0 {
		c.OCRPages = overlay.OCRPages
	}
	if overlay.VisionPages != 0 {
		c.VisionPages = overlay.VisionPages
	}
	if overlay.DPI != 0 {
		c.DPI = overlay.DPI
	}
}

// MaxFileBytes returns MaxFileSize in bytes. Valid after Finalize.
func (c *Config) MaxFileBytes() int64 {
	return c.maxBytes
}

func (c *Config) loadDefaults() {
	if c.MaxFileSize == "" {
		c.MaxFileSize = "100MB"
	}
	if c.ScannedThreshold == 0 {
		c.ScannedThreshold = 50
	}
	if c.OCRLanguage == "" {
		c.OCRLanguage = "chi_sim+eng"
	}
	if c.OCRPages == 0 {
		c.OCRPages = 20
	}
	if c.VisionPages == 0 {
		c.VisionPages = 3
	}
	if c.DPI == 0 {
		c.DPI = 200
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MaxFileSize != "" {
		if v := os.Getenv(env.MaxFileSize); v != "" {
			c.MaxFileSize = v
		}
	}
	if env.OCRLanguage != "" {
		if v := os.Getenv(env.OCRLanguage); v != "" {
			c.OCRLanguage = v
		}
	}

	setInt := func(name string, dst *int) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setInt(env.ScannedThreshold, &c.ScannedThreshold)
	setInt(env.OCRPages, &c.OCRPages)
	setInt(env.VisionPages, &c.VisionPages)
	setInt(env.DPI, &c.DPI)
}

func (c *Config) validate() error {
	n, err := formatting.ParseBytes(c.MaxFileSize)
	if err != nil {
		return fmt.Errorf("invalid max_file_size: %w", err)
	}
	if n <= 0 {
		return fmt.Errorf("max_file_size must be positive")
	}
	c.maxBytes = n

	if c.ScannedThreshold < 0 {
		return fmt.Errorf("scanned_threshold must not be negative")
	}
	if c.OCRPages < 1 {
		return fmt.Errorf("ocr_pages must be at least 1")
	}
	if c.VisionPages < 0 {
		return fmt.Errorf("vision_pages must not be negative")
	}
	if c.DPI < 72 || c.DPI > 600 {
		return fmt.Errorf("dpi must be between 72 and 600, got %d", c.DPI)
	}
	return nil
}
