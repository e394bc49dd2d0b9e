package config

import (
	"fmt"

	"github.com/someline/someline/matter"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration with its defaults applied.
func Validate(cfg *Config) error {
	switch {
	case cfg.Resolution <= 0:
		return &ValidationError{Field: "resolution", Message: "must be positive"}
	case cfg.Workers < 0:
		return &ValidationError{Field: "workers", Message: "must not be negative"}
	}
	if _, err := matter.Lookup(cfg.Material); err != nil {
		return &ValidationError{Field: "material", Message: err.Error()}
	}
	return validatePreview(&cfg.Preview)
}

func validatePreview(p *PreviewConfig) error {
	switch {
	case p.Resolution <= 0:
		return &ValidationError{Field: "preview.resolution", Message: "must be positive"}
	case p.Width <= 0 || p.Height <= 0:
		return &ValidationError{Field: "preview", Message: fmt.Sprintf("image size %dx%d must be positive", p.Width, p.Height)}
	case p.Simplify < 0 || p.Simplify > 1:
		return &ValidationError{Field: "preview.simplify", Message: "must be within (0, 1]"}
	}
	return nil
}
