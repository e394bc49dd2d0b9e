package config

// Default configuration values.
const (
	DefaultResolution        = 0.5
	DefaultWorkers           = 2
	DefaultPreviewResolution = 0.5
	DefaultPreviewWidth      = 1600
	DefaultPreviewHeight     = 1000
	DefaultPreviewSimplify   = 1
	DefaultMaterial          = "none"
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Resolution == 0 {
		cfg.Resolution = DefaultResolution
	}
	if cfg.Material == "" {
		cfg.Material = DefaultMaterial
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	applyPreviewDefaults(&cfg.Preview)
}

func applyPreviewDefaults(p *PreviewConfig) {
	if p.Resolution == 0 {
		p.Resolution = DefaultPreviewResolution
	}
	if p.Width == 0 {
		p.Width = DefaultPreviewWidth
	}
	if p.Height == 0 {
		p.Height = DefaultPreviewHeight
	}
	if p.Simplify == 0 {
		p.Simplify = DefaultPreviewSimplify
	}
}
