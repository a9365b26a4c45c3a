package bandglow

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/winterveil/bandglow/dsp"
)

// Config defines one bandglow run. Values map 1:1 onto the YAML config
// file; flags override whatever the file set.
type Config struct {
	// Backend is the backend name from list-backends
	Backend string `yaml:"backend"`
	// Device is the device name from list-devices
	Device string `yaml:"device"`

	// SampleRate is the rate at which samples are read
	SampleRate float64 `yaml:"sample_rate"`
	// SampleSize is the number of samples per analysis slice
	SampleSize int `yaml:"sample_size"`
	// Bands is the number of band energies the analyzer produces
	Bands int `yaml:"bands"`

	// FrameRate caps drawing, in frames per second
	FrameRate int `yaml:"frame_rate"`

	// BarWidth is the bar width in columns
	BarWidth int `yaml:"bar_width"`
	// SpaceWidth is the spacing width in columns
	SpaceWidth int `yaml:"space_width"`

	// Filter picks the shaping filter: spread or directional
	Filter string `yaml:"filter"`
	// SpreadFactor controls spread filter attenuation
	SpreadFactor float64 `yaml:"spread_factor"`
	// Intensity is the input gain before shaping
	Intensity float64 `yaml:"intensity"`
	// NoiseReduction damps the temporal integrator, [0, 1)
	NoiseReduction float64 `yaml:"noise_reduction"`
	// PeakHoldMs holds peaks this long before they decay
	PeakHoldMs int `yaml:"peak_hold_ms"`
	// PeakFallRate is peak decay per nominal frame
	PeakFallRate float64 `yaml:"peak_fall_rate"`
	// FreqMean centers the emphasis bump, normalized [0, 1]
	FreqMean float64 `yaml:"freq_mean"`
	// FreqStd widens the emphasis bump, normalized [0, 1]
	FreqStd float64 `yaml:"freq_std"`
}

// NewZeroConfig returns the defaults: a mono 44.1k capture shaped for
// speech, drawn at 30fps.
func NewZeroConfig() Config {
	return Config{
		SampleRate:     44100,
		SampleSize:     1024,
		Bands:          64,
		FrameRate:      30,
		BarWidth:       2,
		SpaceWidth:     1,
		Filter:         "spread",
		SpreadFactor:   1.5,
		Intensity:      1.0,
		NoiseReduction: 0.77,
		PeakHoldMs:     600,
		PeakFallRate:   0.015,
		FreqMean:       0.35,
		FreqStd:        0.25,
	}
}

// Load merges a YAML config file into cfg.
func (cfg *Config) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return errors.Wrap(err, "failed to parse config file")
	}

	return nil
}

// Sanitize validates and normalizes the configuration.
func (cfg *Config) Sanitize() error {
	if cfg.SampleSize < 4 {
		return errors.New("sample size too small (4+ required)")
	}

	if cfg.SampleRate < float64(cfg.SampleSize) {
		return errors.New("sample rate lower than sample size")
	}

	if cfg.Bands < 1 {
		return errors.New("need at least one band")
	}

	switch cfg.Filter {
	case "spread", "directional":
	default:
		return errors.Errorf("unknown filter %q (spread or directional)", cfg.Filter)
	}

	if cfg.NoiseReduction < 0 || cfg.NoiseReduction >= 1 {
		return errors.New("noise reduction must be in [0, 1)")
	}

	if cfg.PeakHoldMs < 0 {
		return errors.New("peak hold must not be negative")
	}

	if cfg.PeakFallRate < 0 {
		return errors.New("peak fall rate must not be negative")
	}

	if cfg.FreqMean < 0 || cfg.FreqMean > 1 {
		return errors.New("freq mean must be in [0, 1]")
	}

	if cfg.FreqStd < 0 || cfg.FreqStd > 1 {
		return errors.New("freq std must be in [0, 1]")
	}

	if cfg.Intensity <= 0 {
		cfg.Intensity = 1.0
	}

	if cfg.FrameRate < 1 {
		cfg.FrameRate = 30
	}

	return nil
}

// FilterShape maps the filter name onto the dsp variant.
func (cfg *Config) FilterShape() dsp.FilterShape {
	if cfg.Filter == "directional" {
		return dsp.ShapeDirectional
	}
	return dsp.ShapeSpread
}

// PipelineConfig builds the dsp configuration for barCount bars.
func (cfg *Config) PipelineConfig(barCount int) dsp.Config {
	return dsp.Config{
		BarCount:       barCount,
		Shape:          cfg.FilterShape(),
		SpreadFactor:   cfg.SpreadFactor,
		Intensity:      cfg.Intensity,
		NoiseReduction: cfg.NoiseReduction,
		PeakHold:       time.Duration(cfg.PeakHoldMs) * time.Millisecond,
		PeakFallRate:   cfg.PeakFallRate,
		FreqMean:       cfg.FreqMean,
		FreqStd:        cfg.FreqStd,
	}
}
