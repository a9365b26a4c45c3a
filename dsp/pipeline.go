// Package dsp turns irregular band-energy vectors into smooth, stable
// per-bar draw values.
//
// Input arrives whenever the capture side has a new spectrum; output is
// read on the render loop's own clock. The two sides meet only in the
// target buffer, so only the latest spectrum ever matters.
package dsp

import (
	"math"
	"time"
)

// FilterShape selects the spectral shaping strategy.
type FilterShape int

const (
	// ShapeSpread bleeds energy into neighboring bars with
	// distance-based attenuation.
	ShapeSpread FilterShape = iota

	// ShapeDirectional convolves with a fixed kernel and leans the
	// result toward rising edges.
	ShapeDirectional
)

// Config holds the pipeline parameters. It is immutable for the life of
// a rendering session; swapping BarCount rebuilds every buffer.
type Config struct {
	BarCount       int           // number of bars to produce
	Shape          FilterShape   // shaping filter variant
	SpreadFactor   float64       // attenuation factor for the spread filter
	Intensity      float64       // gain applied to raw input before shaping
	NoiseReduction float64       // integrator memory weight, [0, 1)
	PeakHold       time.Duration // how long a peak holds before decaying
	PeakFallRate   float64       // peak decay per nominal frame
	FreqMean       float64       // normalized center of the emphasis bump
	FreqStd        float64       // normalized width of the emphasis bump
}

// Pipeline owns all per-bar state. Buffers are allocated once per bar
// count so the render path stays allocation free.
type Pipeline struct {
	cfg Config

	rawBuf    []float64   // resampled input, post intensity
	shapedBuf []float64   // after the shaping filter
	kernBuf   []float64   // directional filter scratch
	memBuf    []float64   // integrator memory
	targetBuf []float64   // integrated input, the tick target
	shownBuf  []float64   // values after fall dynamics
	fallBuf   []float64   // fall velocity accumulators
	peakBuf   []float64   // held maxima
	peakTime  []time.Time // when each maximum was last raised
	weightBuf []float64   // static emphasis weights
}

// NewPipeline allocates a pipeline for cfg.
func NewPipeline(cfg Config) *Pipeline {
	p := &Pipeline{}
	p.Configure(cfg)
	return p
}

// Configure applies cfg. A bar count change reallocates and zeroes every
// buffer; any other change keeps state and takes effect on the next
// spectrum or tick. Emphasis weights are always recomputed here, never
// per frame.
func (p *Pipeline) Configure(cfg Config) {
	if cfg.BarCount < 1 {
		cfg.BarCount = 1
	}

	if cfg.BarCount != len(p.shownBuf) {
		p.rawBuf = make([]float64, cfg.BarCount)
		p.shapedBuf = make([]float64, cfg.BarCount)
		p.kernBuf = make([]float64, cfg.BarCount)
		p.memBuf = make([]float64, cfg.BarCount)
		p.targetBuf = make([]float64, cfg.BarCount)
		p.shownBuf = make([]float64, cfg.BarCount)
		p.fallBuf = make([]float64, cfg.BarCount)
		p.peakBuf = make([]float64, cfg.BarCount)
		p.peakTime = make([]time.Time, cfg.BarCount)
		p.weightBuf = make([]float64, cfg.BarCount)
	}

	p.cfg = cfg
	p.computeWeights()
}

// SetBarCount reconfigures the pipeline for n bars, rebuilding all
// per-bar buffers when n differs from the current count.
func (p *Pipeline) SetBarCount(n int) {
	cfg := p.cfg
	cfg.BarCount = n
	p.Configure(cfg)
}

// Bars returns the configured bar count.
func (p *Pipeline) Bars() int {
	return len(p.shownBuf)
}

// AddSpectrum pushes one band-energy vector of any length through
// resampling, shaping, and integration, and raises peaks that the new
// target exceeds. It only writes the target side of the pipeline; the
// displayed side moves on Step.
func (p *Pipeline) AddSpectrum(src []float64, now time.Time) {
	p.resample(src)
	p.shape()

	nr := p.cfg.NoiseReduction

	for i := range p.memBuf {
		p.memBuf[i] = p.memBuf[i]*nr + p.shapedBuf[i]
		p.targetBuf[i] = clamp(p.memBuf[i] * (1.0 - nr))

		if p.targetBuf[i] > p.peakBuf[i] {
			p.peakBuf[i] = p.targetBuf[i]
			p.peakTime[i] = now
		}
	}
}

// Frame copies the weighted display and peak values into dst slices of
// at least Bars() length.
func (p *Pipeline) Frame(bars, peaks []float64) {
	for i := range p.shownBuf {
		bars[i] = p.shownBuf[i] * p.weightBuf[i]
		peaks[i] = p.peakBuf[i] * p.weightBuf[i]
	}
}

// Reset zeroes all per-bar state without touching the configuration.
func (p *Pipeline) Reset() {
	for i := range p.shownBuf {
		p.rawBuf[i] = 0
		p.shapedBuf[i] = 0
		p.memBuf[i] = 0
		p.targetBuf[i] = 0
		p.shownBuf[i] = 0
		p.fallBuf[i] = 0
		p.peakBuf[i] = 0
		p.peakTime[i] = time.Time{}
	}
}

func clamp(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
