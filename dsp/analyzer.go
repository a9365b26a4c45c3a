package dsp

import (
	"math"

	"github.com/winterveil/bandglow/util"
)

// gainWindow is how many frames of spectrum peaks the auto-gain
// normalizer remembers.
const gainWindow = 120

// AnalyzerConfig configures band-energy extraction from FFT output.
type AnalyzerConfig struct {
	SampleRate float64 // audio sample rate
	SampleSize int     // samples per FFT slice
	Bands      int     // energy bands to produce
}

// Analyzer groups FFT magnitudes into logarithmically spaced band
// energies normalized to roughly [0, 1]. Normalization is adaptive: a
// moving window of recent frame peaks sets the reference level, so quiet
// and loud sources fill the display alike.
type Analyzer struct {
	cfg     AnalyzerConfig
	fftSize int

	loCuts []int
	hiCuts []int

	out  []float64
	gain *util.MovingWindow
}

// NewAnalyzer builds an analyzer and its band cut table.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	if cfg.Bands < 1 {
		cfg.Bands = 1
	}

	az := &Analyzer{
		cfg:     cfg,
		fftSize: cfg.SampleSize/2 + 1,
		loCuts:  make([]int, cfg.Bands),
		hiCuts:  make([]int, cfg.Bands),
		out:     make([]float64, cfg.Bands),
		gain:    util.NewMovingWindow(gainWindow),
	}

	az.recalculate()

	return az
}

// Bands returns the number of band energies Process produces.
func (az *Analyzer) Bands() int {
	return az.cfg.Bands
}

// recalculate rebuilds the log-spaced FFT cut indices, one [lo, hi)
// range per band. Bin 0 (DC) is always excluded.
func (az *Analyzer) recalculate() {
	maxBin := float64(az.fftSize - 1)
	bands := float64(az.cfg.Bands)

	for b := 0; b < az.cfg.Bands; b++ {
		lo := int(math.Pow(maxBin, float64(b)/bands))
		hi := int(math.Pow(maxBin, float64(b+1)/bands))

		if lo < 1 {
			lo = 1
		}
		if hi <= lo {
			hi = lo + 1
		}
		if hi > az.fftSize {
			hi = az.fftSize
		}

		az.loCuts[b] = lo
		az.hiCuts[b] = hi
	}
}

// Process converts one FFT buffer into band energies. The returned slice
// is reused across calls.
func (az *Analyzer) Process(fftBuf []complex128) []float64 {
	framePeak := 0.0

	for b := range az.out {
		mag := 0.0
		count := 0

		for x := az.loCuts[b]; x < az.hiCuts[b] && x < len(fftBuf); x++ {
			mag += math.Hypot(real(fftBuf[x]), imag(fftBuf[x]))
			count++
		}

		if count > 0 {
			mag /= float64(count)
		}

		az.out[b] = mag
		if mag > framePeak {
			framePeak = mag
		}
	}

	if framePeak <= 0 {
		for b := range az.out {
			az.out[b] = 0
		}
		return az.out
	}

	mean, sd := az.gain.Update(framePeak)

	// two deviations above the mean peak maps to full scale
	ref := math.Max(mean+2.0*sd, 1e-9)

	for b := range az.out {
		v := az.out[b] / ref
		// perceptual lift for the low end
		az.out[b] = math.Min(1.0, math.Sqrt(v))
	}

	return az.out
}
