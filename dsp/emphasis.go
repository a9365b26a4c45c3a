package dsp

import "math"

const minEmphasis = 0.5

// computeWeights rebuilds the per-bar emphasis weights: a Gaussian bump
// centered on the expected energy range, floored so no bar is ever
// suppressed below half intensity.
func (p *Pipeline) computeWeights() {
	bars := float64(len(p.weightBuf))

	center := p.cfg.FreqMean * bars
	sigma := math.Max(p.cfg.FreqStd*bars, 1.0)

	for i := range p.weightBuf {
		z := (float64(i) - center) / sigma
		w := math.Exp(-0.5 * z * z)

		p.weightBuf[i] = math.Max(minEmphasis, math.Min(1.0, w))
	}
}
