// Package fft wraps gonum's fourier transform behind a reusable plan.
package fft

import "gonum.org/v1/gonum/dsp/fourier"

// Plan binds an input sample buffer to an output coefficient buffer.
// The output must hold len(input)/2+1 coefficients.
type Plan struct {
	Input  []float64
	Output []complex128

	fft *fourier.FFT
}

// NewPlan returns a plan over the given buffers.
func NewPlan(input []float64, output []complex128) *Plan {
	return &Plan{
		Input:  input,
		Output: output,
		fft:    fourier.NewFFT(len(input)),
	}
}

// Execute runs the transform, filling the plan's output buffer.
func (p *Plan) Execute() {
	p.fft.Coefficients(p.Output, p.Input)
}
