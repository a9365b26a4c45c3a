// Package window provides window functions for signal analysis.
//
// See https://wikipedia.org/wiki/Window_function
package window

import "math"

// Function applies a window to a sample buffer in place.
type Function func(buf []float64)

// Rectangle leaves the buffer untouched.
func Rectangle(buf []float64) {}

// CosSum applies a cosine-sum window with coefficient a0.
func CosSum(buf []float64, a0 float64) {
	a1 := 1.0 - a0
	coef := 2.0 * math.Pi / float64(len(buf))

	for n := range buf {
		buf[n] *= a0 - a1*math.Cos(coef*float64(n))
	}
}

// Hann applies a Hann window.
func Hann(buf []float64) {
	CosSum(buf, 0.5)
}

// Hamming applies a Hamming window.
func Hamming(buf []float64) {
	CosSum(buf, 25.0/46.0)
}

// Lanczos applies a Lanczos window.
func Lanczos(buf []float64) {
	size := float64(len(buf))

	for n := range buf {
		x := math.Pi * ((2.0*float64(n))/(size-1.0) - 1.0)
		if x == 0 {
			continue
		}
		buf[n] *= math.Sin(x) / x
	}
}
