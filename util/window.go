// Package util holds small helpers with no audio knowledge.
package util

import "math"

// MovingWindow tracks the mean and standard deviation of the last N
// observations using a fixed ring buffer and running sums.
type MovingWindow struct {
	values []float64
	head   int
	length int

	sum   float64
	sumSq float64
}

// NewMovingWindow returns a moving window over size observations.
func NewMovingWindow(size int) *MovingWindow {
	if size < 1 {
		size = 1
	}

	return &MovingWindow{
		values: make([]float64, size),
	}
}

// Update pushes value into the window, evicting the oldest observation
// once full, and returns the new mean and standard deviation.
func (mw *MovingWindow) Update(value float64) (mean, stddev float64) {
	if mw.length == len(mw.values) {
		old := mw.values[mw.head]
		mw.sum -= old
		mw.sumSq -= old * old
	} else {
		mw.length++
	}

	mw.values[mw.head] = value
	mw.sum += value
	mw.sumSq += value * value

	mw.head++
	if mw.head == len(mw.values) {
		mw.head = 0
	}

	return mw.Stats()
}

// Stats returns the current mean and standard deviation.
func (mw *MovingWindow) Stats() (mean, stddev float64) {
	if mw.length == 0 {
		return 0, 0
	}

	n := float64(mw.length)
	mean = mw.sum / n

	if mw.length > 1 {
		variance := (mw.sumSq / n) - (mean * mean)
		stddev = math.Sqrt(math.Abs(variance))
	}

	return mean, stddev
}

// Mean returns the current mean.
func (mw *MovingWindow) Mean() float64 {
	mean, _ := mw.Stats()
	return mean
}

// Len returns how many observations the window currently holds.
func (mw *MovingWindow) Len() int {
	return mw.length
}

// Cap returns the window capacity.
func (mw *MovingWindow) Cap() int {
	return len(mw.values)
}
