package dsp

import (
	"math"
	"time"
)

const (
	// nominalFrame is the reference tick interval the decay rates are
	// tuned against, in milliseconds (a 60fps frame).
	nominalFrame = 16.66

	// fallAccel is how much fall velocity a bar gains per nominal frame.
	fallAccel = 0.02

	// fallGravity scales the decay curve before noise reduction divides
	// it back down.
	fallGravity = 1.5

	// maxFrameScale caps the frame scale so a stalled loop (window
	// backgrounded, debugger attached) resumes with a bounded jump
	// instead of one giant decay step.
	maxFrameScale = 4.0
)

// FrameScale normalizes a measured tick interval to the nominal frame,
// so decay speed looks the same regardless of actual frame cadence.
func FrameScale(dt time.Duration) float64 {
	scale := float64(dt) / float64(time.Millisecond) / nominalFrame
	return math.Min(scale, maxFrameScale)
}

// Step advances the displayed side of the pipeline by one frame: fall
// dynamics toward the current targets, then peak hold-and-decay. scale
// is the FrameScale of the elapsed tick interval.
func (p *Pipeline) Step(now time.Time, scale float64) {
	gMod := fallGravity / math.Max(0.1, p.cfg.NoiseReduction)

	for i := range p.shownBuf {
		target := p.targetBuf[i]
		prev := p.shownBuf[i]

		if target < prev {
			// quadratic-in-velocity release, floored at the target so
			// the bar never undershoots
			vel := p.fallBuf[i]
			candidate := prev * (1.0 - vel*vel*gMod)
			p.shownBuf[i] = math.Max(target, candidate)
			p.fallBuf[i] += fallAccel * scale
		} else {
			p.shownBuf[i] = target
			p.fallBuf[i] = 0
		}

		if now.Sub(p.peakTime[i]) > p.cfg.PeakHold {
			p.peakBuf[i] -= p.cfg.PeakFallRate * scale
		}

		// a peak is never shown below its bar
		if p.peakBuf[i] < p.shownBuf[i] {
			p.peakBuf[i] = p.shownBuf[i]
		}
	}
}
