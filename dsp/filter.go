package dsp

import "math"

const (
	// spreadRadius is how many neighbors to each side a bar can reach.
	spreadRadius = 10

	// spreadCutoff stops propagation once attenuation is negligible.
	spreadCutoff = 0.001

	// directionalDrive sets how hard the soft clip saturates.
	directionalDrive = 1.9

	// directionalGain scales the rising-edge emphasis.
	directionalGain = 0.06
)

// directionalKernel is a symmetric 5-tap smoothing kernel.
var directionalKernel = [5]float64{0.08, 0.22, 0.40, 0.22, 0.08}

func (p *Pipeline) shape() {
	switch p.cfg.Shape {
	case ShapeDirectional:
		p.shapeDirectional()
	default:
		p.shapeSpread()
	}
}

// shapeSpread copies the raw bars and then bleeds each bar into its
// neighbors with distance-based attenuation. Neighbors keep the larger
// of their own value and the bleed, so a strong bar casts a skirt
// without ever lowering anything.
//
// The same max-merge idea drives cava's monstercat filter:
// https://github.com/karlstav/cava/blob/master/cava.c#L157
func (p *Pipeline) shapeSpread() {
	raw, out := p.rawBuf, p.shapedBuf

	copy(out, raw)

	if p.cfg.SpreadFactor <= 0 {
		return
	}

	for i := range raw {
		for j := 1; j <= spreadRadius; j++ {
			att := 1.0 / (p.cfg.SpreadFactor * float64(j) * 1.5)
			if att <= spreadCutoff {
				// attenuation only shrinks with j
				break
			}

			v := raw[i] * att

			if l := i - j; l >= 0 && v > out[l] {
				out[l] = v
			}
			if r := i + j; r < len(out) && v > out[r] {
				out[r] = v
			}
		}
	}

	for i := range out {
		out[i] = clamp(out[i])
	}
}

// shapeDirectional smooths with a fixed kernel, soft-clips the result,
// then tilts interior bars toward whichever neighbor is rising. Edge
// taps clamp to the valid range instead of wrapping.
func (p *Pipeline) shapeDirectional() {
	raw, kern, out := p.rawBuf, p.kernBuf, p.shapedBuf
	n := len(raw)

	norm := math.Tanh(directionalDrive)

	for i := 0; i < n; i++ {
		sum := 0.0
		for k, w := range directionalKernel {
			idx := i + k - 2
			if idx < 0 {
				idx = 0
			} else if idx > n-1 {
				idx = n - 1
			}
			sum += raw[idx] * w
		}

		kern[i] = math.Tanh(sum*directionalDrive) / norm
	}

	copy(out, kern)

	for i := 1; i < n-1; i++ {
		out[i] = kern[i] + (kern[i+1]-kern[i-1])*directionalGain
	}

	for i := range out {
		out[i] = clamp(out[i])
	}
}
