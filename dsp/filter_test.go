package dsp

import (
	"math"
	"testing"
)

func TestSpreadImpulse(t *testing.T) {
	p := NewPipeline(Config{
		BarCount:     8,
		Shape:        ShapeSpread,
		SpreadFactor: 1.5,
		Intensity:    1.0,
	})

	copy(p.rawBuf, []float64{0, 0, 0, 1, 0, 0, 0, 0})
	p.shape()

	// self term survives the max merge untouched
	if p.shapedBuf[3] != 1.0 {
		t.Errorf("impulse bar: got %v, want 1.0", p.shapedBuf[3])
	}

	// first neighbors get 1/(1.5*1*1.5)
	want := 1.0 / (1.5 * 1.0 * 1.5)
	for _, i := range []int{2, 4} {
		if math.Abs(p.shapedBuf[i]-want) > 1e-9 {
			t.Errorf("bar %d: got %v, want %v", i, p.shapedBuf[i], want)
		}
	}

	// energy falls off with distance
	if p.shapedBuf[1] >= p.shapedBuf[2] || p.shapedBuf[0] >= p.shapedBuf[1] {
		t.Errorf("attenuation not monotonic: %v", p.shapedBuf)
	}
	if p.shapedBuf[5] >= p.shapedBuf[4] {
		t.Errorf("attenuation not monotonic right of impulse: %v", p.shapedBuf)
	}
}

func TestSpreadZeroFactorIsCopy(t *testing.T) {
	p := NewPipeline(Config{
		BarCount:  4,
		Shape:     ShapeSpread,
		Intensity: 1.0,
	})

	copy(p.rawBuf, []float64{0.1, 0.9, 0.0, 0.4})
	p.shape()

	for i, want := range p.rawBuf {
		if p.shapedBuf[i] != want {
			t.Errorf("bar %d: got %v, want copy %v", i, p.shapedBuf[i], want)
		}
	}
}

func TestSpreadNeverLowers(t *testing.T) {
	p := NewPipeline(Config{
		BarCount:     16,
		Shape:        ShapeSpread,
		SpreadFactor: 0.4,
		Intensity:    1.0,
	})

	for i := range p.rawBuf {
		p.rawBuf[i] = float64(i%5) / 5.0
	}
	p.shape()

	for i := range p.rawBuf {
		if p.shapedBuf[i] < p.rawBuf[i] {
			t.Errorf("bar %d lowered: %v < %v", i, p.shapedBuf[i], p.rawBuf[i])
		}
		if p.shapedBuf[i] > 1.0 {
			t.Errorf("bar %d out of range: %v", i, p.shapedBuf[i])
		}
	}
}

func TestDirectionalFullScaleUniform(t *testing.T) {
	p := NewPipeline(Config{
		BarCount:  9,
		Shape:     ShapeDirectional,
		Intensity: 1.0,
	})

	for i := range p.rawBuf {
		p.rawBuf[i] = 1.0
	}
	p.shape()

	// flat input has no slope, and a full-scale signal passes the soft
	// clip at exactly 1
	for i, v := range p.shapedBuf {
		if math.Abs(v-1.0) > 1e-9 {
			t.Errorf("bar %d: got %v, want 1.0", i, v)
		}
	}
}

func TestDirectionalLeansTowardRisingEdge(t *testing.T) {
	p := NewPipeline(Config{
		BarCount:  7,
		Shape:     ShapeDirectional,
		Intensity: 1.0,
	})

	// ramp up: every interior bar has a positive forward slope
	for i := range p.rawBuf {
		p.rawBuf[i] = float64(i) / 6.0
	}
	p.shape()

	for i := 1; i < 6; i++ {
		if p.shapedBuf[i] <= p.kernBuf[i] {
			t.Errorf("bar %d should lean above kernel output: %v <= %v",
				i, p.shapedBuf[i], p.kernBuf[i])
		}
	}
}

func TestDirectionalRange(t *testing.T) {
	p := NewPipeline(Config{
		BarCount:  12,
		Shape:     ShapeDirectional,
		Intensity: 1.0,
	})

	for i := range p.rawBuf {
		p.rawBuf[i] = float64((i*7)%13) / 12.0
	}
	p.shape()

	for i, v := range p.shapedBuf {
		if v < 0 || v > 1 {
			t.Errorf("bar %d out of range: %v", i, v)
		}
	}
}
