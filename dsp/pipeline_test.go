package dsp

import (
	"math/rand"
	"testing"
	"time"
)

func TestIntegrationNoMemoryIsIdentity(t *testing.T) {
	for _, shape := range []FilterShape{ShapeSpread, ShapeDirectional} {
		p := NewPipeline(Config{
			BarCount:     5,
			Shape:        shape,
			SpreadFactor: 1.5,
			Intensity:    1.0,
		})

		// full-scale flat signal, zero noise reduction: one push must
		// land the target exactly on the input
		src := []float64{1, 1, 1, 1, 1}
		p.AddSpectrum(src, time.Now())

		for i, v := range p.targetBuf {
			if v != 1.0 {
				t.Errorf("shape %d bar %d: got %v, want 1.0", shape, i, v)
			}
		}
	}
}

func TestIntegrationDamping(t *testing.T) {
	p := NewPipeline(Config{
		BarCount:       4,
		Shape:          ShapeSpread,
		SpreadFactor:   1.5,
		Intensity:      1.0,
		NoiseReduction: 0.8,
	})

	src := []float64{1, 1, 1, 1}

	p.AddSpectrum(src, time.Now())
	first := p.targetBuf[0]

	if first <= 0 || first >= 1 {
		t.Fatalf("damped first push should land strictly inside (0, 1): %v", first)
	}

	// repeated pushes converge upward toward the input level
	for i := 0; i < 50; i++ {
		p.AddSpectrum(src, time.Now())
	}

	if p.targetBuf[0] <= first {
		t.Errorf("integrator should converge upward: %v <= %v", p.targetBuf[0], first)
	}
	if p.targetBuf[0] > 1.0 {
		t.Errorf("integrator escaped range: %v", p.targetBuf[0])
	}
}

func TestRangeInvariantFuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(0x7a11))

	for trial := 0; trial < 200; trial++ {
		shape := ShapeSpread
		if trial%2 == 1 {
			shape = ShapeDirectional
		}

		p := NewPipeline(Config{
			BarCount:       1 + rng.Intn(32),
			Shape:          shape,
			SpreadFactor:   rng.Float64() * 3,
			Intensity:      rng.Float64() * 4,
			NoiseReduction: rng.Float64() * 0.99,
			PeakFallRate:   rng.Float64() * 0.1,
			FreqMean:       rng.Float64(),
			FreqStd:        rng.Float64(),
		})

		now := time.Now()

		for push := 0; push < 5; push++ {
			src := make([]float64, rng.Intn(64))
			for i := range src {
				src[i] = rng.Float64() * 2
			}

			p.AddSpectrum(src, now)
			now = now.Add(20 * time.Millisecond)
			p.Step(now, 1.2)

			for i := range p.shownBuf {
				check := func(name string, v float64) {
					if v < 0 || v > 1 {
						t.Fatalf("trial %d %s[%d] out of range: %v", trial, name, i, v)
					}
				}

				check("raw", p.rawBuf[i])
				check("shaped", p.shapedBuf[i])
				check("target", p.targetBuf[i])
				check("shown", p.shownBuf[i])
				check("peak", p.peakBuf[i])
			}
		}

		bars := make([]float64, p.Bars())
		peaks := make([]float64, p.Bars())
		p.Frame(bars, peaks)

		for i := range bars {
			if bars[i] < 0 || bars[i] > 1 || peaks[i] < 0 || peaks[i] > 1 {
				t.Fatalf("trial %d weighted frame out of range: %v %v", trial, bars[i], peaks[i])
			}
		}
	}
}

func TestResetMidDecay(t *testing.T) {
	p := NewPipeline(Config{
		BarCount:       6,
		Shape:          ShapeSpread,
		SpreadFactor:   1.5,
		Intensity:      1.0,
		NoiseReduction: 0.5,
		PeakHold:       time.Second,
		PeakFallRate:   0.05,
	})

	now := time.Now()

	p.AddSpectrum([]float64{1, 1, 1, 1, 1, 1}, now)
	p.Step(now.Add(33*time.Millisecond), 2.0)
	p.AddSpectrum(nil, now.Add(50*time.Millisecond))
	p.Step(now.Add(66*time.Millisecond), 2.0)
	p.Step(now.Add(99*time.Millisecond), 2.0)

	decaying := false
	for i := range p.shownBuf {
		if p.shownBuf[i] > 0 || p.fallBuf[i] > 0 {
			decaying = true
		}
	}
	if !decaying {
		t.Fatal("expected mid-decay state before reset")
	}

	p.Reset()

	for i := range p.shownBuf {
		if p.shownBuf[i] != 0 || p.peakBuf[i] != 0 || p.fallBuf[i] != 0 {
			t.Errorf("bar %d not zeroed: shown=%v peak=%v vel=%v",
				i, p.shownBuf[i], p.peakBuf[i], p.fallBuf[i])
		}
		if !p.peakTime[i].IsZero() {
			t.Errorf("bar %d peak timestamp not cleared", i)
		}
	}
}

func TestSetBarCountReallocates(t *testing.T) {
	p := newTestPipeline(8, ShapeSpread)

	p.AddSpectrum([]float64{1, 1, 1, 1, 1, 1, 1, 1}, time.Now())

	p.SetBarCount(12)

	if p.Bars() != 12 {
		t.Fatalf("got %d bars, want 12", p.Bars())
	}

	for i := range p.shownBuf {
		if p.targetBuf[i] != 0 || p.memBuf[i] != 0 {
			t.Errorf("bar %d kept stale state after realloc", i)
		}
	}

	// same count is a no-op that keeps state
	p.AddSpectrum(make([]float64, 12), time.Now())
	p.memBuf[0] = 0.25
	p.SetBarCount(12)

	if p.memBuf[0] != 0.25 {
		t.Error("same-count reconfigure should keep buffers")
	}
}
