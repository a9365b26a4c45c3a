package dsp

import "testing"

func TestAnalyzerCuts(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{
		SampleRate: 44100,
		SampleSize: 1024,
		Bands:      32,
	})

	prevHi := 1
	for b := 0; b < az.Bands(); b++ {
		lo, hi := az.loCuts[b], az.hiCuts[b]

		if lo < 1 {
			t.Errorf("band %d includes DC: lo=%d", b, lo)
		}
		if hi <= lo {
			t.Errorf("band %d empty: [%d, %d)", b, lo, hi)
		}
		if hi > az.fftSize {
			t.Errorf("band %d past fft size: hi=%d", b, hi)
		}
		if lo < prevHi-1 {
			t.Errorf("band %d overlaps heavily with previous: lo=%d prevHi=%d", b, lo, prevHi)
		}
		if hi < prevHi {
			t.Errorf("band %d not monotonic: hi=%d prevHi=%d", b, hi, prevHi)
		}

		prevHi = hi
	}
}

func TestAnalyzerSilence(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{
		SampleRate: 44100,
		SampleSize: 256,
		Bands:      8,
	})

	out := az.Process(make([]complex128, 129))

	for b, v := range out {
		if v != 0 {
			t.Errorf("band %d: got %v from silence, want 0", b, v)
		}
	}
}

func TestAnalyzerToneAndRange(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{
		SampleRate: 44100,
		SampleSize: 256,
		Bands:      8,
	})

	fftBuf := make([]complex128, 129)
	fftBuf[40] = complex(50, 0)

	var out []float64
	for i := 0; i < 10; i++ {
		out = az.Process(fftBuf)
	}

	toneBand := -1
	for b := 0; b < az.Bands(); b++ {
		if az.loCuts[b] <= 40 && 40 < az.hiCuts[b] {
			toneBand = b
		}
	}
	if toneBand < 0 {
		t.Fatal("no band covers the tone bin")
	}

	for b, v := range out {
		if v < 0 || v > 1 {
			t.Errorf("band %d out of range: %v", b, v)
		}
		if b != toneBand && v > out[toneBand] {
			t.Errorf("band %d louder than the tone band: %v > %v", b, v, out[toneBand])
		}
	}

	if out[toneBand] == 0 {
		t.Error("tone band should carry energy")
	}
}
