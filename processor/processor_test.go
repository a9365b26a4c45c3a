package processor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/winterveil/bandglow/dsp"
)

type testOutput struct {
	mu     sync.Mutex
	bins   int
	writes int
	last   []float64
}

func (o *testOutput) Bins() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bins
}

func (o *testOutput) Write(bars, peaks []float64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.writes++
	o.last = append(o.last[:0], bars...)
	return nil
}

func (o *testOutput) snapshot() (int, []float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last := append([]float64(nil), o.last...)
	return o.writes, last
}

func newTestProcessor(bins, rate int) (*Processor, *testOutput) {
	out := &testOutput{bins: bins}

	pipe := dsp.NewPipeline(dsp.Config{
		BarCount:     bins,
		Shape:        dsp.ShapeSpread,
		SpreadFactor: 1.5,
		Intensity:    1.0,
		PeakHold:     time.Second,
		PeakFallRate: 0.02,
	})

	proc := New(Config{
		FrameRate: rate,
		Pipeline:  pipe,
		Output:    out,
	})

	return proc, out
}

func TestProcessorDrawsThrottled(t *testing.T) {
	proc, out := newTestProcessor(8, 50)

	proc.Start(context.Background())
	defer proc.Stop()

	proc.AddSpectrum([]float64{1, 1, 1, 1, 1, 1, 1, 1})

	time.Sleep(300 * time.Millisecond)

	writes, _ := out.snapshot()

	// 50fps over 300ms is 15 frames; allow generous slack below and
	// reject anything past the cap
	if writes < 5 {
		t.Errorf("too few frames: %d", writes)
	}
	if writes > 18 {
		t.Errorf("frame cap exceeded: %d writes in 300ms at 50fps", writes)
	}
}

func TestProcessorWritesWeightedValues(t *testing.T) {
	proc, out := newTestProcessor(4, 100)

	proc.Start(context.Background())
	defer proc.Stop()

	proc.AddSpectrum([]float64{1, 1, 1, 1})
	time.Sleep(100 * time.Millisecond)

	_, last := out.snapshot()
	if len(last) != 4 {
		t.Fatalf("frame width: got %d, want 4", len(last))
	}

	for i, v := range last {
		if v <= 0 || v > 1 {
			t.Errorf("bar %d: got %v, want (0, 1]", i, v)
		}
	}
}

func TestProcessorStartStopIdempotent(t *testing.T) {
	proc, _ := newTestProcessor(4, 100)

	proc.Start(context.Background())
	proc.Start(context.Background())

	proc.Stop()
	proc.Stop()

	// a fresh start after stop works
	proc.Start(context.Background())
	proc.Stop()

	if err := proc.Err(); err != nil {
		t.Errorf("unexpected output error: %v", err)
	}
}

func TestProcessorReset(t *testing.T) {
	proc, out := newTestProcessor(4, 100)

	proc.Start(context.Background())
	defer proc.Stop()

	proc.AddSpectrum([]float64{1, 1, 1, 1})
	time.Sleep(60 * time.Millisecond)

	proc.Reset()
	time.Sleep(60 * time.Millisecond)

	_, last := out.snapshot()
	for i, v := range last {
		if v != 0 {
			t.Errorf("bar %d after reset: got %v, want 0", i, v)
		}
	}
}

func TestProcessorFollowsOutputBins(t *testing.T) {
	proc, out := newTestProcessor(4, 100)

	proc.Start(context.Background())
	defer proc.Stop()

	time.Sleep(50 * time.Millisecond)

	out.mu.Lock()
	out.bins = 9
	out.mu.Unlock()

	time.Sleep(50 * time.Millisecond)

	_, last := out.snapshot()
	if len(last) != 9 {
		t.Errorf("frame width after resize: got %d, want 9", len(last))
	}
}
