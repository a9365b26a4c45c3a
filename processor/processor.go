// Package processor runs the render loop that turns pipeline state into
// drawn frames, decoupled from the cadence of incoming spectra.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/winterveil/bandglow/dsp"
)

// DefaultFrameRate caps drawing at roughly 30 frames per second.
const DefaultFrameRate = 30

// Output receives completed frames.
type Output interface {
	// Bins reports how many bars the output can show right now.
	Bins() int

	// Write draws one frame of weighted bar and peak values.
	Write(bars, peaks []float64) error
}

// Config configures a Processor.
type Config struct {
	FrameRate int // draw cap in frames per second
	Pipeline  *dsp.Pipeline
	Output    Output
}

// Processor owns the frame timer and the handoff between spectrum
// pushes and frame draws. AddSpectrum may be called from any goroutine;
// all pipeline mutation is serialized under one mutex.
type Processor struct {
	mu sync.Mutex

	pipe *dsp.Pipeline
	out  Output

	interval time.Duration

	barBuf  []float64
	peakBuf []float64

	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
}

// New builds a processor. The pipeline and output are required.
func New(cfg Config) *Processor {
	rate := cfg.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}

	return &Processor{
		pipe:     cfg.Pipeline,
		out:      cfg.Output,
		interval: time.Second / time.Duration(rate),
		barBuf:   make([]float64, cfg.Pipeline.Bars()),
		peakBuf:  make([]float64, cfg.Pipeline.Bars()),
	}
}

// AddSpectrum pushes one band-energy vector into the pipeline. The
// displayed values do not move until the next frame.
func (p *Processor) AddSpectrum(bands []float64) {
	p.mu.Lock()
	p.pipe.AddSpectrum(bands, time.Now())
	p.mu.Unlock()
}

// Start launches the render loop. Calling Start on a running processor
// does nothing.
func (p *Processor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	p.running = true

	go p.run(ctx)
}

// Stop cancels the pending frame and waits for the loop to exit.
// Stopping a stopped processor does nothing.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}

	p.running = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
}

// Reset zeroes all pipeline buffers. The loop keeps running.
func (p *Processor) Reset() {
	p.mu.Lock()
	p.pipe.Reset()
	p.mu.Unlock()
}

// Err returns the output error that stopped the loop, if any.
func (p *Processor) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Processor) run(ctx context.Context) {
	defer close(p.done)

	lastDraw := time.Now()

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case now := <-timer.C:
			elapsed := now.Sub(lastDraw)

			// woke early, go back to sleep for the remainder
			if elapsed < p.interval {
				timer.Reset(p.interval - elapsed)
				continue
			}

			if err := p.frame(now, elapsed); err != nil {
				p.mu.Lock()
				p.err = err
				p.mu.Unlock()
				return
			}

			lastDraw = now
			timer.Reset(p.interval)
		}
	}
}

// frame advances fall dynamics and peak decay, then hands the weighted
// values to the output.
func (p *Processor) frame(now time.Time, elapsed time.Duration) error {
	p.mu.Lock()

	if n := p.out.Bins(); n > 0 && n != p.pipe.Bars() {
		p.pipe.SetBarCount(n)
	}

	if len(p.barBuf) != p.pipe.Bars() {
		p.barBuf = make([]float64, p.pipe.Bars())
		p.peakBuf = make([]float64, p.pipe.Bars())
	}

	p.pipe.Step(now, dsp.FrameScale(elapsed))
	p.pipe.Frame(p.barBuf, p.peakBuf)

	p.mu.Unlock()

	return p.out.Write(p.barBuf, p.peakBuf)
}
