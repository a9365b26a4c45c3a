// Package bandglow assembles the capture, analysis, pipeline, and
// display pieces into a running visualizer.
package bandglow

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/winterveil/bandglow/dsp"
	"github.com/winterveil/bandglow/dsp/window"
	"github.com/winterveil/bandglow/fft"
	"github.com/winterveil/bandglow/graphic"
	"github.com/winterveil/bandglow/input"
	"github.com/winterveil/bandglow/processor"
)

// Run captures audio with the configured backend, analyzes it into band
// energies, and draws bars until the user quits or the stream ends.
func Run(cfg *Config) error {
	display := graphic.NewDisplay(graphic.Config{
		BarWidth:   cfg.BarWidth,
		SpaceWidth: cfg.SpaceWidth,
	})

	if err := display.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize display")
	}
	defer display.Close()

	pipe := dsp.NewPipeline(cfg.PipelineConfig(display.Bins()))

	proc := processor.New(processor.Config{
		FrameRate: cfg.FrameRate,
		Pipeline:  pipe,
		Output:    display,
	})

	// INPUT SETUP

	backend, err := input.InitBackend(cfg.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	device, err := input.GetDevice(backend, cfg.Device)
	if err != nil {
		return err
	}

	sessConfig := input.SessionConfig{
		Device:     device,
		FrameSize:  1,
		SampleSize: cfg.SampleSize,
		SampleRate: cfg.SampleRate,
	}

	session, err := backend.Start(sessConfig)
	if err != nil {
		return errors.Wrap(err, "failed to start input session")
	}

	// ANALYSIS SETUP

	sampleBufs := input.MakeBuffers(1, cfg.SampleSize)
	fftInput := make([]float64, cfg.SampleSize)
	fftOutput := make([]complex128, cfg.SampleSize/2+1)

	plan := fft.NewPlan(fftInput, fftOutput)
	analyzer := dsp.NewAnalyzer(dsp.AnalyzerConfig{
		SampleRate: cfg.SampleRate,
		SampleSize: cfg.SampleSize,
		Bands:      cfg.Bands,
	})

	ctx := display.Start(context.Background())
	defer display.Stop()

	proc.Start(ctx)
	defer proc.Stop()

	var mu sync.Mutex
	kick := make(chan bool, 1)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-kick:
			}

			mu.Lock()
			copy(fftInput, sampleBufs[0])
			mu.Unlock()

			window.Hann(fftInput)
			plan.Execute()

			proc.AddSpectrum(analyzer.Process(fftOutput))
		}
	}()

	if err := session.Start(ctx, sampleBufs, kick, &mu); err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "input session failed")
	}

	return proc.Err()
}
