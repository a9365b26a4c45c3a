// Package graphic draws bar frames on a termbox terminal.
package graphic

import (
	"context"
	"sync"

	"github.com/nsf/termbox-go"
)

// Rune set for bars. Fractional tops use eighth blocks so levels move
// smoothly between rows.
const (
	// BarRune fills bar bodies.
	BarRune = '█'

	// PeakRune marks a held peak above its bar.
	PeakRune = '▔'

	// NumRunes is the number of vertical sub-steps per cell.
	NumRunes = 8
)

var fracRunes = [NumRunes]rune{
	' ',
	'▁',
	'▂',
	'▃',
	'▄',
	'▅',
	'▆',
	'▇',
}

// Config holds the bar geometry.
type Config struct {
	BarWidth   int // columns per bar
	SpaceWidth int // columns between bars
}

// Display renders frames and owns the terminal. It implements
// processor.Output.
type Display struct {
	mu         sync.Mutex
	barWidth   int
	spaceWidth int
}

// NewDisplay returns an uninitialized display with the given geometry.
func NewDisplay(cfg Config) *Display {
	d := &Display{}
	d.SetWidths(cfg.BarWidth, cfg.SpaceWidth)
	return d
}

// Init takes over the terminal. Call Close to restore it.
func (d *Display) Init() error {
	if err := termbox.Init(); err != nil {
		return err
	}

	termbox.SetInputMode(termbox.InputAlt)
	termbox.HideCursor()

	return nil
}

// Close restores the terminal.
func (d *Display) Close() error {
	termbox.Close()
	return nil
}

// Start polls terminal events until the context ends or the user quits.
// The returned context is cancelled on quit.
func (d *Display) Start(ctx context.Context) context.Context {
	dispCtx, cancel := context.WithCancel(ctx)
	go d.eventPoller(dispCtx, cancel)
	return dispCtx
}

// Stop unblocks the event poller.
func (d *Display) Stop() {
	termbox.Interrupt()
}

func (d *Display) eventPoller(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := termbox.PollEvent()

		switch ev.Type {
		case termbox.EventInterrupt:
			return

		case termbox.EventKey:
			switch {
			case ev.Key == termbox.KeyCtrlC, ev.Key == termbox.KeyEsc:
				return
			case ev.Ch == 'q', ev.Ch == 'Q':
				return

			case ev.Key == termbox.KeyArrowUp:
				d.SetWidths(d.barWidth+1, d.spaceWidth)
			case ev.Key == termbox.KeyArrowDown:
				d.SetWidths(d.barWidth-1, d.spaceWidth)
			case ev.Key == termbox.KeyArrowRight:
				d.SetWidths(d.barWidth, d.spaceWidth+1)
			case ev.Key == termbox.KeyArrowLeft:
				d.SetWidths(d.barWidth, d.spaceWidth-1)
			}
		}
	}
}

// SetWidths adjusts bar and spacing columns, keeping both sane.
func (d *Display) SetWidths(bar, space int) {
	if bar < 1 {
		bar = 1
	}
	if space < 0 {
		space = 0
	}

	d.mu.Lock()
	d.barWidth = bar
	d.spaceWidth = space
	d.mu.Unlock()
}

// Bins returns how many bars fit the terminal at the current geometry.
func (d *Display) Bins() int {
	width, _ := termbox.Size()

	d.mu.Lock()
	bin := d.barWidth + d.spaceWidth
	d.mu.Unlock()

	if bin < 1 {
		bin = 1
	}

	return width / bin
}
