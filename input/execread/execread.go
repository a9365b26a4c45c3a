// Package execread streams audio samples from the stdout of a spawned
// capture process.
package execread

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"
	"os/exec"
	"sync"

	"github.com/pkg/errors"

	"github.com/winterveil/bandglow/input"
)

// Session reads interleaved little-endian float samples from a command.
type Session struct {
	argv    []string
	cfg     input.SessionConfig
	f32mode bool // float32 stream instead of float64
}

// NewSession creates a session for argv. It panics if argv is empty.
func NewSession(argv []string, f32mode bool, cfg input.SessionConfig) *Session {
	if len(argv) < 1 {
		panic("execread: argv has no arg0")
	}

	return &Session{
		argv:    argv,
		cfg:     cfg,
		f32mode: f32mode,
	}
}

// Start spawns the command and copies its sample stream into dst until
// the stream ends or ctx is cancelled. Each full buffer is written under
// mu and announced on kickChan without blocking.
func (s *Session) Start(ctx context.Context, dst [][]input.Sample, kickChan chan bool, mu *sync.Mutex) error {
	if !input.EnsureBufferLen(s.cfg, dst) {
		return errors.New("mismatched destination buffer size")
	}

	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Stderr = os.Stderr

	out, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdout pipe")
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start "+s.argv[0])
	}
	defer cmd.Wait()

	channels := s.cfg.FrameSize
	frames := s.cfg.SampleSize

	width := 8
	if s.f32mode {
		width = 4
	}

	raw := make([]byte, frames*channels*width)
	reader := bufio.NewReaderSize(out, len(raw))
	order := binary.LittleEndian

	for {
		if _, err := io.ReadFull(reader, raw); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "failed to read sample buffer")
		}

		mu.Lock()
		for f := 0; f < frames; f++ {
			for ch := 0; ch < channels; ch++ {
				off := (f*channels + ch) * width

				if s.f32mode {
					dst[ch][f] = float64(math.Float32frombits(order.Uint32(raw[off:])))
				} else {
					dst[ch][f] = math.Float64frombits(order.Uint64(raw[off:]))
				}
			}
		}
		mu.Unlock()

		select {
		case kickChan <- true:
		default:
		}
	}
}
