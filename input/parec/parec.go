// Package parec captures PulseAudio sources through the parec utility.
package parec

import (
	"fmt"

	"github.com/lawl/pulseaudio"
	"github.com/pkg/errors"

	"github.com/winterveil/bandglow/input"
	"github.com/winterveil/bandglow/input/execread"
)

func init() {
	input.RegisterBackend("parec", Backend{})
}

// Backend lists PulseAudio sources and opens parec sessions.
type Backend struct{}

func (p Backend) Init() error {
	return nil
}

func (p Backend) Close() error {
	return nil
}

func (p Backend) Devices() ([]input.Device, error) {
	c, err := pulseaudio.NewClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to pulseaudio")
	}
	defer c.Close()

	sources, err := c.Sources()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sources")
	}

	devices := make([]input.Device, len(sources))
	for i, source := range sources {
		devices[i] = PulseDevice(source.Name)
	}

	return devices, nil
}

func (p Backend) DefaultDevice() (input.Device, error) {
	return PulseDevice("default"), nil
}

func (p Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	return NewSession(cfg)
}

// PulseDevice is a PulseAudio source name.
type PulseDevice string

func (d PulseDevice) String() string {
	return string(d)
}

// InputArgs returns ffmpeg arguments selecting this source.
func (d PulseDevice) InputArgs() []string {
	return []string{"-f", "pulse", "-i", string(d)}
}

// NewSession spawns parec streaming float32le from cfg.Device.
func NewSession(cfg input.SessionConfig) (*execread.Session, error) {
	dv, ok := cfg.Device.(PulseDevice)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	if cfg.FrameSize > 2 {
		return nil, errors.New("channel count not supported, mono/stereo only")
	}

	argv := []string{
		"parec",
		"--format=float32le",
		fmt.Sprintf("--rate=%.0f", cfg.SampleRate),
		fmt.Sprintf("--channels=%d", cfg.FrameSize),
		"-d", dv.String(),
	}

	return execread.NewSession(argv, true, cfg), nil
}
