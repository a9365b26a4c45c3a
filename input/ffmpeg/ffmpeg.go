// Package ffmpeg captures audio by spawning ffmpeg against a platform
// input device.
package ffmpeg

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/winterveil/bandglow/input"
	"github.com/winterveil/bandglow/input/execread"
	"github.com/winterveil/bandglow/input/parec"
)

func init() {
	input.RegisterBackend("ffmpeg-pulse", Pulse{})
	input.RegisterBackend("ffmpeg-alsa", ALSA{})
	input.RegisterBackend("ffmpeg-avfoundation", AVFoundation{})
}

// InputDevice builds the ffmpeg input arguments for a device.
type InputDevice interface {
	input.Device
	InputArgs() []string
}

// NewSession spawns ffmpeg decoding the device to raw float64le.
func NewSession(dv InputDevice, cfg input.SessionConfig) (*execread.Session, error) {
	argv := []string{"ffmpeg", "-hide_banner", "-loglevel", "panic"}
	argv = append(argv, dv.InputArgs()...)
	argv = append(argv,
		"-ar", fmt.Sprintf("%.0f", cfg.SampleRate),
		"-ac", fmt.Sprintf("%d", cfg.FrameSize),
		"-f", "f64le",
		"-",
	)

	return execread.NewSession(argv, false, cfg), nil
}

func startFor(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(InputDevice)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	return NewSession(dv, cfg)
}

// Pulse reuses the parec backend's source list with ffmpeg capture.
type Pulse struct {
	parec.Backend
}

func (p Pulse) Start(cfg input.SessionConfig) (input.Session, error) {
	return startFor(cfg)
}

// ALSA enumerates /proc/asound devices.
type ALSA struct{}

func (a ALSA) Init() error  { return nil }
func (a ALSA) Close() error { return nil }

func (a ALSA) Devices() ([]input.Device, error) {
	f, err := os.Open("/proc/asound/pcm")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open pcm list")
	}
	defer f.Close()

	var devices []input.Device

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		prefix := strings.Split(scanner.Text(), ":")[0]

		parts := strings.SplitN(strings.TrimSpace(prefix), "-", 2)
		if len(parts) != 2 {
			continue
		}

		card, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		dev, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}

		devices = append(devices, ALSADevice(fmt.Sprintf("hw:%d,%d", card, dev)))
	}

	return devices, scanner.Err()
}

func (a ALSA) DefaultDevice() (input.Device, error) {
	return ALSADevice("default"), nil
}

func (a ALSA) Start(cfg input.SessionConfig) (input.Session, error) {
	return startFor(cfg)
}

// ALSADevice is an ALSA hardware address like hw:0,0.
type ALSADevice string

func (d ALSADevice) String() string {
	return string(d)
}

func (d ALSADevice) InputArgs() []string {
	return []string{"-f", "alsa", "-i", string(d)}
}

// AVFoundation captures macOS audio devices by index.
type AVFoundation struct{}

func (a AVFoundation) Init() error  { return nil }
func (a AVFoundation) Close() error { return nil }

func (a AVFoundation) Devices() ([]input.Device, error) {
	// ffmpeg only reports avfoundation devices on stderr of a probe
	// run; keep enumeration to the default here
	return []input.Device{AVFoundationDevice("default")}, nil
}

func (a AVFoundation) DefaultDevice() (input.Device, error) {
	return AVFoundationDevice("default"), nil
}

func (a AVFoundation) Start(cfg input.SessionConfig) (input.Session, error) {
	return startFor(cfg)
}

// AVFoundationDevice is an avfoundation audio device selector.
type AVFoundationDevice string

func (d AVFoundationDevice) String() string {
	return string(d)
}

func (d AVFoundationDevice) InputArgs() []string {
	return []string{"-f", "avfoundation", "-i", ":" + string(d)}
}
