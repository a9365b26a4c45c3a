package input

import (
	"context"
	"os/exec"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// Session streams samples into dst under mu, signalling kickChan after
// each full buffer write. It blocks until the stream ends or ctx is
// cancelled.
type Session interface {
	Start(ctx context.Context, dst [][]Sample, kickChan chan bool, mu *sync.Mutex) error
}

// Backend opens capture sessions for one audio system.
type Backend interface {
	// Init should do nothing if called more than once.
	Init() error
	Close() error

	Devices() ([]Device, error)
	DefaultDevice() (Device, error)
	Start(SessionConfig) (Session, error)
}

// NamedBackend pairs a backend with its registry name.
type NamedBackend struct {
	Name string
	Backend
}

// Backends is the global backend registry.
var Backends []NamedBackend

// RegisterBackend registers a backend globally. Not thread-safe; call
// it from init().
func RegisterBackend(name string, b Backend) {
	Backends = append(Backends, NamedBackend{
		Name:    name,
		Backend: b,
	})
}

// FindBackend returns the registered backend with the given name, or
// nil if there is none.
func FindBackend(name string) Backend {
	for _, backend := range Backends {
		if backend.Name == name {
			return backend
		}
	}
	return nil
}

// HasBackend reports whether name is registered.
func HasBackend(name string) bool {
	return FindBackend(name) != nil
}

// DefaultBackend guesses the most useful backend for this platform.
func DefaultBackend() string {
	switch runtime.GOOS {
	case "darwin":
		if HasBackend("ffmpeg-avfoundation") {
			return "ffmpeg-avfoundation"
		}

	case "linux":
		if path, _ := exec.LookPath("parec"); path != "" {
			if HasBackend("parec") {
				return "parec"
			}
		}

		if HasBackend("ffmpeg-alsa") {
			return "ffmpeg-alsa"
		}
	}

	return ""
}

// InitBackend finds and initializes the named backend.
func InitBackend(name string) (Backend, error) {
	backend := FindBackend(name)
	if backend == nil {
		return nil, errors.Errorf("backend not found: %q; check list-backends", name)
	}

	if err := backend.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize input backend")
	}

	return backend, nil
}

// GetDevice resolves a device name, falling back to the backend default
// when the name is empty.
func GetDevice(backend Backend, device string) (Device, error) {
	if device == "" {
		def, err := backend.DefaultDevice()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get default device")
		}
		return def, nil
	}

	devices, err := backend.Devices()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get devices")
	}

	for idx := range devices {
		if devices[idx].String() == device {
			return devices[idx], nil
		}
	}

	return nil, errors.Errorf("device %q not found; check list-devices", device)
}
