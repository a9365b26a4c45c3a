// Package input defines the audio capture boundary: backends that
// enumerate devices and sessions that stream samples into shared
// buffers.
package input

// Sample is a single audio sample value.
type Sample = float64

// SessionConfig describes the stream a backend should open.
type SessionConfig struct {
	Device     Device  // device to capture from
	FrameSize  int     // channels per frame
	SampleSize int     // frames per buffer write
	SampleRate float64 // sample rate
}

// Device identifies a capture source within a backend.
type Device interface {
	// String returns the device name as shown by list-devices.
	String() string
}

// MakeBuffers allocates channels sample buffers of size samples each.
func MakeBuffers(channels, samples int) [][]Sample {
	bufs := make([][]Sample, channels)
	for i := range bufs {
		bufs[i] = make([]Sample, samples)
	}
	return bufs
}

// EnsureBufferLen reports whether dst matches the session's channel and
// sample dimensions.
func EnsureBufferLen(cfg SessionConfig, dst [][]Sample) bool {
	if len(dst) != cfg.FrameSize {
		return false
	}
	for _, buf := range dst {
		if len(buf) != cfg.SampleSize {
			return false
		}
	}
	return true
}
