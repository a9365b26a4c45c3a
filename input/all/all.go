// Package all registers every input backend.
package all

import (
	_ "github.com/winterveil/bandglow/input/ffmpeg"
	_ "github.com/winterveil/bandglow/input/parec"
)
