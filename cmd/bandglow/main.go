package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"github.com/winterveil/bandglow"
	"github.com/winterveil/bandglow/input"

	_ "github.com/winterveil/bandglow/input/all"
)

// AppName is the app name
const AppName = "bandglow"

// AppDesc is the app description
const AppDesc = "terminal spectrum bars with peaks and vocal emphasis"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg := bandglow.NewZeroConfig()

	if doFlags(&cfg) {
		return
	}

	chk(cfg.Sanitize(), "invalid config")

	chk(bandglow.Run(&cfg), "failed to run bandglow")
}

// doFlags parses the command line into cfg. It returns true when a
// subcommand already did all the work.
func doFlags(cfg *bandglow.Config) bool {
	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:                 "list-backends",
		ShortName:            "lb",
		Description:          "list all supported backends",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	listDevicesCmd := flaggy.Subcommand{
		Name:                 "list-devices",
		ShortName:            "ld",
		Description:          "list all devices for a backend",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listDevicesCmd, 1)

	// the config file loads before flag parsing so flags win over it
	if path := configPathArg(os.Args[1:]); path != "" {
		chk(cfg.Load(path), "failed to load config")
	}

	var configPath string

	parser.String(&configPath, "c", "config", "path to a YAML config file")
	parser.String(&cfg.Backend, "b", "backend", "backend name")
	parser.String(&cfg.Device, "d", "device", "device name")
	parser.Float64(&cfg.SampleRate, "r", "rate", "sample rate")
	parser.Int(&cfg.SampleSize, "n", "samples", "samples per analysis slice")
	parser.Int(&cfg.Bands, "bd", "bands", "analyzer band count")
	parser.Int(&cfg.FrameRate, "f", "fps", "frame rate cap")
	parser.Int(&cfg.BarWidth, "bw", "bar", "bar width [1, +Inf)")
	parser.Int(&cfg.SpaceWidth, "sw", "space", "space width [0, +Inf)")
	parser.String(&cfg.Filter, "ft", "filter", "shaping filter (spread, directional)")
	parser.Float64(&cfg.SpreadFactor, "sp", "spread", "spread filter attenuation factor")
	parser.Float64(&cfg.Intensity, "i", "intensity", "input gain before shaping")
	parser.Float64(&cfg.NoiseReduction, "nr", "noise", "noise reduction [0, 1)")
	parser.Int(&cfg.PeakHoldMs, "ph", "peak-hold", "peak hold time in ms")
	parser.Float64(&cfg.PeakFallRate, "pf", "peak-fall", "peak decay per frame")
	parser.Float64(&cfg.FreqMean, "fm", "freq-mean", "emphasis center [0, 1]")
	parser.Float64(&cfg.FreqStd, "fs", "freq-std", "emphasis width [0, 1]")

	chk(parser.Parse(), "failed to parse flags")

	if cfg.Backend == "" {
		cfg.Backend = input.DefaultBackend()
	}

	if listBackendsCmd.Used {
		for _, backend := range input.Backends {
			fmt.Printf("- %s\n", backend.Name)
		}

		return true
	}

	if listDevicesCmd.Used {
		backend, err := input.InitBackend(cfg.Backend)
		chk(err, "failed to initialize backend")

		devices, err := backend.Devices()
		chk(err, "failed to get devices")

		defaultDevice, _ := backend.DefaultDevice()

		fmt.Printf("all devices for %q backend. '*' marks default\n", cfg.Backend)

		for idx := range devices {
			star := ' '
			if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
				star = '*'
			}

			fmt.Printf("- %v %c\n", devices[idx], star)
		}

		return true
	}

	return false
}

// configPathArg pre-scans args for the config flag.
func configPathArg(args []string) string {
	for i, arg := range args {
		switch arg {
		case "-c", "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		}

		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
	}

	return ""
}

func chk(err error, wrap string) {
	if err != nil {
		if wrap != "" {
			err = errors.Wrap(err, wrap)
		}
		log.Println("error:", err)
		os.Exit(1)
	}
}
