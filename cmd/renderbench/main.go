package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	rb "github.com/rmcsoft/renderbench"
	"github.com/rmcsoft/renderbench/kmsdrm"
	"github.com/rmcsoft/renderbench/sdlrender"
	"github.com/rmcsoft/renderbench/software"
	"github.com/rmcsoft/renderbench/xrender"
)

func init() {
	// SDL and the KMS framebuffer must be driven from the main thread.
	runtime.LockOSThread()
}

type options struct {
	Config      func(string) error `long:"config" description:"INI file with option values" no-ini:"true"`
	Backend     string             `short:"b" long:"backend" default:"xrender" choice:"xrender" choice:"software" choice:"sdl" choice:"kmsdrm" choice:"null" description:"Compositing backend"`
	Display     string             `short:"d" long:"display" description:"X display name (default $DISPLAY)"`
	Card        int                `long:"card" default:"0" description:"DRM card number for the kmsdrm backend"`
	Opaque      string             `long:"opaque" default:"tst_opaque.png" description:"Image the destinations are filled with"`
	Transparent string             `long:"transparent" default:"tst_transparent.png" description:"Image composited in every test"`
	SDLImage    bool               `long:"sdl-image" description:"Decode images with SDL_image"`
	Reps        int                `short:"n" long:"reps" default:"4096" description:"Composites per test"`
	Seed        int64              `long:"seed" default:"7" description:"Placement seed of every test"`
	Matrix      string             `short:"m" long:"matrix" description:"TOML file with the tests to run"`
	LogLevel    string             `long:"log-level" default:"info" description:"Log level"`
}

func parseCmd() options {
	var opts options
	var cmdParser = flags.NewParser(&opts, flags.Default)

	opts.Config = func(fileName string) error {
		return flags.NewIniParser(cmdParser).ParseFile(fileName)
	}

	if _, err := cmdParser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opts
}

func setupLogging(opts *options) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid log level")
	}
	logrus.SetLevel(level)
}

func openDisplay(opts *options) (rb.Display, error) {
	switch opts.Backend {
	case xrender.Name:
		return xrender.Open(opts.Display, rb.DefaultWindowSize, rb.DefaultWindowSize)
	case sdlrender.Name:
		return sdlrender.Open("Render Test Program", rb.DefaultWindowSize, rb.DefaultWindowSize)
	case "kmsdrm":
		return kmsdrm.Open(opts.Card, rb.DefaultWindowSize, rb.DefaultWindowSize)
	case software.Name:
		return software.OpenDisplay(rb.DefaultWindowSize, rb.DefaultWindowSize), nil
	case "null":
		return newNullDisplay(rb.DefaultWindowSize, rb.DefaultWindowSize), nil
	default:
		return nil, fmt.Errorf("unknown backend '%s'", opts.Backend)
	}
}

func loadMatrix(opts *options) []rb.Scenario {
	if opts.Matrix == "" {
		return rb.DefaultMatrix()
	}
	matrix, err := rb.LoadMatrix(opts.Matrix)
	if err != nil {
		logrus.WithError(err).Fatal("Failed loading matrix")
	}
	return matrix
}

func main() {
	opts := parseCmd()
	setupLogging(&opts)
	log := logrus.WithField("backend", opts.Backend)

	matrix := loadMatrix(&opts)

	display, err := openDisplay(&opts)
	if err != nil {
		log.WithError(err).Fatal("Cannot connect to display")
	}
	defer display.Close()
	backend := display.Backend()

	reporter := rb.NewReporter(os.Stdout)
	filters, err := backend.QueryFilters(display.Window())
	if err != nil {
		log.WithError(err).Fatal("Failed querying filters")
	}
	reporter.Filters(rb.DefaultLabel, filters)

	reporter.Setup()
	cfg := rb.DefaultSetupConfig()
	cfg.OpaqueImage = opts.Opaque
	cfg.TransparentImage = opts.Transparent
	if opts.SDLImage {
		cfg.Decoder = sdlrender.Decoder
	}
	sc, err := rb.Setup(display, cfg)
	if err != nil {
		display.Close()
		log.WithError(err).Fatal("Setup failed")
	}
	defer sc.Release(backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	driver := rb.NewDriver(rb.NewCompositor(backend))
	driver.Reps = opts.Reps
	driver.Seed = opts.Seed
	driver.Log = log

	if _, err = driver.Run(ctx, sc, matrix, reporter); err != nil {
		sc.Release(backend)
		display.Close()
		log.WithError(err).Fatal("Benchmark failed")
	}

	if err = backend.Sync(); err != nil {
		log.WithError(err).Error("Final sync failed")
	}
}
