package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	rb "github.com/rmcsoft/renderbench"
)

type options struct {
	InputDir  string `short:"i" long:"input-dir"  description:"The input directory"`
	OutputDir string `short:"o" long:"output-dir" description:"The output directory"`
	Pattern   string `short:"p" long:"pattern" default:"*.png" description:"Images to pack"`
}

func images(opts options) chan string {
	ch := make(chan string, 512)
	go func() {
		defer close(ch)

		walkFn := func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				if isImage, _ := filepath.Match(opts.Pattern, info.Name()); isImage {
					ch <- path
				}
			}
			return err
		}

		if err := filepath.Walk(opts.InputDir, walkFn); err != nil {
			logrus.WithError(err).Fatal("Failed walking the input directory")
		}
	}()
	return ch
}

func parseCmd() options {
	var opts options
	var cmdParser = flags.NewParser(&opts, flags.Default)
	var err error

	if _, err = cmdParser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.InputDir, err = filepath.Abs(opts.InputDir); err != nil {
		logrus.WithError(err).Fatal("Invalid input directory")
	}

	if opts.OutputDir, err = filepath.Abs(opts.OutputDir); err != nil {
		logrus.WithError(err).Fatal("Invalid output directory")
	}

	return opts
}

func outputPath(opts *options, inputImageFile string) (string, error) {
	relInputPath, err := filepath.Rel(opts.InputDir, inputImageFile)
	if err != nil {
		return "", err
	}

	outputImageDir := filepath.Join(opts.OutputDir, filepath.Dir(relInputPath))
	if err = os.MkdirAll(outputImageDir, 0755); err != nil {
		return "", err
	}

	relOutputPath := strings.TrimSuffix(relInputPath, filepath.Ext(inputImageFile)) + rb.PackedPixmapExt
	return filepath.Join(opts.OutputDir, relOutputPath), nil
}

func main() {
	opts := parseCmd()

	var packedSize int64
	var unpackedSize int64
	for imageFile := range images(opts) {
		log := logrus.WithField("image", imageFile)

		pixmap, err := rb.LoadPixmap(imageFile)
		if err != nil {
			log.WithError(err).Fatal("Failed loading image")
		}
		unpackedSize += int64(pixmap.BytePerLine * pixmap.Height)

		packedPixmap, err := rb.PackPixmap(pixmap)
		if err != nil {
			log.WithError(err).Fatal("Failed packing image")
		}
		packedSize += int64(len(packedPixmap.Data))

		outputFile, err := outputPath(&opts, imageFile)
		if err != nil {
			log.WithError(err).Fatal("Failed preparing output")
		}
		if err = packedPixmap.Save(outputFile); err != nil {
			log.WithError(err).Fatal("Failed saving packed pixmap")
		}
		log.WithField("output", outputFile).Info("Packed")
	}

	if packedSize == 0 {
		logrus.Warn("No images found")
		return
	}
	logrus.WithFields(logrus.Fields{
		"unpackedMiB": float32(unpackedSize) / float32(1024*1024),
		"packedMiB":   float32(packedSize) / float32(1024*1024),
		"ratio":       float32(unpackedSize) / float32(packedSize),
	}).Info("Done")
}
