package sdlrender

import (
	"fmt"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"

	rb "github.com/rmcsoft/renderbench"
)

func init() {
	img.Init(img.INIT_JPG | img.INIT_PNG)
}

// rgbaPixelFormat stores bytes in R, G, B, A order on little-endian hosts.
const rgbaPixelFormat = sdl.PIXELFORMAT_ABGR8888

// LoadPixmap loads an RGBA Pixmap from file with SDL_image.
func LoadPixmap(fileName string) (*rb.Pixmap, error) {
	image, err := img.Load(fileName)
	if err != nil {
		return nil, fmt.Errorf("failed loading file [%s]: %w", fileName, err)
	}
	defer image.Free()

	convertedImage, err := image.ConvertFormat(rgbaPixelFormat, 0)
	if err != nil {
		return nil, err
	}
	defer convertedImage.Free()

	if len(convertedImage.Pixels()) == 0 {
		return nil, fmt.Errorf("failed loading file [%s]: %w", fileName, rb.ErrEmptyImage)
	}

	pixmap := rb.Pixmap{
		Data:        make([]byte, len(convertedImage.Pixels())),
		Width:       int(convertedImage.W),
		Height:      int(convertedImage.H),
		BytePerLine: int(convertedImage.Pitch),
		Channels:    rb.RGBAChannels,
	}
	copy(pixmap.Data, convertedImage.Pixels())
	return &pixmap, nil
}

// Decoder decodes images with SDL_image.
var Decoder rb.Decoder = rb.DecoderFunc(LoadPixmap)
