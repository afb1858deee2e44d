package renderbench

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// Extra formats for imaging.Open
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// RGBAChannels is the number of channels of an RGBA pixmap.
const RGBAChannels = 4

// Pixmap contains decoded pixels, Channels interleaved bytes per pixel,
// not premultiplied.
type Pixmap struct {
	Data        []byte
	Width       int
	Height      int
	BytePerLine int
	Channels    int
}

// ErrEmptyImage is returned when a decoder yields no pixel data.
var ErrEmptyImage = errors.New("image has no pixel data")

// Decoder is the interface definition for image loading
type Decoder interface {
	Decode(fileName string) (*Pixmap, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(fileName string) (*Pixmap, error)

// Decode calls f(fileName).
func (f DecoderFunc) Decode(fileName string) (*Pixmap, error) {
	return f(fileName)
}

// PixmapFromImage converts any image into an RGBA pixmap.
func PixmapFromImage(img image.Image) *Pixmap {
	nrgba := imaging.Clone(img)
	return &Pixmap{
		Data:        nrgba.Pix,
		Width:       nrgba.Rect.Dx(),
		Height:      nrgba.Rect.Dy(),
		BytePerLine: nrgba.Stride,
		Channels:    RGBAChannels,
	}
}

// LoadPixmap loads Pixmap from file. Packed pixmaps (.ppixmap) are
// unpacked, anything else is decoded as an image.
func LoadPixmap(fileName string) (*Pixmap, error) {
	if strings.EqualFold(filepath.Ext(fileName), PackedPixmapExt) {
		packedPixmap, err := LoadPackedPixmap(fileName)
		if err != nil {
			return nil, fmt.Errorf("failed loading file [%s]: %w", fileName, err)
		}
		return packedPixmap.Unpack()
	}

	img, err := imaging.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("failed loading file [%s]: %w", fileName, err)
	}

	pixmap := PixmapFromImage(img)
	if len(pixmap.Data) == 0 {
		return nil, fmt.Errorf("failed loading file [%s]: %w", fileName, ErrEmptyImage)
	}
	return pixmap, nil
}

// DefaultDecoder decodes with LoadPixmap.
var DefaultDecoder Decoder = DecoderFunc(LoadPixmap)
