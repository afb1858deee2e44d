package renderbench

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelCount is returned for pixel data with fewer than 4 channels.
	ErrChannelCount = errors.New("pixel data needs at least 4 channels (RGBA)")

	// ErrShortBuffer is returned when pixel data is smaller than its geometry.
	ErrShortBuffer = errors.New("pixel data is shorter than width, height and stride require")
)

// PackPixel packs an RGBA quadruple into a native 0xAARRGGBB word.
func PackPixel(r, g, b, a byte) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Upload copies the pixmap into the surface's drawable.
func Upload(b Backend, s *Surface, pixmap *Pixmap) error {
	return UploadRaw(b, s, pixmap.Width, pixmap.Height, pixmap.BytePerLine, pixmap.Channels, pixmap.Data)
}

// UploadRaw converts interleaved pixel data into a native image and
// transfers it to (0, 0) of the surface's drawable. The first four bytes
// of every pixel are read as red, green, blue and alpha. The conversion
// runs per pixel; it is a one-time cost per source image.
func UploadRaw(b Backend, s *Surface, width, height, stride, channels int, data []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("upload %dx%d: %w", width, height, ErrInvalidSize)
	}
	if channels < RGBAChannels {
		return fmt.Errorf("upload with %d channels: %w", channels, ErrChannelCount)
	}
	if len(data) < (height-1)*stride+width*channels {
		return ErrShortBuffer
	}

	img := NewNativeImage(width, height, s.Depth)
	defer img.Destroy()

	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			p := row[x*channels : x*channels+4]
			img.PutPixel(x, y, PackPixel(p[0], p[1], p[2], p[3]))
		}
	}

	if err := b.PutImage(s.Drawable, img); err != nil {
		return fmt.Errorf("put image: %w", err)
	}
	return nil
}
