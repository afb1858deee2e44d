package renderbench

import (
	"encoding/binary"
)

// NativeImage is a 32 bits per pixel ZPixmap image in the backend's
// native layout: one little-endian 0xAARRGGBB word per pixel.
type NativeImage struct {
	Width        int
	Height       int
	Depth        int
	BytesPerLine int
	Data         []byte
}

// NewNativeImage allocates a zeroed image.
func NewNativeImage(width, height, depth int) *NativeImage {
	bytesPerLine := width * 4
	return &NativeImage{
		Width:        width,
		Height:       height,
		Depth:        depth,
		BytesPerLine: bytesPerLine,
		Data:         make([]byte, bytesPerLine*height),
	}
}

// PutPixel stores the pixel word at (x, y).
func (img *NativeImage) PutPixel(x, y int, pixel uint32) {
	binary.LittleEndian.PutUint32(img.Data[y*img.BytesPerLine+x*4:], pixel)
}

// Pixel returns the pixel word at (x, y).
func (img *NativeImage) Pixel(x, y int) uint32 {
	return binary.LittleEndian.Uint32(img.Data[y*img.BytesPerLine+x*4:])
}

// Rows returns the sub-image of rows [y0, y1) sharing the same data.
func (img *NativeImage) Rows(y0, y1 int) *NativeImage {
	return &NativeImage{
		Width:        img.Width,
		Height:       y1 - y0,
		Depth:        img.Depth,
		BytesPerLine: img.BytesPerLine,
		Data:         img.Data[y0*img.BytesPerLine : y1*img.BytesPerLine],
	}
}

// Destroy drops the pixel buffer.
func (img *NativeImage) Destroy() {
	img.Data = nil
}
