package software

import (
	"encoding/binary"
	"image"

	rb "github.com/rmcsoft/renderbench"
)

func fillOpaque(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// storeWord writes a native 0xAARRGGBB word into an RGBA pixel. Depth 24
// drawables ignore alpha. Color channels of depth 32 drawables are clamped
// to alpha so the stored value is a valid premultiplied color.
func storeWord(p []byte, word uint32, depth int) {
	a := byte(word >> 24)
	r := byte(word >> 16)
	g := byte(word >> 8)
	b := byte(word)
	if depth == 24 {
		a = 0xff
	} else {
		r, g, b = clampTo(r, a), clampTo(g, a), clampTo(b, a)
	}
	p[0], p[1], p[2], p[3] = r, g, b, a
}

func clampTo(c, a byte) byte {
	if c > a {
		return a
	}
	return c
}

func loadWord(p []byte) uint32 {
	return rb.PackPixel(p[0], p[1], p[2], p[3])
}

// PutImage transfers the image to (0, 0), clipped to the drawable.
func (b *Backend) PutImage(id rb.Drawable, img *rb.NativeImage) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.drawables[id]
	if !ok {
		return rb.ErrUnknownDrawable
	}

	bounds := d.img.Bounds().Intersect(image.Rect(0, 0, img.Width, img.Height))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			storeWord(d.img.Pix[d.img.PixOffset(x, y):], img.Pixel(x, y), d.depth)
		}
	}
	return nil
}

// GetImage reads back a rectangle of the drawable.
func (b *Backend) GetImage(id rb.Drawable, x, y, width, height int) (*rb.NativeImage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.drawables[id]
	if !ok {
		return nil, rb.ErrUnknownDrawable
	}
	rect := image.Rect(x, y, x+width, y+height)
	if width <= 0 || height <= 0 || !rect.In(d.img.Bounds()) {
		return nil, rb.ErrInvalidSize
	}

	out := rb.NewNativeImage(width, height, d.depth)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			out.PutPixel(i, j, loadWord(d.img.Pix[d.img.PixOffset(x+i, y+j):]))
		}
	}
	return out, nil
}

// present copies a window into its external buffer as XRGB words.
func present(d *drawable) {
	bounds := d.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := d.front[y*d.frontStride:]
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			binary.LittleEndian.PutUint32(row[x*4:], loadWord(d.img.Pix[d.img.PixOffset(x, y):]))
		}
	}
}
