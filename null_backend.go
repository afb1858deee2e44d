package renderbench

import (
	"sync/atomic"
)

type nullBackend struct {
	nextID uint32
}

// NullBackend returns a backend that accepts every request and draws
// nothing. It measures the driver's own overhead.
func NullBackend() Backend {
	return &nullBackend{}
}

func (b *nullBackend) newID() uint32 {
	return atomic.AddUint32(&b.nextID, 1)
}

func (*nullBackend) Name() string {
	return "null"
}

func (*nullBackend) StandardFormat(hasAlpha bool) (Format, error) {
	pixFormat := StandardPixelFormat(hasAlpha)
	return Format{ID: uint32(pixFormat) + 1, Depth: GetPixelDepth(pixFormat), HasAlpha: hasAlpha}, nil
}

func (b *nullBackend) VisualFormat(visual Visual) (Format, error) {
	return b.StandardFormat(false)
}

func (b *nullBackend) CreatePixmap(ref Drawable, width, height, depth int) (Drawable, error) {
	return Drawable(b.newID()), nil
}

func (*nullBackend) FreePixmap(pixmap Drawable) error {
	return nil
}

func (b *nullBackend) CreatePicture(drawable Drawable, format Format, attrs PictureAttributes) (Picture, error) {
	return Picture(b.newID()), nil
}

func (*nullBackend) FreePicture(picture Picture) error {
	return nil
}

func (*nullBackend) PutImage(drawable Drawable, img *NativeImage) error {
	return nil
}

func (*nullBackend) GetImage(drawable Drawable, x, y, width, height int) (*NativeImage, error) {
	return NewNativeImage(width, height, 32), nil
}

func (*nullBackend) SetPictureFilter(picture Picture, filter Filter) error {
	return nil
}

func (*nullBackend) SetPictureTransform(picture Picture, transform Transform) error {
	return nil
}

func (*nullBackend) Composite(op Op, src, mask, dst Picture,
	srcX, srcY, maskX, maskY, dstX, dstY, width, height int) error {
	return nil
}

func (*nullBackend) QueryFilters(drawable Drawable) ([]string, error) {
	return []string{FilterNearest.String(), FilterBilinear.String()}, nil
}

func (*nullBackend) Sync() error {
	return nil
}

func (*nullBackend) Close() error {
	return nil
}
