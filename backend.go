package renderbench

import (
	"errors"
)

// Common backend errors.
var (
	// ErrUnknownDrawable is returned when a drawable handle is not known to the backend.
	ErrUnknownDrawable = errors.New("backend: unknown drawable")

	// ErrUnknownPicture is returned when a picture handle is not known to the backend.
	ErrUnknownPicture = errors.New("backend: unknown picture")

	// ErrNoFormat is returned when no picture format matches a request.
	ErrNoFormat = errors.New("backend: no matching picture format")
)

// Drawable is a backend handle of a pixel store: a pixmap or a window.
type Drawable uint32

// Visual is a backend visual identifier.
type Visual uint32

// Picture is a backend compositing handle bound to a drawable.
type Picture uint32

// None is the empty handle (no mask, no picture).
const None = 0

// Op is a composite operator.
type Op byte

const (
	// OpOver is the Porter-Duff "source over destination" operator.
	OpOver Op = 3
)

// Format describes the pixel layout of a picture.
type Format struct {
	ID       uint32
	Depth    int
	HasAlpha bool
}

// PictureAttributes holds the attributes a picture is created with.
type PictureAttributes struct {
	Repeat         bool
	Dither         bool
	ComponentAlpha bool
}

// Backend is the interface definition of a compositing connection.
// All methods except Sync may queue work; Sync blocks until every request
// issued before it has been completed.
type Backend interface {
	// Name returns the backend identifier (e.g. "xrender", "software").
	Name() string

	StandardFormat(hasAlpha bool) (Format, error)
	VisualFormat(visual Visual) (Format, error)

	CreatePixmap(ref Drawable, width, height, depth int) (Drawable, error)
	FreePixmap(pixmap Drawable) error

	CreatePicture(drawable Drawable, format Format, attrs PictureAttributes) (Picture, error)
	FreePicture(picture Picture) error

	// PutImage transfers the whole image to (0, 0) of the drawable.
	PutImage(drawable Drawable, img *NativeImage) error
	// GetImage reads back a rectangle of the drawable.
	GetImage(drawable Drawable, x, y, width, height int) (*NativeImage, error)

	// SetPictureFilter and SetPictureTransform change state that persists
	// on the picture until it is overwritten.
	SetPictureFilter(picture Picture, filter Filter) error
	SetPictureTransform(picture Picture, transform Transform) error

	Composite(op Op, src, mask, dst Picture,
		srcX, srcY, maskX, maskY, dstX, dstY, width, height int) error

	QueryFilters(drawable Drawable) ([]string, error)

	Sync() error
	Close() error
}

// Display is the window side of a backend: a connection plus a mapped
// on-screen drawable ready to be composited onto.
type Display interface {
	Backend() Backend
	Window() Drawable
	Visual() Visual
	Size() (width, height int)
	Close() error
}
