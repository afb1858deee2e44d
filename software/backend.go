// Package software implements the compositing backend in memory. It keeps
// the picture, filter and transform model of the X RENDER extension and
// resamples with golang.org/x/image/draw.
package software

import (
	"errors"
	"fmt"
	"image"
	"sync"

	rb "github.com/rmcsoft/renderbench"
)

// Name is the backend identifier.
const Name = "software"

// Visuals known to the backend.
const (
	// DefaultVisual is a 24-bit TrueColor visual.
	DefaultVisual rb.Visual = 0x21
	// ARGBVisual is a 32-bit visual with alpha.
	ARGBVisual rb.Visual = 0x22
)

var (
	formatRGB24  = rb.Format{ID: 1, Depth: 24, HasAlpha: false}
	formatARGB32 = rb.Format{ID: 2, Depth: 32, HasAlpha: true}
)

var (
	// ErrNotPixmap is returned when FreePixmap is given a window.
	ErrNotPixmap = errors.New("software: drawable is not a pixmap")
	// ErrBadMatch is returned when a picture format does not match its drawable.
	ErrBadMatch = errors.New("software: format does not match drawable depth")
	// ErrUnsupported is returned for requests outside the implemented subset.
	ErrUnsupported = errors.New("software: unsupported request")
)

type drawable struct {
	img    *image.RGBA
	depth  int
	window bool

	// external front buffer of a window, refreshed on Sync
	front       []byte
	frontStride int
}

type picture struct {
	drawable  rb.Drawable
	format    rb.Format
	attrs     rb.PictureAttributes
	filter    rb.Filter
	transform rb.Transform
}

// Stats counts backend objects and requests.
type Stats struct {
	PixmapsCreated  int
	PixmapsFreed    int
	PicturesCreated int
	PicturesFreed   int
	Composites      int
	Syncs           int
}

// LivePixmaps returns the number of pixmaps not freed yet.
func (s Stats) LivePixmaps() int {
	return s.PixmapsCreated - s.PixmapsFreed
}

// LivePictures returns the number of pictures not freed yet.
func (s Stats) LivePictures() int {
	return s.PicturesCreated - s.PicturesFreed
}

// Backend is an in-memory compositing backend.
type Backend struct {
	mu        sync.Mutex
	nextID    uint32
	drawables map[rb.Drawable]*drawable
	pictures  map[rb.Picture]*picture
	stats     Stats
}

var _ rb.Backend = (*Backend)(nil)

// New creates an empty backend.
func New() *Backend {
	return &Backend{
		drawables: make(map[rb.Drawable]*drawable),
		pictures:  make(map[rb.Picture]*picture),
	}
}

func (b *Backend) newID() uint32 {
	b.nextID++
	return b.nextID
}

// Name returns "software".
func (b *Backend) Name() string {
	return Name
}

// StandardFormat returns ARGB32 or RGB24.
func (b *Backend) StandardFormat(hasAlpha bool) (rb.Format, error) {
	if hasAlpha {
		return formatARGB32, nil
	}
	return formatRGB24, nil
}

// VisualFormat returns the format of a known visual.
func (b *Backend) VisualFormat(visual rb.Visual) (rb.Format, error) {
	switch visual {
	case DefaultVisual:
		return formatRGB24, nil
	case ARGBVisual:
		return formatARGB32, nil
	default:
		return rb.Format{}, fmt.Errorf("visual 0x%x: %w", uint32(visual), rb.ErrNoFormat)
	}
}

func (b *Backend) addDrawable(d *drawable) rb.Drawable {
	id := rb.Drawable(b.newID())
	b.drawables[id] = d
	return id
}

// NewWindow creates a window drawable of the default visual's depth.
func (b *Backend) NewWindow(width, height int) rb.Drawable {
	b.mu.Lock()
	defer b.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillOpaque(img)
	return b.addDrawable(&drawable{img: img, depth: 24, window: true})
}

// AdoptBuffer creates a window whose pixels are copied into buf as
// little-endian XRGB words on every Sync. buf must hold height rows of
// stride bytes.
func (b *Backend) AdoptBuffer(buf []byte, stride, width, height int) (rb.Drawable, error) {
	if len(buf) < (height-1)*stride+width*4 {
		return 0, rb.ErrShortBuffer
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillOpaque(img)
	return b.addDrawable(&drawable{
		img:         img,
		depth:       24,
		window:      true,
		front:       buf,
		frontStride: stride,
	}), nil
}

// DestroyWindow removes a window created by NewWindow or AdoptBuffer.
func (b *Backend) DestroyWindow(window rb.Drawable) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.drawables[window]
	if !ok {
		return rb.ErrUnknownDrawable
	}
	if !d.window {
		return ErrUnsupported
	}
	delete(b.drawables, window)
	return nil
}

// HasDrawable reports whether the drawable exists.
func (b *Backend) HasDrawable(id rb.Drawable) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.drawables[id]
	return ok
}

// Stats returns a snapshot of the counters.
func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// CreatePixmap creates a pixmap of depth 24 or 32.
func (b *Backend) CreatePixmap(ref rb.Drawable, width, height, depth int) (rb.Drawable, error) {
	if width <= 0 || height <= 0 {
		return 0, rb.ErrInvalidSize
	}
	if depth != 24 && depth != 32 {
		return 0, fmt.Errorf("depth %d: %w", depth, ErrUnsupported)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.drawables[ref]; !ok {
		return 0, rb.ErrUnknownDrawable
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if depth == 24 {
		fillOpaque(img)
	}
	b.stats.PixmapsCreated++
	return b.addDrawable(&drawable{img: img, depth: depth}), nil
}

// FreePixmap frees a pixmap. Windows cannot be freed this way.
func (b *Backend) FreePixmap(pixmap rb.Drawable) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.drawables[pixmap]
	if !ok {
		return rb.ErrUnknownDrawable
	}
	if d.window {
		return ErrNotPixmap
	}
	delete(b.drawables, pixmap)
	b.stats.PixmapsFreed++
	return nil
}

// CreatePicture binds a picture to a drawable.
func (b *Backend) CreatePicture(id rb.Drawable, format rb.Format, attrs rb.PictureAttributes) (rb.Picture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.drawables[id]
	if !ok {
		return 0, rb.ErrUnknownDrawable
	}
	if d.depth != format.Depth {
		return 0, ErrBadMatch
	}
	if attrs.Repeat {
		return 0, fmt.Errorf("repeat: %w", ErrUnsupported)
	}

	pid := rb.Picture(b.newID())
	b.pictures[pid] = &picture{
		drawable:  id,
		format:    format,
		attrs:     attrs,
		filter:    rb.FilterNearest,
		transform: rb.IdentityTransform(),
	}
	b.stats.PicturesCreated++
	return pid, nil
}

// FreePicture frees a picture.
func (b *Backend) FreePicture(pid rb.Picture) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.pictures[pid]; !ok {
		return rb.ErrUnknownPicture
	}
	delete(b.pictures, pid)
	b.stats.PicturesFreed++
	return nil
}

// PictureState returns the filter and transform currently set on a picture.
func (b *Backend) PictureState(pid rb.Picture) (rb.Filter, rb.Transform, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.pictures[pid]
	if !ok {
		return 0, rb.Transform{}, rb.ErrUnknownPicture
	}
	return p.filter, p.transform, nil
}

// SetPictureFilter sets the picture's resampling filter.
func (b *Backend) SetPictureFilter(pid rb.Picture, filter rb.Filter) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.pictures[pid]
	if !ok {
		return rb.ErrUnknownPicture
	}
	p.filter = filter
	return nil
}

// SetPictureTransform sets the picture's transform.
func (b *Backend) SetPictureTransform(pid rb.Picture, transform rb.Transform) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.pictures[pid]
	if !ok {
		return rb.ErrUnknownPicture
	}
	if !transform.IsAffine() {
		return fmt.Errorf("projective transform: %w", ErrUnsupported)
	}
	p.transform = transform
	return nil
}

// QueryFilters lists the supported filters.
func (b *Backend) QueryFilters(id rb.Drawable) ([]string, error) {
	if !b.HasDrawable(id) {
		return nil, rb.ErrUnknownDrawable
	}
	return []string{rb.FilterNearest.String(), rb.FilterBilinear.String()}, nil
}

// Sync copies window contents to their external buffers. Every other
// request completes before it returns, so there is nothing else to wait for.
func (b *Backend) Sync() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, d := range b.drawables {
		if d.front != nil {
			present(d)
		}
	}
	b.stats.Syncs++
	return nil
}

// Close drops every object.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.drawables = make(map[rb.Drawable]*drawable)
	b.pictures = make(map[rb.Picture]*picture)
	return nil
}
