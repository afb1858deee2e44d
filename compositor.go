package renderbench

import (
	"fmt"
)

// Compositor issues scaled "over" composites on a backend.
//
// The filter and transform set by a composite persist on the source
// picture. A Compositor holds the source surface's lock across the
// filter, transform and composite requests so that producers sharing a
// source picture never interleave them.
type Compositor struct {
	backend Backend
}

// NewCompositor creates a Compositor for the backend.
func NewCompositor(b Backend) *Compositor {
	return &Compositor{backend: b}
}

// Backend returns the backend the compositor issues requests on.
func (c *Compositor) Backend() Backend {
	return c.backend
}

// CompositeOver blends the whole source surface onto the rectangle
// (x, y, width, height) of the destination, scaling it with the filter.
// On return the source picture's filter and transform are the ones this
// call computed.
func (c *Compositor) CompositeOver(src, dst *Surface, x, y, width, height int, filter Filter) error {
	return CompositeOver(c.backend, src, dst, x, y, width, height, filter)
}

// CompositeOver is the Compositor method without a Compositor value.
func CompositeOver(b Backend, src, dst *Surface, x, y, width, height int, filter Filter) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("composite %dx%d: %w", width, height, ErrInvalidSize)
	}

	transform := ScaleTransform(src.Width, src.Height, width, height)

	src.mu.Lock()
	defer src.mu.Unlock()

	if src.released || dst.released {
		return ErrSurfaceReleased
	}

	if err := b.SetPictureFilter(src.Picture, filter); err != nil {
		return fmt.Errorf("set picture filter '%v': %w", filter, err)
	}
	if err := b.SetPictureTransform(src.Picture, transform); err != nil {
		return fmt.Errorf("set picture transform: %w", err)
	}
	return b.Composite(OpOver, src.Picture, None, dst.Picture,
		0, 0, 0, 0, x, y, width, height)
}

// CompositeRequest is a single composite of a source onto a destination
// rectangle.
type CompositeRequest struct {
	Source *Surface
	Dest   *Surface
	X      int
	Y      int
	Width  int
	Height int
	Filter Filter
}

// Apply issues the request on the compositor.
func (r *CompositeRequest) Apply(c *Compositor) error {
	return c.CompositeOver(r.Source, r.Dest, r.X, r.Y, r.Width, r.Height, r.Filter)
}
