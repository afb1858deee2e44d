package software

import (
	rb "github.com/rmcsoft/renderbench"
)

// Display is a headless window of a software backend.
type Display struct {
	backend *Backend
	window  rb.Drawable
	width   int
	height  int
}

var _ rb.Display = (*Display)(nil)

// OpenDisplay creates a backend with one window of the given size.
func OpenDisplay(width, height int) *Display {
	b := New()
	return &Display{
		backend: b,
		window:  b.NewWindow(width, height),
		width:   width,
		height:  height,
	}
}

// Backend returns the software backend.
func (d *Display) Backend() rb.Backend {
	return d.backend
}

// Software returns the concrete backend.
func (d *Display) Software() *Backend {
	return d.backend
}

// Window returns the window drawable.
func (d *Display) Window() rb.Drawable {
	return d.window
}

// Visual returns DefaultVisual.
func (d *Display) Visual() rb.Visual {
	return DefaultVisual
}

// Size returns the window size.
func (d *Display) Size() (int, int) {
	return d.width, d.height
}

// Close drops the window and every backend object.
func (d *Display) Close() error {
	d.backend.DestroyWindow(d.window)
	return d.backend.Close()
}
