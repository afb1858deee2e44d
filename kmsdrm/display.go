// Package kmsdrm shows the software backend on a DRM/KMS framebuffer
// without a display server.
package kmsdrm

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	drm "github.com/rmcsoft/godrm"
	"github.com/rmcsoft/godrm/mode"

	rb "github.com/rmcsoft/renderbench"
	"github.com/rmcsoft/renderbench/software"
)

const (
	bpp   = 32
	depth = 24
)

type framebuffer struct {
	handle uint32
	id     uint32
	pitch  int
	buf    []byte
}

// Display scans out a dumb framebuffer whose pixels are the window of a
// software backend. The window covers the top-left width x height corner
// of the screen.
type Display struct {
	card    *os.File
	modeset mode.Modeset
	fb      *framebuffer

	backend *software.Backend
	window  rb.Drawable
	width   int
	height  int
}

var _ rb.Display = (*Display)(nil)

// Open opens /dev/dri/card<cardNum>, creates a framebuffer for the first
// connected output and sets it as the CRTC's scanout buffer.
func Open(cardNum int, width, height int) (*Display, error) {
	card, err := drm.OpenCard(cardNum)
	if err != nil {
		return nil, err
	}

	if !drm.HasDumbBuffer(card) {
		card.Close()
		return nil, fmt.Errorf("drm device %v does not support dumb buffers", cardNum)
	}

	simpleMSet, err := mode.NewSimpleModeset(card)
	if err != nil {
		card.Close()
		return nil, err
	}
	if len(simpleMSet.Modesets) == 0 {
		card.Close()
		return nil, errors.New("Modesets is empty")
	}

	d := &Display{
		card:    card,
		modeset: simpleMSet.Modesets[0],
		backend: software.New(),
	}
	if width > int(d.modeset.Width) || height > int(d.modeset.Height) {
		card.Close()
		return nil, fmt.Errorf("window %dx%d exceeds mode %dx%d", width, height, d.modeset.Width, d.modeset.Height)
	}
	d.width, d.height = width, height

	if d.fb, err = d.createFramebuffer(); err != nil {
		card.Close()
		return nil, err
	}

	if d.window, err = d.backend.AdoptBuffer(d.fb.buf, d.fb.pitch, width, height); err != nil {
		d.Close()
		return nil, err
	}

	err = mode.SetCrtc(d.card, d.modeset.Crtc, d.fb.id, 0, 0, &d.modeset.Conn, 1, &d.modeset.Mode)
	if err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *Display) createFramebuffer() (*framebuffer, error) {
	fb := &framebuffer{}
	var err error

	defer func() {
		if err != nil {
			d.destroyFramebuffer(fb)
		}
	}()

	width := d.modeset.Width
	height := d.modeset.Height

	fbInfo, err := mode.CreateFB(d.card, uint16(width), uint16(height), uint32(bpp))
	if err != nil {
		return nil, err
	}

	fb.handle = fbInfo.Handle
	fb.pitch = int(fbInfo.Pitch)
	fb.id, err = mode.AddFB(d.card, uint16(width), uint16(height),
		uint8(depth), uint8(bpp), fbInfo.Pitch, fb.handle)
	if err != nil {
		return nil, err
	}

	offset, err := mode.MapDumb(d.card, fb.handle)
	if err != nil {
		return nil, err
	}

	fb.buf, err = syscall.Mmap(int(d.card.Fd()), int64(offset), int(fbInfo.Size),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	return fb, nil
}

func (d *Display) destroyFramebuffer(fb *framebuffer) {
	if fb != nil && d.card != nil {
		if fb.buf != nil {
			syscall.Munmap(fb.buf)
			fb.buf = nil
		}

		if fb.id != 0 {
			mode.RmFB(d.card, fb.id)
			fb.id = 0
		}

		if fb.handle != 0 {
			mode.DestroyDumb(d.card, fb.handle)
			fb.handle = 0
		}
	}
}

// Backend returns the software backend presenting into the framebuffer.
func (d *Display) Backend() rb.Backend {
	return d.backend
}

// Window returns the drawable backed by the framebuffer.
func (d *Display) Window() rb.Drawable {
	return d.window
}

// Visual returns the software backend's default visual.
func (d *Display) Visual() rb.Visual {
	return software.DefaultVisual
}

// Size returns the window size.
func (d *Display) Size() (int, int) {
	return d.width, d.height
}

// Close releases the framebuffer and the card.
func (d *Display) Close() error {
	if d.window != 0 {
		d.backend.DestroyWindow(d.window)
		d.window = 0
	}
	d.backend.Close()
	d.destroyFramebuffer(d.fb)
	return d.card.Close()
}
