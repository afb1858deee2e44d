package renderbench

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInvalidSize is returned for non-positive surface or rectangle sizes.
	ErrInvalidSize = errors.New("invalid size")

	// ErrSurfaceReleased is returned when a released surface is used or released again.
	ErrSurfaceReleased = errors.New("surface is already released")
)

// Surface is a compositable pixel buffer: a drawable paired with a picture
// created in the format matching the drawable's depth.
type Surface struct {
	Width    int
	Height   int
	Depth    int
	Format   Format
	Visual   Visual
	Drawable Drawable
	Picture  Picture

	allocated bool
	released  bool

	// mu guards the picture's filter and transform state.
	mu sync.Mutex
}

func surfaceAttributes() PictureAttributes {
	return PictureAttributes{
		Repeat:         false,
		Dither:         true,
		ComponentAlpha: true,
	}
}

// AllocateSurface creates a new pixmap of the given size together with its
// picture. The standard ARGB32 format is used if hasAlpha is set, RGB24
// otherwise.
func AllocateSurface(b Backend, ref Drawable, visual Visual, width, height int, hasAlpha bool) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("allocate surface %dx%d: %w", width, height, ErrInvalidSize)
	}

	format, err := b.StandardFormat(hasAlpha)
	if err != nil {
		return nil, err
	}

	pixmap, err := b.CreatePixmap(ref, width, height, format.Depth)
	if err != nil {
		return nil, fmt.Errorf("create pixmap %dx%d: %w", width, height, err)
	}

	picture, err := b.CreatePicture(pixmap, format, surfaceAttributes())
	if err != nil {
		b.FreePixmap(pixmap)
		return nil, fmt.Errorf("create picture: %w", err)
	}

	return &Surface{
		Width:     width,
		Height:    height,
		Depth:     format.Depth,
		Format:    format,
		Visual:    visual,
		Drawable:  pixmap,
		Picture:   picture,
		allocated: true,
	}, nil
}

// AdoptSurface wraps an existing drawable, e.g. a window. The format is
// taken from the visual. The drawable stays owned by the caller.
func AdoptSurface(b Backend, drawable Drawable, visual Visual, width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("adopt surface %dx%d: %w", width, height, ErrInvalidSize)
	}

	format, err := b.VisualFormat(visual)
	if err != nil {
		return nil, err
	}

	picture, err := b.CreatePicture(drawable, format, surfaceAttributes())
	if err != nil {
		return nil, fmt.Errorf("create picture: %w", err)
	}

	return &Surface{
		Width:     width,
		Height:    height,
		Depth:     format.Depth,
		Format:    format,
		Visual:    visual,
		Drawable:  drawable,
		Picture:   picture,
		allocated: false,
	}, nil
}

// IsAllocated reports whether the surface owns its drawable.
func (s *Surface) IsAllocated() bool {
	return s.allocated
}

// PixelFormat returns the standard format matching the surface depth.
func (s *Surface) PixelFormat() PixelFormat {
	return PixelFormatForDepth(s.Depth)
}

// Release frees the picture and, for allocated surfaces, the pixmap.
func (s *Surface) Release(b Backend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrSurfaceReleased
	}
	s.released = true

	err := b.FreePicture(s.Picture)
	if s.allocated {
		if pixErr := b.FreePixmap(s.Drawable); err == nil {
			err = pixErr
		}
	}
	return err
}
