package renderbench

import (
	"fmt"
)

// Default surface sizes and source images.
const (
	DefaultWindowSize    = 320
	DefaultOffscreenSize = 320

	DefaultOpaqueImage      = "tst_opaque.png"
	DefaultTransparentImage = "tst_transparent.png"
)

// SetupConfig names the images the benchmark surfaces are filled with.
type SetupConfig struct {
	OpaqueImage      string
	TransparentImage string
	OffscreenWidth   int
	OffscreenHeight  int
	Decoder          Decoder
}

// DefaultSetupConfig returns the reference configuration.
func DefaultSetupConfig() SetupConfig {
	return SetupConfig{
		OpaqueImage:      DefaultOpaqueImage,
		TransparentImage: DefaultTransparentImage,
		OffscreenWidth:   DefaultOffscreenSize,
		OffscreenHeight:  DefaultOffscreenSize,
		Decoder:          DefaultDecoder,
	}
}

// Setup adopts the display's window, allocates the off-screen and the
// source surfaces and fills them: the window and the off-screen surface
// with the opaque image, the source with the transparent one. The source
// surface has the size of the transparent image.
func Setup(display Display, cfg SetupConfig) (*ScenarioContext, error) {
	b := display.Backend()
	decoder := cfg.Decoder
	if decoder == nil {
		decoder = DefaultDecoder
	}

	opaque, err := decoder.Decode(cfg.OpaqueImage)
	if err != nil {
		return nil, err
	}
	transparent, err := decoder.Decode(cfg.TransparentImage)
	if err != nil {
		return nil, err
	}

	sc := &ScenarioContext{}
	ok := false
	defer func() {
		if !ok {
			sc.Release(b)
		}
	}()

	winWidth, winHeight := display.Size()
	if sc.OnScreen, err = AdoptSurface(b, display.Window(), display.Visual(), winWidth, winHeight); err != nil {
		return nil, fmt.Errorf("adopt window: %w", err)
	}
	if sc.OffScreen, err = AllocateSurface(b, display.Window(), display.Visual(),
		cfg.OffscreenWidth, cfg.OffscreenHeight, false); err != nil {
		return nil, fmt.Errorf("off-screen surface: %w", err)
	}
	if sc.Source, err = AllocateSurface(b, display.Window(), display.Visual(),
		transparent.Width, transparent.Height, true); err != nil {
		return nil, fmt.Errorf("source surface: %w", err)
	}

	for _, fill := range []struct {
		surface *Surface
		pixmap  *Pixmap
		name    string
	}{
		{sc.OnScreen, opaque, cfg.OpaqueImage},
		{sc.OffScreen, opaque, cfg.OpaqueImage},
		{sc.Source, transparent, cfg.TransparentImage},
	} {
		if err = Upload(b, fill.surface, fill.pixmap); err != nil {
			return nil, fmt.Errorf("populate from %s: %w", fill.name, err)
		}
	}

	ok = true
	return sc, nil
}

// Release releases every surface of the context.
func (sc *ScenarioContext) Release(b Backend) error {
	var firstErr error
	for _, s := range []*Surface{sc.Source, sc.OffScreen, sc.OnScreen} {
		if s == nil {
			continue
		}
		if err := s.Release(b); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
