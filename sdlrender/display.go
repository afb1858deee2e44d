package sdlrender

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	rb "github.com/rmcsoft/renderbench"
)

var mutexSdlInit = sync.Mutex{}
var sdlInited = false

func initSdl() error {
	mutexSdlInit.Lock()
	defer mutexSdlInit.Unlock()

	if !sdlInited {
		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			return err
		}
		sdlInited = true
	}
	return nil
}

// Display is an SDL window with an accelerated renderer.
type Display struct {
	window  *sdl.Window
	backend *Backend
	width   int
	height  int
}

var _ rb.Display = (*Display)(nil)

// Open creates a shown window and its renderer.
func Open(title string, width, height int) (*Display, error) {
	if err := initSdl(); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_TARGETTEXTURE)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	return &Display{
		window:  window,
		backend: NewBackend(renderer),
		width:   width,
		height:  height,
	}, nil
}

// Backend returns the renderer backend.
func (d *Display) Backend() rb.Backend {
	return d.backend
}

// Window returns the drawable of the default render target.
func (d *Display) Window() rb.Drawable {
	return windowDrawable
}

// Visual returns the window's pixel format.
func (d *Display) Visual() rb.Visual {
	return DefaultVisual
}

// Size returns the window size.
func (d *Display) Size() (int, int) {
	return d.width, d.height
}

// Close destroys the renderer and the window.
func (d *Display) Close() error {
	d.backend.Close()
	d.backend.renderer.Destroy()
	return d.window.Destroy()
}
