package xrender

import (
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/sirupsen/logrus"

	rb "github.com/rmcsoft/renderbench"
)

const (
	windowTitle = "Render Test Program"
	windowName  = "Main"
	windowClass = "Render_Demo"

	mapSettleTime = 200 * time.Millisecond
)

// Display is a mapped window on an X server.
type Display struct {
	backend *Backend
	window  xproto.Window
	visual  xproto.Visualid
	width   int
	height  int
}

var _ rb.Display = (*Display)(nil)

// Open connects to the X server (an empty name means $DISPLAY), creates
// and maps a window and waits until it is shown.
func Open(displayName string, width, height int) (*Display, error) {
	conn, err := xgb.NewConnDisplay(displayName)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to display: %w", err)
	}

	backend, err := NewBackend(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	d := &Display{backend: backend, width: width, height: height}
	if err = d.createWindow(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *Display) createWindow() error {
	conn := d.backend.conn
	screen := xproto.Setup(conn).DefaultScreen(conn)

	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}

	eventMask := uint32(xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskExposure |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease)

	err = xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root,
		0, 0, uint16(d.width), uint16(d.height), 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixmap|xproto.CwBorderPixel|xproto.CwEventMask|xproto.CwColormap,
		[]uint32{xproto.BackPixmapNone, 0, eventMask, uint32(screen.DefaultColormap)}).Check()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	setStringProperty(conn, window, xproto.AtomWmName, []byte(windowTitle))
	setStringProperty(conn, window, xproto.AtomWmClass, []byte(windowName+"\x00"+windowClass+"\x00"))

	xproto.MapWindow(conn, window)
	if err = d.backend.Sync(); err != nil {
		return err
	}
	time.Sleep(mapSettleTime)
	if err = d.backend.Sync(); err != nil {
		return err
	}

	d.window = window
	d.visual = screen.RootVisual
	logrus.WithFields(logrus.Fields{
		"window": fmt.Sprintf("0x%x", uint32(window)),
		"visual": fmt.Sprintf("0x%x", uint32(screen.RootVisual)),
		"depth":  screen.RootDepth,
	}).Debug("Window mapped")
	return nil
}

func setStringProperty(conn *xgb.Conn, window xproto.Window, property xproto.Atom, value []byte) {
	xproto.ChangeProperty(conn, xproto.PropModeReplace, window, property,
		xproto.AtomString, 8, uint32(len(value)), value)
}

// Backend returns the RENDER backend of the connection.
func (d *Display) Backend() rb.Backend {
	return d.backend
}

// Window returns the window drawable.
func (d *Display) Window() rb.Drawable {
	return rb.Drawable(d.window)
}

// Visual returns the default visual of the screen.
func (d *Display) Visual() rb.Visual {
	return rb.Visual(d.visual)
}

// Size returns the window size.
func (d *Display) Size() (int, int) {
	return d.width, d.height
}

// Close destroys the window and disconnects.
func (d *Display) Close() error {
	xproto.DestroyWindow(d.backend.conn, d.window)
	return d.backend.Close()
}
