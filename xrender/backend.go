// Package xrender implements the compositing backend on an X11 server
// with the RENDER extension.
package xrender

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/render"
	"github.com/jezek/xgb/xproto"

	rb "github.com/rmcsoft/renderbench"
)

// Name is the backend identifier.
const Name = "xrender"

// putImageHeader is the size of a PutImage request without its data.
const putImageHeader = 24

// Backend issues RENDER requests on an X connection.
type Backend struct {
	conn *xgb.Conn

	formats  []render.Pictforminfo
	visuals  map[xproto.Visualid]render.Pictformat
	argb32   rb.Format
	rgb24    rb.Format
	maxBytes int
}

var _ rb.Backend = (*Backend)(nil)

// NewBackend initializes the RENDER extension on the connection and
// looks up the picture formats. RENDER 0.6 or newer is required for
// picture filters and transforms.
func NewBackend(conn *xgb.Conn) (*Backend, error) {
	if err := render.Init(conn); err != nil {
		return nil, fmt.Errorf("init RENDER: %w", err)
	}

	version, err := render.QueryVersion(conn, 0, 11).Reply()
	if err != nil {
		return nil, fmt.Errorf("query RENDER version: %w", err)
	}
	if version.MajorVersion == 0 && version.MinorVersion < 6 {
		return nil, fmt.Errorf("RENDER %d.%d does not support filters",
			version.MajorVersion, version.MinorVersion)
	}

	reply, err := render.QueryPictFormats(conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("query picture formats: %w", err)
	}

	b := &Backend{
		conn:     conn,
		formats:  reply.Formats,
		visuals:  make(map[xproto.Visualid]render.Pictformat),
		maxBytes: int(xproto.Setup(conn).MaximumRequestLength) * 4,
	}
	for _, screen := range reply.Screens {
		for _, depth := range screen.Depths {
			for _, visual := range depth.Visuals {
				b.visuals[visual.Visual] = visual.Format
			}
		}
	}

	if b.argb32, err = b.findStandard(32, 24, 0xff); err != nil {
		return nil, err
	}
	if b.rgb24, err = b.findStandard(24, 0, 0); err != nil {
		return nil, err
	}
	return b, nil
}

// findStandard looks for the direct format with red, green and blue at
// bits 16, 8 and 0, like XRenderFindStandardFormat.
func (b *Backend) findStandard(depth int, alphaShift, alphaMask uint16) (rb.Format, error) {
	for _, f := range b.formats {
		d := f.Direct
		if f.Type == render.PictTypeDirect && int(f.Depth) == depth &&
			d.RedShift == 16 && d.RedMask == 0xff &&
			d.GreenShift == 8 && d.GreenMask == 0xff &&
			d.BlueShift == 0 && d.BlueMask == 0xff &&
			d.AlphaShift == alphaShift && d.AlphaMask == alphaMask {
			return toFormat(f), nil
		}
	}
	return rb.Format{}, fmt.Errorf("standard format of depth %d: %w", depth, rb.ErrNoFormat)
}

func toFormat(f render.Pictforminfo) rb.Format {
	return rb.Format{
		ID:       uint32(f.Id),
		Depth:    int(f.Depth),
		HasAlpha: f.Direct.AlphaMask != 0,
	}
}

// Name returns "xrender".
func (b *Backend) Name() string {
	return Name
}

// Conn returns the X connection.
func (b *Backend) Conn() *xgb.Conn {
	return b.conn
}

// StandardFormat returns PictStandardARGB32 or PictStandardRGB24.
func (b *Backend) StandardFormat(hasAlpha bool) (rb.Format, error) {
	if hasAlpha {
		return b.argb32, nil
	}
	return b.rgb24, nil
}

// VisualFormat returns the picture format of the visual.
func (b *Backend) VisualFormat(visual rb.Visual) (rb.Format, error) {
	id, ok := b.visuals[xproto.Visualid(visual)]
	if !ok {
		return rb.Format{}, fmt.Errorf("visual 0x%x: %w", uint32(visual), rb.ErrNoFormat)
	}
	for _, f := range b.formats {
		if f.Id == id {
			return toFormat(f), nil
		}
	}
	return rb.Format{}, fmt.Errorf("visual 0x%x: %w", uint32(visual), rb.ErrNoFormat)
}

// CreatePixmap creates a pixmap on the screen of ref.
func (b *Backend) CreatePixmap(ref rb.Drawable, width, height, depth int) (rb.Drawable, error) {
	pid, err := xproto.NewPixmapId(b.conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreatePixmapChecked(b.conn, byte(depth), pid, xproto.Drawable(ref),
		uint16(width), uint16(height)).Check()
	if err != nil {
		return 0, err
	}
	return rb.Drawable(pid), nil
}

// FreePixmap frees a pixmap.
func (b *Backend) FreePixmap(pixmap rb.Drawable) error {
	return xproto.FreePixmapChecked(b.conn, xproto.Pixmap(pixmap)).Check()
}

// CreatePicture creates a picture on the drawable.
func (b *Backend) CreatePicture(drawable rb.Drawable, format rb.Format, attrs rb.PictureAttributes) (rb.Picture, error) {
	pid, err := render.NewPictureId(b.conn)
	if err != nil {
		return 0, err
	}

	// Values follow the order of the mask bits.
	mask := uint32(render.CpRepeat | render.CpDither | render.CpComponentAlpha)
	values := []uint32{boolValue(attrs.Repeat), boolValue(attrs.Dither), boolValue(attrs.ComponentAlpha)}

	err = render.CreatePictureChecked(b.conn, pid, xproto.Drawable(drawable),
		render.Pictformat(format.ID), mask, values).Check()
	if err != nil {
		return 0, err
	}
	return rb.Picture(pid), nil
}

func boolValue(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// FreePicture frees a picture.
func (b *Backend) FreePicture(picture rb.Picture) error {
	return render.FreePictureChecked(b.conn, render.Picture(picture)).Check()
}

// PutImage transfers the image in strips of rows that fit into one request.
func (b *Backend) PutImage(drawable rb.Drawable, img *rb.NativeImage) error {
	gc, err := xproto.NewGcontextId(b.conn)
	if err != nil {
		return err
	}
	if err = xproto.CreateGCChecked(b.conn, gc, xproto.Drawable(drawable), 0, nil).Check(); err != nil {
		return err
	}
	defer xproto.FreeGC(b.conn, gc)

	rows := (b.maxBytes - putImageHeader) / img.BytesPerLine
	if rows <= 0 {
		return errors.New("image row does not fit into a request")
	}
	for y := 0; y < img.Height; y += rows {
		end := y + rows
		if end > img.Height {
			end = img.Height
		}
		strip := img.Rows(y, end)
		err = xproto.PutImageChecked(b.conn, xproto.ImageFormatZPixmap, xproto.Drawable(drawable), gc,
			uint16(strip.Width), uint16(strip.Height), 0, int16(y), 0, byte(img.Depth), strip.Data).Check()
		if err != nil {
			return err
		}
	}
	return nil
}

// GetImage reads back a rectangle of the drawable.
func (b *Backend) GetImage(drawable rb.Drawable, x, y, width, height int) (*rb.NativeImage, error) {
	reply, err := xproto.GetImage(b.conn, xproto.ImageFormatZPixmap, xproto.Drawable(drawable),
		int16(x), int16(y), uint16(width), uint16(height), 0xffffffff).Reply()
	if err != nil {
		return nil, err
	}
	if len(reply.Data) < width*height*4 {
		return nil, fmt.Errorf("got %d bytes for %dx%d: %w", len(reply.Data), width, height, rb.ErrShortBuffer)
	}
	return &rb.NativeImage{
		Width:        width,
		Height:       height,
		Depth:        int(reply.Depth),
		BytesPerLine: width * 4,
		Data:         reply.Data,
	}, nil
}

// SetPictureFilter sets the filter by name.
func (b *Backend) SetPictureFilter(picture rb.Picture, filter rb.Filter) error {
	name := filter.String()
	render.SetPictureFilter(b.conn, render.Picture(picture), uint16(len(name)), name, nil)
	return nil
}

// SetPictureTransform sets the picture transform.
func (b *Backend) SetPictureTransform(picture rb.Picture, t rb.Transform) error {
	render.SetPictureTransform(b.conn, render.Picture(picture), render.Transform{
		Matrix11: render.Fixed(t[0][0]), Matrix12: render.Fixed(t[0][1]), Matrix13: render.Fixed(t[0][2]),
		Matrix21: render.Fixed(t[1][0]), Matrix22: render.Fixed(t[1][1]), Matrix23: render.Fixed(t[1][2]),
		Matrix31: render.Fixed(t[2][0]), Matrix32: render.Fixed(t[2][1]), Matrix33: render.Fixed(t[2][2]),
	})
	return nil
}

// Composite queues a composite request. Protocol errors are reported by
// the next Sync.
func (b *Backend) Composite(op rb.Op, src, mask, dst rb.Picture,
	srcX, srcY, maskX, maskY, dstX, dstY, width, height int) error {
	render.Composite(b.conn, byte(op),
		render.Picture(src), render.Picture(mask), render.Picture(dst),
		int16(srcX), int16(srcY), int16(maskX), int16(maskY), int16(dstX), int16(dstY),
		uint16(width), uint16(height))
	return nil
}

// QueryFilters returns the filter names supported on the drawable's screen.
func (b *Backend) QueryFilters(drawable rb.Drawable) ([]string, error) {
	reply, err := render.QueryFilters(b.conn, xproto.Drawable(drawable)).Reply()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(reply.Filters))
	for _, f := range reply.Filters {
		names = append(names, f.Name)
	}
	return names, nil
}

// Sync makes a round trip, so every request issued before has been
// processed by the server, then returns the first queued protocol error.
func (b *Backend) Sync() error {
	if _, err := xproto.GetInputFocus(b.conn).Reply(); err != nil {
		return err
	}
	for {
		ev, err := b.conn.PollForEvent()
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
	}
}

// Close closes the connection.
func (b *Backend) Close() error {
	b.conn.Close()
	return nil
}
