// Package sdlrender implements the compositing backend on an SDL2
// renderer. Pixmaps are render-target textures and the window is the
// renderer's default target. All calls must come from the thread that
// created the renderer.
package sdlrender

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	rb "github.com/rmcsoft/renderbench"
)

// Name is the backend identifier.
const Name = "sdl"

// windowDrawable is the renderer's default target.
const windowDrawable rb.Drawable = 1

// DefaultVisual is the visual of the window: its pixel format.
const DefaultVisual = rb.Visual(sdl.PIXELFORMAT_RGB888)

var (
	formatRGB24  = rb.Format{ID: uint32(sdl.PIXELFORMAT_RGB888), Depth: 24, HasAlpha: false}
	formatARGB32 = rb.Format{ID: uint32(sdl.PIXELFORMAT_ARGB8888), Depth: 32, HasAlpha: true}
)

// ErrWindowSource is returned when the window is used as composite source.
var ErrWindowSource = errors.New("sdl: the window cannot be a composite source")

type picture struct {
	drawable  rb.Drawable
	filter    rb.Filter
	transform rb.Transform
}

type pixmap struct {
	texture *sdl.Texture
	width   int
	height  int
	depth   int
}

// Backend draws with an SDL renderer.
type Backend struct {
	renderer *sdl.Renderer
	nextID   uint32
	pixmaps  map[rb.Drawable]*pixmap
	pictures map[rb.Picture]*picture
}

var _ rb.Backend = (*Backend)(nil)

// NewBackend creates a backend drawing with renderer, which must support
// render-target textures.
func NewBackend(renderer *sdl.Renderer) *Backend {
	return &Backend{
		renderer: renderer,
		nextID:   uint32(windowDrawable),
		pixmaps:  make(map[rb.Drawable]*pixmap),
		pictures: make(map[rb.Picture]*picture),
	}
}

func (b *Backend) newID() uint32 {
	b.nextID++
	return b.nextID
}

// Name returns "sdl".
func (b *Backend) Name() string {
	return Name
}

// StandardFormat returns ARGB8888 or RGB888.
func (b *Backend) StandardFormat(hasAlpha bool) (rb.Format, error) {
	if hasAlpha {
		return formatARGB32, nil
	}
	return formatRGB24, nil
}

// VisualFormat maps an SDL pixel format onto a picture format.
func (b *Backend) VisualFormat(visual rb.Visual) (rb.Format, error) {
	switch uint32(visual) {
	case formatRGB24.ID:
		return formatRGB24, nil
	case formatARGB32.ID:
		return formatARGB32, nil
	default:
		return rb.Format{}, fmt.Errorf("visual 0x%x: %w", uint32(visual), rb.ErrNoFormat)
	}
}

func textureFormat(depth int) uint32 {
	if depth == 32 {
		return sdl.PIXELFORMAT_ARGB8888
	}
	return sdl.PIXELFORMAT_RGB888
}

// CreatePixmap creates a render-target texture.
func (b *Backend) CreatePixmap(ref rb.Drawable, width, height, depth int) (rb.Drawable, error) {
	texture, err := b.renderer.CreateTexture(textureFormat(depth), sdl.TEXTUREACCESS_TARGET,
		int32(width), int32(height))
	if err != nil {
		return 0, err
	}

	var blendMode sdl.BlendMode = sdl.BLENDMODE_NONE
	if depth == 32 {
		blendMode = sdl.BLENDMODE_BLEND
	}
	if err = texture.SetBlendMode(blendMode); err != nil {
		texture.Destroy()
		return 0, err
	}

	id := rb.Drawable(b.newID())
	b.pixmaps[id] = &pixmap{texture: texture, width: width, height: height, depth: depth}
	return id, nil
}

// FreePixmap destroys the texture.
func (b *Backend) FreePixmap(id rb.Drawable) error {
	p, ok := b.pixmaps[id]
	if !ok {
		return rb.ErrUnknownDrawable
	}
	delete(b.pixmaps, id)
	return p.texture.Destroy()
}

func (b *Backend) hasDrawable(id rb.Drawable) bool {
	_, ok := b.pixmaps[id]
	return ok || id == windowDrawable
}

// CreatePicture binds a picture to a texture or to the window.
func (b *Backend) CreatePicture(id rb.Drawable, format rb.Format, attrs rb.PictureAttributes) (rb.Picture, error) {
	if !b.hasDrawable(id) {
		return 0, rb.ErrUnknownDrawable
	}
	pid := rb.Picture(b.newID())
	b.pictures[pid] = &picture{
		drawable:  id,
		filter:    rb.FilterNearest,
		transform: rb.IdentityTransform(),
	}
	return pid, nil
}

// FreePicture frees a picture.
func (b *Backend) FreePicture(pid rb.Picture) error {
	if _, ok := b.pictures[pid]; !ok {
		return rb.ErrUnknownPicture
	}
	delete(b.pictures, pid)
	return nil
}

// target returns the texture to render into, nil for the window.
func (b *Backend) target(id rb.Drawable) (*sdl.Texture, error) {
	if id == windowDrawable {
		return nil, nil
	}
	p, ok := b.pixmaps[id]
	if !ok {
		return nil, rb.ErrUnknownDrawable
	}
	return p.texture, nil
}

// PutImage streams the image through a temporary texture.
func (b *Backend) PutImage(id rb.Drawable, img *rb.NativeImage) error {
	target, err := b.target(id)
	if err != nil {
		return err
	}

	texture, err := b.renderer.CreateTexture(textureFormat(img.Depth), sdl.TEXTUREACCESS_STREAMING,
		int32(img.Width), int32(img.Height))
	if err != nil {
		return err
	}
	defer texture.Destroy()

	texturePixels, textureBytePerLine, err := texture.Lock(nil)
	if err != nil {
		return err
	}
	rowSize := img.Width * 4
	for rowNum := 0; rowNum < img.Height; rowNum++ {
		imgRow := img.Data[rowNum*img.BytesPerLine : rowNum*img.BytesPerLine+rowSize]
		textureOffset := rowNum * textureBytePerLine
		copy(texturePixels[textureOffset:textureOffset+rowSize], imgRow)
	}
	texture.Unlock()

	if err = texture.SetBlendMode(sdl.BLENDMODE_NONE); err != nil {
		return err
	}
	if err = b.renderer.SetRenderTarget(target); err != nil {
		return err
	}
	rect := sdl.Rect{W: int32(img.Width), H: int32(img.Height)}
	return b.renderer.Copy(texture, nil, &rect)
}

// GetImage reads back a rectangle of the drawable.
func (b *Backend) GetImage(id rb.Drawable, x, y, width, height int) (*rb.NativeImage, error) {
	target, err := b.target(id)
	if err != nil {
		return nil, err
	}
	if err = b.renderer.SetRenderTarget(target); err != nil {
		return nil, err
	}

	depth := 24
	if p, ok := b.pixmaps[id]; ok {
		depth = p.depth
	}
	img := rb.NewNativeImage(width, height, depth)
	rect := sdl.Rect{X: int32(x), Y: int32(y), W: int32(width), H: int32(height)}
	err = b.renderer.ReadPixels(&rect, sdl.PIXELFORMAT_ARGB8888, unsafe.Pointer(&img.Data[0]), img.BytesPerLine)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// SetPictureFilter records the filter; it is applied to the texture when
// the picture is composited.
func (b *Backend) SetPictureFilter(pid rb.Picture, filter rb.Filter) error {
	p, ok := b.pictures[pid]
	if !ok {
		return rb.ErrUnknownPicture
	}
	p.filter = filter
	return nil
}

// SetPictureTransform records the transform. Only scale and translation
// are honoured.
func (b *Backend) SetPictureTransform(pid rb.Picture, transform rb.Transform) error {
	p, ok := b.pictures[pid]
	if !ok {
		return rb.ErrUnknownPicture
	}
	p.transform = transform
	return nil
}

func scaleMode(filter rb.Filter) sdl.ScaleMode {
	if filter == rb.FilterBilinear {
		return sdl.ScaleModeLinear
	}
	return sdl.ScaleModeNearest
}

// sourceRect maps the destination rectangle through the transform.
func sourceRect(t rb.Transform, srcX, srcY, width, height int) sdl.Rect {
	return sdl.Rect{
		X: int32(srcX) + int32(t[0][2]>>16),
		Y: int32(srcY) + int32(t[1][2]>>16),
		W: int32((int64(width) * int64(t[0][0])) >> 16),
		H: int32((int64(height) * int64(t[1][1])) >> 16),
	}
}

// Composite copies the source texture onto the destination with
// SDL_BLENDMODE_BLEND for alpha textures.
func (b *Backend) Composite(op rb.Op, src, mask, dst rb.Picture,
	srcX, srcY, maskX, maskY, dstX, dstY, width, height int) error {
	if op != rb.OpOver || mask != rb.None {
		return errors.New("sdl: only unmasked over is supported")
	}

	sp, ok := b.pictures[src]
	if !ok {
		return rb.ErrUnknownPicture
	}
	dp, ok := b.pictures[dst]
	if !ok {
		return rb.ErrUnknownPicture
	}
	source, ok := b.pixmaps[sp.drawable]
	if !ok {
		return ErrWindowSource
	}
	target, err := b.target(dp.drawable)
	if err != nil {
		return err
	}

	if err = source.texture.SetScaleMode(scaleMode(sp.filter)); err != nil {
		return err
	}
	if err = b.renderer.SetRenderTarget(target); err != nil {
		return err
	}
	srcRect := sourceRect(sp.transform, srcX, srcY, width, height)
	dstRect := sdl.Rect{X: int32(dstX), Y: int32(dstY), W: int32(width), H: int32(height)}
	return b.renderer.Copy(source.texture, &srcRect, &dstRect)
}

// QueryFilters lists the scale modes as filter names.
func (b *Backend) QueryFilters(id rb.Drawable) ([]string, error) {
	if !b.hasDrawable(id) {
		return nil, rb.ErrUnknownDrawable
	}
	return []string{rb.FilterNearest.String(), rb.FilterBilinear.String()}, nil
}

// Sync reads one pixel of the window, which waits for the renderer to
// finish, and presents the window.
func (b *Backend) Sync() error {
	if err := b.renderer.SetRenderTarget(nil); err != nil {
		return err
	}
	var pixel [4]byte
	rect := sdl.Rect{W: 1, H: 1}
	if err := b.renderer.ReadPixels(&rect, sdl.PIXELFORMAT_ARGB8888, unsafe.Pointer(&pixel[0]), 4); err != nil {
		return err
	}
	b.renderer.Present()
	return nil
}

// Close destroys every texture.
func (b *Backend) Close() error {
	for id, p := range b.pixmaps {
		p.texture.Destroy()
		delete(b.pixmaps, id)
	}
	return nil
}
