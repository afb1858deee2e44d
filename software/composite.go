package software

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	rb "github.com/rmcsoft/renderbench"
)

func interpolator(filter rb.Filter) draw.Interpolator {
	if filter == rb.FilterBilinear {
		return draw.BiLinear
	}
	return draw.NearestNeighbor
}

// sourceToDest inverts the picture transform, which maps destination
// coordinates (relative to the composite origin plus the source origin)
// onto source coordinates.
func sourceToDest(t rb.Transform, srcX, srcY, dstX, dstY int) (f64.Aff3, error) {
	a, b, tx := t[0][0].Float64(), t[0][1].Float64(), t[0][2].Float64()
	c, d, ty := t[1][0].Float64(), t[1][1].Float64(), t[1][2].Float64()

	det := a*d - b*c
	if det == 0 {
		return f64.Aff3{}, fmt.Errorf("singular transform: %w", ErrUnsupported)
	}
	ia, ib := d/det, -b/det
	ic, id := -c/det, a/det

	offX := float64(dstX - srcX)
	offY := float64(dstY - srcY)
	return f64.Aff3{
		ia, ib, offX - (ia*tx + ib*ty),
		ic, id, offY - (ic*tx + id*ty),
	}, nil
}

// Composite blends src over the rectangle of dst. Only the "over"
// operator without a mask is implemented. Repeat is never applied: the
// destination outside the transformed source is left untouched.
func (b *Backend) Composite(op rb.Op, src, mask, dst rb.Picture,
	srcX, srcY, maskX, maskY, dstX, dstY, width, height int) error {
	if op != rb.OpOver {
		return fmt.Errorf("operator %d: %w", op, ErrUnsupported)
	}
	if mask != rb.None {
		return fmt.Errorf("mask picture: %w", ErrUnsupported)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	sp, ok := b.pictures[src]
	if !ok {
		return rb.ErrUnknownPicture
	}
	dp, ok := b.pictures[dst]
	if !ok {
		return rb.ErrUnknownPicture
	}
	sd, ok := b.drawables[sp.drawable]
	if !ok {
		return rb.ErrUnknownDrawable
	}
	dd, ok := b.drawables[dp.drawable]
	if !ok {
		return rb.ErrUnknownDrawable
	}
	b.stats.Composites++

	clip := image.Rect(dstX, dstY, dstX+width, dstY+height).Intersect(dd.img.Bounds())
	if clip.Empty() {
		return nil
	}
	dstImg := dd.img.SubImage(clip).(*image.RGBA)

	if sp.transform == rb.IdentityTransform() {
		origin := image.Pt(srcX+clip.Min.X-dstX, srcY+clip.Min.Y-dstY)
		draw.Draw(dstImg, clip, sd.img, origin, draw.Over)
		return nil
	}

	s2d, err := sourceToDest(sp.transform, srcX, srcY, dstX, dstY)
	if err != nil {
		return err
	}
	interpolator(sp.filter).Transform(dstImg, s2d, sd.img, sd.img.Bounds(), draw.Over, nil)
	return nil
}
