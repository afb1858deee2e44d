package renderbench_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rb "github.com/rmcsoft/renderbench"
)

func TestAllocateSurface_Formats(t *testing.T) {
	display := newDisplay(t)
	b := display.Backend()

	for _, tc := range []struct {
		hasAlpha bool
		depth    int
	}{
		{true, 32},
		{false, 24},
	} {
		s, err := rb.AllocateSurface(b, display.Window(), display.Visual(), 17, 9, tc.hasAlpha)
		require.NoError(t, err)
		assert.Equal(t, 17, s.Width)
		assert.Equal(t, 9, s.Height)
		assert.Equal(t, tc.depth, s.Depth)
		assert.Equal(t, tc.depth, s.Format.Depth)
		assert.Equal(t, tc.hasAlpha, s.Format.HasAlpha)
		assert.True(t, s.IsAllocated())
		assert.NoError(t, s.Release(b))
	}
}

func TestAllocateRelease_NoLeak(t *testing.T) {
	display := newDisplay(t)
	backend := display.Software()

	for _, size := range []int{1, 2, 50, 100, 320} {
		for _, hasAlpha := range []bool{false, true} {
			s, err := rb.AllocateSurface(backend, display.Window(), display.Visual(), size, size+1, hasAlpha)
			require.NoError(t, err)
			require.True(t, backend.HasDrawable(s.Drawable))
			require.NoError(t, s.Release(backend))
			assert.False(t, backend.HasDrawable(s.Drawable))
		}
	}

	stats := backend.Stats()
	assert.Equal(t, 0, stats.LivePixmaps())
	assert.Equal(t, 0, stats.LivePictures())
	assert.Equal(t, 10, stats.PixmapsFreed)
}

func TestAdoptRelease_KeepsDrawable(t *testing.T) {
	display := newDisplay(t)
	backend := display.Software()
	w, h := display.Size()

	s, err := rb.AdoptSurface(backend, display.Window(), display.Visual(), w, h)
	require.NoError(t, err)
	assert.False(t, s.IsAllocated())
	assert.Equal(t, 24, s.Depth)
	assert.Equal(t, display.Window(), s.Drawable)

	require.NoError(t, s.Release(backend))

	stats := backend.Stats()
	assert.True(t, backend.HasDrawable(display.Window()))
	assert.Equal(t, 0, stats.PixmapsFreed)
	assert.Equal(t, 0, stats.LivePictures())
}

func TestSurface_DoubleRelease(t *testing.T) {
	display := newDisplay(t)
	b := display.Backend()

	s, err := rb.AllocateSurface(b, display.Window(), display.Visual(), 8, 8, true)
	require.NoError(t, err)
	require.NoError(t, s.Release(b))
	assert.ErrorIs(t, s.Release(b), rb.ErrSurfaceReleased)
}

func TestSurface_InvalidSize(t *testing.T) {
	display := newDisplay(t)
	b := display.Backend()

	_, err := rb.AllocateSurface(b, display.Window(), display.Visual(), 0, 8, true)
	assert.ErrorIs(t, err, rb.ErrInvalidSize)
	_, err = rb.AdoptSurface(b, display.Window(), display.Visual(), 8, -1)
	assert.ErrorIs(t, err, rb.ErrInvalidSize)
	assert.Equal(t, 0, display.Software().Stats().PixmapsCreated)
}

func TestAdoptSurface_UnknownVisual(t *testing.T) {
	display := newDisplay(t)

	_, err := rb.AdoptSurface(display.Backend(), display.Window(), rb.Visual(0xdead), 8, 8)
	assert.ErrorIs(t, err, rb.ErrNoFormat)
}
