package xrender

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rb "github.com/rmcsoft/renderbench"
)

func openDisplay(t *testing.T) *Display {
	t.Helper()
	if os.Getenv("DISPLAY") == "" {
		t.Skip("DISPLAY is not set")
	}
	display, err := Open("", 64, 64)
	if err != nil {
		t.Skipf("no X server with RENDER: %v", err)
	}
	t.Cleanup(func() { display.Close() })
	return display
}

func TestBoolValue(t *testing.T) {
	assert.Equal(t, uint32(1), boolValue(true))
	assert.Equal(t, uint32(0), boolValue(false))
}

func TestBackend_StandardFormats(t *testing.T) {
	display := openDisplay(t)
	b := display.Backend()

	argb, err := b.StandardFormat(true)
	require.NoError(t, err)
	assert.Equal(t, 32, argb.Depth)
	assert.True(t, argb.HasAlpha)

	rgb, err := b.StandardFormat(false)
	require.NoError(t, err)
	assert.Equal(t, 24, rgb.Depth)
	assert.NotEqual(t, argb.ID, rgb.ID)

	filters, err := b.QueryFilters(display.Window())
	require.NoError(t, err)
	assert.Contains(t, filters, "nearest")
	assert.Contains(t, filters, "bilinear")
}

func TestBackend_UploadCompositeReadBack(t *testing.T) {
	display := openDisplay(t)
	b := display.Backend()

	dst, err := rb.AllocateSurface(b, display.Window(), display.Visual(), 16, 16, false)
	require.NoError(t, err)
	defer dst.Release(b)
	src, err := rb.AllocateSurface(b, display.Window(), display.Visual(), 8, 8, true)
	require.NoError(t, err)
	defer src.Release(b)

	data := make([]byte, 8*8*4)
	for i := 0; i < len(data); i += 4 {
		data[i], data[i+1], data[i+2], data[i+3] = 0, 0xff, 0, 0xff
	}
	require.NoError(t, rb.UploadRaw(b, src, 8, 8, 32, 4, data))
	require.NoError(t, rb.CompositeOver(b, src, dst, 4, 4, 8, 8, rb.FilterNearest))
	require.NoError(t, b.Sync())

	img, err := b.GetImage(dst.Drawable, 0, 0, 16, 16)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00ff00), img.Pixel(8, 8)&0xffffff)
}

func TestBackend_RunsScenario(t *testing.T) {
	display := openDisplay(t)
	b := display.Backend()
	w, h := display.Size()

	onScreen, err := rb.AdoptSurface(b, display.Window(), display.Visual(), w, h)
	require.NoError(t, err)
	source, err := rb.AllocateSurface(b, display.Window(), display.Visual(), 16, 16, true)
	require.NoError(t, err)
	sc := &rb.ScenarioContext{Source: source, OnScreen: onScreen}
	defer sc.Release(b)

	d := rb.NewDriver(rb.NewCompositor(b))
	d.Reps = 256
	_, err = d.RunScenario(context.Background(), sc,
		rb.Scenario{Destination: rb.OnScreen, Scale: rb.ScaleHalf, Filter: rb.FilterNearest})
	require.NoError(t, err)
}
