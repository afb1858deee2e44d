package renderbench_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	rb "github.com/rmcsoft/renderbench"
	"github.com/rmcsoft/renderbench/software"
)

func newDisplay(t testing.TB) *software.Display {
	t.Helper()
	display := software.OpenDisplay(rb.DefaultWindowSize, rb.DefaultWindowSize)
	t.Cleanup(func() { display.Close() })
	return display
}

// gradientPixmap returns an RGBA pixmap with (x mod 256, y mod 256, 128, alpha)
// pixels and a padded stride.
func gradientPixmap(width, height, channels int, alpha byte) *rb.Pixmap {
	stride := width*channels + 3
	data := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := data[y*stride+x*channels:]
			p[0], p[1], p[2], p[3] = byte(x), byte(y), 128, alpha
		}
	}
	return &rb.Pixmap{
		Data:        data,
		Width:       width,
		Height:      height,
		BytePerLine: stride,
		Channels:    channels,
	}
}

func solidPixmap(width, height int, r, g, b, a byte) *rb.Pixmap {
	data := make([]byte, width*height*4)
	for i := 0; i < len(data); i += 4 {
		data[i], data[i+1], data[i+2], data[i+3] = r, g, b, a
	}
	return &rb.Pixmap{Data: data, Width: width, Height: height, BytePerLine: width * 4, Channels: 4}
}

func newScenarioContext(t testing.TB, display *software.Display, srcSize int) *rb.ScenarioContext {
	t.Helper()
	b := display.Backend()
	w, h := display.Size()

	onScreen, err := rb.AdoptSurface(b, display.Window(), display.Visual(), w, h)
	require.NoError(t, err)
	offScreen, err := rb.AllocateSurface(b, display.Window(), display.Visual(), 320, 320, false)
	require.NoError(t, err)
	source, err := rb.AllocateSurface(b, display.Window(), display.Visual(), srcSize, srcSize, true)
	require.NoError(t, err)
	require.NoError(t, rb.Upload(b, source, gradientPixmap(srcSize, srcSize, 4, 200)))

	sc := &rb.ScenarioContext{Source: source, OnScreen: onScreen, OffScreen: offScreen}
	t.Cleanup(func() { sc.Release(b) })
	return sc
}
