package renderbench_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rb "github.com/rmcsoft/renderbench"
)

func TestNullBackend_RunsMatrix(t *testing.T) {
	b := rb.NullBackend()
	defer b.Close()

	source, err := rb.AllocateSurface(b, 1, 0, 100, 100, true)
	require.NoError(t, err)
	offScreen, err := rb.AllocateSurface(b, 1, 0, 320, 320, false)
	require.NoError(t, err)
	onScreen, err := rb.AdoptSurface(b, 1, 0, 320, 320)
	require.NoError(t, err)
	assert.NotEqual(t, source.Picture, offScreen.Picture)

	sc := &rb.ScenarioContext{Source: source, OnScreen: onScreen, OffScreen: offScreen}
	d := rb.NewDriver(rb.NewCompositor(b))
	d.Reps = 128

	var out bytes.Buffer
	results, err := d.Run(context.Background(), sc, rb.DefaultMatrix(), rb.NewReporter(&out))
	require.NoError(t, err)
	assert.Len(t, results, 12)

	filters, err := b.QueryFilters(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"nearest", "bilinear"}, filters)
	require.NoError(t, sc.Release(b))
}
