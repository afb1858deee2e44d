package renderbench_test

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rb "github.com/rmcsoft/renderbench"
)

type placement struct {
	x, y, w, h int
}

func capture(d *rb.Driver) *[]placement {
	var got []placement
	d.Observer = func(i int, req rb.CompositeRequest) {
		got = append(got, placement{req.X, req.Y, req.Width, req.Height})
	}
	return &got
}

func newDriver(display rb.Display) *rb.Driver {
	d := rb.NewDriver(rb.NewCompositor(display.Backend()))
	logger, _ := test.NewNullLogger()
	d.Log = logger
	return d
}

func TestDriver_EndToEndHalfNearest(t *testing.T) {
	display := newDisplay(t)
	sc := newScenarioContext(t, display, 100)

	d := newDriver(display)
	d.Seed = 7
	d.Reps = 4096
	got := capture(d)

	var out bytes.Buffer
	scenario := rb.Scenario{Destination: rb.OffScreen, Scale: rb.ScaleHalf, Filter: rb.FilterNearest}
	results, err := d.Run(context.Background(), sc, []rb.Scenario{scenario}, rb.NewReporter(&out))
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.Len(t, *got, 4096)
	for i, p := range *got {
		require.Equal(t, 50, p.w, "iteration %d", i)
		require.Equal(t, 50, p.h, "iteration %d", i)
		require.True(t, p.x >= 0 && p.x < 270, "iteration %d: x = %d", i, p.x)
		require.True(t, p.y >= 0 && p.y < 270, "iteration %d: y = %d", i, p.y)
	}
	assert.Equal(t, 4096, display.Software().Stats().Composites)

	var timeLines []string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if strings.HasPrefix(line, "Time: ") {
			timeLines = append(timeLines, line)
		}
	}
	require.Len(t, timeLines, 1)
	value := strings.TrimSuffix(strings.TrimPrefix(timeLines[0], "Time: "), " sec.")
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, seconds, 0.0)
	assert.Contains(t, out.String(), "Test: Test Xrender (offscreen) doing 1/2 scaled Over blends\n")
}

func TestDriver_SameSeedSamePlacements(t *testing.T) {
	display := newDisplay(t)
	sc := newScenarioContext(t, display, 100)

	d := newDriver(display)
	d.Reps = 512
	got := capture(d)

	var runs [][]placement
	for _, s := range []rb.Scenario{
		{Destination: rb.OnScreen, Scale: rb.ScaleIdentity, Filter: rb.FilterBilinear},
		{Destination: rb.OffScreen, Scale: rb.ScaleIdentity, Filter: rb.FilterBilinear},
		{Destination: rb.OnScreen, Scale: rb.ScaleIdentity, Filter: rb.FilterNearest},
	} {
		*got = nil
		_, err := d.RunScenario(context.Background(), sc, s)
		require.NoError(t, err)
		runs = append(runs, append([]placement(nil), *got...))
	}

	assert.Equal(t, runs[0], runs[1])
	assert.Equal(t, runs[0], runs[2])

	d.Seed = 8
	*got = nil
	_, err := d.RunScenario(context.Background(), sc,
		rb.Scenario{Destination: rb.OnScreen, Scale: rb.ScaleIdentity, Filter: rb.FilterBilinear})
	require.NoError(t, err)
	assert.NotEqual(t, runs[0], *got)
}

func TestDriver_ProgressiveSizes(t *testing.T) {
	display := newDisplay(t)
	sc := newScenarioContext(t, display, 20)

	d := newDriver(display)
	d.Reps = 256
	got := capture(d)

	_, err := d.RunScenario(context.Background(), sc,
		rb.Scenario{Destination: rb.OffScreen, Scale: rb.ScaleProgressive, Filter: rb.FilterBilinear})
	require.NoError(t, err)

	require.Len(t, *got, 256)
	for i, p := range *got {
		size := 1 + 20*i/(256/16)
		assert.Equal(t, placement{0, 0, size, size}, p)
	}
}

func TestDriver_RectDoesNotFit(t *testing.T) {
	display := newDisplay(t)
	sc := newScenarioContext(t, display, 160)

	d := newDriver(display)
	_, err := d.RunScenario(context.Background(), sc,
		rb.Scenario{Destination: rb.OnScreen, Scale: rb.ScaleDouble, Filter: rb.FilterNearest})
	assert.ErrorIs(t, err, rb.ErrRectDoesNotFit)
	assert.Equal(t, 0, display.Software().Stats().Composites)
}

func TestDriver_Cancel(t *testing.T) {
	display := newDisplay(t)
	sc := newScenarioContext(t, display, 10)

	ctx, cancel := context.WithCancel(context.Background())
	d := newDriver(display)
	d.Observer = func(i int, req rb.CompositeRequest) {
		if i == 9 {
			cancel()
		}
	}

	_, err := d.RunScenario(ctx, sc,
		rb.Scenario{Destination: rb.OffScreen, Scale: rb.ScaleIdentity, Filter: rb.FilterNearest})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, display.Software().Stats().Composites)
}

func TestDriver_RunSyncsEveryScenario(t *testing.T) {
	display := newDisplay(t)
	sc := newScenarioContext(t, display, 30)

	d := newDriver(display)
	d.Reps = 64
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	d.Log = logger

	var out bytes.Buffer
	results, err := d.Run(context.Background(), sc, rb.DefaultMatrix(), rb.NewReporter(&out))
	require.NoError(t, err)
	require.Len(t, results, 12)

	assert.Equal(t, 12, display.Software().Stats().Syncs)
	assert.Equal(t, 12*64, display.Software().Stats().Composites)
	assert.Equal(t, 12, strings.Count(out.String(), "Time: "))
	assert.Equal(t, 12, strings.Count(out.String(), strings.Repeat("-", 63)+"\n"))
	assert.Len(t, hook.AllEntries(), 24)
}
