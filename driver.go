package renderbench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultReps is the number of composites per scenario.
	DefaultReps = 4096
	// DefaultSeed seeds the placement generator of every scenario.
	DefaultSeed = 7
	// DefaultLabel names the backend in report titles.
	DefaultLabel = "Xrender"
)

// ErrRectDoesNotFit is returned when a fixed-size rectangle cannot be
// placed inside the destination.
var ErrRectDoesNotFit = errors.New("rectangle does not fit into the destination")

// ScenarioContext holds the surfaces scenarios run against.
type ScenarioContext struct {
	Source    *Surface
	OnScreen  *Surface
	OffScreen *Surface
}

// Dest returns the destination surface of the scenario.
func (sc *ScenarioContext) Dest(s Scenario) *Surface {
	if s.Destination == OffScreen {
		return sc.OffScreen
	}
	return sc.OnScreen
}

// Result is the measurement of one scenario.
type Result struct {
	Scenario    Scenario
	Description string
	Elapsed     time.Duration
}

// Observer is called with every request before it is issued.
type Observer func(iteration int, req CompositeRequest)

// Driver runs benchmark scenarios.
type Driver struct {
	Compositor *Compositor
	Reps       int
	Seed       int64
	Label      string
	Observer   Observer
	Log        logrus.FieldLogger
}

// NewDriver creates a Driver with the default repetition count and seed.
func NewDriver(c *Compositor) *Driver {
	return &Driver{
		Compositor: c,
		Reps:       DefaultReps,
		Seed:       DefaultSeed,
		Label:      DefaultLabel,
		Log:        logrus.StandardLogger(),
	}
}

// RunScenario reseeds the placement generator, issues Reps composites,
// waits for the backend to finish them and returns the elapsed time.
func (d *Driver) RunScenario(ctx context.Context, sc *ScenarioContext, s Scenario) (Result, error) {
	result := Result{Scenario: s, Description: s.Description(d.Label)}
	src := sc.Source
	dst := sc.Dest(s)
	if src == nil || dst == nil {
		return result, errors.New("scenario context is missing a surface")
	}

	if !s.IsProgressive() {
		w, h := s.RectSize(src.Width, src.Height, 0, d.Reps)
		if w <= 0 || h <= 0 || dst.Width-w <= 0 || dst.Height-h <= 0 {
			return result, fmt.Errorf("%dx%d into %dx%d: %w", w, h, dst.Width, dst.Height, ErrRectDoesNotFit)
		}
	}

	log := d.logger().WithField("scenario", result.Description)
	log.Debug("Running")

	rnd := rand.New(rand.NewSource(d.Seed))
	start := time.Now()
	for i := 0; i < d.Reps; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		req := d.request(rnd, src, dst, s, i)
		if d.Observer != nil {
			d.Observer(i, req)
		}
		if err := req.Apply(d.Compositor); err != nil {
			return result, fmt.Errorf("iteration %d: %w", i, err)
		}
	}
	if err := d.Compositor.Backend().Sync(); err != nil {
		return result, fmt.Errorf("sync: %w", err)
	}
	result.Elapsed = time.Since(start)

	log.WithField("elapsed", result.Elapsed).Debug("Synchronized")
	return result, nil
}

func (d *Driver) request(rnd *rand.Rand, src, dst *Surface, s Scenario, i int) CompositeRequest {
	w, h := s.RectSize(src.Width, src.Height, i, d.Reps)
	req := CompositeRequest{
		Source: src,
		Dest:   dst,
		Width:  w,
		Height: h,
		Filter: s.Filter,
	}
	if !s.IsProgressive() {
		req.X = rnd.Intn(dst.Width - w)
		req.Y = rnd.Intn(dst.Height - h)
	}
	return req
}

// Run runs every scenario of the matrix in order and reports each one.
// It stops at the first failing scenario.
func (d *Driver) Run(ctx context.Context, sc *ScenarioContext, matrix []Scenario, reporter *Reporter) ([]Result, error) {
	results := make([]Result, 0, len(matrix))
	for _, s := range matrix {
		if reporter != nil {
			reporter.BeginTest(s.Description(d.Label))
		}

		result, err := d.RunScenario(ctx, sc, s)
		if err != nil {
			return results, fmt.Errorf("%s: %w", result.Description, err)
		}

		if reporter != nil {
			reporter.EndTest(result.Elapsed)
		}
		results = append(results, result)
	}
	return results, nil
}

func (d *Driver) logger() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}
