package renderbench

import (
	"fmt"
	"strings"
)

// Destination selects the surface a scenario composites onto.
type Destination int

const (
	// OnScreen composites onto the window.
	OnScreen Destination = iota
	// OffScreen composites onto a memory-only pixmap.
	OffScreen
)

// Scale selects the destination rectangle size relative to the source.
type Scale int

const (
	// ScaleIdentity keeps the source size.
	ScaleIdentity Scale = iota
	// ScaleHalf halves both source dimensions.
	ScaleHalf
	// ScaleDouble doubles both source dimensions.
	ScaleDouble
	// ScaleProgressive grows the rectangle linearly across iterations.
	ScaleProgressive
)

// Scenario is one cell of the benchmark matrix.
type Scenario struct {
	Destination Destination
	Scale       Scale
	Filter      Filter
}

// DefaultMatrix returns the twelve scenarios in reporting order.
func DefaultMatrix() []Scenario {
	var matrix []Scenario
	for _, cell := range []struct {
		scale  Scale
		filter Filter
	}{
		{ScaleIdentity, FilterBilinear},
		{ScaleHalf, FilterNearest},
		{ScaleDouble, FilterBilinear},
		{ScaleDouble, FilterNearest},
	} {
		matrix = append(matrix,
			Scenario{OnScreen, cell.scale, cell.filter},
			Scenario{OffScreen, cell.scale, cell.filter})
	}
	for _, cell := range []struct {
		dest   Destination
		filter Filter
	}{
		{OnScreen, FilterNearest},
		{OffScreen, FilterNearest},
		{OnScreen, FilterBilinear},
		{OffScreen, FilterBilinear},
	} {
		matrix = append(matrix, Scenario{cell.dest, ScaleProgressive, cell.filter})
	}
	return matrix
}

// progressiveSteps is the number of source-size increments a progressive
// scenario grows through.
const progressiveSteps = 16

// RectSize returns the destination rectangle size for iteration i of n.
func (s Scenario) RectSize(srcWidth, srcHeight, i, n int) (int, int) {
	switch s.Scale {
	case ScaleHalf:
		return srcWidth / 2, srcHeight / 2
	case ScaleDouble:
		return srcWidth * 2, srcHeight * 2
	case ScaleProgressive:
		step := n / progressiveSteps
		if step == 0 {
			step = 1
		}
		return 1 + srcWidth*i/step, 1 + srcHeight*i/step
	default:
		return srcWidth, srcHeight
	}
}

// IsProgressive reports whether the rectangle size varies per iteration.
func (s Scenario) IsProgressive() bool {
	return s.Scale == ScaleProgressive
}

// defaultFilter is the filter a scale is reported without naming it.
func (s Scale) defaultFilter() (Filter, bool) {
	switch s {
	case ScaleIdentity:
		return FilterBilinear, true
	case ScaleHalf:
		return FilterNearest, true
	default:
		return 0, false
	}
}

func (s Scale) words() string {
	switch s {
	case ScaleHalf:
		return "1/2 scaled"
	case ScaleDouble:
		return "2* scaled"
	case ScaleProgressive:
		return "general scaled"
	default:
		return "non-scaled"
	}
}

func filterWord(f Filter) string {
	if f == FilterBilinear {
		return "smooth"
	}
	return "nearest"
}

// Description returns the report title, e.g.
// "Test Xrender (offscreen) doing 2* smooth scaled Over blends".
func (s Scenario) Description(label string) string {
	where := ""
	if s.Destination == OffScreen {
		where = " (offscreen)"
	}

	scale := s.Scale.words()
	if def, ok := s.Scale.defaultFilter(); !ok || def != s.Filter {
		if s.Scale == ScaleIdentity {
			scale = filterWord(s.Filter) + " " + scale
		} else {
			parts := strings.SplitN(scale, " ", 2)
			scale = parts[0] + " " + filterWord(s.Filter) + " " + parts[1]
		}
	}

	return fmt.Sprintf("Test %s%s doing %s Over blends", label, where, scale)
}

// ParseDestination parses "onscreen" or "offscreen".
func ParseDestination(name string) (Destination, error) {
	switch strings.ToLower(name) {
	case "onscreen", "on-screen", "window":
		return OnScreen, nil
	case "offscreen", "off-screen", "pixmap":
		return OffScreen, nil
	default:
		return 0, fmt.Errorf("unknown destination '%s'", name)
	}
}

// ParseScale parses "identity", "half", "double" or "progressive".
func ParseScale(name string) (Scale, error) {
	switch strings.ToLower(name) {
	case "identity", "none":
		return ScaleIdentity, nil
	case "half":
		return ScaleHalf, nil
	case "double":
		return ScaleDouble, nil
	case "progressive", "general":
		return ScaleProgressive, nil
	default:
		return 0, fmt.Errorf("unknown scale '%s'", name)
	}
}
