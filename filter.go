package renderbench

import "fmt"

// Filter is the resampling filter applied when a picture is transformed.
type Filter int

const (
	// FilterNearest picks the nearest source pixel.
	FilterNearest Filter = iota
	// FilterBilinear interpolates between the four nearest source pixels.
	FilterBilinear
)

// FilterFor returns the filter used for the smooth flag.
func FilterFor(smooth bool) Filter {
	if smooth {
		return FilterBilinear
	}
	return FilterNearest
}

// String returns the filter name as the rendering backend spells it.
func (f Filter) String() string {
	switch f {
	case FilterBilinear:
		return "bilinear"
	default:
		return "nearest"
	}
}

// ParseFilter parses a filter name. "smooth" and "linear" are accepted as
// aliases of "bilinear".
func ParseFilter(name string) (Filter, error) {
	switch name {
	case "nearest":
		return FilterNearest, nil
	case "bilinear", "smooth", "linear":
		return FilterBilinear, nil
	default:
		return 0, fmt.Errorf("unknown filter '%s'", name)
	}
}
