package renderbench

// PixelFormat is an enumeration of the standard picture formats
type PixelFormat int

const (
	// RGB24 is 24-bit RGB stored in 32-bit words (0xXXRRGGBB)
	RGB24 PixelFormat = iota
	// ARGB32 is 32-bit premultiplied ARGB (0xAARRGGBB)
	ARGB32
)

// StandardPixelFormat selects the standard format for the alpha flag.
func StandardPixelFormat(hasAlpha bool) PixelFormat {
	if hasAlpha {
		return ARGB32
	}
	return RGB24
}

// GetPixelSize returns the number of bytes per pixel in memory.
func GetPixelSize(pixFormat PixelFormat) int {
	return 4
}

// GetPixelDepth returns the number of significant bits per pixel.
func GetPixelDepth(pixFormat PixelFormat) int {
	switch pixFormat {
	case ARGB32:
		return 32
	default:
		return 24
	}
}

// PixelFormatForDepth maps a drawable depth onto a standard format.
func PixelFormatForDepth(depth int) PixelFormat {
	if depth == 32 {
		return ARGB32
	}
	return RGB24
}

func (f PixelFormat) String() string {
	switch f {
	case ARGB32:
		return "ARGB32"
	case RGB24:
		return "RGB24"
	default:
		return "unknown"
	}
}
