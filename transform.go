package renderbench

// Fixed is a 16.16 fixed-point number.
type Fixed int32

// FixedOne is 1.0 in 16.16 fixed point.
const FixedOne Fixed = 1 << 16

// FixedFromInt converts an integer to 16.16 fixed point.
func FixedFromInt(v int) Fixed {
	return Fixed(v << 16)
}

// Float64 converts the fixed-point value to a float.
func (f Fixed) Float64() float64 {
	return float64(f) / float64(FixedOne)
}

// Transform is a 3x3 projective matrix in 16.16 fixed point. It maps
// destination coordinates onto source coordinates.
type Transform [3][3]Fixed

// IdentityTransform returns the identity matrix.
func IdentityTransform() Transform {
	return Transform{
		{FixedOne, 0, 0},
		{0, FixedOne, 0},
		{0, 0, FixedOne},
	}
}

// ScaleTransform returns the transform that maps a srcWidth x srcHeight
// source onto a dstWidth x dstHeight destination rectangle. The scale
// entries are 65536*src/dst truncated toward zero. dstWidth and dstHeight
// must be positive.
func ScaleTransform(srcWidth, srcHeight, dstWidth, dstHeight int) Transform {
	return Transform{
		{Fixed(int64(FixedOne) * int64(srcWidth) / int64(dstWidth)), 0, 0},
		{0, Fixed(int64(FixedOne) * int64(srcHeight) / int64(dstHeight)), 0},
		{0, 0, FixedOne},
	}
}

// ScaleX returns the horizontal scale factor (source units per destination unit).
func (t Transform) ScaleX() Fixed {
	return t[0][0]
}

// ScaleY returns the vertical scale factor (source units per destination unit).
func (t Transform) ScaleY() Fixed {
	return t[1][1]
}

// IsAffine reports whether the last row is (0, 0, 1).
func (t Transform) IsAffine() bool {
	return t[2][0] == 0 && t[2][1] == 0 && t[2][2] == FixedOne
}
