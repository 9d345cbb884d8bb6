package core

import (
	"math"

	"github.com/x448/float16"
)

// ToFloat16 rounds v to the nearest half-precision value, ties to even.
//
// float16.Fromfloat32 rounds correctly from float32, but narrowing float64 to
// float32 first would round twice. The intermediate float32 is therefore
// rounded to odd: when the conversion is inexact its lowest mantissa bit is
// forced to 1 on the truncated value. float32 keeps 13 more mantissa bits than
// float16, so the second rounding then sees the same halfway relation as v.
func ToFloat16(v float64) float16.Float16 {
	return float16.Fromfloat32(roundToOddFloat32(v))
}

func roundToOddFloat32(v float64) float32 {
	f := float32(v)
	if float64(f) == v || math.IsNaN(v) || math.IsInf(float64(f), 0) {
		return f
	}
	bits := math.Float32bits(f)
	if math.Abs(float64(f)) > math.Abs(v) {
		// Rounded away from zero; step back to the truncated value.
		bits--
	}
	return math.Float32frombits(bits | 1)
}
