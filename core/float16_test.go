package core

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/x448/float16"
)

func TestToFloat16(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want uint16
	}{
		{"one", 1, 0x3C00},
		{"tenth", 0.1, 0x2E66},
		{"just above halfway rounds up", 1 + 0x1p-11 + 0x1p-40, 0x3C01},
		{"just below halfway rounds down", 1 + 0x1p-11 - 0x1p-40, 0x3C00},
		{"halfway ties to even down", 1 + 0x1p-11, 0x3C00},
		{"halfway ties to even up", 1 + 3*0x1p-11, 0x3C02},
		{"negative above halfway", -(1 + 0x1p-11 + 0x1p-40), 0xBC01},
		{"below overflow threshold", 65519.999, 0x7BFF},
		{"overflow threshold", 65520, 0x7C00},
		{"above half of smallest subnormal", 0x1p-25 + 0x1p-50, 0x0001},
		{"half of smallest subnormal", 0x1p-25, 0x0000},
		{"below float32 range", 1e-60, 0x0000},
		{"negative zero", math.Copysign(0, -1), 0x8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFloat16(tt.v).Bits(); got != tt.want {
				t.Errorf("ToFloat16(%v) = %#04x, want %#04x", tt.v, got, tt.want)
			}
		})
	}
}

// ToFloat16 must pick the nearest half-precision value to the float64 input.
func TestToFloat16_Nearest(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200000; i++ {
		v := (r.Float64()*2 - 1) * math.Ldexp(1, r.IntN(40)-24)
		h := ToFloat16(v)
		if h.IsInf(0) {
			continue
		}
		dist := math.Abs(float64(h.Float32()) - v)

		sign := h.Bits() & 0x8000
		mag := h.Bits() &^ 0x8000
		for _, nb := range []uint16{mag - 1, mag + 1} {
			if nb >= 0x7C00 {
				continue
			}
			other := math.Abs(float64(float16.Frombits(sign|nb).Float32()) - v)
			if other < dist || (other == dist && h.Bits()&1 == 1) {
				t.Fatalf("ToFloat16(%v) = %#04x, but %#04x is nearer or the even tie", v, h.Bits(), sign|nb)
			}
		}
	}
}

func TestIsRepresentable_NearFloat16Max(t *testing.T) {
	// Rounds to 65520 as float32, but to 65504 directly.
	if !IsRepresentable(65519.999, Float16) {
		t.Error("65519.999 rounds to 65504 in float16 and should be representable")
	}
}
