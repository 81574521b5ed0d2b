// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package ieee754 provides bit-level access to the fields of a float64.
package ieee754

import "math"

const (
	// MantBits is the width of a float64's mantissa field.
	MantBits = 52
	// ExpBits is the width of a float64's exponent field.
	ExpBits = 11
	// Bias is the exponent bias of a float64.
	Bias = 1023

	// ExpMask is the all-ones exponent field, reserved for infinities and NaNs.
	ExpMask = 1<<ExpBits - 1
	// MantMask covers the mantissa field, 0x000fffffffffffff.
	MantMask = 1<<MantBits - 1

	// MaxExponent is the largest unbiased exponent of a finite float64.
	MaxExponent = ExpMask - Bias - 1
	// MinExponent is the unbiased exponent of the zero field value,
	// shared by zeros and subnormals.
	MinExponent = -Bias

	signBit = 1 << 63
)

// Decode splits f into its sign bit, unbiased exponent, and mantissa fields.
// Zeros and subnormals decode to exp == MinExponent; infinities and NaNs
// to exp == MaxExponent+1. The mantissa is returned as is for every input.
func Decode(f float64) (neg bool, exp int64, mant uint64) {
	b := math.Float64bits(f)
	return b&signBit != 0, int64(b>>MantBits&ExpMask) - Bias, b & MantMask
}

// Encode builds a float64 from a sign, an unbiased exponent, and a mantissa.
// It is the inverse of Decode for exp in [MinExponent, MaxExponent].
// An exponent whose biased form would land on the reserved all-ones field
// is clamped to the largest finite value of the requested sign, so Encode
// never manufactures an infinity or a NaN. An exponent below the subnormal
// range encodes as a signed zero.
func Encode(neg bool, exp int64, mant uint64) float64 {
	biased := exp + Bias
	switch {
	case biased >= ExpMask:
		biased, mant = ExpMask-1, MantMask
	case biased < 0:
		biased, mant = 0, 0
	}
	b := uint64(biased)<<MantBits | mant&MantMask
	if neg {
		b |= signBit
	}
	return math.Float64frombits(b)
}

// Mantissa returns the low 52 bits of f's bit pattern, independent of
// sign and exponent. It is defined for every input, NaNs included.
func Mantissa(f float64) uint64 {
	return math.Float64bits(f) & MantMask
}
