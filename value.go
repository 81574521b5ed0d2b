// Copyright 2020 Aleksandr Demakin. All rights reserved.

// package extfloat implements a floating-point number, where the mantissa
// keeps float64 precision, while the binary exponent is widened to a
// signed 64-bit integer.
// Can be used for computations whose scale leaves the float64 range,
// e.g. long products of probabilities or iterative growth factors.
package extfloat

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/avdva/extfloat/internal/ieee754"
)

const (
	// MaxMantissa is the maximum value of the mantissa field.
	MaxMantissa = uint64(ieee754.MantMask)

	// minCanonicalExponent is the exponent of the smallest positive float64,
	// the lower bound of the exponent range convertible back to a float64.
	minCanonicalExponent = ieee754.MinExponent - ieee754.MantBits + 1
)

var (
	// MaxValue is the finite value with the largest exponent and mantissa.
	MaxValue = Value{exp: math.MaxInt64, mant: MaxMantissa}
	// MinValue is the negative counterpart of MaxValue at the opposite
	// corner of the (sign, exponent) range.
	MinValue = Value{neg: true, exp: math.MinInt64, mant: MaxMantissa}

	zero = Value{exp: ieee754.MinExponent}
	one  Value

	errNotFinite = fmt.Errorf("bad float number")
)

// Value is an immutable floating-point number with an int64 binary exponent
// and a float64-precision mantissa. The fields mirror a float64's, so a
// finite value equals (1+mant/2^52) * 2^exp, and the zero Value of the type
// represents the number 1. A Value with exp == -1023 keeps the float64
// subnormal semantics: mant * 2^-1074 with no implicit leading bit.
// NaN and the infinities are tracked with explicit flags, since the wide
// exponent has no reserved field value to encode them in.
// Values may be freely copied and shared; every operation returns a new Value.
type Value struct {
	neg  bool
	exp  int64
	mant uint64
	nan  bool
	inf  bool
}

// New returns a value with the given fields, stored verbatim.
// The caller is responsible for keeping mant within [0, MaxMantissa];
// higher bits are not masked off and lead to undefined results.
func New(neg bool, exp int64, mant uint64) Value {
	return Value{neg: neg, exp: exp, mant: mant}
}

// FromFloat64 returns a value equal to f. NaN and the infinities are
// carried over; their stored exponent is the reserved float64 field
// value 0x7ff.
func FromFloat64(f float64) Value {
	neg, exp, mant := ieee754.Decode(f)
	switch {
	case math.IsNaN(f):
		return Value{neg: neg, exp: ieee754.ExpMask, mant: mant, nan: true}
	case math.IsInf(f, 0):
		return Value{neg: neg, exp: ieee754.ExpMask, inf: true}
	}
	return Value{neg: neg, exp: exp, mant: mant}
}

// FromFiniteFloat64 is a checked variant of FromFloat64, which returns
// an error instead of propagating NaN or an infinity.
func FromFiniteFloat64(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, errNotFinite
	}
	return FromFloat64(f), nil
}

// Inf returns an infinite value, positive if sign >= 0, negative otherwise.
func Inf(sign int) Value {
	return Value{neg: sign < 0, exp: ieee754.ExpMask, inf: true}
}

// NaN returns a not-a-number value.
func NaN() Value {
	return Value{exp: ieee754.ExpMask, nan: true}
}

// Signbit reports whether v is negative or a negative zero.
func (v Value) Signbit() bool {
	return v.neg
}

// Sign returns -1 if v < 0, 0 if v is zero or NaN, 1 if v > 0.
func (v Value) Sign() int {
	if v.nan || v.IsZero() {
		return 0
	}
	if v.neg {
		return -1
	}
	return 1
}

// Exponent returns the unbiased binary exponent field.
// It is not meaningful for NaNs and infinities.
func (v Value) Exponent() int64 {
	return v.exp
}

// MantUint64 returns v's mantissa field as is.
func (v Value) MantUint64() uint64 {
	return v.mant
}

// IsNaN reports whether v is a not-a-number value.
func (v Value) IsNaN() bool {
	return v.nan
}

// IsInf reports whether v is infinite.
func (v Value) IsInf() bool {
	return v.inf
}

// IsFinite reports whether v is neither infinite nor NaN.
func (v Value) IsFinite() bool {
	return !v.inf && !v.nan
}

// IsZero reports whether v is a positive or negative zero.
func (v Value) IsZero() bool {
	return v.IsFinite() && v.exp == ieee754.MinExponent && v.mant == 0
}

// Float64 converts v to the nearest float64. The conversion is total:
// exponents beyond the float64 range saturate to an infinity or collapse
// to a signed zero. A finite value whose exponent happens to equal the
// reserved field value 0x7ff converts to the largest finite float64 of
// its sign, never to an infinity.
func (v Value) Float64() float64 {
	switch {
	case v.nan:
		return math.NaN()
	case v.inf:
		return v.signed(math.Inf(1))
	case v.exp == ieee754.ExpMask:
		return ieee754.Encode(v.neg, ieee754.MaxExponent, MaxMantissa)
	case v.exp > ieee754.MaxExponent:
		return v.signed(math.Inf(1))
	case v.exp < minCanonicalExponent:
		return v.signed(0)
	case v.exp < ieee754.MinExponent:
		// the value lands in the float64 subnormal range,
		// extra precision is truncated
		shift := uint(-v.exp) - ieee754.Bias + 1
		return ieee754.Encode(v.neg, ieee754.MinExponent, (1<<ieee754.MantBits|v.mant)>>shift)
	}
	return ieee754.Encode(v.neg, v.exp, v.mant)
}

func (v Value) signed(f float64) float64 {
	if v.neg {
		return -f
	}
	return f
}

// Eq reports whether both values have identical fields.
// This is bit-for-bit equality: two NaNs with different mantissas are not
// equal, and neither are a positive and a negative zero.
func (v Value) Eq(other Value) bool {
	return v == other
}

// Cmp compares two values.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
// The order is total: NaN compares less than every other value and equal
// to any NaN, a positive zero compares greater than a negative one.
func (v Value) Cmp(other Value) int {
	switch {
	case v.nan:
		if other.nan {
			return 0
		}
		return -1
	case other.nan:
		return 1
	}
	if v.inf || other.inf {
		return v.cmpInf(other)
	}
	if v.neg != other.neg {
		if v.neg {
			return -1
		}
		return 1
	}
	c := int64Cmp(v.exp, other.exp)
	if c == 0 {
		c = uint64Cmp(v.mant, other.mant)
	}
	if v.neg {
		c = -c
	}
	return c
}

func (v Value) cmpInf(other Value) int {
	if v.inf && other.inf {
		switch {
		case v.neg == other.neg:
			return 0
		case v.neg:
			return -1
		}
		return 1
	}
	if v.inf {
		if v.neg {
			return -1
		}
		return 1
	}
	if other.neg {
		return 1
	}
	return -1
}

// GoString returns a debug representation of the raw fields.
func (v Value) GoString() string {
	switch {
	case v.nan:
		return "extfloat.NaN()"
	case v.inf && v.neg:
		return "extfloat.Inf(-1)"
	case v.inf:
		return "extfloat.Inf(1)"
	}
	return fmt.Sprintf("extfloat.New(%v, %d, %d)", v.neg, v.exp, v.mant)
}

// split returns v's exponent and mantissa in canonical form, renormalizing
// subnormal-form values into the wide exponent range, so that
// |v| == (1 + mant/2^52) * 2^exp.
// ok is false for zeros, NaNs and infinities.
func (v Value) split() (exp int64, mant uint64, ok bool) {
	if !v.IsFinite() || v.IsZero() {
		return 0, 0, false
	}
	if v.exp != ieee754.MinExponent {
		return v.exp, v.mant, true
	}
	top := 63 - bits.LeadingZeros64(v.mant)
	exp = int64(top) - ieee754.Bias - ieee754.MantBits + 1
	mant = v.mant << uint(ieee754.MantBits-top) & MaxMantissa
	return exp, mant, true
}

// isInteger reports whether v is an integral value, and if so,
// whether it is odd.
func (v Value) isInteger() (integer, odd bool) {
	if !v.IsFinite() {
		return false, false
	}
	if v.IsZero() {
		return true, false
	}
	exp, mant, _ := v.split()
	switch {
	case exp < 0:
		return false, false
	case exp > ieee754.MantBits:
		return true, false
	case exp == ieee754.MantBits:
		return true, mant&1 == 1
	}
	shift := uint(ieee754.MantBits - exp)
	if mant&(1<<shift-1) != 0 {
		return false, false
	}
	if exp == 0 { // the implicit leading bit is the units bit
		return true, true
	}
	return true, mant>>shift&1 == 1
}

func signedZero(neg bool) Value {
	z := zero
	z.neg = neg
	return z
}

func int64Cmp(a, b int64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func uint64Cmp(a, b uint64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
