// Copyright 2020 Aleksandr Demakin. All rights reserved.

package extfloat

import (
	"math"

	"github.com/avdva/extfloat/internal/ieee754"
)

// Add returns v + other.
// NaN operands propagate, infinities follow the IEEE-754 rules, including
// (+Inf)+(-Inf) = NaN. When the operands' exponents are more than 0x7ff
// apart, the smaller operand cannot influence the sum at float64 precision,
// and the larger one is returned unchanged. If the exponent of the sum
// leaves the int64 range, the result saturates to the infinity of the
// sum's sign.
func (v Value) Add(other Value) Value {
	if v.nan || other.nan {
		return NaN()
	}
	if v.inf || other.inf {
		if v.inf && other.inf {
			if v.neg != other.neg {
				return NaN()
			}
			return v
		}
		if v.inf {
			return v
		}
		return other
	}
	if v.IsZero() {
		if other.IsZero() {
			// only (-0)+(-0) keeps the negative sign
			return signedZero(v.neg && other.neg)
		}
		return other
	}
	if other.IsZero() {
		return v
	}
	na, nb := normalize(v, other)
	if na.oob {
		return other
	}
	if nb.oob {
		return v
	}
	result := na.scaled + nb.scaled
	if result == 0 {
		return signedZero(math.Signbit(result))
	}
	exp, mant, _ := FromFloat64(result).split()
	return reconstruct(result, na.exp, exp-na.shift, mant)
}

// Sub returns v - other.
func (v Value) Sub(other Value) Value {
	return v.Add(other.Neg())
}

// Mul returns v * other.
// An infinity times a zero is NaN; any other infinite operand wins with
// the usual sign rules. Exponent saturation works as in Add.
func (v Value) Mul(other Value) Value {
	if v.nan || other.nan {
		return NaN()
	}
	neg := v.neg != other.neg
	if v.inf || other.inf {
		if v.IsZero() || other.IsZero() {
			return NaN()
		}
		return infValue(neg)
	}
	if v.IsZero() || other.IsZero() {
		return signedZero(neg)
	}
	ea, ma, _ := v.split()
	eb, mb, _ := other.split()
	result := ieee754.Encode(neg, 0, ma) * ieee754.Encode(false, 0, mb)
	carry, mant, _ := FromFloat64(result).split()
	exp, dir := addExponent(ea, eb)
	if dir == 0 {
		exp, dir = addExponent(exp, carry)
	}
	if dir != 0 {
		return infValue(neg)
	}
	return Value{neg: neg, exp: exp, mant: mant}
}

// Div returns v / other.
// A finite value divided by a zero is the infinity of the combined sign,
// 0/0 and Inf/Inf are NaN, and a finite value divided by an infinity is
// the signed zero. Exponent saturation works as in Add.
func (v Value) Div(other Value) Value {
	if v.nan || other.nan {
		return NaN()
	}
	neg := v.neg != other.neg
	if v.inf {
		if other.inf {
			return NaN()
		}
		return infValue(neg)
	}
	if other.inf {
		return signedZero(neg)
	}
	if other.IsZero() {
		if v.IsZero() {
			return NaN()
		}
		return infValue(neg)
	}
	if v.IsZero() {
		return signedZero(neg)
	}
	ea, ma, _ := v.split()
	eb, mb, _ := other.split()
	result := ieee754.Encode(neg, 0, ma) / ieee754.Encode(false, 0, mb)
	carry, mant, _ := FromFloat64(result).split()
	exp, dir := subExponent(ea, eb)
	if dir == 0 {
		exp, dir = addExponent(exp, carry)
	}
	if dir != 0 {
		return infValue(neg)
	}
	return Value{neg: neg, exp: exp, mant: mant}
}

// Pow returns v raised to the power of other.
// The policy follows IEEE-754 pow: x^0 is 1 for every x, NaN otherwise
// propagates, 0^y is a zero or a positive infinity depending on y's sign,
// and a negative base requires an integral exponent (the result is NaN
// otherwise) and takes its sign from the exponent's parity.
// Within the float64 range the result is exactly math.Pow's; outside it,
// a log2/exp2 decomposition extends the same semantics across the wide
// exponent range at a reduced mantissa precision.
func (v Value) Pow(other Value) Value {
	if other.IsZero() {
		return one
	}
	if v.nan || other.nan {
		return NaN()
	}
	if other.inf {
		return v.powInf(other)
	}
	if v.IsZero() {
		if other.neg {
			return Inf(1)
		}
		return zero
	}
	neg := false
	if v.neg || v.inf {
		integer, odd := other.isInteger()
		if !integer && !v.inf {
			return NaN()
		}
		neg = v.neg && odd
	}
	if v.inf {
		if other.neg {
			return signedZero(neg)
		}
		return infValue(neg)
	}
	const fastExp = 1 << 9
	if v.exp > -fastExp && v.exp < fastExp && other.exp > -fastExp && other.exp < fastExp {
		if r := math.Pow(v.Float64(), other.Float64()); r != 0 && !math.IsInf(r, 0) {
			return FromFloat64(r)
		}
	}
	return v.powWide(other, neg)
}

func (v Value) powInf(other Value) Value {
	// |v| against 1 decides between 0, 1 and the infinity
	c := v.absCmpOne()
	if c == 0 {
		return one
	}
	grows := (c > 0) != other.neg
	if grows {
		return Inf(1)
	}
	return zero
}

// powWide computes |v|^other through base-2 logarithms, attaching the
// precomputed result sign. The exponent keeps its full int64 range, the
// mantissa precision is limited by the float64 product of the logarithm
// and the power.
func (v Value) powWide(other Value, neg bool) Value {
	ea, ma, _ := v.split()
	log := float64(ea) + math.Log2(ieee754.Encode(false, 0, ma))
	if log == 0 { // |v| == 1
		return Value{neg: neg}
	}
	p := log * other.Float64()
	switch {
	case math.IsNaN(p):
		return NaN()
	case p >= math.MaxInt64:
		return infValue(neg)
	case p <= math.MinInt64:
		// the exponent runs out of precision on the small side as well
		return infValue(neg)
	}
	ip := math.Floor(p)
	scaled := math.Exp2(p - ip)
	carry, mant, _ := FromFloat64(scaled).split()
	exp, dir := addExponent(int64(ip), carry)
	if dir != 0 {
		return infValue(neg)
	}
	return Value{neg: neg, exp: exp, mant: mant}
}

// absCmpOne compares |v| with 1 for a finite non-zero v.
func (v Value) absCmpOne() int {
	exp, mant, ok := v.split()
	if !ok {
		if v.inf {
			return 1
		}
		return -1
	}
	switch {
	case exp > 0 || exp == 0 && mant > 0:
		return 1
	case exp == 0 && mant == 0:
		return 0
	}
	return -1
}

// Min returns the smaller of the two values; NaN operands propagate.
func (v Value) Min(other Value) Value {
	if v.nan || other.nan {
		return NaN()
	}
	if v.Cmp(other) <= 0 {
		return v
	}
	return other
}

// Max returns the larger of the two values; NaN operands propagate.
func (v Value) Max(other Value) Value {
	if v.nan || other.nan {
		return NaN()
	}
	if v.Cmp(other) >= 0 {
		return v
	}
	return other
}

// Neg returns v with the opposite sign. NaN is returned unchanged.
func (v Value) Neg() Value {
	if v.nan {
		return v
	}
	v.neg = !v.neg
	return v
}

// Abs returns v with a non-negative sign. NaN is returned unchanged.
func (v Value) Abs() Value {
	if v.nan {
		return v
	}
	v.neg = false
	return v
}

// reconstruct converts the float64 result of a normalized operation back
// into a Value: delta is the exponent movement the operation itself caused,
// on top of base, the wide exponent of the reference operand.
func reconstruct(result float64, base, delta int64, mant uint64) Value {
	exp, dir := addExponent(base, delta)
	if dir != 0 {
		return infValue(math.Signbit(result))
	}
	return Value{neg: math.Signbit(result), exp: exp, mant: mant}
}

func infValue(neg bool) Value {
	if neg {
		return Inf(-1)
	}
	return Inf(1)
}
