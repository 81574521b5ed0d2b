// Copyright 2020 Aleksandr Demakin. All rights reserved.

package extfloat

import (
	"github.com/avdva/extfloat/internal/ieee754"
)

// normalized is a value rescaled so that native float64 arithmetic can be
// applied to it directly. exp is the canonical wide exponent of the source,
// shift is the exponent of scaled, so the exponent adjustment applied during
// scaling is shift-exp, and the wide exponent of an arithmetic result is
// recovered as exp + (exponent(result) - shift).
// oob marks a value that could not be scaled against its counterpart:
// its magnitude is too far away to influence a combined result
// at float64 precision.
type normalized struct {
	src    Value
	scaled float64
	exp    int64
	shift  int64
	oob    bool
}

// normalize rescales two values into a comparable pair of float64 numbers.
// Both exponents are shifted by the same amount, centering them around zero,
// so the difference between the scaled exponents equals the difference
// between the wide ones. If the exponent spread exceeds the float64 exponent
// field range, only the larger value is scaled (to exponent zero), and the
// smaller one is flagged out of bounds. Infinities stay at their own float64
// representation; zeros are flagged out of bounds, as any counterpart
// dominates them.
func normalize(a, b Value) (na, nb normalized) {
	na = normalized{src: a}
	nb = normalized{src: b}
	if a.inf || b.inf {
		na.scaled, nb.scaled = a.Float64(), b.Float64()
		na.oob, nb.oob = !a.inf || b.inf, !b.inf || a.inf
		return na, nb
	}
	ea, ma, aok := a.split()
	eb, mb, bok := b.split()
	na.exp, nb.exp = ea, eb
	if !aok || !bok { // zero operands cannot be rescaled
		if aok {
			na.scaled = ieee754.Encode(a.neg, 0, ma)
		} else {
			na.oob = true
			na.scaled = a.Float64()
		}
		if bok {
			nb.scaled = ieee754.Encode(b.neg, 0, mb)
		} else {
			nb.oob = true
			nb.scaled = b.Float64()
		}
		return na, nb
	}
	hi, lo := &na, &nb
	ehi, elo := ea, eb
	mhi, mlo := ma, mb
	if ea < eb {
		hi, lo = &nb, &na
		ehi, elo = eb, ea
		mhi, mlo = mb, ma
	}
	// the unsigned difference is exact even when the int64 one overflows
	spread := uint64(ehi) - uint64(elo)
	if spread > ieee754.ExpMask {
		hi.shift = 0
		hi.scaled = ieee754.Encode(hi.src.neg, 0, mhi)
		lo.oob = true
		lo.scaled = lo.src.Float64()
		return na, nb
	}
	half := int64(spread / 2)
	if spread == ieee754.ExpMask {
		// keep the larger value off the reserved exponent field value
		half++
	}
	hi.shift = int64(spread) - half
	lo.shift = -half
	hi.scaled = ieee754.Encode(hi.src.neg, hi.shift, mhi)
	lo.scaled = ieee754.Encode(lo.src.neg, lo.shift, mlo)
	return na, nb
}

// addExponent adds delta to exp, reporting the saturation direction:
// 1 if the sum exceeds math.MaxInt64, -1 if it falls below math.MinInt64.
func addExponent(exp, delta int64) (int64, int) {
	sum := exp + delta
	switch {
	case delta > 0 && sum < exp:
		return 0, 1
	case delta < 0 && sum > exp:
		return 0, -1
	}
	return sum, 0
}

// subExponent subtracts delta from exp with the same saturation reporting.
func subExponent(exp, delta int64) (int64, int) {
	diff := exp - delta
	switch {
	case delta < 0 && diff < exp:
		return 0, 1
	case delta > 0 && diff > exp:
		return 0, -1
	}
	return diff, 0
}
