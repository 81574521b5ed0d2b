// Copyright 2020 Aleksandr Demakin. All rights reserved.

package extfloat

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avdva/extfloat/internal/ieee754"
)

func TestFromFloat64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f float64
		v Value
	}{
		{0, zero},
		{math.Copysign(0, -1), signedZero(true)},
		{1, one},
		{1.5, New(false, 0, 1 << 51)},
		{-1.5, New(true, 0, 1 << 51)},
		{2, New(false, 1, 0)},
		{math.MaxFloat64, New(false, 1023, MaxMantissa)},
		{-math.MaxFloat64, New(true, 1023, MaxMantissa)},
		{math.SmallestNonzeroFloat64, New(false, -1023, 1)},
		{math.Inf(1), Inf(1)},
		{math.Inf(-1), Inf(-1)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.v, FromFloat64(test.f))
		})
	}
	v := FromFloat64(math.NaN())
	a.True(v.IsNaN())
	a.False(v.IsFinite())
	a.Equal(int64(ieee754.ExpMask), v.Exponent())
	a.Equal(math.Float64bits(math.NaN())&MaxMantissa, v.MantUint64())
}

func TestFromFiniteFloat64(t *testing.T) {
	a := assert.New(t)
	if v, err := FromFiniteFloat64(1.5); a.NoError(err) {
		a.Equal(FromFloat64(1.5), v)
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := FromFiniteFloat64(f)
		a.EqualError(err, "bad float number")
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 1000; i++ {
		f := math.Float64frombits(rnd.Uint64())
		if math.IsNaN(f) {
			continue
		}
		a.Equal(math.Float64bits(f), math.Float64bits(FromFloat64(f).Float64()))
	}
}

func TestFloat64Saturation(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v Value
		f float64
	}{
		// a locally-large exponent clamps to the largest finite float64
		{New(false, 0x7ff, 0), math.MaxFloat64},
		{New(true, 0x7ff, 0), -math.MaxFloat64},
		{New(false, 0x7ff, 12345), math.MaxFloat64},
		// exponents beyond the float64 range saturate
		{New(false, 1500, 0), math.Inf(1)},
		{New(true, 1500, 0), math.Inf(-1)},
		{MaxValue, math.Inf(1)},
		{New(false, -1500, 5), 0},
		{New(true, -1500, 5), math.Copysign(0, -1)},
		// the subnormal window converts, truncating extra precision
		{New(false, -1073, 0), 2 * math.SmallestNonzeroFloat64},
		{New(false, -1074, 0), math.SmallestNonzeroFloat64},
		{New(false, -1074, MaxMantissa), math.SmallestNonzeroFloat64},
		{New(true, -1074, 0), -math.SmallestNonzeroFloat64},
		{New(false, -1075, 0), 0},
		{MinValue, math.Copysign(0, -1)},
		{Inf(1), math.Inf(1)},
		{Inf(-1), math.Inf(-1)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(math.Float64bits(test.f), math.Float64bits(test.v.Float64()))
		})
	}
	a.True(math.IsNaN(NaN().Float64()))
}

func TestAccessors(t *testing.T) {
	a := assert.New(t)
	v := New(true, 5000000000000000000, 42)
	a.True(v.Signbit())
	a.Equal(-1, v.Sign())
	a.Equal(int64(5000000000000000000), v.Exponent())
	a.Equal(uint64(42), v.MantUint64())
	a.True(v.IsFinite())
	a.False(v.IsNaN())
	a.False(v.IsInf())
	a.False(v.IsZero())

	a.Equal(0, zero.Sign())
	a.Equal(0, NaN().Sign())
	a.Equal(1, Inf(1).Sign())
	a.Equal(-1, Inf(-1).Sign())
	a.True(zero.IsZero())
	a.True(signedZero(true).IsZero())
	a.False(one.IsZero())
	a.True(Inf(1).IsInf())
	a.False(Inf(1).IsFinite())
}

func TestEq(t *testing.T) {
	a := assert.New(t)
	a.True(New(false, 10, 1).Eq(New(false, 10, 1)))
	a.False(New(false, 10, 1).Eq(New(true, 10, 1)))
	a.False(New(false, 10, 1).Eq(New(false, 11, 1)))
	a.False(zero.Eq(signedZero(true)))
	a.True(NaN().Eq(NaN()))
	// equality is field equality, and NaN mantissas differ
	a.False(NaN().Eq(FromFloat64(math.NaN())))
	a.True(Inf(1).Eq(Inf(1)))
	a.False(Inf(1).Eq(Inf(-1)))
}

func TestCmp(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		a, b Value
		cmp  int
	}{
		{zero, zero, 0},
		{one, zero, 1},
		{one, one, 0},
		{New(false, 1, 0), one, 1},
		{New(false, 0, 2), New(false, 0, 1), 1},
		{New(false, 100, 0), New(false, 99, MaxMantissa), 1},
		// on the negative side the field comparison flips
		{New(true, 0, 2), New(true, 0, 1), -1},
		{New(true, 100, 0), New(true, 99, MaxMantissa), -1},
		{one, New(true, 0, 0), 1},
		{zero, signedZero(true), 1},
		{MaxValue, MinValue, 1},
		{Inf(1), MaxValue, 1},
		{Inf(-1), MinValue, -1},
		{Inf(1), Inf(1), 0},
		{Inf(1), Inf(-1), 1},
		{NaN(), NaN(), 0},
		{NaN(), Inf(-1), -1},
		{NaN(), MinValue, -1},
		{NaN(), zero, -1},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.cmp, test.a.Cmp(test.b))
			a.Equal(-test.cmp, test.b.Cmp(test.a))
		})
	}
}

func TestCmpTotality(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	random := func() Value {
		switch rnd.Intn(10) {
		case 0:
			return NaN()
		case 1:
			return Inf(1)
		case 2:
			return Inf(-1)
		case 3:
			return signedZero(rnd.Intn(2) == 0)
		}
		return New(rnd.Intn(2) == 0, rnd.Int63()-rnd.Int63(), rnd.Uint64()&MaxMantissa)
	}
	for i := 0; i < 1000; i++ {
		x, y, z := random(), random(), random()
		cmp := x.Cmp(y)
		a.Contains([]int{-1, 0, 1}, cmp)
		a.Equal(-cmp, y.Cmp(x))
		if cmp <= 0 && y.Cmp(z) <= 0 {
			a.True(x.Cmp(z) <= 0)
		}
		if !x.IsNaN() {
			a.Equal(-1, NaN().Cmp(x))
		}
	}
}

func TestGoString(t *testing.T) {
	a := assert.New(t)
	a.Equal("extfloat.New(false, 10, 1)", fmt.Sprintf("%#v", New(false, 10, 1)))
	a.Equal("extfloat.NaN()", fmt.Sprintf("%#v", NaN()))
	a.Equal("extfloat.Inf(-1)", fmt.Sprintf("%#v", Inf(-1)))
}

func TestJSON(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v    Value
		mode int
		data string
	}{
		{New(false, 4000, 12), JSONModeME, `{"m":12,"e":4000}`},
		{New(true, -4000, 12), JSONModeME, `{"m":12,"e":-4000,"n":true}`},
		{zero, JSONModeME, `{"m":0,"e":-1023}`},
		{NaN(), JSONModeME, `"NaN"`},
		{Inf(1), JSONModeME, `"+Inf"`},
		{Inf(-1), JSONModeME, `"-Inf"`},
		{FromFloat64(1.5), JSONModeFloat, `1.5`},
		{FromFloat64(-2e300), JSONModeFloat, `-2e+300`},
		{New(false, 4000, 12), JSONModeFloat, `{"m":12,"e":4000}`},
		{NaN(), JSONModeFloat, `"NaN"`},
	}
	defer func() {
		JSONMode = JSONModeME
	}()
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			JSONMode = test.mode
			data, err := json.Marshal(test.v)
			if a.NoError(err) {
				a.Equal(test.data, string(data))
			}
			var v Value
			if a.NoError(json.Unmarshal(data, &v)) {
				if test.v.IsNaN() {
					a.True(v.IsNaN())
				} else {
					a.Equal(test.v, v)
				}
			}
		})
	}
	var v Value
	a.Error(v.UnmarshalJSON(nil))
	a.Error(v.UnmarshalJSON([]byte(`"what"`)))
	a.NoError(v.UnmarshalJSON([]byte(`2.5`)))
	a.Equal(FromFloat64(2.5), v)
}
