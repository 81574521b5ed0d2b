// Copyright 2020 Aleksandr Demakin. All rights reserved.

package extfloat

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// JSONMode defines the way all values are marshaled into json, see JSONMode* constants.
	// This variable is not thread-safe, so this should be changed on program start.
	JSONMode = JSONModeME
)

const (
	// JSONModeME marshals values with mantissa and exponent, like `{"m":123,"e":-5}`.
	// Negative values carry an `"n":true` member. The form is exact.
	JSONModeME = iota
	// JSONModeFloat marshals values that fit a float64 as plain numbers,
	// like `1234.5678`, falling back to the mantissa/exponent object for
	// values beyond the float64 range.
	JSONModeFloat
)

var (
	jsonParts = []string{`{"m":`, `,"e":`, `,"n":true`, `}`}

	jsonNaN    = `"NaN"`
	jsonPosInf = `"+Inf"`
	jsonNegInf = `"-Inf"`
)

// MarshalJSON marshals the value according to the current JSONMode.
// NaN and the infinities become the strings "NaN", "+Inf" and "-Inf"
// in every mode, as JSON numbers cannot carry them.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.nan:
		return []byte(jsonNaN), nil
	case v.inf && v.neg:
		return []byte(jsonNegInf), nil
	case v.inf:
		return []byte(jsonPosInf), nil
	}
	if JSONMode == JSONModeFloat {
		if f := v.Float64(); !math.IsInf(f, 0) && FromFloat64(f) == v {
			return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
		}
	}
	var builder strings.Builder
	builder.WriteString(jsonParts[0])
	builder.WriteString(strconv.FormatUint(v.mant, 10))
	builder.WriteString(jsonParts[1])
	builder.WriteString(strconv.FormatInt(v.exp, 10))
	if v.neg {
		builder.WriteString(jsonParts[2])
	}
	builder.WriteString(jsonParts[3])
	return []byte(builder.String()), nil
}

// UnmarshalJSON unmarshals a mantissa/exponent object, one of the special
// strings produced by MarshalJSON, or a plain number into a value.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty json")
	}
	switch data[0] {
	case '{':
		d := struct {
			M uint64
			E int64
			N bool
		}{}
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		if d.M > MaxMantissa {
			return fmt.Errorf("mantissa out of range")
		}
		*v = New(d.N, d.E, d.M)
	case '"':
		switch string(data) {
		case jsonNaN:
			*v = NaN()
		case jsonPosInf:
			*v = Inf(1)
		case jsonNegInf:
			*v = Inf(-1)
		default:
			return fmt.Errorf("unexpected string %s", data)
		}
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*v = FromFloat64(f)
	}
	return nil
}
