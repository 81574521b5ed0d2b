// Copyright 2020 Aleksandr Demakin. All rights reserved.

package extfloat

import (
	"encoding/json"
	"fmt"
)

func ExampleValue() {
	v := FromFloat64(1.5)
	fmt.Println(v.Signbit(), v.Exponent(), v.MantUint64())

	// a value this large dominates any float64-sized addend
	big := New(false, 2000, 0)
	fmt.Println(big.Add(v).Exponent())

	// the square leaves the float64 range, but keeps the exact exponent
	sq := big.Mul(big)
	fmt.Println(sq.Exponent(), sq.Float64())

	data, _ := json.Marshal(sq)
	fmt.Println(string(data))

	// a long product of probabilities underflows a float64, not a Value
	p := FromFloat64(1)
	half := FromFloat64(0.5)
	for i := 0; i < 2000; i++ {
		p = p.Mul(half)
	}
	fmt.Println(p.Exponent(), p.Float64())
	// Output:
	// false 0 2251799813685248
	// 2000
	// 4000 +Inf
	// {"m":0,"e":4000}
	// -2000 0
}
