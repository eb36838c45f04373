package report

import (
	"encoding/json"
	"fmt"
	"math"
)

// Ratio is a quotient of two measurements. It is undefined when either
// operand is zero or not finite.
type Ratio struct {
	Value   float64
	Defined bool
}

func NewRatio(num, den float64) Ratio {
	if !usable(num) || !usable(den) {
		return Ratio{}
	}
	return Ratio{Value: num / den, Defined: true}
}

func usable(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Inverse is the ratio with the roles of the operands swapped.
func (r Ratio) Inverse() Ratio {
	if !r.Defined {
		return r
	}
	return Ratio{Value: 1 / r.Value, Defined: true}
}

func (r Ratio) String() string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.2fx", r.Value)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Defined: true}
	return nil
}
