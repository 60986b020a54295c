package track

import (
	"fmt"

	"github.com/go-reel/reel/pkg/graphics"
)

// Value is a keyframe's value: a number, a color, or a discrete token,
// depending on the owning track's value kind. The zero Value is numeric 0.
type Value struct {
	Kind     ValueKind
	Num      float64
	Color    graphics.Color
	Discrete string
}

// Numeric returns a numeric Value.
func Numeric(v float64) Value {
	return Value{Kind: KindNumeric, Num: v}
}

// ColorOf returns a color Value.
func ColorOf(c graphics.Color) Value {
	return Value{Kind: KindColor, Color: c}
}

// DiscreteOf returns a discrete Value.
func DiscreteOf(s string) Value {
	return Value{Kind: KindDiscrete, Discrete: s}
}

func (v Value) String() string {
	switch v.Kind {
	case KindColor:
		return v.Color.Hex()
	case KindDiscrete:
		return v.Discrete
	default:
		return fmt.Sprintf("%g", v.Num)
	}
}

// lerp interpolates between a and b at eased progress t according to the
// value kind. Discrete values step to b only once progress reaches 1.
func lerp(a, b Value, t float64) Value {
	switch a.Kind {
	case KindColor:
		return ColorOf(a.Color.Lerp(b.Color, t))
	case KindDiscrete:
		if t >= 1 {
			return b
		}
		return a
	default:
		return Numeric(a.Num + (b.Num-a.Num)*t)
	}
}
