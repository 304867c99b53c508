// Package velocity provides the ordinal classification of mean
// displacement velocities used for thematic map colouring.
package velocity

import "math"

// Class labels for the 7 velocity bins, in ascending velocity order.
// Velocities are mm/yr; boundary values at ±2 belong to the central bin,
// values at ±6 and ±10 to the inner adjoining bin.
const (
	BelowMinus10 = "<-10"
	BelowMinus6  = "<-6"
	BelowMinus2  = "<-2"
	Stable       = "[-2,2]"
	Above2       = ">2"
	Above6       = ">6"
	Above10      = ">10"
)

// Classes lists all velocity class labels in ascending order. The order is
// significant: renderers consume colours by ordinal position.
var Classes = []string{
	BelowMinus10, BelowMinus6, BelowMinus2, Stable, Above2, Above6, Above10,
}

// Classify maps a velocity in mm/yr to its class label. The cascade is
// evaluated in fixed priority order, first match wins. NaN velocities have
// no class and return the empty string; ±Inf fall into the outermost bins.
func Classify(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case v < -10:
		return BelowMinus10
	case v < -6:
		return BelowMinus6
	case v < -2:
		return BelowMinus2
	case v <= 2:
		return Stable
	case v <= 6:
		return Above2
	case v <= 10:
		return Above6
	default:
		return Above10
	}
}

// ClassifyAll classifies each velocity in vs, preserving order.
func ClassifyAll(vs []float64) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = Classify(v)
	}
	return out
}

// Ordinal returns the position of a class label within Classes, or -1 for
// an unknown label (including the empty NaN label).
func Ordinal(class string) int {
	for i, c := range Classes {
		if c == class {
			return i
		}
	}
	return -1
}
