package hog

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// epsilon guards the normalization denominators against all-zero blocks,
// e.g. a perfectly flat image region.
const epsilon = 1e-6

// Norm identifies a block normalization scheme. The zero value is NormL2Hys,
// the scheme recommended by Dalal & Triggs.
//
// See https://en.wikipedia.org/wiki/Histogram_of_oriented_gradients#Block_normalization
type Norm int

const (
	// NormL2Hys applies L2 normalization, clips every component to 0.2, and
	// renormalizes. The clip bounds the influence of a single strong edge.
	NormL2Hys Norm = iota
	// NormNone leaves the block vector untouched.
	NormNone
	// NormL1 divides by the L1 norm of the block.
	NormL1
	// NormL1Sqrt applies L1 normalization followed by an element-wise square root.
	NormL1Sqrt
	// NormL2 divides by the L2 norm of the block.
	NormL2
)

func (n Norm) String() string {
	switch n {
	case NormNone:
		return "none"
	case NormL1:
		return "l1"
	case NormL1Sqrt:
		return "l1-sqrt"
	case NormL2:
		return "l2"
	case NormL2Hys:
		return "l2-hys"
	default:
		return fmt.Sprintf("Norm(%d)", int(n))
	}
}

// ParseNorm converts a scheme name, as produced by String, back to a Norm.
func ParseNorm(s string) (Norm, error) {
	switch strings.ToLower(s) {
	case "none":
		return NormNone, nil
	case "l1":
		return NormL1, nil
	case "l1-sqrt", "l1sqrt":
		return NormL1Sqrt, nil
	case "l2":
		return NormL2, nil
	case "l2-hys", "l2hys":
		return NormL2Hys, nil
	default:
		return 0, configErrorf("unrecognized normalization %q", s)
	}
}

func (n Norm) valid() bool {
	switch n {
	case NormNone, NormL1, NormL1Sqrt, NormL2, NormL2Hys:
		return true
	}
	return false
}

// apply normalizes v in place. An all-zero v stays all-zero under every
// scheme: the epsilon keeps the denominator finite and 0/den is 0.
func (n Norm) apply(v []float64) {
	switch n {
	case NormNone:
	case NormL1:
		l1(v)
	case NormL1Sqrt:
		l1(v)
		for i, x := range v {
			v[i] = math.Sqrt(x)
		}
	case NormL2:
		l2(v)
	case NormL2Hys:
		l2(v)
		for i, x := range v {
			if x > 0.2 {
				v[i] = 0.2
			} else if x < 0 {
				v[i] = 0
			}
		}
		l2(v)
	}
}

func l1(v []float64) {
	den := floats.Sum(v) + epsilon
	floats.Scale(1/den, v)
}

func l2(v []float64) {
	den := math.Sqrt(floats.Dot(v, v) + epsilon)
	floats.Scale(1/den, v)
}
