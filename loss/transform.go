package loss

import "math"

// Sigmoid writes the elementwise logistic transform 1/(1+e^-x) of pred
// into out. Both vectors must have the same length. Large positive inputs
// saturate toward 1 and large negative inputs toward 0 without overflow.
func Sigmoid(pred, out []float64) {
	checkLen("sigmoid", len(pred), len(out))
	for i, x := range pred {
		out[i] = sigmoid(x)
	}
}

// Sign writes 1 into out where pred is >= 0 and 0 elsewhere. Both vectors
// must have the same length.
func Sign(pred, out []float64) {
	checkLen("sign", len(pred), len(out))
	for i, x := range pred {
		if x >= 0 {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}

// sigmoid is the overflow-safe scalar logistic function: the exponential is
// only ever taken of a non-positive argument.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}
