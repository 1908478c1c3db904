package loss

import (
	"math"
	"testing"
)

var transformIn = []float64{0.5, 3, 20, -0.5, -3, -20}

func TestSigmoid(t *testing.T) {
	out := make([]float64, len(transformIn))
	Sigmoid(transformIn, out)

	for i, v := range out[:3] {
		if v <= 0.5 {
			t.Errorf("sigmoid(%v) = %v, want > 0.5", transformIn[i], v)
		}
	}
	for i, v := range out[3:] {
		if v >= 0.5 {
			t.Errorf("sigmoid(%v) = %v, want < 0.5", transformIn[i+3], v)
		}
	}
	for i, v := range out {
		if v <= 0 || v >= 1 {
			t.Errorf("sigmoid(%v) = %v, want in (0,1)", transformIn[i], v)
		}
	}
	// Monotone in the input.
	if !(out[3] < out[0] && out[0] < out[1] && out[1] < out[2]) {
		t.Errorf("sigmoid not monotone: %v", out)
	}
}

func TestSigmoidSaturation(t *testing.T) {
	out := make([]float64, 2)
	Sigmoid([]float64{750, -750}, out)
	if math.IsNaN(out[0]) || out[0] != 1 {
		t.Errorf("sigmoid(750) = %v, want 1", out[0])
	}
	if math.IsNaN(out[1]) || out[1] != 0 {
		t.Errorf("sigmoid(-750) = %v, want 0", out[1])
	}
}

func TestSign(t *testing.T) {
	out := make([]float64, len(transformIn))
	Sign(transformIn, out)

	want := []float64{1, 1, 1, 0, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("sign(%v) = %v, want %v", transformIn[i], out[i], want[i])
		}
	}
}

func TestTransformLengthMismatch(t *testing.T) {
	mustPanic(t, "sigmoid", func() {
		Sigmoid(make([]float64, 3), make([]float64, 2))
	})
	mustPanic(t, "sign", func() {
		Sign(make([]float64, 3), make([]float64, 4))
	})
}
