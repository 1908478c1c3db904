package loss

import (
	"math"

	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/model"
)

// CrossEntropyLoss is the binary logistic loss log(1 + e^(-y*pred)) over
// labels in {-1, +1}, the usual choice for classification with linear, fm
// and ffm kernels.
type CrossEntropyLoss struct {
	engine
}

// Evaluate returns the mean log loss over the batch. The computation is
// overflow-safe for scores of any magnitude.
func (l *CrossEntropyLoss) Evaluate(pred, label []float64) float64 {
	checkLen("evaluate", len(pred), len(label))
	if len(pred) == 0 {
		return 0
	}
	var sum float64
	for i := range pred {
		z := -label[i] * pred[i]
		// log(1+e^z) = z + log(1+e^-z) for z > 0 keeps the exponent bounded.
		if z > 0 {
			sum += z + math.Log1p(math.Exp(-z))
		} else {
			sum += math.Log1p(math.Exp(z))
		}
	}
	return sum / float64(len(pred))
}

// CalcGrad updates the model with the derivative -y / (1 + e^(y*pred)) per
// row.
func (l *CrossEntropyLoss) CalcGrad(dm *data.Matrix, m *model.Model) {
	l.calcGrad(dm, m, func(pred, y float64) float64 {
		return -y * sigmoid(-y*pred)
	})
}

// Type returns the registry name of the loss.
func (l *CrossEntropyLoss) Type() string { return "cross-entropy" }
