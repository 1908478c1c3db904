package loss

import (
	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/model"
)

// SquaredLoss is the regression loss 1/2 (pred - y)^2, usually paired with
// the linear kernel for least-squares regression.
type SquaredLoss struct {
	engine
}

// Evaluate returns the mean squared loss over the batch.
func (l *SquaredLoss) Evaluate(pred, label []float64) float64 {
	checkLen("evaluate", len(pred), len(label))
	if len(pred) == 0 {
		return 0
	}
	var sum float64
	for i := range pred {
		d := pred[i] - label[i]
		sum += 0.5 * d * d
	}
	return sum / float64(len(pred))
}

// CalcGrad updates the model with the derivative pred - y per row.
func (l *SquaredLoss) CalcGrad(dm *data.Matrix, m *model.Model) {
	l.calcGrad(dm, m, func(pred, y float64) float64 {
		return pred - y
	})
}

// Type returns the registry name of the loss.
func (l *SquaredLoss) Type() string { return "squared" }
