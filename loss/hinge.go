package loss

import (
	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/model"
)

// HingeLoss is the margin loss max(0, 1 - y*pred) over labels in {-1, +1}.
type HingeLoss struct {
	engine
}

// Evaluate returns the mean hinge loss over the batch.
func (l *HingeLoss) Evaluate(pred, label []float64) float64 {
	checkLen("evaluate", len(pred), len(label))
	if len(pred) == 0 {
		return 0
	}
	var sum float64
	for i := range pred {
		if v := 1 - label[i]*pred[i]; v > 0 {
			sum += v
		}
	}
	return sum / float64(len(pred))
}

// CalcGrad updates the model with derivative -y for rows inside the margin
// (y*pred < 1); rows outside it contribute nothing and are skipped.
func (l *HingeLoss) CalcGrad(dm *data.Matrix, m *model.Model) {
	l.calcGrad(dm, m, func(pred, y float64) float64 {
		if y*pred < 1 {
			return -y
		}
		return 0
	})
}

// Type returns the registry name of the loss.
func (l *HingeLoss) Type() string { return "hinge" }
