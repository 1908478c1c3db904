package score

import (
	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/model"
	"github.com/ctrlab/gofactor/optim"
)

// LinearScore scores a row as the weighted sum of its features:
//
//	score = sum_j w[j] * x_j
type LinearScore struct {
	up optim.Updater
}

// Initialize binds the updater used by CalcGrad.
func (s *LinearScore) Initialize(up optim.Updater) {
	s.up = up
}

// Score computes the raw linear prediction for one row.
func (s *LinearScore) Score(row data.SparseRow, m *model.Model) float64 {
	return linearTerm(row, m)
}

// CalcGrad updates every weight touched by the row with gradient pg * x_j.
func (s *LinearScore) CalcGrad(row data.SparseRow, m *model.Model, pg float64) {
	linearGrad(row, m, pg, s.up)
}

// Type returns the registry name of the kernel.
func (s *LinearScore) Type() string { return model.Linear }
