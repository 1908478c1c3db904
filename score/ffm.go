package score

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/model"
	"github.com/ctrlab/gofactor/optim"
)

// FFMScore scores a row as the linear term plus field-aware pairwise
// interactions: for each pair of features (i, j), feature i contributes the
// latent vector it keeps for j's field and vice versa:
//
//	score = sum_j w[j]*x_j + sum_{i<j} <v_{i,field_j}, v_{j,field_i}> x_i x_j
type FFMScore struct {
	up optim.Updater
}

// Initialize binds the updater used by CalcGrad.
func (s *FFMScore) Initialize(up optim.Updater) {
	s.up = up
}

// Score computes the raw ffm prediction for one row.
func (s *FFMScore) Score(row data.SparseRow, m *model.Model) float64 {
	pred := linearTerm(row, m)
	for i := 0; i < len(row); i++ {
		for j := i + 1; j < len(row); j++ {
			vi := m.LatentField(row[i].Feature, row[j].Field)
			vj := m.LatentField(row[j].Feature, row[i].Field)
			pred += floats.Dot(vi, vj) * row[i].Value * row[j].Value
		}
	}
	return pred
}

// CalcGrad updates the weights and, for every feature pair, both latent
// vectors of the interaction. Each factor's gradient is read before either
// side of the pair is written.
func (s *FFMScore) CalcGrad(row data.SparseRow, m *model.Model, pg float64) {
	linearGrad(row, m, pg, s.up)

	k := m.NumK()
	v := m.V()
	vc := m.VCache()
	for i := 0; i < len(row); i++ {
		for j := i + 1; j < len(row); j++ {
			scale := pg * row[i].Value * row[j].Value
			bi := m.LatentFieldIndex(row[i].Feature, row[j].Field)
			bj := m.LatentFieldIndex(row[j].Feature, row[i].Field)
			for f := 0; f < k; f++ {
				gi := scale * v[bj+f]
				gj := scale * v[bi+f]
				s.up.Update(v, vc, bi+f, gi)
				s.up.Update(v, vc, bj+f, gj)
			}
		}
	}
}

// Type returns the registry name of the kernel.
func (s *FFMScore) Type() string { return model.FFM }
