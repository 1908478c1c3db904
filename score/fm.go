package score

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/model"
	"github.com/ctrlab/gofactor/optim"
)

// FMScore scores a row as the linear term plus all pairwise latent
// interactions:
//
//	score = sum_j w[j]*x_j + sum_{i<j} <v_i, v_j> x_i x_j
//
// The pairwise sum is computed with the usual O(n*k) reformulation
//
//	1/2 * sum_f [ (sum_j v_{jf} x_j)^2 - sum_j v_{jf}^2 x_j^2 ]
type FMScore struct {
	up optim.Updater
}

// Initialize binds the updater used by CalcGrad.
func (s *FMScore) Initialize(up optim.Updater) {
	s.up = up
}

// Score computes the raw fm prediction for one row.
func (s *FMScore) Score(row data.SparseRow, m *model.Model) float64 {
	pred := linearTerm(row, m)

	k := m.NumK()
	sum := make([]float64, k)
	var sumSq float64
	for _, n := range row {
		lat := m.Latent(n.Feature)
		floats.AddScaled(sum, n.Value, lat)
		sq := n.Value * n.Value
		for f := 0; f < k; f++ {
			sumSq += lat[f] * lat[f] * sq
		}
	}
	return pred + 0.5*(floats.Dot(sum, sum)-sumSq)
}

// CalcGrad updates the weights and latent factors touched by the row. The
// latent gradient reuses the precomputed factor sums:
//
//	d score / d v_{jf} = x_j * sum_f - x_j^2 * v_{jf}
func (s *FMScore) CalcGrad(row data.SparseRow, m *model.Model, pg float64) {
	linearGrad(row, m, pg, s.up)

	k := m.NumK()
	sum := make([]float64, k)
	for _, n := range row {
		floats.AddScaled(sum, n.Value, m.Latent(n.Feature))
	}

	v := m.V()
	vc := m.VCache()
	for _, n := range row {
		base := m.LatentIndex(n.Feature)
		for f := 0; f < k; f++ {
			grad := pg * (n.Value*sum[f] - n.Value*n.Value*v[base+f])
			s.up.Update(v, vc, base+f, grad)
		}
	}
}

// Type returns the registry name of the kernel.
func (s *FMScore) Type() string { return model.FM }
