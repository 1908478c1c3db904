// Package score implements the scoring kernels: linear, factorization
// machine (fm) and field-aware factorization machine (ffm). A kernel turns
// one sparse row and the current model parameters into a raw score, and
// applies the parameter updates derived from a loss gradient.
package score

import (
	"sort"

	"github.com/samber/lo"

	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/model"
	"github.com/ctrlab/gofactor/optim"
)

// Score is the kernel capability consumed by the loss engine.
//
// Score computes the raw prediction for one row. CalcGrad applies the
// update for one row given pg, the derivative of the loss with respect to
// the score; the bound updater supplies learning rate and regularization.
// Initialize must be called before CalcGrad; Score needs no updater.
type Score interface {
	Initialize(up optim.Updater)
	Score(row data.SparseRow, m *model.Model) float64
	CalcGrad(row data.SparseRow, m *model.Model, pg float64)
	Type() string
}

// registry is the fixed table of kernel constructors, keyed by the names
// used in model configuration.
var registry = map[string]func() Score{
	model.Linear: func() Score { return new(LinearScore) },
	model.FM:     func() Score { return new(FMScore) },
	model.FFM:    func() Score { return new(FFMScore) },
}

// Create instantiates the named kernel, or returns nil for an unknown or
// empty name. Callers must check before use.
func Create(name string) Score {
	ctor, ok := registry[name]
	if !ok {
		return nil
	}
	return ctor()
}

// Names returns the registered kernel names, sorted.
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// linearTerm is the first-order part shared by all three kernels.
func linearTerm(row data.SparseRow, m *model.Model) float64 {
	w := m.W()
	var sum float64
	for _, n := range row {
		sum += w[n.Feature] * n.Value
	}
	return sum
}

// linearGrad applies the first-order updates shared by all three kernels.
func linearGrad(row data.SparseRow, m *model.Model, pg float64, up optim.Updater) {
	w := m.W()
	wc := m.WCache()
	for _, n := range row {
		up.Update(w, wc, int(n.Feature), pg*n.Value)
	}
}
