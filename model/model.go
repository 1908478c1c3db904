// Package model owns the flat parameter arrays of a sparse linear,
// factorization machine or field-aware factorization machine model: one
// weight per feature in w, and the latent factor block v whose layout
// depends on the score kernel. Parameters are shared mutable state during
// training; see the loss package for the update discipline.
package model

import (
	"math/rand"

	"github.com/juju/errors"
)

// Score kernel names understood by the parameter allocator. They match the
// registry names of the score package.
const (
	Linear = "linear"
	FM     = "fm"
	FFM    = "ffm"
)

// Config describes the shape and initialization of a model.
type Config struct {
	Score       string // linear, fm or ffm
	NumFeatures int
	NumFields   int // ffm only
	NumK        int // latent dimension, fm/ffm only
	InitMean    float64
	InitStdDev  float64 // defaults to 0.01
	Aux         bool    // allocate per-parameter caches (adagrad)
	Seed        int64
}

// Model holds the parameter arrays. w has one entry per feature. v is empty
// for linear models, NumFeatures*NumK for fm and NumFeatures*NumFields*NumK
// for ffm. When Aux is set, wCache and vCache mirror w and v and carry the
// squared-gradient accumulators of adaptive updaters.
type Model struct {
	w      []float64
	v      []float64
	wCache []float64
	vCache []float64

	numFeatures int
	numFields   int
	numK        int
}

// New allocates a model for cfg. Weights start at zero; latent factors are
// drawn from N(InitMean, InitStdDev).
func New(cfg Config) (*Model, error) {
	if cfg.NumFeatures <= 0 {
		return nil, errors.Errorf("model: NumFeatures must be positive, got %d", cfg.NumFeatures)
	}

	var vSize int
	switch cfg.Score {
	case Linear:
		vSize = 0
	case FM:
		if cfg.NumK <= 0 {
			return nil, errors.Errorf("model: fm needs NumK > 0, got %d", cfg.NumK)
		}
		vSize = cfg.NumFeatures * cfg.NumK
	case FFM:
		if cfg.NumK <= 0 || cfg.NumFields <= 0 {
			return nil, errors.Errorf("model: ffm needs NumK > 0 and NumFields > 0, got k=%d fields=%d",
				cfg.NumK, cfg.NumFields)
		}
		vSize = cfg.NumFeatures * cfg.NumFields * cfg.NumK
	default:
		return nil, errors.NotValidf("score kernel %q", cfg.Score)
	}

	stdDev := cfg.InitStdDev
	if stdDev <= 0 {
		stdDev = 0.01
	}

	m := &Model{
		w:           make([]float64, cfg.NumFeatures),
		v:           make([]float64, vSize),
		numFeatures: cfg.NumFeatures,
		numFields:   cfg.NumFields,
		numK:        cfg.NumK,
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := range m.v {
		m.v[i] = rng.NormFloat64()*stdDev + cfg.InitMean
	}
	if cfg.Aux {
		m.wCache = make([]float64, len(m.w))
		m.vCache = make([]float64, len(m.v))
	}
	return m, nil
}

// W returns the linear weight array.
func (m *Model) W() []float64 { return m.w }

// V returns the flat latent factor array.
func (m *Model) V() []float64 { return m.v }

// WCache returns the per-weight accumulator array, nil unless Aux was set.
func (m *Model) WCache() []float64 { return m.wCache }

// VCache returns the per-factor accumulator array, nil unless Aux was set.
func (m *Model) VCache() []float64 { return m.vCache }

// NumFeatures returns the number of features the model was sized for.
func (m *Model) NumFeatures() int { return m.numFeatures }

// NumFields returns the number of fields (ffm only, otherwise 0).
func (m *Model) NumFields() int { return m.numFields }

// NumK returns the latent dimension (0 for linear models).
func (m *Model) NumK() int { return m.numK }

// LatentIndex returns the offset of feature f's latent vector in V (fm
// layout).
func (m *Model) LatentIndex(f uint32) int {
	return int(f) * m.numK
}

// Latent returns feature f's latent vector (fm layout).
func (m *Model) Latent(f uint32) []float64 {
	i := m.LatentIndex(f)
	return m.v[i : i+m.numK]
}

// LatentFieldIndex returns the offset of the latent vector feature f uses
// against field fld (ffm layout).
func (m *Model) LatentFieldIndex(f, fld uint32) int {
	return (int(f)*m.numFields + int(fld)) * m.numK
}

// LatentField returns the latent vector feature f uses against field fld
// (ffm layout).
func (m *Model) LatentField(f, fld uint32) []float64 {
	i := m.LatentFieldIndex(f, fld)
	return m.v[i : i+m.numK]
}
