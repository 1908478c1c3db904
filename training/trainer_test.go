package training

import (
	"math/rand"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlab/gofactor/data"
)

// xorDataset builds a small field-aware dataset whose classes are only
// separable through feature interactions: label = xor of two binary
// features, one-hot encoded into four features over two fields.
func xorDataset(n int, seed int64) *data.Matrix {
	rng := rand.New(rand.NewSource(seed))
	dm := data.NewMatrix(n)
	for i := 0; i < n; i++ {
		a := rng.Intn(2)
		b := rng.Intn(2)
		label := -1.0
		if a != b {
			label = 1.0
		}
		row := data.SparseRow{
			{Feature: uint32(a), Value: 1.0, Field: 0},
			{Feature: uint32(2 + b), Value: 1.0, Field: 1},
		}
		dm.AddRow(row, label)
	}
	return dm
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, "cross-entropy", c.Loss)
	assert.Equal(t, "linear", c.Score)
	assert.Equal(t, "sgd", c.Optimizer)
	assert.Equal(t, 10, c.Epochs)
	assert.Equal(t, 0.2, c.LearningRate)
	assert.Equal(t, 4, c.NumK)

	// Zero lambda and zero workers are valid settings, not unset fields:
	// no regularization and a hardware-sized pool respectively.
	assert.Equal(t, 0.0, c.Lambda)
	assert.Equal(t, 0, c.Workers)
	assert.Equal(t, 0.0, Config{Lambda: -1}.withDefaults().Lambda)
}

func TestFitSingleWorkerDeterministic(t *testing.T) {
	dm := xorDataset(200, 11)
	cfg := Config{
		Loss:         "cross-entropy",
		Score:        "fm",
		Epochs:       20,
		LearningRate: 0.2,
		NumK:         4,
		InitStdDev:   0.1,
		Workers:      1,
		Seed:         13,
	}

	fit := func() []float64 {
		tr, err := NewTrainer(cfg, nil)
		require.NoError(t, err)
		defer tr.Close()
		m, err := tr.Fit(dm, nil)
		require.NoError(t, err)
		return m.W()
	}

	// With a single worker the row order is fixed, so two runs from the
	// same seed must produce bit-identical weights.
	assert.Equal(t, fit(), fit())
}

func TestNewTrainerUnknownNames(t *testing.T) {
	_, err := NewTrainer(Config{Loss: "poisson"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.NotFound)

	_, err = NewTrainer(Config{Score: "deep"}, nil)
	assert.Error(t, err)

	_, err = NewTrainer(Config{Optimizer: "lbfgs"}, nil)
	assert.Error(t, err)
}

func TestFitRejectsEmptyTrainingSet(t *testing.T) {
	tr, err := NewTrainer(Config{}, nil)
	require.NoError(t, err)
	defer tr.Close()

	_, err = tr.Fit(nil, nil)
	assert.Error(t, err)
	_, err = tr.Fit(data.NewMatrix(0), nil)
	assert.Error(t, err)
}

func TestFitLinearRegression(t *testing.T) {
	// y = 3*x0 - 2*x1, exactly representable by the linear kernel.
	dm := data.NewMatrix(64)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 64; i++ {
		x0 := rng.Float64()
		x1 := rng.Float64()
		dm.AddRow(data.SparseRow{
			{Feature: 0, Value: x0},
			{Feature: 1, Value: x1},
		}, 3*x0-2*x1)
	}

	tr, err := NewTrainer(Config{
		Loss:         "squared",
		Score:        "linear",
		Epochs:       300,
		LearningRate: 0.1,
	}, nil)
	require.NoError(t, err)
	defer tr.Close()

	m, err := tr.Fit(dm, nil)
	require.NoError(t, err)

	pred := tr.Predict(dm, m)
	assert.Less(t, RMSE(pred, dm.Labels()), 0.05)
	assert.InDelta(t, 3.0, m.W()[0], 0.15)
	assert.InDelta(t, -2.0, m.W()[1], 0.15)
}

func TestFitFFMLearnsXor(t *testing.T) {
	train := xorDataset(400, 3)
	valid := xorDataset(100, 4)

	tr, err := NewTrainer(Config{
		Loss:         "cross-entropy",
		Score:        "ffm",
		Optimizer:    "adagrad",
		Epochs:       100,
		LearningRate: 0.3,
		NumK:         4,
		InitStdDev:   0.1,
		Normalize:    true,
		Seed:         5,
	}, nil)
	require.NoError(t, err)
	defer tr.Close()

	m, err := tr.Fit(train, valid)
	require.NoError(t, err)

	pred := tr.Predict(valid, m)
	assert.Greater(t, Accuracy(pred, valid.Labels()), 0.95)
	assert.Greater(t, AUC(pred, valid.Labels()), 0.95)
}

func TestFitFMClassification(t *testing.T) {
	train := xorDataset(400, 7)

	tr, err := NewTrainer(Config{
		Loss:         "cross-entropy",
		Score:        "fm",
		Epochs:       300,
		LearningRate: 0.2,
		NumK:         4,
		InitStdDev:   0.1,
		Seed:         9,
	}, nil)
	require.NoError(t, err)
	defer tr.Close()

	m, err := tr.Fit(train, nil)
	require.NoError(t, err)

	pred := tr.Predict(train, m)
	assert.Greater(t, Accuracy(pred, train.Labels()), 0.9)
}
