package optim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSGDUpdate(t *testing.T) {
	t.Run("plain step", func(t *testing.T) {
		up := NewSGD(Config{LearningRate: 0.1})
		w := []float64{1.0, 2.0}
		up.Update(w, nil, 1, 0.5)
		assert.InDelta(t, 2.0-0.1*0.5, w[1], 1e-12)
		assert.Equal(t, 1.0, w[0])
	})

	t.Run("weight decay", func(t *testing.T) {
		up := NewSGD(Config{LearningRate: 0.1, Lambda: 0.01})
		w := []float64{2.0}
		up.Update(w, nil, 0, 0.5)
		assert.InDelta(t, 2.0-0.1*(0.5+0.01*2.0), w[0], 1e-12)
	})
}

func TestAdaGradUpdate(t *testing.T) {
	up := NewAdaGrad(Config{LearningRate: 0.1})
	require.True(t, up.NeedsCache())

	w := []float64{1.0}
	cache := []float64{0}

	up.Update(w, cache, 0, 0.5)
	assert.InDelta(t, 0.25, cache[0], 1e-12)
	assert.InDelta(t, 1.0-0.1*0.5/(math.Sqrt(0.25)+1e-8), w[0], 1e-9)

	// Repeated identical gradients shrink the effective step.
	before := w[0]
	up.Update(w, cache, 0, 0.5)
	step2 := before - w[0]
	assert.Less(t, step2, 0.1)
	assert.Greater(t, step2, 0.0)
}

func TestCreate(t *testing.T) {
	cfg := Config{LearningRate: 0.1}
	require.NotNil(t, Create("sgd", cfg))
	require.NotNil(t, Create("adagrad", cfg))
	assert.Nil(t, Create("", cfg))
	assert.Nil(t, Create("ftrl", cfg))
	assert.Equal(t, []string{"adagrad", "sgd"}, Names())
}
