// Package optim implements the per-parameter update rules applied by the
// score kernels during gradient computation. Updates address single entries
// of the shared parameter arrays and are deliberately lock-free: workers own
// disjoint rows, and colliding updates on a shared feature are an accepted
// relaxed-consistency trade-off of this training family.
package optim

import "math"

// adaGradEps keeps the adaptive denominator away from zero on the first
// update of a parameter.
const adaGradEps = 1e-8

// Updater applies one scaled gradient to param[idx]. L2 regularization is
// folded into the rule: the effective gradient is grad + Lambda*param[idx].
// cache is the matching accumulator array of the model (nil unless
// NeedsCache reports true).
type Updater interface {
	Update(param, cache []float64, idx int, grad float64)
	NeedsCache() bool
	Type() string
}

// Config carries the hyperparameters shared by all updaters.
type Config struct {
	LearningRate float64
	Lambda       float64
}

// SGD is plain stochastic gradient descent with L2 weight decay.
type SGD struct {
	lr     float64
	lambda float64
}

// NewSGD creates an SGD updater.
func NewSGD(cfg Config) *SGD {
	return &SGD{lr: cfg.LearningRate, lambda: cfg.Lambda}
}

// Update applies param[idx] -= lr * (grad + lambda*param[idx]).
func (s *SGD) Update(param, _ []float64, idx int, grad float64) {
	param[idx] -= s.lr * (grad + s.lambda*param[idx])
}

// NeedsCache reports that SGD keeps no per-parameter state.
func (s *SGD) NeedsCache() bool { return false }

// Type returns the registry name of the updater.
func (s *SGD) Type() string { return "sgd" }

// AdaGrad scales each parameter's step by the inverse root of its
// accumulated squared gradients, stored in the model's cache arrays.
type AdaGrad struct {
	lr     float64
	lambda float64
}

// NewAdaGrad creates an AdaGrad updater.
func NewAdaGrad(cfg Config) *AdaGrad {
	return &AdaGrad{lr: cfg.LearningRate, lambda: cfg.Lambda}
}

// Update accumulates the squared effective gradient in cache[idx] and
// applies param[idx] -= lr * g / (sqrt(cache[idx]) + eps).
func (a *AdaGrad) Update(param, cache []float64, idx int, grad float64) {
	g := grad + a.lambda*param[idx]
	cache[idx] += g * g
	param[idx] -= a.lr * g / (math.Sqrt(cache[idx]) + adaGradEps)
}

// NeedsCache reports that AdaGrad requires model accumulator caches.
func (a *AdaGrad) NeedsCache() bool { return true }

// Type returns the registry name of the updater.
func (a *AdaGrad) Type() string { return "adagrad" }
