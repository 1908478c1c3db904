// Package loss implements the training-time loss engine: the polymorphic
// contract shared by the squared, cross-entropy and hinge losses, the
// parallel fan-out of scoring and gradient work across a worker pool, and
// the elementwise transforms applied to raw scores.
//
// A typical training pass looks like:
//
//	k := score.Create("fm")
//	k.Initialize(optim.NewSGD(optim.Config{LearningRate: 0.1}))
//	l := loss.Create("cross-entropy")
//	l.Initialize(k, true, 0)
//	defer l.Close()
//
//	for epoch := 0; epoch < epochs; epoch++ {
//		l.CalcGrad(matrix, model)
//	}
//	pred := make([]float64, matrix.Len())
//	l.Predict(matrix, model, pred)
//	val := l.Evaluate(pred, matrix.Labels())
package loss

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/model"
	"github.com/ctrlab/gofactor/parallel"
	"github.com/ctrlab/gofactor/score"
)

// Loss is the central training abstraction. Initialize must be called
// exactly once before any other method; Close releases the worker pool the
// engine owns. Predict and CalcGrad fan out across the pool and block until
// every worker has finished; Evaluate runs on the caller's goroutine.
type Loss interface {
	Initialize(s score.Score, norm bool, workers int)
	Predict(dm *data.Matrix, m *model.Model, pred []float64)
	CalcGrad(dm *data.Matrix, m *model.Model)
	Evaluate(pred, label []float64) float64
	Type() string
	Close()
}

// registry is the fixed table of loss constructors.
var registry = map[string]func() Loss{
	"squared":       func() Loss { return new(SquaredLoss) },
	"cross-entropy": func() Loss { return new(CrossEntropyLoss) },
	"hinge":         func() Loss { return new(HingeLoss) },
}

// Create instantiates the named loss, or returns nil for an unknown or
// empty name. Callers must check before use.
func Create(name string) Loss {
	ctor, ok := registry[name]
	if !ok {
		return nil
	}
	return ctor()
}

// Names returns the registered loss names, sorted.
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// engine is the shared scaffolding embedded by every loss variant: the
// bound score kernel, the normalization flag and the owned worker pool.
type engine struct {
	score score.Score
	norm  bool
	pool  *parallel.Pool
}

// Initialize binds the score kernel, stores the normalization flag and
// builds the worker pool. workers <= 0 sizes the pool to the available
// hardware threads.
func (e *engine) Initialize(s score.Score, norm bool, workers int) {
	if e.pool != nil {
		panic("loss: Initialize called twice")
	}
	e.score = s
	e.norm = norm
	e.pool = parallel.NewPool(workers)
}

// Close releases the worker pool. The loss must not be used afterwards.
func (e *engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

// ready panics when the engine is used before Initialize.
func (e *engine) ready() {
	if e.pool == nil {
		panic("loss: used before Initialize")
	}
}

// Predict scores every row of the batch into pred, in parallel. The buffer
// is caller-owned and must already have one slot per row. Scores are raw:
// the normalization flag only affects gradient scaling, never predictions.
func (e *engine) Predict(dm *data.Matrix, m *model.Model, pred []float64) {
	e.ready()
	dm.Check()
	if len(pred) != dm.Len() {
		panic(fmt.Sprintf("loss: prediction buffer has %d slots for %d rows", len(pred), dm.Len()))
	}
	e.pool.Run(dm.Len(), func(start, end int) {
		for i := start; i < end; i++ {
			pred[i] = e.score.Score(dm.Row(i), m)
		}
	})
}

// calcGrad runs the shared gradient pass: each worker scores the rows of
// its partition, turns each score into the loss derivative via dLoss, and
// applies the kernel's parameter update. A zero derivative skips the
// update entirely (hinge rows outside the margin). Model parameters are
// shared and unsynchronized; workers own disjoint rows, and updates that
// collide on a common feature are an accepted relaxed-consistency race.
func (e *engine) calcGrad(dm *data.Matrix, m *model.Model, dLoss func(pred, y float64) float64) {
	e.ready()
	dm.Check()
	e.pool.Run(dm.Len(), func(start, end int) {
		for i := start; i < end; i++ {
			row := dm.Row(i)
			pg := dLoss(e.score.Score(row, m), dm.Label(i))
			if pg == 0 {
				continue
			}
			if e.norm && len(row) > 0 {
				pg /= float64(len(row))
			}
			e.score.CalcGrad(row, m, pg)
		}
	})
}

// checkLen panics unless both vectors have the same length.
func checkLen(what string, a, b int) {
	if a != b {
		panic(fmt.Sprintf("loss: %s length mismatch: %d != %d", what, a, b))
	}
}
