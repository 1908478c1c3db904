// Package training drives full training runs: it assembles a loss engine,
// score kernel and updater from their registries, sizes the model from the
// data, and runs the epoch loop with structured progress logging.
package training

import (
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/loss"
	"github.com/ctrlab/gofactor/model"
	"github.com/ctrlab/gofactor/optim"
	"github.com/ctrlab/gofactor/score"
)

// Config selects the variant of each component and the training
// hyperparameters. Zero values fall back to the defaults noted per field.
type Config struct {
	Loss      string // squared, cross-entropy or hinge; default cross-entropy
	Score     string // linear, fm or ffm; default linear
	Optimizer string // sgd or adagrad; default sgd

	Epochs       int     // default 10
	LearningRate float64 // default 0.2
	Lambda       float64 // L2 strength; zero or negative disables regularization
	NumK         int     // latent dimension for fm/ffm, default 4
	InitStdDev   float64 // latent init spread, default 0.01
	Normalize    bool    // scale each row's gradient by 1/nnz
	Workers      int     // worker pool size; 0 uses all hardware threads
	Seed         int64
}

// withDefaults fills unset Config fields.
func (c Config) withDefaults() Config {
	if c.Loss == "" {
		c.Loss = "cross-entropy"
	}
	if c.Score == "" {
		c.Score = model.Linear
	}
	if c.Optimizer == "" {
		c.Optimizer = "sgd"
	}
	if c.Epochs <= 0 {
		c.Epochs = 10
	}
	if c.LearningRate <= 0 {
		c.LearningRate = 0.2
	}
	if c.Lambda < 0 {
		c.Lambda = 0
	}
	if c.NumK <= 0 {
		c.NumK = 4
	}
	return c
}

// Trainer runs training passes for one configuration. It owns the loss
// engine (and through it the worker pool); Close releases them.
type Trainer struct {
	cfg    Config
	logger *zap.Logger
	loss   loss.Loss
	kernel score.Score
	aux    bool // the updater needs model accumulator caches
}

// NewTrainer validates cfg, instantiates the configured loss, kernel and
// updater from their registries and wires them together. An unknown variant
// name is reported as a not-found error. A nil logger disables logging.
func NewTrainer(cfg Config, logger *zap.Logger) (*Trainer, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	l := loss.Create(cfg.Loss)
	if l == nil {
		return nil, errors.NotFoundf("loss %q", cfg.Loss)
	}
	k := score.Create(cfg.Score)
	if k == nil {
		return nil, errors.NotFoundf("score kernel %q", cfg.Score)
	}
	up := optim.Create(cfg.Optimizer, optim.Config{
		LearningRate: cfg.LearningRate,
		Lambda:       cfg.Lambda,
	})
	if up == nil {
		return nil, errors.NotFoundf("optimizer %q", cfg.Optimizer)
	}

	k.Initialize(up)
	l.Initialize(k, cfg.Normalize, cfg.Workers)

	return &Trainer{cfg: cfg, logger: logger, loss: l, kernel: k, aux: up.NeedsCache()}, nil
}

// Close releases the loss engine and its worker pool.
func (t *Trainer) Close() {
	t.loss.Close()
}

// Fit trains a fresh model on train for the configured number of epochs and
// returns it. valid may be nil; when present, validation loss is computed
// and logged each epoch. Classification losses expect {-1,+1} labels;
// callers with {0,1} files binarize via Matrix.BinarizeLabels first.
func (t *Trainer) Fit(train, valid *data.Matrix) (*model.Model, error) {
	if train == nil || train.Len() == 0 {
		return nil, errors.Errorf("training: empty training set")
	}

	numFeatures := int(train.MaxFeature()) + 1
	numFields := int(train.MaxField()) + 1
	if valid != nil {
		if n := int(valid.MaxFeature()) + 1; n > numFeatures {
			numFeatures = n
		}
		if n := int(valid.MaxField()) + 1; n > numFields {
			numFields = n
		}
	}

	m, err := model.New(model.Config{
		Score:       t.cfg.Score,
		NumFeatures: numFeatures,
		NumFields:   numFields,
		NumK:        t.cfg.NumK,
		InitStdDev:  t.cfg.InitStdDev,
		Aux:         t.aux,
		Seed:        t.cfg.Seed,
	})
	if err != nil {
		return nil, errors.Annotate(err, "allocating model")
	}

	t.logger.Info("training started",
		zap.String("loss", t.loss.Type()),
		zap.String("score", t.kernel.Type()),
		zap.String("optimizer", t.cfg.Optimizer),
		zap.Int("rows", train.Len()),
		zap.Int("features", numFeatures),
		zap.Int("epochs", t.cfg.Epochs),
	)

	pred := make([]float64, train.Len())
	var validPred []float64
	if valid != nil {
		validPred = make([]float64, valid.Len())
	}

	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		t.loss.CalcGrad(train, m)

		t.loss.Predict(train, m, pred)
		fields := []zap.Field{
			zap.Int("epoch", epoch),
			zap.Float64("train_loss", t.loss.Evaluate(pred, train.Labels())),
		}
		if valid != nil {
			t.loss.Predict(valid, m, validPred)
			fields = append(fields, zap.Float64("valid_loss", t.loss.Evaluate(validPred, valid.Labels())))
		}
		t.logger.Info("epoch finished", fields...)
	}

	return m, nil
}

// Predict scores every row of dm with the trained model into a new buffer.
func (t *Trainer) Predict(dm *data.Matrix, m *model.Model) []float64 {
	pred := make([]float64, dm.Len())
	t.loss.Predict(dm, m, pred)
	return pred
}

// Evaluate reduces predictions and labels to the configured loss value.
func (t *Trainer) Evaluate(pred, label []float64) float64 {
	return t.loss.Evaluate(pred, label)
}
