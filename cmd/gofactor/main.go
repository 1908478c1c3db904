// Command gofactor trains sparse linear, fm and ffm models from libsvm or
// libffm text files.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ctrlab/gofactor/data"
	"github.com/ctrlab/gofactor/loss"
	"github.com/ctrlab/gofactor/optim"
	"github.com/ctrlab/gofactor/score"
	"github.com/ctrlab/gofactor/training"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gofactor",
		Short:         "train sparse linear, fm and ffm models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTrainCmd())
	return root
}

type trainFlags struct {
	trainPath string
	validPath string
	format    string
	cfg       training.Config
	quiet     bool
}

func newTrainCmd() *cobra.Command {
	var f trainFlags

	cmd := &cobra.Command{
		Use:   "train",
		Short: "train a model on a libsvm or libffm file",
		Long: fmt.Sprintf(`Train a model on a libsvm or libffm file.

Available losses:     %s
Available kernels:    %s
Available optimizers: %s`,
			strings.Join(loss.Names(), ", "),
			strings.Join(score.Names(), ", "),
			strings.Join(optim.Names(), ", ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(f)
		},
	}

	cmd.Flags().StringVar(&f.trainPath, "train", "", "training file (required)")
	cmd.Flags().StringVar(&f.validPath, "valid", "", "validation file")
	cmd.Flags().StringVar(&f.format, "format", "libsvm", "data format: libsvm or libffm")
	cmd.Flags().StringVar(&f.cfg.Loss, "loss", "cross-entropy", "loss function")
	cmd.Flags().StringVar(&f.cfg.Score, "score", "linear", "score kernel")
	cmd.Flags().StringVar(&f.cfg.Optimizer, "optimizer", "sgd", "parameter updater")
	cmd.Flags().IntVar(&f.cfg.Epochs, "epochs", 10, "number of training epochs")
	cmd.Flags().Float64Var(&f.cfg.LearningRate, "lr", 0.2, "learning rate")
	cmd.Flags().Float64Var(&f.cfg.Lambda, "lambda", 0.00002, "L2 regularization strength")
	cmd.Flags().IntVarP(&f.cfg.NumK, "latent", "k", 4, "latent dimension for fm/ffm")
	cmd.Flags().Float64Var(&f.cfg.InitStdDev, "init-stddev", 0.01, "latent factor init spread")
	cmd.Flags().BoolVar(&f.cfg.Normalize, "normalize", true, "scale each row's gradient by 1/nnz")
	cmd.Flags().IntVar(&f.cfg.Workers, "workers", 0, "worker pool size, 0 uses all hardware threads")
	cmd.Flags().Int64Var(&f.cfg.Seed, "seed", 0, "random seed for model initialization")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "only log warnings and errors")
	cobra.CheckErr(cmd.MarkFlagRequired("train"))

	return cmd
}

func runTrain(f trainFlags) error {
	logger, err := newLogger(f.quiet)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	format, err := data.ParseFormat(f.format)
	if err != nil {
		return err
	}

	train, err := data.ReadFile(f.trainPath, format)
	if err != nil {
		return err
	}
	var valid *data.Matrix
	if f.validPath != "" {
		if valid, err = data.ReadFile(f.validPath, format); err != nil {
			return err
		}
	}

	// Classification losses are defined over {-1,+1} labels.
	classification := f.cfg.Loss != "squared"
	if classification {
		train.BinarizeLabels()
		if valid != nil {
			valid.BinarizeLabels()
		}
	}

	trainer, err := training.NewTrainer(f.cfg, logger)
	if err != nil {
		return err
	}
	defer trainer.Close()

	m, err := trainer.Fit(train, valid)
	if err != nil {
		return err
	}

	report := func(name string, dm *data.Matrix) {
		pred := trainer.Predict(dm, m)
		fields := []zap.Field{
			zap.String("set", name),
			zap.Float64("loss", trainer.Evaluate(pred, dm.Labels())),
		}
		if classification {
			fields = append(fields,
				zap.Float64("accuracy", training.Accuracy(pred, dm.Labels())),
				zap.Float64("auc", training.AUC(pred, dm.Labels())),
				zap.Float64("logloss", training.LogLoss(pred, dm.Labels())),
			)
		} else {
			fields = append(fields,
				zap.Float64("rmse", training.RMSE(pred, dm.Labels())),
				zap.Float64("mae", training.MAE(pred, dm.Labels())),
			)
		}
		logger.Info("final metrics", fields...)
	}
	report("train", train)
	if valid != nil {
		report("valid", valid)
	}
	return nil
}

func newLogger(quiet bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
