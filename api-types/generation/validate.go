package generation

import (
	"errors"
	"fmt"

	"github.com/synthgen/synthctl/api-types/optimization"
)

var ErrInvalidConfig = errors.New("invalid generation config")

const (
	MinSampleSize = 100
	MaxSampleSize = 100000

	MinEpochs = 50
	MaxEpochs = 1000

	MinBatchSize = 100
	MaxBatchSize = 2000

	MinLearningRate = 0.00001
	MaxLearningRate = 0.01

	MinTrials = 3
	MaxTrials = 50
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func inRange[T int | float64](name string, v *T, min, max T) error {
	if v == nil {
		return nil
	}
	if *v < min || max < *v {
		return invalid("%s should be in [%v, %v] (got %v)", name, min, max, *v)
	}
	return nil
}

// Validate checks the config with the same rules the server applies.
//
// It returns an error wrapping ErrInvalidConfig at the first violation.
func (c ConfigRequest) Validate() error {
	if c.DatasetId <= 0 {
		return invalid("dataset_id is required")
	}
	switch c.ModelType {
	case CTGAN, TVAE:
	default:
		return invalid("model_type should be %s or %s (got %q)", CTGAN, TVAE, c.ModelType)
	}
	if c.SampleSize < MinSampleSize || MaxSampleSize < c.SampleSize {
		return invalid(
			"sample_size should be in [%d, %d] (got %d)",
			MinSampleSize, MaxSampleSize, c.SampleSize,
		)
	}

	if err := inRange("epochs", c.Epochs, MinEpochs, MaxEpochs); err != nil {
		return err
	}
	if err := inRange("batch_size", c.BatchSize, MinBatchSize, MaxBatchSize); err != nil {
		return err
	}
	for name, lr := range map[string]*float64{
		"learning_rate":    c.LearningRate,
		"generator_lr":     c.GeneratorLR,
		"discriminator_lr": c.DiscriminatorLR,
	} {
		if err := inRange(name, lr, MinLearningRate, MaxLearningRate); err != nil {
			return err
		}
	}
	if err := inRange("n_trials", c.NTrials, MinTrials, MaxTrials); err != nil {
		return err
	}

	switch c.Mode {
	case Simple:
		if c.Epochs == nil {
			return invalid("epochs is required in simple mode")
		}
		if c.BatchSize == nil {
			return invalid("batch_size is required in simple mode")
		}
		if c.LearningRate == nil {
			return invalid("learning_rate is required in simple mode")
		}
	case Optimization:
		if !c.OptimizationMethod.Valid() {
			return invalid(
				"optimization_method should be one of %s, %s, %s (got %q)",
				optimization.Grid, optimization.Random, optimization.Bayesian,
				c.OptimizationMethod,
			)
		}
		if len(c.Hyperparameters) == 0 {
			return invalid("at least one hyperparameter is required in optimization mode")
		}
		if c.NTrials == nil {
			return invalid("n_trials is required in optimization mode")
		}
	default:
		return invalid("mode should be %s or %s (got %q)", Simple, Optimization, c.Mode)
	}

	return nil
}
