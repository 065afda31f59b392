package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/requests"
	"gopkg.in/yaml.v3"
)

const DefaultPollInterval = 3 * time.Second

var ErrInvalidEnv = errors.New("invalid synthenv")

// Generation is defaults of generation settings in the project.
type Generation struct {
	ModelType    generation.ModelType `yaml:"modelType,omitempty"`
	SampleSize   int                  `yaml:"sampleSize,omitempty"`
	Epochs       int                  `yaml:"epochs,omitempty"`
	BatchSize    int                  `yaml:"batchSize,omitempty"`
	LearningRate float64              `yaml:"learningRate,omitempty"`
}

type SynthEnv struct {
	Generation Generation `yaml:"generation,omitempty"`

	// interval of polling generation status. DefaultPollInterval if zero.
	PollInterval time.Duration `yaml:"pollInterval,omitempty"`
}

func New() *SynthEnv {
	return new(SynthEnv)
}

func (se *SynthEnv) Interval() time.Duration {
	if se.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return se.PollInterval
}

// Complete fills unset fields of cr with defaults of the env.
//
// Fields given by cr are kept.
func (se *SynthEnv) Complete(cr *generation.ConfigRequest) {
	g := se.Generation
	if cr.ModelType == "" && g.ModelType != "" {
		cr.ModelType = g.ModelType
	}
	if cr.SampleSize == 0 && 0 < g.SampleSize {
		cr.SampleSize = g.SampleSize
	}
	if cr.Mode != generation.Simple && cr.Mode != "" {
		return
	}
	if cr.Epochs == nil && 0 < g.Epochs {
		e := g.Epochs
		cr.Epochs = &e
	}
	if cr.BatchSize == nil && 0 < g.BatchSize {
		b := g.BatchSize
		cr.BatchSize = &b
	}
	if cr.LearningRate == nil && 0 < g.LearningRate {
		lr := g.LearningRate
		cr.LearningRate = &lr
	}
}

// Params returns request parameters from the defaults of the server
// overridden by the env.
func (se *SynthEnv) Params() requests.Params {
	p := requests.DefaultParams()
	g := se.Generation
	if g.ModelType != "" {
		p.ModelType = string(g.ModelType)
	}
	if 0 < g.Epochs {
		p.Epochs = g.Epochs
	}
	if 0 < g.BatchSize {
		p.BatchSize = g.BatchSize
	}
	if 0 < g.LearningRate {
		p.LearningRate = g.LearningRate
	}
	return p
}

// LoadSynthEnv reads synthenv file.
//
// When the file does not exist, it returns an empty SynthEnv.
func LoadSynthEnv(filepath string) (*SynthEnv, error) {
	env := SynthEnv{}

	content, err := os.ReadFile(filepath)
	if err != nil {
		return &env, nil
	}

	if err := yaml.Unmarshal(content, &env); err != nil {
		return nil, err
	}

	switch env.Generation.ModelType {
	case "", generation.CTGAN, generation.TVAE:
	default:
		return nil, fmt.Errorf("%w: unknown model type: %s", ErrInvalidEnv, env.Generation.ModelType)
	}
	if env.PollInterval < 0 {
		return nil, fmt.Errorf("%w: pollInterval should not be negative", ErrInvalidEnv)
	}

	return &env, nil
}
