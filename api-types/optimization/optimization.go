package optimization

import (
	"github.com/synthgen/synthctl/api-types/misc/rfctime"
)

type Method string

const (
	Grid     Method = "grid"
	Random   Method = "random"
	Bayesian Method = "bayesian"
)

func (m Method) Valid() bool {
	switch m {
	case Grid, Random, Bayesian:
		return true
	default:
		return false
	}
}

type AcquisitionFunction string

const (
	ExpectedImprovement      AcquisitionFunction = "expected_improvement"
	UpperConfidenceBound     AcquisitionFunction = "upper_confidence_bound"
	ProbabilityOfImprovement AcquisitionFunction = "probability_improvement"
)

// ParameterRange is a numeric search range.
type ParameterRange struct {
	MinValue float64  `json:"min_value"`
	MaxValue float64  `json:"max_value"`
	Step     *float64 `json:"step,omitempty"`
	Scale    string   `json:"scale,omitempty"`
}

// Categorical is a set of candidate values.
type Categorical struct {
	Choices []any `json:"choices"`
}

type SearchSpace struct {
	Epochs             *ParameterRange `json:"epochs,omitempty"`
	BatchSize          *Categorical    `json:"batch_size,omitempty"`
	GeneratorLR        *ParameterRange `json:"generator_lr,omitempty"`
	DiscriminatorLR    *ParameterRange `json:"discriminator_lr,omitempty"`
	GeneratorDecay     *ParameterRange `json:"generator_decay,omitempty"`
	DiscriminatorDecay *ParameterRange `json:"discriminator_decay,omitempty"`

	CompressDims   []Categorical   `json:"compress_dims,omitempty"`
	DecompressDims []Categorical   `json:"decompress_dims,omitempty"`
	L2Scale        *ParameterRange `json:"l2scale,omitempty"`
	LossFactor     *ParameterRange `json:"loss_factor,omitempty"`
}

// ConfigCreate is the body of POST /optimization/config.
type ConfigCreate struct {
	RequestId           int                 `json:"request_id"`
	OptimizationType    Method              `json:"optimization_type"`
	MaxEvaluations      int                 `json:"max_evaluations"`
	TimeoutMinutes      int                 `json:"timeout_minutes"`
	SearchSpace         SearchSpace         `json:"search_space"`
	AcquisitionFunction AcquisitionFunction `json:"acquisition_function,omitempty"`
}

type Config struct {
	Id int `json:"id"`
	ConfigCreate
	Status           string           `json:"status,omitempty"`
	BestScore        *float64         `json:"best_score,omitempty"`
	TotalEvaluations *int             `json:"total_evaluations,omitempty"`
	CreatedAt        *rfctime.RFC3339 `json:"created_at,omitempty"`
	UpdatedAt        *rfctime.RFC3339 `json:"updated_at,omitempty"`
}

type Trial struct {
	Id           int              `json:"id,omitempty"`
	TrialNumber  int              `json:"trial_number"`
	Parameters   map[string]any   `json:"parameters"`
	QualityScore *float64         `json:"quality_score,omitempty"`
	TrainingTime *float64         `json:"training_time,omitempty"`
	MemoryUsage  *float64         `json:"memory_usage,omitempty"`
	Status       string           `json:"status"`
	StartedAt    *rfctime.RFC3339 `json:"started_at,omitempty"`
	CompletedAt  *rfctime.RFC3339 `json:"completed_at,omitempty"`
}

// Results is the answer of GET /generation/v2/requests/:id/optimization.
type Results struct {
	ConfigId        int            `json:"config_id"`
	RequestId       int            `json:"request_id"`
	Method          Method         `json:"method"`
	TotalTrials     int            `json:"total_trials"`
	CompletedTrials int            `json:"completed_trials"`
	BestScore       *float64       `json:"best_score,omitempty"`
	BestParameters  map[string]any `json:"best_parameters,omitempty"`
	AllTrials       []Trial        `json:"all_trials"`
}

// Best is the answer of GET /optimization/best-parameters/:config_id.
type Best struct {
	ConfigId       int            `json:"config_id"`
	BestParameters map[string]any `json:"best_parameters"`
	BestScore      *float64       `json:"best_score,omitempty"`
	TrialNumber    int            `json:"trial_number"`
}

type StartResponse struct {
	Message  string `json:"message"`
	ConfigId int    `json:"config_id,omitempty"`
}
