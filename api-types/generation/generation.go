package generation

import (
	"github.com/synthgen/synthctl/api-types/misc/rfctime"
	"github.com/synthgen/synthctl/api-types/optimization"
)

type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Completed  Status = "completed"
	Failed     Status = "failed"
	Cancelled  Status = "cancelled"
)

// IsTerminal reports whether the status is one of completed, failed or cancelled.
func (s Status) IsTerminal() bool {
	switch s {
	case Completed, Failed, Cancelled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

type Mode string

const (
	Simple       Mode = "simple"
	Optimization Mode = "optimization"
)

type ModelType string

const (
	CTGAN ModelType = "ctgan"
	TVAE  ModelType = "tvae"
)

// ConfigRequest is the body of POST /generation/v2/start.
type ConfigRequest struct {
	DatasetId  int       `json:"dataset_id"`
	ModelType  ModelType `json:"model_type"`
	SampleSize int       `json:"sample_size"`
	Mode       Mode      `json:"mode"`

	// for simple mode
	Epochs          *int     `json:"epochs,omitempty"`
	BatchSize       *int     `json:"batch_size,omitempty"`
	LearningRate    *float64 `json:"learning_rate,omitempty"`
	GeneratorLR     *float64 `json:"generator_lr,omitempty"`
	DiscriminatorLR *float64 `json:"discriminator_lr,omitempty"`

	// for optimization mode
	OptimizationMethod optimization.Method `json:"optimization_method,omitempty"`
	NTrials            *int                `json:"n_trials,omitempty"`
	Hyperparameters    []string            `json:"hyperparameters,omitempty"`
}

type StartResponse struct {
	Message              string `json:"message"`
	RequestId            int    `json:"request_id"`
	Status               Status `json:"status"`
	Mode                 Mode   `json:"mode"`
	EstimatedTimeMinutes *int   `json:"estimated_time_minutes,omitempty"`
}

type Progress struct {
	CurrentEpoch           *int     `json:"current_epoch,omitempty"`
	TotalEpochs            *int     `json:"total_epochs,omitempty"`
	EstimatedTimeRemaining string   `json:"estimated_time_remaining,omitempty"`
	CurrentTrial           *int     `json:"current_trial,omitempty"`
	TotalTrials            *int     `json:"total_trials,omitempty"`
	BestScoreSoFar         *float64 `json:"best_score_so_far,omitempty"`
}

// Percent estimates how much of the work is done, in [0, 100].
//
// Trials are preferred over epochs when both are reported.
// ok is false when neither is reported.
func (p Progress) Percent() (percent int, ok bool) {
	ratio := func(current, total *int) (int, bool) {
		if current == nil || total == nil || *total <= 0 {
			return 0, false
		}
		pc := *current * 100 / *total
		if pc < 0 {
			pc = 0
		}
		if 100 < pc {
			pc = 100
		}
		return pc, true
	}

	if pc, ok := ratio(p.CurrentTrial, p.TotalTrials); ok {
		return pc, true
	}
	return ratio(p.CurrentEpoch, p.TotalEpochs)
}

type Details struct {
	Id         int       `json:"id"`
	UserId     int       `json:"user_id"`
	DatasetId  int       `json:"dataset_id"`
	Status     Status    `json:"status"`
	Mode       Mode      `json:"mode"`
	ModelType  ModelType `json:"model_type"`
	SampleSize int       `json:"sample_size"`

	CreatedAt    rfctime.RFC3339  `json:"created_at"`
	StartedAt    *rfctime.RFC3339 `json:"started_at,omitempty"`
	CompletedAt  *rfctime.RFC3339 `json:"completed_at,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`

	QualityScore      *float64 `json:"quality_score,omitempty"`
	GenerationTime    *float64 `json:"generation_time,omitempty"`
	SyntheticDataPath string   `json:"synthetic_data_path,omitempty"`

	OptimizationResults map[string]any `json:"optimization_results,omitempty"`
	BestParameters      map[string]any `json:"best_parameters,omitempty"`
}

// StatusResponse is the answer of GET /generation/v2/requests/:id/status.
type StatusResponse struct {
	Request     Details   `json:"request"`
	Progress    *Progress `json:"progress,omitempty"`
	CanDownload bool      `json:"can_download"`
	CanCancel   bool      `json:"can_cancel"`
}

type Summary struct {
	Id           int              `json:"id"`
	RequestName  string           `json:"request_name,omitempty"`
	DatasetName  string           `json:"dataset_name"`
	ModelType    ModelType        `json:"model_type"`
	SampleSize   int              `json:"sample_size"`
	Status       Status           `json:"status"`
	Mode         Mode             `json:"mode"`
	QualityScore *float64         `json:"quality_score,omitempty"`
	CreatedAt    rfctime.RFC3339  `json:"created_at"`
	CompletedAt  *rfctime.RFC3339 `json:"completed_at,omitempty"`
}

type ListResponse struct {
	Requests []Summary `json:"requests"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

type ListQuery struct {
	Page     int
	PageSize int
	Status   Status
}

type FileFormat string

const (
	CSV  FileFormat = "csv"
	JSON FileFormat = "json"
	XLSX FileFormat = "xlsx"
)

func (f FileFormat) Valid() bool {
	switch f {
	case CSV, JSON, XLSX:
		return true
	default:
		return false
	}
}

type DownloadResponse struct {
	DownloadUrl string          `json:"download_url"`
	ExpiresAt   rfctime.RFC3339 `json:"expires_at"`
	FileSize    *int64          `json:"file_size,omitempty"`
	FileFormat  FileFormat      `json:"file_format"`
}

type CancelResponse struct {
	Message string `json:"message"`
}
