package requests

import (
	"encoding/json"

	"github.com/synthgen/synthctl/api-types/misc/rfctime"
)

type Status string

const (
	Pending    Status = "pending"
	Approved   Status = "approved"
	Rejected   Status = "rejected"
	Processing Status = "processing"
	Completed  Status = "completed"
	Failed     Status = "failed"
	Cancelled  Status = "cancelled"
)

// IsTerminal reports whether no more progress is expected for the request.
//
// Rejected requests are not terminal: an admin may still approve them.
func (s Status) IsTerminal() bool {
	switch s {
	case Completed, Failed, Cancelled:
		return true
	default:
		return false
	}
}

type Params struct {
	ModelType           string   `json:"model_type"`
	Epochs              int      `json:"epochs"`
	BatchSize           int      `json:"batch_size"`
	LearningRate        float64  `json:"learning_rate"`
	OptimizationEnabled bool     `json:"optimization_enabled"`
	OptimizationMethod  string   `json:"optimization_method,omitempty"`
	OptimizationNTrials int      `json:"optimization_n_trials,omitempty"`
	Hyperparameters     []string `json:"hyperparameters,omitempty"`
}

// DefaultParams returns parameters the server assumes when they are omitted.
func DefaultParams() Params {
	return Params{
		ModelType:           "ctgan",
		Epochs:              300,
		BatchSize:           500,
		LearningRate:        0.0002,
		OptimizationEnabled: false,
		OptimizationMethod:  "grid",
		OptimizationNTrials: 5,
	}
}

// StoredParams is a parameter set as the server stores it.
type StoredParams struct {
	Id        int `json:"id"`
	RequestId int `json:"request_id"`
	Params
}

type DataRequest struct {
	Id                int              `json:"id"`
	RequestName       string           `json:"request_name"`
	DatasetName       string           `json:"dataset_name"`
	UserId            int              `json:"user_id"`
	Status            Status           `json:"status"`
	UploadedDatasetId *int             `json:"uploaded_dataset_id,omitempty"`
	RejectionReason   string           `json:"rejection_reason,omitempty"`
	CreatedAt         rfctime.RFC3339  `json:"created_at"`
	UpdatedAt         *rfctime.RFC3339 `json:"updated_at,omitempty"`
	Parameters        []StoredParams   `json:"parameters,omitempty"`
}

func (dr DataRequest) Equal(o DataRequest) bool {
	if dr.UploadedDatasetId == nil || o.UploadedDatasetId == nil {
		if dr.UploadedDatasetId != o.UploadedDatasetId {
			return false
		}
	} else if *dr.UploadedDatasetId != *o.UploadedDatasetId {
		return false
	}
	return dr.Id == o.Id &&
		dr.RequestName == o.RequestName &&
		dr.DatasetName == o.DatasetName &&
		dr.UserId == o.UserId &&
		dr.Status == o.Status &&
		dr.RejectionReason == o.RejectionReason &&
		dr.CreatedAt.Equal(o.CreatedAt)
}

type RequestBody struct {
	RequestName       string `json:"request_name"`
	DatasetName       string `json:"dataset_name"`
	UploadedDatasetId *int   `json:"uploaded_dataset_id,omitempty"`
}

// Create is the body of POST /data/requests.
type Create struct {
	Request RequestBody `json:"request"`
	Params  Params      `json:"params"`
}

type Update struct {
	RequestName *string `json:"request_name,omitempty"`
	DatasetName *string `json:"dataset_name,omitempty"`
}

// GenerateResponse is the answer of POST /data/generate/:id.
//
// The server echoes the request with its new status and parameters.
// Fields other than the listed ones are kept in Extra.
type GenerateResponse struct {
	Message   string          `json:"message,omitempty"`
	RequestId int             `json:"request_id,omitempty"`
	Status    Status          `json:"status,omitempty"`
	Extra     json.RawMessage `json:"-"`
}

func (gr *GenerateResponse) UnmarshalJSON(b []byte) error {
	type plain GenerateResponse
	p := plain{}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*gr = GenerateResponse(p)
	gr.Extra = append(json.RawMessage{}, b...)
	return nil
}

func (gr GenerateResponse) MarshalJSON() ([]byte, error) {
	if len(gr.Extra) != 0 {
		return gr.Extra, nil
	}
	type plain GenerateResponse
	return json.Marshal(plain(gr))
}

type OptimizedGenerate struct {
	OptimizationType    string         `json:"optimization_type"`
	MaxEvaluations      int            `json:"max_evaluations"`
	TimeoutMinutes      int            `json:"timeout_minutes"`
	SearchSpace         map[string]any `json:"search_space"`
	AcquisitionFunction string         `json:"acquisition_function,omitempty"`
}

type DownloadToken struct {
	DownloadToken    string `json:"download_token"`
	DownloadUrl      string `json:"download_url"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}
