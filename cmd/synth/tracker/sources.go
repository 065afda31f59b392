package tracker

import (
	"context"
	"errors"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/requests"
	"github.com/synthgen/synthctl/cmd/synth/rest"
)

// ErrRemoteCancelUnsupported is returned by Cancel of sources
// whose server cannot cancel jobs.
var ErrRemoteCancelUnsupported = errors.New("server does not support cancelling generation")

// V2 is a Source over /generation/v2.
type V2 struct {
	Client rest.GenerationClient
}

var _ Source[generation.ConfigRequest] = V2{}

func (v V2) Start(ctx context.Context, config generation.ConfigRequest) (int, error) {
	resp, err := v.Client.StartGeneration(ctx, config)
	if err != nil {
		return 0, err
	}
	return resp.RequestId, nil
}

func (v V2) Status(ctx context.Context, jobId int) (Observation, error) {
	resp, err := v.Client.GetGenerationStatus(ctx, jobId)
	if err != nil {
		return Observation{}, err
	}
	return Observation{
		Status:       resp.Request.Status,
		Progress:     resp.Progress,
		ErrorMessage: resp.Request.ErrorMessage,
		CanDownload:  resp.CanDownload,
		Raw:          resp,
	}, nil
}

func (v V2) Cancel(ctx context.Context, jobId int) error {
	_, err := v.Client.CancelGeneration(ctx, jobId)
	return err
}

// LegacyJob is a generation of an approved data request.
type LegacyJob struct {
	RequestId int

	// When not nil, hyperparameters are searched before training.
	Optimization *requests.OptimizedGenerate
}

// Legacy is a Source over /data/generate and /data/requests.
type Legacy struct {
	Client rest.RequestClient
}

var _ Source[LegacyJob] = Legacy{}

func (l Legacy) Start(ctx context.Context, job LegacyJob) (int, error) {
	var err error
	if job.Optimization != nil {
		_, err = l.Client.GenerateWithOptimization(ctx, job.RequestId, *job.Optimization)
	} else {
		_, err = l.Client.Generate(ctx, job.RequestId)
	}
	if err != nil {
		return 0, err
	}
	return job.RequestId, nil
}

func (l Legacy) Status(ctx context.Context, jobId int) (Observation, error) {
	dr, err := l.Client.GetRequest(ctx, jobId)
	if err != nil {
		return Observation{}, err
	}
	st := FromRequestStatus(dr.Status)
	return Observation{
		Status:      st,
		CanDownload: st == generation.Completed,
		Raw:         dr,
	}, nil
}

func (l Legacy) Cancel(context.Context, int) error {
	return ErrRemoteCancelUnsupported
}

// FromRequestStatus maps status of a data request to status of generation.
//
// Requests waiting for (or refused by) admins are pending.
func FromRequestStatus(s requests.Status) generation.Status {
	switch s {
	case requests.Processing:
		return generation.Processing
	case requests.Completed:
		return generation.Completed
	case requests.Failed:
		return generation.Failed
	case requests.Cancelled:
		return generation.Cancelled
	default:
		return generation.Pending
	}
}
