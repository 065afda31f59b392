package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/optimization"
)

func (c *client) StartGeneration(ctx context.Context, config generation.ConfigRequest) (generation.StartResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, config, nil, "generation", "v2", "start")
	if err != nil {
		return generation.StartResponse{}, err
	}
	return doJSON[generation.StartResponse](c, c.longclient, req, MessageFor{
		Status4xx: "generation is not accepted",
		Status5xx: "server error on starting generation",
	})
}

func (c *client) ListGenerations(ctx context.Context, query generation.ListQuery) (generation.ListResponse, error) {
	q := url.Values{}
	if 0 < query.Page {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if 0 < query.PageSize {
		q.Set("page_size", strconv.Itoa(query.PageSize))
	}
	if query.Status != "" {
		q.Set("status_filter", string(query.Status))
	}

	req, err := c.newRequest(ctx, http.MethodGet, nil, q, "generation", "v2", "requests")
	if err != nil {
		return generation.ListResponse{}, err
	}
	return doJSON[generation.ListResponse](c, c.httpclient, req, MessageFor{
		Status4xx: "cannot list generations",
		Status5xx: "server error on listing generations",
	})
}

func (c *client) GetGenerationStatus(ctx context.Context, requestId int) (generation.StatusResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "generation", "v2", "requests", id(requestId), "status")
	if err != nil {
		return generation.StatusResponse{}, err
	}
	return doJSON[generation.StatusResponse](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("status of generation:%d is not available", requestId),
		Status5xx: "server error on getting generation status",
	})
}

func (c *client) GetGenerationDownload(
	ctx context.Context, requestId int, format generation.FileFormat,
) (generation.DownloadResponse, error) {
	q := url.Values{}
	if format != "" {
		q.Set("format", string(format))
	}
	req, err := c.newRequest(ctx, http.MethodGet, nil, q, "generation", "v2", "requests", id(requestId), "download")
	if err != nil {
		return generation.DownloadResponse{}, err
	}
	return doJSON[generation.DownloadResponse](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("result of generation:%d is not ready to be downloaded", requestId),
		Status5xx: "server error on preparing download",
	})
}

func (c *client) CancelGeneration(ctx context.Context, requestId int) (generation.CancelResponse, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, nil, nil, "generation", "v2", "requests", id(requestId))
	if err != nil {
		return generation.CancelResponse{}, err
	}
	return doJSON[generation.CancelResponse](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("generation:%d cannot be cancelled", requestId),
		Status5xx: "server error on cancelling generation",
	})
}

func (c *client) GetGenerationOptimization(ctx context.Context, requestId int) (optimization.Results, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "generation", "v2", "requests", id(requestId), "optimization")
	if err != nil {
		return optimization.Results{}, err
	}
	return doJSON[optimization.Results](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("generation:%d has no optimization results", requestId),
		Status5xx: "server error on getting optimization results",
	})
}

func (c *client) Fetch(ctx context.Context, target string, handler func(r io.Reader, size int64) error) error {
	u, err := url.Parse(target)
	if err != nil {
		return err
	}
	if !u.IsAbs() {
		target = c.apipath(target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return doStream(c, c.longclient, req, MessageFor{
		Status4xx: "download url is not available. it may be expired",
		Status5xx: "server error on downloading",
	}, handler)
}
