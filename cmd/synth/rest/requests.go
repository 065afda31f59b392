package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/synthgen/synthctl/api-types/generation"
	"github.com/synthgen/synthctl/api-types/requests"
)

func (c *client) ListRequests(ctx context.Context) ([]requests.DataRequest, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "data", "requests")
	if err != nil {
		return nil, err
	}
	ret, err := doJSON[[]requests.DataRequest](c, c.httpclient, req, MessageFor{
		Status4xx: "cannot list requests",
		Status5xx: "server error on listing requests",
	})
	if err != nil {
		return nil, err
	}
	if ret == nil {
		ret = []requests.DataRequest{}
	}
	return ret, nil
}

func (c *client) CreateRequest(ctx context.Context, create requests.Create) (requests.DataRequest, error) {
	req, err := c.newRequest(ctx, http.MethodPost, create, nil, "data", "requests")
	if err != nil {
		return requests.DataRequest{}, err
	}
	return doJSON[requests.DataRequest](c, c.httpclient, req, MessageFor{
		Status4xx: "request is not accepted",
		Status5xx: "server error on creating request",
	})
}

func (c *client) GetRequest(ctx context.Context, requestId int) (requests.DataRequest, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "data", "requests", id(requestId))
	if err != nil {
		return requests.DataRequest{}, err
	}
	return doJSON[requests.DataRequest](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("request:%d is not found", requestId),
		Status5xx: "server error on getting request",
	})
}

func (c *client) UpdateRequest(ctx context.Context, requestId int, update requests.Update) (requests.DataRequest, error) {
	req, err := c.newRequest(ctx, http.MethodPut, update, nil, "data", "requests", id(requestId))
	if err != nil {
		return requests.DataRequest{}, err
	}
	return doJSON[requests.DataRequest](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("request:%d cannot be updated", requestId),
		Status5xx: "server error on updating request",
	})
}

func (c *client) DeleteRequest(ctx context.Context, requestId int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, nil, nil, "data", "requests", id(requestId))
	if err != nil {
		return err
	}
	return doDiscard(c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("request:%d cannot be deleted", requestId),
		Status5xx: "server error on deleting request",
	})
}

func (c *client) Generate(ctx context.Context, requestId int) (requests.GenerateResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, nil, nil, "data", "generate", id(requestId))
	if err != nil {
		return requests.GenerateResponse{}, err
	}
	return doJSON[requests.GenerateResponse](c, c.longclient, req, MessageFor{
		Status4xx: fmt.Sprintf("generation of request:%d cannot be started", requestId),
		Status5xx: "server error on starting generation",
	})
}

func (c *client) GenerateWithOptimization(
	ctx context.Context, requestId int, opt requests.OptimizedGenerate,
) (requests.GenerateResponse, error) {
	req, err := c.newRequest(
		ctx, http.MethodPost, opt, nil, "data", "generate-with-optimization", id(requestId),
	)
	if err != nil {
		return requests.GenerateResponse{}, err
	}
	return doJSON[requests.GenerateResponse](c, c.longclient, req, MessageFor{
		Status4xx: fmt.Sprintf("optimized generation of request:%d cannot be started", requestId),
		Status5xx: "server error on starting optimized generation",
	})
}

func (c *client) GetDownloadToken(ctx context.Context, requestId int) (requests.DownloadToken, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "data", "requests", id(requestId), "download-token")
	if err != nil {
		return requests.DownloadToken{}, err
	}
	return doJSON[requests.DownloadToken](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("data of request:%d is not ready to be downloaded", requestId),
		Status5xx: "server error on issuing download token",
	})
}

func (c *client) DownloadRequestData(
	ctx context.Context, requestId int, format generation.FileFormat, token string,
	handler func(r io.Reader, size int64) error,
) error {
	q := url.Values{}
	if format != "" {
		q.Set("format", string(format))
	}
	if token != "" {
		q.Set("token", token)
	}

	req, err := c.newRequest(ctx, http.MethodGet, nil, q, "data", "requests", id(requestId), "download")
	if err != nil {
		return err
	}
	return doStream(c, c.longclient, req, MessageFor{
		Status4xx: fmt.Sprintf("data of request:%d cannot be downloaded", requestId),
		Status5xx: "server error on downloading data",
	}, handler)
}
