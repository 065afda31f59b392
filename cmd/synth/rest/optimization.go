package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/synthgen/synthctl/api-types/optimization"
)

func (c *client) CreateOptimization(ctx context.Context, config optimization.ConfigCreate) (optimization.Config, error) {
	req, err := c.newRequest(ctx, http.MethodPost, config, nil, "optimization", "config")
	if err != nil {
		return optimization.Config{}, err
	}
	return doJSON[optimization.Config](c, c.httpclient, req, MessageFor{
		Status4xx: "optimization config is not accepted",
		Status5xx: "server error on creating optimization config",
	})
}

func (c *client) GetOptimization(ctx context.Context, configId int) (optimization.Config, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "optimization", "config", id(configId))
	if err != nil {
		return optimization.Config{}, err
	}
	return doJSON[optimization.Config](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("optimization config:%d is not found", configId),
		Status5xx: "server error on getting optimization config",
	})
}

func (c *client) StartOptimization(ctx context.Context, configId int) (optimization.StartResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, nil, nil, "optimization", "start", id(configId))
	if err != nil {
		return optimization.StartResponse{}, err
	}
	return doJSON[optimization.StartResponse](c, c.longclient, req, MessageFor{
		Status4xx: fmt.Sprintf("optimization:%d cannot be started", configId),
		Status5xx: "server error on starting optimization",
	})
}

func (c *client) GetOptimizationTrials(ctx context.Context, configId int) ([]optimization.Trial, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "optimization", "trials", id(configId))
	if err != nil {
		return nil, err
	}
	ret, err := doJSON[[]optimization.Trial](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("trials of optimization:%d are not found", configId),
		Status5xx: "server error on getting trials",
	})
	if err != nil {
		return nil, err
	}
	if ret == nil {
		ret = []optimization.Trial{}
	}
	return ret, nil
}

func (c *client) GetBestParameters(ctx context.Context, configId int) (optimization.Best, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "optimization", "best-parameters", id(configId))
	if err != nil {
		return optimization.Best{}, err
	}
	return doJSON[optimization.Best](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("optimization:%d has no best parameters yet", configId),
		Status5xx: "server error on getting best parameters",
	})
}

func (c *client) StopOptimization(ctx context.Context, configId int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, nil, nil, "optimization", "config", id(configId))
	if err != nil {
		return err
	}
	return doDiscard(c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("optimization:%d cannot be stopped", configId),
		Status5xx: "server error on stopping optimization",
	})
}
