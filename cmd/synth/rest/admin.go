package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/synthgen/synthctl/api-types/admin"
	"github.com/synthgen/synthctl/api-types/auth"
	"github.com/synthgen/synthctl/api-types/requests"
)

var adminMessages = MessageFor{
	Status4xx: "admin operation is refused",
	Status5xx: "server error on admin operation",
}

func pageQuery(p admin.Page) url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(p.Skip))
	if 0 < p.Limit {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

func (c *client) ListUsers(ctx context.Context, query admin.UserQuery) ([]auth.User, error) {
	q := pageQuery(query.Page)
	if query.Search != "" {
		q.Set("search", query.Search)
	}
	if query.Role != "" {
		q.Set("role", string(query.Role))
	}

	req, err := c.newRequest(ctx, http.MethodGet, nil, q, "admin", "users")
	if err != nil {
		return nil, err
	}
	ret, err := doJSON[[]auth.User](c, c.httpclient, req, adminMessages)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		ret = []auth.User{}
	}
	return ret, nil
}

func (c *client) GetUser(ctx context.Context, userId int) (auth.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "admin", "users", id(userId))
	if err != nil {
		return auth.User{}, err
	}
	return doJSON[auth.User](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("user:%d is not found", userId),
		Status5xx: "server error on getting user",
	})
}

func (c *client) GetUserProfile(ctx context.Context, userId int) (auth.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "admin", "users", id(userId), "profile")
	if err != nil {
		return auth.Profile{}, err
	}
	return doJSON[auth.Profile](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("profile of user:%d is not found", userId),
		Status5xx: "server error on getting user profile",
	})
}

func (c *client) SetUserActive(ctx context.Context, userId int, active bool) (auth.User, error) {
	req, err := c.newRequest(
		ctx, http.MethodPatch, admin.ActivationUpdate{IsActive: active}, nil,
		"admin", "users", id(userId), "active",
	)
	if err != nil {
		return auth.User{}, err
	}
	return doJSON[auth.User](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("user:%d cannot be (de)activated", userId),
		Status5xx: "server error on updating user",
	})
}

func (c *client) SetUserRole(ctx context.Context, userId int, role auth.Role) (auth.User, error) {
	req, err := c.newRequest(
		ctx, http.MethodPatch, admin.RoleUpdate{Role: role}, nil,
		"admin", "users", id(userId), "role",
	)
	if err != nil {
		return auth.User{}, err
	}
	return doJSON[auth.User](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("role of user:%d cannot be changed", userId),
		Status5xx: "server error on updating user",
	})
}

func (c *client) DeleteUser(ctx context.Context, userId int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, nil, nil, "admin", "users", id(userId))
	if err != nil {
		return err
	}
	return doDiscard(c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("user:%d cannot be deleted", userId),
		Status5xx: "server error on deleting user",
	})
}

func (c *client) ListAllRequests(ctx context.Context, query admin.RequestQuery) ([]requests.DataRequest, error) {
	q := pageQuery(query.Page)
	if query.Status != "" {
		q.Set("status", query.Status)
	}

	req, err := c.newRequest(ctx, http.MethodGet, nil, q, "admin", "requests")
	if err != nil {
		return nil, err
	}
	ret, err := doJSON[[]requests.DataRequest](c, c.httpclient, req, adminMessages)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		ret = []requests.DataRequest{}
	}
	return ret, nil
}

func (c *client) GetAnyRequest(ctx context.Context, requestId int) (requests.DataRequest, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "admin", "requests", id(requestId))
	if err != nil {
		return requests.DataRequest{}, err
	}
	return doJSON[requests.DataRequest](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("request:%d is not found", requestId),
		Status5xx: "server error on getting request",
	})
}

func (c *client) ApproveRequest(ctx context.Context, requestId int) (requests.DataRequest, error) {
	req, err := c.newRequest(ctx, http.MethodPut, nil, nil, "admin", "requests", id(requestId), "approve")
	if err != nil {
		return requests.DataRequest{}, err
	}
	return doJSON[requests.DataRequest](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("request:%d cannot be approved", requestId),
		Status5xx: "server error on approving request",
	})
}

func (c *client) RejectRequest(ctx context.Context, requestId int, reason string) (requests.DataRequest, error) {
	q := url.Values{}
	q.Set("rejection_reason", reason)

	req, err := c.newRequest(ctx, http.MethodPut, nil, q, "admin", "requests", id(requestId), "reject")
	if err != nil {
		return requests.DataRequest{}, err
	}
	return doJSON[requests.DataRequest](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("request:%d cannot be rejected", requestId),
		Status5xx: "server error on rejecting request",
	})
}

func (c *client) DeleteAnyRequest(ctx context.Context, requestId int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, nil, nil, "admin", "requests", id(requestId))
	if err != nil {
		return err
	}
	return doDiscard(c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("request:%d cannot be deleted", requestId),
		Status5xx: "server error on deleting request",
	})
}

func (c *client) ListActionLogs(ctx context.Context, page admin.Page) ([]admin.ActionLog, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, pageQuery(page), "admin", "admin-action-logs")
	if err != nil {
		return nil, err
	}
	ret, err := doJSON[[]admin.ActionLog](c, c.httpclient, req, adminMessages)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		ret = []admin.ActionLog{}
	}
	return ret, nil
}

func (c *client) GetActionLog(ctx context.Context, logId int) (admin.ActionLog, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "admin", "admin-action-logs", id(logId))
	if err != nil {
		return admin.ActionLog{}, err
	}
	return doJSON[admin.ActionLog](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("action log:%d is not found", logId),
		Status5xx: "server error on getting action log",
	})
}
