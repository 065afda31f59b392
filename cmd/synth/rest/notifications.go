package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/synthgen/synthctl/api-types/notifications"
)

func (c *client) ListNotifications(ctx context.Context) (notifications.List, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "notifications", "")
	if err != nil {
		return nil, err
	}
	ret, err := doJSON[notifications.List](c, c.httpclient, req, MessageFor{
		Status4xx: "cannot list notifications",
		Status5xx: "server error on listing notifications",
	})
	if err != nil {
		return nil, err
	}
	if ret == nil {
		ret = notifications.List{}
	}
	return ret, nil
}

func (c *client) MarkNotificationRead(ctx context.Context, notificationId int) error {
	req, err := c.newRequest(ctx, http.MethodPost, nil, nil, "notifications", id(notificationId), "read")
	if err != nil {
		return err
	}
	return doDiscard(c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("notification:%d cannot be marked as read", notificationId),
		Status5xx: "server error on updating notification",
	})
}

func (c *client) MarkAllNotificationsRead(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, nil, nil, "notifications", "read-all")
	if err != nil {
		return err
	}
	return doDiscard(c, c.httpclient, req, MessageFor{
		Status4xx: "notifications cannot be marked as read",
		Status5xx: "server error on updating notifications",
	})
}
