package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/synthgen/synthctl/api-types/stats"
)

func (c *client) GetStats(ctx context.Context, kind stats.Kind) (stats.Document, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown statistics: %s", kind)
	}
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "stats", string(kind))
	if err != nil {
		return nil, err
	}
	return doJSON[stats.Document](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("cannot get %s statistics", kind),
		Status5xx: fmt.Sprintf("server error on getting %s statistics", kind),
	})
}

func (c *client) ExportStats(
	ctx context.Context, format stats.ExportFormat, handler func(r io.Reader, size int64) error,
) error {
	q := url.Values{}
	if format != "" {
		q.Set("format", string(format))
	}
	req, err := c.newRequest(ctx, http.MethodGet, nil, q, "stats", "export")
	if err != nil {
		return err
	}
	return doStream(c, c.longclient, req, MessageFor{
		Status4xx: "cannot export statistics",
		Status5xx: "server error on exporting statistics",
	}, handler)
}
