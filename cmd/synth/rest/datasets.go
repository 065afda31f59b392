package rest

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"

	"github.com/synthgen/synthctl/api-types/datasets"
)

func (c *client) ListDatasets(ctx context.Context) ([]datasets.Dataset, error) {
	// the server routes "/datasets/", not "/datasets".
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "datasets", "")
	if err != nil {
		return nil, err
	}
	ret, err := doJSON[datasets.List](c, c.httpclient, req, MessageFor{
		Status4xx: "cannot list datasets",
		Status5xx: "server error on listing datasets",
	})
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return []datasets.Dataset{}, nil
	}
	return ret, nil
}

func (c *client) CheckFilename(ctx context.Context, filename string) (datasets.FilenameCheck, error) {
	req, err := c.newRequest(
		ctx, http.MethodGet, nil, nil, "datasets", "check-filename", url.PathEscape(filename),
	)
	if err != nil {
		return datasets.FilenameCheck{}, err
	}
	return doJSON[datasets.FilenameCheck](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("cannot check filename %s", filename),
		Status5xx: "server error on checking filename",
	})
}

func (c *client) UploadDataset(ctx context.Context, filename string, content io.Reader) (datasets.UploadResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		header := textproto.MIMEHeader{}
		header.Set(
			"Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)),
		)
		header.Set("Content-Type", datasets.ContentType(filename))

		part, err := mw.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apipath("datasets", "upload"), pr)
	if err != nil {
		pr.CloseWithError(err)
		return datasets.UploadResponse{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	ret, err := doJSON[datasets.UploadResponse](c, c.longclient, req, MessageFor{
		Status4xx: fmt.Sprintf("dataset %s is refused", filename),
		Status5xx: "server error on uploading dataset",
	})
	// unblock the writer when the server stops reading early.
	pr.Close()
	return ret, err
}

func (c *client) UpdateDataset(ctx context.Context, datasetId int, update datasets.Update) (datasets.UpdateResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPut, update, nil, "datasets", id(datasetId))
	if err != nil {
		return datasets.UpdateResponse{}, err
	}
	return doJSON[datasets.UpdateResponse](c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("dataset:%d cannot be updated", datasetId),
		Status5xx: "server error on updating dataset",
	})
}

func (c *client) DeleteDataset(ctx context.Context, datasetId int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, nil, nil, "datasets", id(datasetId))
	if err != nil {
		return err
	}
	return doDiscard(c, c.httpclient, req, MessageFor{
		Status4xx: fmt.Sprintf("dataset:%d cannot be deleted", datasetId),
		Status5xx: "server error on deleting dataset",
	})
}

func (c *client) DownloadDataset(ctx context.Context, datasetId int, handler func(r io.Reader, size int64) error) error {
	req, err := c.newRequest(ctx, http.MethodGet, nil, nil, "datasets", id(datasetId), "download")
	if err != nil {
		return err
	}
	return doStream(c, c.longclient, req, MessageFor{
		Status4xx: fmt.Sprintf("dataset:%d cannot be downloaded", datasetId),
		Status5xx: "server error on downloading dataset",
	}, handler)
}
