package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	cerr "github.com/synthgen/synthctl/cmd/synth/errors"
)

// StatusClass is the hundreds digit of HTTP status codes.
type StatusClass int

const (
	Status2xx StatusClass = 2
	Status4xx StatusClass = 4
	Status5xx StatusClass = 5
)

// ClassOf tells the class of a status code.
func ClassOf(status int) StatusClass {
	return StatusClass(status / 100)
}

// MessageFor is the summary of errors per status class.
type MessageFor map[StatusClass]string

// Summary is the summary of an error response with the status.
//
// Classes missing in m are summarized with the status code.
func (m MessageFor) Summary(status int) string {
	class := ClassOf(status)
	if message, ok := m[class]; ok {
		return message
	}
	switch class {
	case Status4xx:
		return fmt.Sprintf("request is refused by the server (status %d)", status)
	case Status5xx:
		return fmt.Sprintf("server failed to process the request (status %d)", status)
	default:
		return fmt.Sprintf("unexpected response from the server (status %d)", status)
	}
}

// unmarshal http response which has json content.
//
// args:
//   - resp: http response to be processed.
//   - v: value which response should be.
//   - messageFor: title of error message for HTTP status class.
//
// return:
//
//	error if...
//	- can not read response body
//	- response body is not shaped of v
//	- status code is not 2xx. The error wraps *cerr.APIError.
func unmarshalJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	if ClassOf(resp.StatusCode) == Status2xx {
		if resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			message := fmt.Sprintf("unexpected response: %s (status code = %d)", err.Error(), resp.StatusCode)
			return cerr.NewCuiError(message, cerr.WithCause(err))
		}
		return nil
	}

	return errorResponse(resp, messageFor)
}

func unmarshalStreamResponse(resp *http.Response, messageFor MessageFor) (io.ReadCloser, error) {
	if ClassOf(resp.StatusCode) == Status2xx {
		return resp.Body, nil
	}
	return nil, errorResponse(resp, messageFor)
}

func unmarshalResponseDiscardingPayload(resp *http.Response, messageFor MessageFor) error {
	rc, err := unmarshalStreamResponse(resp, messageFor)
	if rc != nil {
		io.Copy(io.Discard, rc)
		rc.Close()
	}
	return err
}

// errorResponse reads the error response and classifies it.
func errorResponse(resp *http.Response, messageFor MessageFor) error {
	message := messageFor.Summary(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		ae := cerr.FromResponse(resp.StatusCode, nil)
		return cerr.NewCuiError(
			message,
			cerr.WithDetailText(fmt.Sprintf("%s\ncannot read server message: %s", ae.Message, err.Error())),
			cerr.WithCause(ae),
		)
	}

	ae := cerr.FromResponse(resp.StatusCode, body)
	return cerr.NewCuiError(
		message,
		cerr.WithDetailText(ae.Message),
		cerr.WithCause(ae),
	)
}
