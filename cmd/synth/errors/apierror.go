package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	apierr "github.com/synthgen/synthctl/api-types/errors"
)

// Code classifies errors for users.
type Code string

const (
	BadRequest         Code = "BAD_REQUEST"
	Unauthorized       Code = "UNAUTHORIZED"
	Forbidden          Code = "FORBIDDEN"
	NotFound           Code = "NOT_FOUND"
	ValidationError    Code = "VALIDATION_ERROR"
	ServerError        Code = "SERVER_ERROR"
	UnknownServerError Code = "UNKNOWN_SERVER_ERROR"
	NetworkError       Code = "NETWORK_ERROR"
	UnknownError       Code = "UNKNOWN_ERROR"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrNetwork      = errors.New("network error")
)

const (
	MessageBadRequest   = "invalid request"
	MessageUnauthorized = "session expired. please login again"
	MessageForbidden    = "you do not have permission to perform this action"
	MessageNotFound     = "the requested resource was not found"
	MessageValidation   = "validation failed"
	MessageServerError  = "internal server error. please try again later"
	MessageNetworkError = "cannot reach the server. check your connection"
)

// APIError is a failure of a call to the server, with a message for users.
type APIError struct {
	// HTTP status code. 0 if there are no response.
	Status int

	Code    Code
	Message string

	// Detail is what the server told, if any.
	Detail apierr.Detail

	cause error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (status code = %d): %s", e.Code, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// Is matches ErrUnauthorized, ErrForbidden, ErrNotFound and ErrNetwork
// by the code of e.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Code == Unauthorized
	case ErrForbidden:
		return e.Code == Forbidden
	case ErrNotFound:
		return e.Code == NotFound
	case ErrNetwork:
		return e.Code == NetworkError
	default:
		return false
	}
}

// FromResponse builds APIError for a response with a status code and body.
//
// The body is expected to be {"detail": ...}, but anything is accepted.
func FromResponse(status int, body []byte) *APIError {
	var detail apierr.Detail
	if er := new(apierr.ErrorResponse); json.Unmarshal(body, er) == nil {
		detail = er.Detail
	}
	jsonDetail := detail
	if detail.Empty() {
		if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
			detail = apierr.Detail{Message: text}
		}
	}

	e := &APIError{Status: status, Detail: detail}
	switch status {
	case 400:
		e.Code = BadRequest
		e.Message = orDefault(detail, MessageBadRequest)
	case 401:
		e.Code = Unauthorized
		e.Message = MessageUnauthorized
	case 403:
		e.Code = Forbidden
		e.Message = MessageForbidden
	case 404:
		e.Code = NotFound
		e.Message = MessageNotFound
	case 422:
		e.Code = ValidationError
		e.Message = orDefault(detail, MessageValidation)
	case 500:
		e.Code = ServerError
		e.Message = MessageServerError
	default:
		e.Code = UnknownServerError
		// bodies which are not json here are often html pages of proxies.
		e.Message = orDefault(jsonDetail, fmt.Sprintf("unexpected server error (status %d)", status))
	}
	return e
}

func orDefault(detail apierr.Detail, message string) string {
	if detail.Empty() {
		return message
	}
	return detail.String()
}

// Network builds APIError for a request which got no response.
func Network(cause error) *APIError {
	return &APIError{Code: NetworkError, Message: MessageNetworkError, cause: cause}
}

// Classify finds APIError in err, or makes one.
//
// Errors of transport (no response) are classified as NETWORK_ERROR,
// and others as UNKNOWN_ERROR.
func Classify(err error) *APIError {
	if err == nil {
		return nil
	}

	var ae *APIError
	if errors.As(err, &ae) {
		return ae
	}

	var ue *url.Error
	var ne net.Error
	if errors.As(err, &ue) || errors.As(err, &ne) {
		return Network(err)
	}

	return &APIError{Code: UnknownError, Message: err.Error(), cause: err}
}

// UserMessage is the message of Classify(err).
func UserMessage(err error) string {
	if ae := Classify(err); ae != nil {
		return ae.Message
	}
	return ""
}
