package model

import (
	"errors"
	"fmt"
)

var ErrRateLimitReached = errors.New("RATE_LIMIT_REACHED")

// SerializationError wraps failures when encoding the request or decoding the response
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializer error: %s", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// TransportError wraps failures when reaching Github
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("http error: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamStatusError is returned when Github answers with a non-success status
// Body contains the raw response body (or the graphql errors)
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("http status error: %d %s", e.StatusCode, e.Body)
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const genericErrorMessage = "internal server error. contact our support with the reason code for assistance"

func NewAPIError(errReason error) APIError {
	var (
		serializationErr *SerializationError
		transportErr     *TransportError
		statusErr        *UpstreamStatusError
	)

	switch {
	case errors.Is(errReason, ErrRateLimitReached):
		return APIError{
			Code:    "RATE_LIMIT_REACHED",
			Message: "github rate limit reached. wait few minutes and try again",
		}

	case errors.As(errReason, &serializationErr):
		return APIError{Code: "SERIALIZATION_ERROR", Message: genericErrorMessage}

	case errors.As(errReason, &transportErr):
		return APIError{Code: "TRANSPORT_ERROR", Message: genericErrorMessage}

	case errors.As(errReason, &statusErr):
		return APIError{Code: "UPSTREAM_STATUS_ERROR", Message: genericErrorMessage}

	default:
		return APIError{Code: "GENERIC_ERROR", Message: genericErrorMessage}
	}
}

func NewInvalidQueryError(err error) APIError {
	return APIError{
		Code:    "INVALID_QUERY",
		Message: "invalid query parameters: " + err.Error(),
	}
}
