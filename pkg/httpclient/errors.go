package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// BackendErrorResponse is the structured error body some backend endpoints
// return. The json-server style endpoints mostly return plain bodies, so
// parsing is best effort.
type BackendErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the response body matches the structured
// error format, the code and message are preserved. Otherwise a generic error
// is returned with the status code and raw body.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, target string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return apperrors.Transport(target, fmt.Errorf("status %d (failed to read body: %w)", resp.StatusCode, err))
	}

	// Try to parse a structured error response.
	var backend BackendErrorResponse
	if json.Unmarshal(bodyBytes, &backend) == nil && backend.Error != nil {
		return mapBackendError(resp.StatusCode, backend.Error.Message, target)
	}

	// Fallback: unstructured error body.
	return mapBackendError(resp.StatusCode, string(bodyBytes), target)
}

// mapBackendError translates the backend's HTTP status code into an AppError
// that preserves the error semantics. Server-side failures become transport
// errors since the caller cannot distinguish them from an unreachable backend.
func mapBackendError(status int, message, target string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", target, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(target, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualifiedMsg)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualifiedMsg)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case status >= 500:
		return apperrors.Transport(target, fmt.Errorf("server error %d: %s", status, message))
	default:
		return &apperrors.AppError{
			Code:    "BACKEND_ERROR",
			Message: qualifiedMsg,
			Status:  status,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
