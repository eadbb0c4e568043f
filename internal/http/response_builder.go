// Package http provides HTTP server and handler implementations.
//
// This file implements the Builder Pattern for constructing JSON responses.
// It provides a fluent API for setting status, headers and body, plus the
// uniform error envelope shared by every endpoint.

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/core"
)

// Error codes carried in the error envelope.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeRateLimited      = "rate_limited"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternal         = "internal_error"
)

// errorEnvelope is the uniform error body: {"error": {"code", "message"}}.
type errorEnvelope struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseBuilder provides a fluent API for building JSON responses.
type ResponseBuilder struct {
	statusCode int
	body       []byte
	headers    map[string]string
}

// NewResponse creates a new response builder with default 200 status.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers[name] = value
	return b
}

// JSON sets the response body to the JSON encoding of v. A marshal failure
// downgrades the response to a plain 500 envelope.
func (b *ResponseBuilder) JSON(v interface{}) *ResponseBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		b.statusCode = http.StatusInternalServerError
		b.body = []byte(`{"error":{"code":"internal_error","message":"response encoding failed"}}`)
		return b
	}
	b.body = data
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *ResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if len(b.body) > 0 {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}

	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// ErrorResponse creates an error response with the uniform envelope.
func ErrorResponse(statusCode int, code, message string) *ResponseBuilder {
	return NewResponse().
		Status(statusCode).
		JSON(errorEnvelope{Error: errorDetail{Code: code, Message: message}})
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(message string) *ResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, CodeBadRequest, message)
}

// UnprocessableEntityError creates a 422 Unprocessable Entity error response.
func UnprocessableEntityError(message string) *ResponseBuilder {
	return ErrorResponse(http.StatusUnprocessableEntity, CodeValidationFailed, message)
}

// NotFoundError creates a 404 Not Found error response.
func NotFoundError(message string) *ResponseBuilder {
	return ErrorResponse(http.StatusNotFound, CodeNotFound, message)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(message string) *ResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, CodeInternal, message)
}

// StoreUnavailableError creates a 503 response for persistence outages.
func StoreUnavailableError() *ResponseBuilder {
	return ErrorResponse(http.StatusServiceUnavailable, CodeStoreUnavailable, "store unavailable, retry later").
		Header("Retry-After", "10")
}

// TooManyRequestsError creates a 429 response with a retry hint.
func TooManyRequestsError() *ResponseBuilder {
	return ErrorResponse(http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded, try again later").
		Header("Retry-After", "60")
}

// MethodNotAllowedError creates a 405 Method Not Allowed error response.
func MethodNotAllowedError(allowedMethods string) *ResponseBuilder {
	return ErrorResponse(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed").
		Header("Allow", allowedMethods)
}

// validationSentinels are the domain errors that map to 422 on the wire.
// Order matters: the first match supplies the response message.
var validationSentinels = []error{
	core.ErrInvalidDate,
	core.ErrEmptyDescription,
	core.ErrDescriptionTooLong,
	core.ErrInvalidAmount,
	core.ErrInvalidCategory,
	core.ErrInvalidLimit,
	core.ErrInvalidRange,
}

// errorResponseFor maps a service error onto the wire: a store outage is
// 503, domain validation 422, anything else 500.
func errorResponseFor(err error) *ResponseBuilder {
	if errors.Is(err, core.ErrStoreUnavailable) {
		return StoreUnavailableError()
	}
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return UnprocessableEntityError(sentinel.Error())
		}
	}
	return InternalServerError("unexpected error")
}
