// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}

// Kind classifies a domain error so handlers can map it to an HTTP status
// without string matching. Services wrap errors with the constructors below;
// anything unclassified is treated as internal.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
)

type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string { return e.msg }

// Invalid marks a request-level validation failure (HTTP 400).
func Invalid(msg string) error { return &kindError{kind: KindValidation, msg: msg} }

// NotFound marks a missing entity (HTTP 404).
func NotFound(msg string) error { return &kindError{kind: KindNotFound, msg: msg} }

// Conflict marks a unique-key or state conflict (HTTP 409).
func Conflict(msg string) error { return &kindError{kind: KindConflict, msg: msg} }

// Unauthorized marks a failed or missing authentication (HTTP 401).
func Unauthorized(msg string) error { return &kindError{kind: KindUnauthorized, msg: msg} }

// KindOf extracts the Kind from an error chain.
func KindOf(err error) Kind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindInternal
}

// StatusOf maps a classified error to the HTTP status handlers should write.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
