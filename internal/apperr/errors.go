// Package apperr provides the structured error taxonomy shared by the
// calculator, the resolver, the generative client and the HTTP layer.
//
// Errors carry a Code for categorization, a Retryable flag describing the
// caller's retry policy, and (for validation failures) the offending fields.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code represents a unique error identifier for categorization.
type Code string

const (
	// Caller errors
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeMissingFields Code = "MISSING_FIELDS"
	CodeNotFound      Code = "NOT_FOUND"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeConflict      Code = "CONFLICT"

	// Upstream generative model errors
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeQuotaExceeded     Code = "QUOTA_EXCEEDED"
	CodeUpstreamTimeout   Code = "UPSTREAM_TIMEOUT"
	CodeMalformedUpstream Code = "MALFORMED_UPSTREAM_RESPONSE"
	CodeUpstreamFailure   Code = "UPSTREAM_FAILURE"

	// Best-effort only, never surfaced by the resolver.
	CodeCatalogLookup Code = "CATALOG_LOOKUP_FAILURE"

	CodeInternal Code = "INTERNAL_ERROR"
)

// Error is the base error type of the service.
type Error struct {
	Code      Code
	Message   string
	Cause     error
	Retryable bool
	// Fields names the offending request fields for validation errors.
	Fields []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if len(e.Fields) > 0 {
		msg += " (" + strings.Join(e.Fields, ", ") + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code, so the sentinels
// below can be matched with errors.Is regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// WithMessage returns a copy of e with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

// Sentinels for errors.Is.
var (
	ErrValidation        = &Error{Code: CodeValidation, Message: "validation error"}
	ErrMissingFields     = &Error{Code: CodeMissingFields, Message: "missing required fields"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrUnauthorized      = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrConflict          = &Error{Code: CodeConflict, Message: "conflict"}
	ErrRateLimited       = &Error{Code: CodeRateLimited, Message: "upstream rate limited", Retryable: true}
	ErrQuotaExceeded     = &Error{Code: CodeQuotaExceeded, Message: "upstream quota exceeded"}
	ErrUpstreamTimeout   = &Error{Code: CodeUpstreamTimeout, Message: "upstream timed out", Retryable: true}
	ErrMalformedUpstream = &Error{Code: CodeMalformedUpstream, Message: "malformed upstream response"}
	ErrUpstreamFailure   = &Error{Code: CodeUpstreamFailure, Message: "upstream request failed", Retryable: true}
	ErrCatalogLookup     = &Error{Code: CodeCatalogLookup, Message: "catalog lookup failed"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
)

// New creates a new non-retryable Error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap wraps cause with a non-retryable Error.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Missing builds a MISSING_FIELDS error listing every absent field.
func Missing(fields ...string) *Error {
	return &Error{Code: CodeMissingFields, Message: "missing required fields", Fields: fields}
}

// Invalid builds a VALIDATION_ERROR naming the offending fields.
func Invalid(fields ...string) *Error {
	return &Error{Code: CodeValidation, Message: "invalid fields", Fields: fields}
}

// CodeOf extracts the error code, defaulting to CodeInternal for foreign errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// FieldsOf returns the field list attached to err, if any.
func FieldsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// HTTPStatus maps an error to the status code returned to browser callers.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation, CodeMissingFields:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeQuotaExceeded:
		return http.StatusPaymentRequired
	case CodeUpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the end-user message for err. The upstream kinds get
// distinct messages so the user knows whether to wait, top up, or retry.
func UserMessage(err error) string {
	switch CodeOf(err) {
	case CodeMissingFields:
		return "Campos obrigatórios ausentes: " + strings.Join(FieldsOf(err), ", ")
	case CodeValidation:
		if f := FieldsOf(err); len(f) > 0 {
			return "Campos inválidos: " + strings.Join(f, ", ")
		}
		return "Requisição inválida."
	case CodeNotFound:
		return "Recurso não encontrado."
	case CodeUnauthorized:
		return "Não autorizado."
	case CodeConflict:
		return "Já existe um registro com esses dados."
	case CodeRateLimited:
		return "Limite de requisições excedido. Aguarde alguns instantes e tente novamente."
	case CodeQuotaExceeded:
		return "Créditos de IA esgotados. Adicione créditos ao seu plano para continuar."
	case CodeUpstreamTimeout:
		return "O serviço de IA demorou demais para responder. Tente novamente."
	case CodeMalformedUpstream:
		return "Não foi possível gerar uma resposta válida. Tente novamente."
	default:
		return "Erro interno. Tente novamente mais tarde."
	}
}
