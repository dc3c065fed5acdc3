// Package response writes the JSON envelopes shared by every handler and
// maps domain errors onto HTTP status codes in one place.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/logger"
)

// ErrorResponse is the structured JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeRateLimit       = "RATE_LIMIT_EXCEEDED"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeEmailExists     = "EMAIL_EXISTS"
	CodeAccountBlocked  = "ACCOUNT_BLOCKED"
	CodeWrongAuthMethod = "WRONG_AUTH_METHOD"
	CodeInvalidCaptcha  = "INVALID_CAPTCHA"
	CodeInvalidOTP      = "INVALID_OTP"
	CodeExpiredOTP      = "EXPIRED_OTP"
)

func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// FromError translates a service error into the matching HTTP response.
// Unrecognized errors become an opaque 500.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), CodeNotFound)
	case errors.Is(err, domain.ErrEmailExists):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeEmailExists)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, err.Error(), CodeUnauthorized)
	case errors.Is(err, domain.ErrAccountBlocked):
		WriteError(w, http.StatusForbidden, err.Error(), CodeAccountBlocked)
	case errors.Is(err, domain.ErrWrongAuthMethod):
		WriteError(w, http.StatusForbidden, err.Error(), CodeWrongAuthMethod)
	case errors.Is(err, domain.ErrNoCodeRequested):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidOTP)
	case errors.Is(err, domain.ErrInvalidCode):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidOTP)
	case errors.Is(err, domain.ErrCodeExpired):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeExpiredOTP)
	case errors.Is(err, domain.ErrInvalidTransition):
		WriteError(w, http.StatusConflict, err.Error(), CodeConflict)
	case errors.Is(err, domain.ErrAdminExists):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeConflict)
	case isValidationError(err):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
	default:
		logger.Error("Unhandled error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal server error", CodeInternalError)
	}
}

// Services wrap input failures as "validation failed: ...".
func isValidationError(err error) bool {
	return err != nil && len(err.Error()) >= 17 && err.Error()[:17] == "validation failed"
}

// Convenience helpers

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message, CodeForbidden)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}
