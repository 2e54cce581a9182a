package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skyport/backoffice/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response
// consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// codeStatus maps domain error codes onto HTTP statuses. Unknown codes fall
// through to 500.
var codeStatus = map[string]int{
	"invalid_input":       http.StatusBadRequest,
	"invalid_request":     http.StatusBadRequest,
	"invalid_credentials": http.StatusUnauthorized,
	"invalid_token":       http.StatusUnauthorized,
	"invalid_api_key":     http.StatusUnauthorized,
	"too_many_attempts":   http.StatusTooManyRequests,
	"not_found":           http.StatusNotFound,
	"user_not_found":      http.StatusNotFound,
	"city_not_found":      http.StatusNotFound,
	"duplicate_flight":    http.StatusConflict,
	"duplicate_ticket":    http.StatusConflict,
	"email_exists":        http.StatusConflict,
	"weather_unavailable": http.StatusBadGateway,
}

// abortDomainError translates a service error into the response envelope.
// fallback is the user-facing message when the error carries none.
func abortDomainError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	code := "internal_error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		if mapped, ok := codeStatus[appErr.Code]; ok {
			status = mapped
		}
	}
	abortWithError(c, NewHTTPError(status, code, apperrors.MessageOf(err, fallback), err))
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
