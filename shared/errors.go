package shared

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidToken    = errors.New("invalid token")
	ErrUserNotFound    = errors.New("user not found or inactive")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrPersistence     = errors.New("persistence failure")

	// ErrPartialFailure marks a learning session that was stored while the
	// matching experience update was not.
	ErrPartialFailure = errors.New("partial failure")
)

// AppError carries the HTTP status and message rendered for a failed request.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(statusCode int, err error, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

func NewBadRequestError(err error, message string) *AppError {
	if message == "" {
		message = "Bad Request"
	}
	return NewAppError(http.StatusBadRequest, err, message)
}

func NewUnauthorizedError(err error, message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return NewAppError(http.StatusUnauthorized, err, message)
}

func NewNotFoundError(err error, message string) *AppError {
	if message == "" {
		message = "Not Found"
	}
	return NewAppError(http.StatusNotFound, err, message)
}

func NewTooManyRequestsError(err error, message string, data interface{}) *AppError {
	appErr := NewAppError(http.StatusTooManyRequests, err, message)
	appErr.Data = data
	return appErr
}

func NewInternalError(err error, message string) *AppError {
	if message == "" {
		message = "Internal Server Error"
	}
	return NewAppError(http.StatusInternalServerError, err, message)
}

func NewServiceUnavailableError(err error, message string) *AppError {
	if message == "" {
		message = "Service unavailable"
	}
	return NewAppError(http.StatusServiceUnavailable, err, message)
}

// GetAppError finds an AppError in the chain of err, falling back to the
// status implied by the sentinel errors above.
func GetAppError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidArgument):
		return NewBadRequestError(err, "Bad Request"), true
	case errors.Is(err, ErrInvalidToken):
		return NewUnauthorizedError(err, "Invalid token"), true
	case errors.Is(err, ErrUserNotFound):
		return NewUnauthorizedError(err, "User not found or inactive"), true
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError(err, ""), true
	case errors.Is(err, ErrRateLimited):
		return NewTooManyRequestsError(err, "Too many requests", nil), true
	case errors.Is(err, ErrPartialFailure):
		return NewInternalError(err, "Session saved but experience update failed"), true
	case errors.Is(err, ErrPersistence):
		return NewInternalError(err, ""), true
	}

	return nil, false
}
