package apperrors

import "net/http"

type ErrorCode string

const (
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeValidationError    ErrorCode = "VALIDATION_ERROR"
	ErrorCodeMissingCredentials ErrorCode = "MISSING_CREDENTIALS"
	ErrorCodeUpstreamAuthFailed ErrorCode = "UPSTREAM_AUTH_FAILED"
	ErrorCodeUpstreamError      ErrorCode = "UPSTREAM_ERROR"
)

// ErrorBody is the serialized error payload.
type ErrorBody struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// AppError is the base error type for HTTP responses.
type AppError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    map[string]any
}

func (err *AppError) Error() string {
	return err.Message
}

func (err *AppError) ErrorBody() ErrorBody {
	return ErrorBody{
		Code:    err.Code,
		Message: err.Message,
		Details: err.Details,
	}
}

func NewAppError(code ErrorCode, message string, statusCode int, details map[string]any) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// NewValidationError reports malformed caller input, rejected before any
// upstream call is made.
func NewValidationError(message string, details map[string]any) *AppError {
	return NewAppError(ErrorCodeValidationError, message, http.StatusBadRequest, details)
}

// NewMissingCredentialsError reports a server configuration fault: no app
// credentials configured and no caller-supplied token to fall back on.
func NewMissingCredentialsError(message string) *AppError {
	return NewAppError(ErrorCodeMissingCredentials, message, http.StatusInternalServerError, nil)
}

// NewUpstreamAuthError reports a rejected token exchange. The upstream
// response body travels in the details so callers can see what Spotify said.
func NewUpstreamAuthError(message string, details map[string]any) *AppError {
	return NewAppError(ErrorCodeUpstreamAuthFailed, message, http.StatusBadGateway, details)
}

// NewUpstreamError reports a failed catalog fetch. The upstream status is
// passed through to the caller when it is a plausible HTTP error status;
// transport-level failures arrive with status 0 and map to 502.
func NewUpstreamError(message string, upstreamStatus int, details map[string]any) *AppError {
	status := upstreamStatus
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusBadGateway
	}
	return NewAppError(ErrorCodeUpstreamError, message, status, details)
}

func NewInternalError(message string) *AppError {
	return NewAppError(ErrorCodeInternalError, message, http.StatusInternalServerError, nil)
}

// EnsureAppError converts an arbitrary error into an AppError.
func EnsureAppError(err error) *AppError {
	if err == nil {
		return NewInternalError("Unknown error")
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError("Internal server error")
}
