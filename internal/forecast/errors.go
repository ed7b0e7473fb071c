package forecast

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes request-level validation failures.
type ErrorCode string

const (
	CodeMissingRequiredField ErrorCode = "missing_required_field"
	CodeInvalidNumber        ErrorCode = "invalid_number"
	CodeWindowSize           ErrorCode = "window_size"
	CodeEmptySelection       ErrorCode = "empty_selection"
	CodeUnknownModel         ErrorCode = "unknown_model"
	CodeInsufficientHistory  ErrorCode = "insufficient_history"
	CodeLocationNotFound     ErrorCode = "location_not_found"
)

// ErrNoSnapshot is returned when no prediction snapshot has been recorded.
var ErrNoSnapshot = errors.New("no prediction snapshot recorded")

// ValidationError is a request-level failure detected before any dispatch to
// the inference boundary. It terminates the request as a whole; no partial
// results are produced.
type ValidationError struct {
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(code ErrorCode, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// TransportError reports a round-trip that could not complete at all. It is
// a request-level failure, never attributed to an individual model, and is
// not retried automatically.
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return e.Message
}

// ShapeMismatchError is the embedded engine's precondition failure: the
// feature vector length does not match the coefficient count. It surfaces as
// a per-model failure for the invoking model id, not as a request-level one.
type ShapeMismatchError struct {
	Got  int
	Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("feature vector has %d values, model expects %d", e.Got, e.Want)
}
