package domain

import "fmt"

// EngineError is the unified error type for the engine.
// Each error has a numeric code and human-readable message.
type EngineError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error %d: %s", e.Code, e.Message)
}

// Is matches errors by code, so wrapped copies of a sentinel still
// satisfy errors.Is against it.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	return ok && t.Code == e.Code
}

// NewEngineError creates a new EngineError.
func NewEngineError(code int, msg string) *EngineError {
	return &EngineError{Code: code, Message: msg}
}

// WrapEngineError creates an EngineError that includes a cause.
func WrapEngineError(code int, msg string, cause error) *EngineError {
	return &EngineError{Code: code, Message: fmt.Sprintf("%s: %v", msg, cause)}
}

// ---- Ranking / validation errors (-32010 to -32039) ----

var (
	ErrUnknownDomain   = &EngineError{Code: -32010, Message: "unknown task domain"}
	ErrInvalidDuration = &EngineError{Code: -32011, Message: "estimated duration must be positive"}
	ErrTaskNotPending  = &EngineError{Code: -32012, Message: "scoring requires a pending task"}
	ErrInvalidBudget   = &EngineError{Code: -32013, Message: "minute budget must be positive"}
)

// ---- Store errors (-32130 to -32159) ----

var (
	ErrStoreInit       = &EngineError{Code: -32130, Message: "failed to initialize store"}
	ErrStoreQuery      = &EngineError{Code: -32131, Message: "store query failed"}
	ErrStoreWrite      = &EngineError{Code: -32132, Message: "store write failed"}
	ErrTaskNotFound    = &EngineError{Code: -32134, Message: "task not found"}
	ErrDuplicateTask   = &EngineError{Code: -32135, Message: "task already exists"}
	ErrTaskAlreadyDone = &EngineError{Code: -32137, Message: "task is already completed"}
)

// ---- Config errors ----

var ErrConfigInvalid = &EngineError{Code: -32136, Message: "invalid configuration"}
