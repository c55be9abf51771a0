package player

import (
	"encoding/json"
	"fmt"
)

// Error codes
const (
	// ErrCodeProgramNotFound means the descrambling entry function could not
	// be located in the player script. The usual cause is an upstream change
	// to the minified structure, not a network failure.
	ErrCodeProgramNotFound = "CIPHER_PROGRAM_NOT_FOUND"
	// ErrCodeUnknownOperationShape means the entry function was found but it
	// invokes a helper whose body matches none of the known operation shapes.
	ErrCodeUnknownOperationShape = "UNKNOWN_OPERATION_SHAPE"
	// ErrCodeInvalidCipherInput means an operation cannot apply to the given
	// signature (for example an empty string).
	ErrCodeInvalidCipherInput = "INVALID_CIPHER_INPUT"
	// ErrCodeScriptNotFound means the page carries no player script reference.
	ErrCodeScriptNotFound = "PLAYER_SCRIPT_NOT_FOUND"
)

// Error represents a structured error with code and details
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MarshalJSON implements json.Marshaler
func (e *Error) MarshalJSON() ([]byte, error) {
	type Alias Error
	return json.Marshal(&struct {
		*Alias
		Error string `json:"error"`
	}{
		Alias: (*Alias)(e),
		Error: e.Error(),
	})
}

// NewError creates a new Error with the given code and message
func NewError(code string, message string, details ...any) *Error {
	e := &Error{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

// IsProgramNotFound returns true if the error means the descrambling
// function was not found in the player script.
func IsProgramNotFound(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == ErrCodeProgramNotFound || e.Code == ErrCodeScriptNotFound
	}
	return false
}

// IsUnknownShape returns true if the error means a helper body matched no
// known operation shape.
func IsUnknownShape(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == ErrCodeUnknownOperationShape
	}
	return false
}

// IsInvalidInput returns true if the error means the cipher input itself was
// unusable.
func IsInvalidInput(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == ErrCodeInvalidCipherInput
	}
	return false
}
