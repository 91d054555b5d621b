package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnknownOwner is returned when a transaction is assigned to an owner id
	// that does not belong to the building.
	ErrUnknownOwner = errors.New("unknown owner")
	// ErrDuplicate is returned when a record violates a uniqueness rule.
	ErrDuplicate = errors.New("duplicate")
	// ErrConfirmationMismatch is wrapped by the PreconditionFailedError returned
	// when a closure confirmation does not match.
	ErrConfirmationMismatch = errors.New("confirmation mismatch")
)

// DataLoadError wraps a failure to fetch one of the feeds a computation needs.
type DataLoadError struct {
	Resource string
	Err      error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Resource, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// ValidationError reports one invalid field, optionally tied to an input line.
type ValidationError struct {
	Line   int    `json:"line,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors groups several field errors into one error value.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// PreconditionFailedError is returned when an operation is refused because the
// target is not in the required state, e.g. a closure confirmation mismatch.
type PreconditionFailedError struct {
	Reason string
	Err    error
}

func (e *PreconditionFailedError) Error() string {
	return "precondition failed: " + e.Reason
}

func (e *PreconditionFailedError) Unwrap() error { return e.Err }

// ParseError reports an input string that could not be read as a value.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

// AttributionWarning flags a deposit whose owner could not be determined
// unambiguously from its free text. It is never fatal.
type AttributionWarning struct {
	TransactionID string   `json:"transaction_id"`
	Text          string   `json:"text"`
	Candidates    []string `json:"candidates"`
}

func (w AttributionWarning) String() string {
	return fmt.Sprintf("transaction %s matches %d owners (%s)", w.TransactionID, len(w.Candidates), strings.Join(w.Candidates, ", "))
}

// IsValidation reports whether err is a validation or parse error.
func IsValidation(err error) bool {
	var ve *ValidationError
	var ves ValidationErrors
	var pe *ParseError
	return errors.As(err, &ve) || errors.As(err, &ves) || errors.As(err, &pe)
}

// IsPrecondition reports whether err is a PreconditionFailedError.
func IsPrecondition(err error) bool {
	var pe *PreconditionFailedError
	return errors.As(err, &pe)
}
