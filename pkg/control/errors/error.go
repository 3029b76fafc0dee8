package errors

import (
	"fmt"
	"strings"
)

// ErrorType categorizes a draft validation error.
type ErrorType string

const (
	ErrorTypeStructural ErrorType = "structural" // missing/invalid fields, malformed tree
	ErrorTypeSemantic   ErrorType = "semantic"   // unknown operator/effect, duplicate ids
	ErrorTypeValidation ErrorType = "validation" // completeness gates (name, resource, bouncer)
)

// Error is a rich validation error with the offending node (when there is
// one) and an optional suggested fix.
type Error struct {
	Type       ErrorType // Category of error
	Message    string    // Error message
	NodeID     string    // Offending tree node, if the error is node-scoped
	Field      string    // Offending draft field, if the error is field-scoped
	Suggestion string    // Suggested fix (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))
	if e.NodeID != "" {
		sb.WriteString(fmt.Sprintf(" (node %s)", e.NodeID))
	}
	if e.Field != "" {
		sb.WriteString(fmt.Sprintf(" (field %s)", e.Field))
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}
	return sb.String()
}

// ErrorList accumulates validation errors so a single pass can report every
// problem instead of failing on the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string) {
	el.Add(&Error{Type: errType, Message: message})
}

// AddFieldError creates and adds an error scoped to a draft field.
func (el *ErrorList) AddFieldError(errType ErrorType, field, message string) {
	el.Add(&Error{Type: errType, Field: field, Message: message})
}

// AddNodeError creates and adds an error scoped to a tree node, with an
// optional suggestion.
func (el *ErrorList) AddNodeError(errType ErrorType, nodeID, message, suggestion string) {
	el.Add(&Error{Type: errType, NodeID: nodeID, Message: message, Suggestion: suggestion})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the list contains at least one error of the
// given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// Error implements the error interface, formatting all accumulated errors.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d validation error(s):\n", el.Count()))
	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}
