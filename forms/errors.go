package forms

import (
	"errors"
	"fmt"
)

// Code identifies the rule a ValidationError was raised by.
type Code string

const (
	CodeInvalidInput      Code = "invalid_input"
	CodeInvalidType       Code = "invalid_type"
	CodeInvalidChoice     Code = "invalid_choice"
	CodeMaxLengthExceeded Code = "max_length_exceeded"
	CodeMissingField      Code = "missing_field"
	CodeRangeInverted     Code = "range_inverted"
	CodeRequired          Code = "required"
	CodeNotANumber        Code = "not_a_number"
	CodeOutOfRange        Code = "out_of_range"
	CodeNotAnInteger      Code = "not_an_integer"
	CodeTooLong           Code = "too_long"
)

// ValidationError is a rejected input, attributed to a single field.
type ValidationError struct {
	Code    Code           `json:"code"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func newValidationError(code Code, field, msg string, args ...any) *ValidationError {
	return &ValidationError{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(msg, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] field '%s': %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ValidationError) WithDetail(key string, value any) *ValidationError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing entity, or one that exists but belongs
// to another form.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func FormNotFound(id int64) error {
	return &NotFoundError{Entity: "form", ID: id}
}

func QuestionNotFound(id int64) error {
	return &NotFoundError{Entity: "question", ID: id}
}

func ResponseNotFound(id int64) error {
	return &NotFoundError{Entity: "response", ID: id}
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
