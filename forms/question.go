package forms

import (
	"github.com/mbolis/quick-forms/model"
)

// NormalizeQuestion checks a question's configuration against its type and
// returns the normalized question. A text-like question without max_length
// gets its type's ceiling. Fields foreign to the type are dropped. The input
// is never modified.
//
// Every question write goes through here, creation and update alike.
func NormalizeQuestion(formID int64, in model.QuestionInput) (model.Question, error) {
	if in.Type == "" {
		return model.Question{}, newValidationError(CodeInvalidType, "type", "type must be specified.")
	}
	if !IsKnownType(in.Type) {
		return model.Question{}, newValidationError(CodeInvalidType, "type", "%q is not a valid question type.", in.Type)
	}
	if err := checkStruct(in); err != nil {
		return model.Question{}, err
	}

	q := model.Question{
		ID:       in.ID,
		FormID:   formID,
		Text:     in.Text,
		Required: in.Required,
	}

	var err error
	if IsTextType(in.Type) {
		q.Constraint, err = textConstraint(in)
	} else {
		q.Constraint, err = numericConstraint(in)
	}
	if err != nil {
		return model.Question{}, err
	}
	return q, nil
}

func textConstraint(in model.QuestionInput) (model.TextConstraint, error) {
	ceiling, _ := CeilingFor(in.Type)

	if in.MaxLength == nil {
		return model.TextConstraint{Type: in.Type, MaxLength: ceiling}, nil
	}
	if *in.MaxLength > ceiling {
		return model.TextConstraint{}, newValidationError(CodeMaxLengthExceeded, "max_length",
			"max_length for %s cannot exceed %d characters.", in.Type, ceiling).
			WithDetail("limit", ceiling)
	}
	return model.TextConstraint{Type: in.Type, MaxLength: *in.MaxLength}, nil
}

func numericConstraint(in model.QuestionInput) (model.NumericConstraint, error) {
	if in.NumberSubtype == nil || *in.NumberSubtype == "" {
		return model.NumericConstraint{}, newValidationError(CodeMissingField, "number_subtype",
			"number_subtype must be specified for numeric questions (e.g., 'integer' or 'float').")
	}
	subtype := *in.NumberSubtype
	if subtype != model.Integer && subtype != model.Float {
		return model.NumericConstraint{}, newValidationError(CodeInvalidChoice, "number_subtype",
			"%q is not a valid number_subtype.", subtype)
	}

	if in.MinValue == nil {
		return model.NumericConstraint{}, newValidationError(CodeMissingField, "min_value",
			"Both min_value and max_value must be specified for numeric questions.")
	}
	if in.MaxValue == nil {
		return model.NumericConstraint{}, newValidationError(CodeMissingField, "max_value",
			"Both min_value and max_value must be specified for numeric questions.")
	}

	lo, hi := *in.MinValue, *in.MaxValue
	if lo > hi {
		return model.NumericConstraint{}, newValidationError(CodeRangeInverted, "min_value",
			"min_value cannot be greater than max_value.").
			WithDetail("min", lo).
			WithDetail("max", hi)
	}

	return model.NumericConstraint{Min: lo, Max: hi, Subtype: subtype}, nil
}
