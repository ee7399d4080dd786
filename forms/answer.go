package forms

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mbolis/quick-forms/model"
)

// ValidateAnswer checks a raw answer against a question that already went
// through NormalizeQuestion. It has no side effects.
//
// An empty answer is rejected for required questions. Otherwise it goes
// through the type rules like any other answer, so it fails a numeric
// question and passes a text one. Email answers are only length checked.
func ValidateAnswer(q model.Question, answer string) error {
	if q.Required && answer == "" {
		return answerError(q, CodeRequired, "The question '%s' is required.", q.Text)
	}

	switch c := q.Constraint.(type) {
	case model.NumericConstraint:
		return validateNumber(q, c, answer)
	case model.TextConstraint:
		if utf8.RuneCountInString(answer) > c.MaxLength {
			return answerError(q, CodeTooLong, "Answer cannot exceed %d characters.", c.MaxLength).
				WithDetail("limit", c.MaxLength)
		}
		return nil
	default:
		return fmt.Errorf("question %d has no constraint", q.ID)
	}
}

func validateNumber(q model.Question, c model.NumericConstraint, answer string) error {
	answer = strings.TrimSpace(answer)
	if isHex(answer) {
		return answerError(q, CodeNotANumber, "Answer must be a valid number.")
	}
	value, err := strconv.ParseFloat(answer, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return answerError(q, CodeNotANumber, "Answer must be a valid number.")
	}

	if value < c.Min {
		return rangeError(q, c, "Answer must be at least %s.", c.Min)
	}
	if value > c.Max {
		return rangeError(q, c, "Answer must be at most %s.", c.Max)
	}

	if c.Subtype == model.Integer && value != math.Trunc(value) {
		return answerError(q, CodeNotAnInteger, "Answer must be an integer.")
	}
	return nil
}

func rangeError(q model.Question, c model.NumericConstraint, msg string, bound float64) *ValidationError {
	return answerError(q, CodeOutOfRange, msg, formatNumber(bound)).
		WithDetail("min", c.Min).
		WithDetail("max", c.Max)
}

func answerError(q model.Question, code Code, msg string, args ...any) *ValidationError {
	return newValidationError(code, "answer", msg, args...).WithDetail("question", q.ID)
}

// isHex reports hexadecimal literals, which ParseFloat accepts but which are
// not decimal numbers.
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// formatNumber prints bounds as reals: 18 is "18.0", 0.5 stays "0.5".
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
