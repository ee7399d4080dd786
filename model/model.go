package model

import (
	"encoding/json"
	"time"
)

type QuestionType string

const (
	ShortAnswer    QuestionType = "short_answer"
	CompleteAnswer QuestionType = "complete_answer"
	Email          QuestionType = "email"
	NumericAnswer  QuestionType = "numeric_answer"
)

type NumberSubtype string

const (
	Integer NumberSubtype = "integer"
	Float   NumberSubtype = "float"
)

type FormSummary struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Form struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	Questions []Question `json:"questions"`
}

// FormInput is the writable part of a Form. Questions without an ID are
// created, questions with an ID are updated in place.
type FormInput struct {
	Title     string          `json:"title" validate:"required,max=100"`
	Questions []QuestionInput `json:"questions,omitempty"`
}

// QuestionInput is the flat, nullable shape a question arrives in, either
// from a client or from a stored row. It only becomes a Question once its
// constraints have been normalized and checked.
type QuestionInput struct {
	ID            int64          `json:"id,omitempty"`
	Text          string         `json:"text" validate:"required,max=300"`
	Type          QuestionType   `json:"type"`
	Required      bool           `json:"required"`
	MaxLength     *int           `json:"max_length" validate:"omitempty,gt=0"`
	MinValue      *float64       `json:"min_value"`
	MaxValue      *float64       `json:"max_value"`
	NumberSubtype *NumberSubtype `json:"number_subtype"`
}

// Constraint holds the type-specific part of a question. The only
// implementations are TextConstraint and NumericConstraint.
type Constraint interface {
	QuestionType() QuestionType
	isConstraint()
}

type TextConstraint struct {
	Type      QuestionType
	MaxLength int
}

func (c TextConstraint) QuestionType() QuestionType { return c.Type }
func (TextConstraint) isConstraint()                {}

type NumericConstraint struct {
	Min     float64
	Max     float64
	Subtype NumberSubtype
}

func (NumericConstraint) QuestionType() QuestionType { return NumericAnswer }
func (NumericConstraint) isConstraint()              {}

type Question struct {
	ID         int64
	FormID     int64
	Text       string
	Required   bool
	Constraint Constraint
}

func (q Question) Type() QuestionType {
	if q.Constraint == nil {
		return ""
	}
	return q.Constraint.QuestionType()
}

// Input flattens the question back to its nullable shape. Fields that do
// not belong to the question type are nil.
func (q Question) Input() QuestionInput {
	in := QuestionInput{
		ID:       q.ID,
		Text:     q.Text,
		Type:     q.Type(),
		Required: q.Required,
	}
	switch c := q.Constraint.(type) {
	case TextConstraint:
		maxLength := c.MaxLength
		in.MaxLength = &maxLength
	case NumericConstraint:
		lo, hi, subtype := c.Min, c.Max, c.Subtype
		in.MinValue = &lo
		in.MaxValue = &hi
		in.NumberSubtype = &subtype
	}
	return in
}

type questionJSON struct {
	ID     int64 `json:"id"`
	FormID int64 `json:"form"`
	QuestionInput
}

func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionJSON{ID: q.ID, FormID: q.FormID, QuestionInput: q.Input()})
}

type Response struct {
	ID         int64  `json:"id" db:"id"`
	FormID     int64  `json:"form" db:"form_id"`
	QuestionID int64  `json:"question" db:"question_id"`
	Answer     string `json:"answer" db:"answer"`
}

type AnswerItem struct {
	QuestionID int64  `json:"question"`
	Answer     string `json:"answer"`
}

type FormFilter struct {
	Search string
}

type QuestionFilter struct {
	FormID   int64
	Type     QuestionType
	Required *bool
	Search   string
}

type ResponseFilter struct {
	FormID     int64
	QuestionID int64
	Search     string
}
