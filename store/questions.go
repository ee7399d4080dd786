package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/mbolis/quick-forms/forms"
	"github.com/mbolis/quick-forms/model"
)

const questionTable = "question"

var questionColumns = []string{
	"id", "form_id", "text", "type", "required",
	"max_length", "min_value", "max_value", "number_subtype",
}

type questionRow struct {
	ID            int64    `db:"id"`
	FormID        int64    `db:"form_id"`
	Text          string   `db:"text"`
	Type          string   `db:"type"`
	Required      bool     `db:"required"`
	MaxLength     *int     `db:"max_length"`
	MinValue      *float64 `db:"min_value"`
	MaxValue      *float64 `db:"max_value"`
	NumberSubtype *string  `db:"number_subtype"`
}

// question rebuilds the constraint variant. Rows were normalized before
// they were written, so the nullable columns of the row's type are set.
func (r questionRow) question() model.Question {
	q := model.Question{
		ID:       r.ID,
		FormID:   r.FormID,
		Text:     r.Text,
		Required: r.Required,
	}

	t := model.QuestionType(r.Type)
	if t == model.NumericAnswer {
		q.Constraint = model.NumericConstraint{
			Min:     deref(r.MinValue),
			Max:     deref(r.MaxValue),
			Subtype: model.NumberSubtype(deref(r.NumberSubtype)),
		}
	} else {
		q.Constraint = model.TextConstraint{
			Type:      t,
			MaxLength: deref(r.MaxLength),
		}
	}
	return q
}

func questionValues(q model.Question) map[string]any {
	in := q.Input()

	values := map[string]any{
		"form_id":        q.FormID,
		"text":           in.Text,
		"type":           string(in.Type),
		"required":       in.Required,
		"max_length":     nil,
		"min_value":      nil,
		"max_value":      nil,
		"number_subtype": nil,
	}
	if in.MaxLength != nil {
		values["max_length"] = *in.MaxLength
	}
	if in.MinValue != nil {
		values["min_value"] = *in.MinValue
	}
	if in.MaxValue != nil {
		values["max_value"] = *in.MaxValue
	}
	if in.NumberSubtype != nil {
		values["number_subtype"] = string(*in.NumberSubtype)
	}
	return values
}

func (s *Store) ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	stmt := builder().
		Select(questionColumns...).
		From(questionTable).
		OrderBy("form_id", "id")
	if filter.FormID != 0 {
		stmt = stmt.Where(sq.Eq{"form_id": filter.FormID})
	}
	if filter.Type != "" {
		stmt = stmt.Where(sq.Eq{"type": string(filter.Type)})
	}
	if filter.Required != nil {
		stmt = stmt.Where(sq.Eq{"required": *filter.Required})
	}
	if filter.Search != "" {
		stmt = stmt.Where(contains("text", filter.Search))
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build questions query: %w", err)
	}

	var rows []questionRow
	if err := sqlscan.Select(ctx, s.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}

	out := make([]model.Question, len(rows))
	for i, r := range rows {
		out[i] = r.question()
	}
	return out, nil
}

func (s *Store) GetQuestion(ctx context.Context, id, formID int64) (model.Question, error) {
	query, args, err := builder().
		Select(questionColumns...).
		From(questionTable).
		Where(sq.Eq{"id": id, "form_id": formID}).
		ToSql()
	if err != nil {
		return model.Question{}, fmt.Errorf("build question query: %w", err)
	}

	var row questionRow
	if err := sqlscan.Get(ctx, s.q, &row, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return model.Question{}, forms.QuestionNotFound(id)
		}
		return model.Question{}, fmt.Errorf("get question: %w", err)
	}
	return row.question(), nil
}

func (s *Store) CreateQuestion(ctx context.Context, q model.Question) (model.Question, error) {
	id, err := s.insertReturningID(ctx, builder().
		Insert(questionTable).
		SetMap(questionValues(q)))
	if err != nil {
		return model.Question{}, fmt.Errorf("insert question: %w", err)
	}

	q.ID = id
	return q, nil
}

func (s *Store) UpdateQuestion(ctx context.Context, q model.Question) error {
	values := questionValues(q)
	delete(values, "form_id")

	found, err := s.execOne(ctx, builder().
		Update(questionTable).
		SetMap(values).
		Where(sq.Eq{"id": q.ID, "form_id": q.FormID}))
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	if !found {
		return forms.QuestionNotFound(q.ID)
	}
	return nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id, formID int64) error {
	found, err := s.execOne(ctx, builder().
		Delete(questionTable).
		Where(sq.Eq{"id": id, "form_id": formID}))
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if !found {
		return forms.QuestionNotFound(id)
	}
	return nil
}
