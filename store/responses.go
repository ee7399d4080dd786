package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/mbolis/quick-forms/forms"
	"github.com/mbolis/quick-forms/model"
)

const responseTable = "response"

var responseColumns = []string{"id", "form_id", "question_id", "answer"}

func (s *Store) CreateResponse(ctx context.Context, r model.Response) (model.Response, error) {
	id, err := s.insertReturningID(ctx, builder().
		Insert(responseTable).
		Columns("form_id", "question_id", "answer").
		Values(r.FormID, r.QuestionID, r.Answer))
	if err != nil {
		return model.Response{}, fmt.Errorf("insert response: %w", err)
	}

	r.ID = id
	return r, nil
}

func (s *Store) GetResponse(ctx context.Context, id int64) (model.Response, error) {
	query, args, err := builder().
		Select(responseColumns...).
		From(responseTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Response{}, fmt.Errorf("build response query: %w", err)
	}

	var r model.Response
	if err := sqlscan.Get(ctx, s.q, &r, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return model.Response{}, forms.ResponseNotFound(id)
		}
		return model.Response{}, fmt.Errorf("get response: %w", err)
	}
	return r, nil
}

func (s *Store) ListResponses(ctx context.Context, filter model.ResponseFilter) ([]model.Response, error) {
	stmt := builder().
		Select(responseColumns...).
		From(responseTable).
		OrderBy("form_id", "id")
	if filter.FormID != 0 {
		stmt = stmt.Where(sq.Eq{"form_id": filter.FormID})
	}
	if filter.QuestionID != 0 {
		stmt = stmt.Where(sq.Eq{"question_id": filter.QuestionID})
	}
	if filter.Search != "" {
		stmt = stmt.Where(contains("answer", filter.Search))
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build responses query: %w", err)
	}

	out := make([]model.Response, 0)
	if err := sqlscan.Select(ctx, s.q, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select responses: %w", err)
	}
	return out, nil
}
