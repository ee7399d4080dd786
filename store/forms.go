package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/mbolis/quick-forms/forms"
	"github.com/mbolis/quick-forms/model"
)

const formTable = "form"

var formColumns = []string{"id", "title", "created_at"}

// ListForms returns forms newest first.
func (s *Store) ListForms(ctx context.Context, filter model.FormFilter) ([]model.FormSummary, error) {
	stmt := builder().
		Select(formColumns...).
		From(formTable).
		OrderBy("created_at DESC", "id DESC")
	if filter.Search != "" {
		stmt = stmt.Where(contains("title", filter.Search))
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build forms query: %w", err)
	}

	out := make([]model.FormSummary, 0)
	if err := sqlscan.Select(ctx, s.q, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select forms: %w", err)
	}
	return out, nil
}

func (s *Store) GetForm(ctx context.Context, id int64) (model.FormSummary, error) {
	query, args, err := builder().
		Select(formColumns...).
		From(formTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.FormSummary{}, fmt.Errorf("build form query: %w", err)
	}

	var form model.FormSummary
	if err := sqlscan.Get(ctx, s.q, &form, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return model.FormSummary{}, forms.FormNotFound(id)
		}
		return model.FormSummary{}, fmt.Errorf("get form: %w", err)
	}
	return form, nil
}

func (s *Store) CreateForm(ctx context.Context, title string) (model.FormSummary, error) {
	form := model.FormSummary{
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.insertReturningID(ctx, builder().
		Insert(formTable).
		Columns("title", "created_at").
		Values(form.Title, form.CreatedAt))
	if err != nil {
		return model.FormSummary{}, fmt.Errorf("insert form: %w", err)
	}

	form.ID = id
	return form, nil
}

// UpdateForm changes the title only; created_at never moves.
func (s *Store) UpdateForm(ctx context.Context, id int64, title string) error {
	found, err := s.execOne(ctx, builder().
		Update(formTable).
		Set("title", title).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("update form: %w", err)
	}
	if !found {
		return forms.FormNotFound(id)
	}
	return nil
}

// DeleteForm deletes the form with its questions and responses.
func (s *Store) DeleteForm(ctx context.Context, id int64) error {
	found, err := s.execOne(ctx, builder().
		Delete(formTable).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	if !found {
		return forms.FormNotFound(id)
	}
	return nil
}
