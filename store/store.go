package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/mbolis/quick-forms/forms"
)

type querier interface {
	sqlscan.Querier
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite implementation of forms.Store.
type Store struct {
	db *sql.DB // nil when bound to a transaction
	q  querier
}

var _ forms.Store = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) WithTx(ctx context.Context, fn func(forms.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Store{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func (s *Store) insertReturningID(ctx context.Context, insert sq.InsertBuilder) (int64, error) {
	query, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.q.QueryRowContext(ctx, query, args...).Scan(&id)
	return id, err
}

// execOne runs a statement that must touch exactly one row; it reports
// false when none matched.
func (s *Store) execOne(ctx context.Context, stmt sq.Sqlizer) (bool, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return false, err
	}

	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains matches column values containing search, case-insensitively for
// ASCII.
func contains(column, search string) sq.Sqlizer {
	return sq.Expr(column+` LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(search)+"%")
}

func deref[T any](p *T) (v T) {
	if p != nil {
		v = *p
	}
	return
}
