package forms

import (
	"context"

	"github.com/mbolis/quick-forms/model"
)

// Store is the persistence the service depends on. Lookups of a missing
// entity fail with a *NotFoundError.
type Store interface {
	ListForms(ctx context.Context, filter model.FormFilter) ([]model.FormSummary, error)
	GetForm(ctx context.Context, id int64) (model.FormSummary, error)
	CreateForm(ctx context.Context, title string) (model.FormSummary, error)
	UpdateForm(ctx context.Context, id int64, title string) error
	DeleteForm(ctx context.Context, id int64) error

	ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error)
	// GetQuestion fails with QuestionNotFound when the question belongs to
	// a form other than formID.
	GetQuestion(ctx context.Context, id, formID int64) (model.Question, error)
	CreateQuestion(ctx context.Context, q model.Question) (model.Question, error)
	UpdateQuestion(ctx context.Context, q model.Question) error
	DeleteQuestion(ctx context.Context, id, formID int64) error

	CreateResponse(ctx context.Context, r model.Response) (model.Response, error)
	GetResponse(ctx context.Context, id int64) (model.Response, error)
	ListResponses(ctx context.Context, filter model.ResponseFilter) ([]model.Response, error)

	// WithTx runs fn against a Store bound to a single transaction, which
	// is committed only if fn returns nil.
	WithTx(ctx context.Context, fn func(Store) error) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListForms(ctx context.Context, filter model.FormFilter) ([]model.FormSummary, error) {
	return s.store.ListForms(ctx, filter)
}

// GetForm returns the form with all of its questions.
func (s *Service) GetForm(ctx context.Context, id int64) (model.Form, error) {
	var form model.Form
	err := s.store.WithTx(ctx, func(tx Store) error {
		summary, err := tx.GetForm(ctx, id)
		if err != nil {
			return err
		}
		questions, err := tx.ListQuestions(ctx, model.QuestionFilter{FormID: id})
		if err != nil {
			return err
		}
		form = model.Form{
			ID:        summary.ID,
			Title:     summary.Title,
			CreatedAt: summary.CreatedAt,
			Questions: questions,
		}
		return nil
	})
	return form, err
}

func (s *Service) GetQuestions(ctx context.Context, formID int64) ([]model.Question, error) {
	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	return form.Questions, nil
}

// ListQuestions lists questions across forms.
func (s *Service) ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	return s.store.ListQuestions(ctx, filter)
}

// CreateForm creates a form together with its questions. Nothing is
// stored if any question is rejected.
func (s *Service) CreateForm(ctx context.Context, in model.FormInput) (model.Form, error) {
	if err := checkStruct(in); err != nil {
		return model.Form{}, err
	}

	var id int64
	err := s.store.WithTx(ctx, func(tx Store) error {
		summary, err := tx.CreateForm(ctx, in.Title)
		if err != nil {
			return err
		}
		id = summary.ID
		for _, qin := range in.Questions {
			qin.ID = 0
			if _, err := createQuestion(ctx, tx, id, qin); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Form{}, err
	}
	return s.GetForm(ctx, id)
}

// UpdateForm renames a form and applies inline question edits: questions
// with an ID are updated, the others are added. Questions not listed are
// left untouched. Every question goes through NormalizeQuestion.
func (s *Service) UpdateForm(ctx context.Context, id int64, in model.FormInput) (model.Form, error) {
	if err := checkStruct(in); err != nil {
		return model.Form{}, err
	}

	err := s.store.WithTx(ctx, func(tx Store) error {
		if err := tx.UpdateForm(ctx, id, in.Title); err != nil {
			return err
		}
		for _, qin := range in.Questions {
			var err error
			if qin.ID == 0 {
				_, err = createQuestion(ctx, tx, id, qin)
			} else {
				_, err = updateQuestion(ctx, tx, id, qin)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Form{}, err
	}
	return s.GetForm(ctx, id)
}

func (s *Service) DeleteForm(ctx context.Context, id int64) error {
	return s.store.DeleteForm(ctx, id)
}

func (s *Service) CreateQuestion(ctx context.Context, formID int64, in model.QuestionInput) (model.Question, error) {
	in.ID = 0
	var q model.Question
	err := s.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetForm(ctx, formID); err != nil {
			return err
		}
		var err error
		q, err = createQuestion(ctx, tx, formID, in)
		return err
	})
	return q, err
}

func (s *Service) UpdateQuestion(ctx context.Context, formID, id int64, in model.QuestionInput) (model.Question, error) {
	in.ID = id
	var q model.Question
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		q, err = updateQuestion(ctx, tx, formID, in)
		return err
	})
	return q, err
}

func (s *Service) DeleteQuestion(ctx context.Context, formID, id int64) error {
	return s.store.DeleteQuestion(ctx, id, formID)
}

func (s *Service) GetResponse(ctx context.Context, id int64) (model.Response, error) {
	return s.store.GetResponse(ctx, id)
}

func (s *Service) ListResponses(ctx context.Context, filter model.ResponseFilter) ([]model.Response, error) {
	return s.store.ListResponses(ctx, filter)
}

func createQuestion(ctx context.Context, tx Store, formID int64, in model.QuestionInput) (model.Question, error) {
	q, err := NormalizeQuestion(formID, in)
	if err != nil {
		return model.Question{}, err
	}
	return tx.CreateQuestion(ctx, q)
}

func updateQuestion(ctx context.Context, tx Store, formID int64, in model.QuestionInput) (model.Question, error) {
	if _, err := tx.GetQuestion(ctx, in.ID, formID); err != nil {
		return model.Question{}, err
	}
	q, err := NormalizeQuestion(formID, in)
	if err != nil {
		return model.Question{}, err
	}
	if err := tx.UpdateQuestion(ctx, q); err != nil {
		return model.Question{}, err
	}
	return q, nil
}
