package forms

import (
	"context"

	"github.com/mbolis/quick-forms/model"
)

// SubmitOne validates a single answer and stores it as a Response.
func (s *Service) SubmitOne(ctx context.Context, formID, questionID int64, answer string) (model.Response, error) {
	var resp model.Response
	err := s.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetForm(ctx, formID); err != nil {
			return err
		}
		var err error
		resp, err = submit(ctx, tx, formID, model.AnswerItem{QuestionID: questionID, Answer: answer})
		return err
	})
	return resp, err
}

// Submit stores a batch of answers to one form. The batch is all or
// nothing: items are processed in order, and the first rejected item is
// returned after every answer stored so far in this call is rolled back.
func (s *Service) Submit(ctx context.Context, formID int64, items []model.AnswerItem) (int, error) {
	err := s.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetForm(ctx, formID); err != nil {
			return err
		}
		if len(items) == 0 {
			return newValidationError(CodeInvalidInput, "answers", "answers must not be empty.")
		}
		for _, item := range items {
			if _, err := submit(ctx, tx, formID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// submit reads the question once, checks the answer against that read and
// stores it. The response's form always comes from the question.
func submit(ctx context.Context, tx Store, formID int64, item model.AnswerItem) (model.Response, error) {
	q, err := tx.GetQuestion(ctx, item.QuestionID, formID)
	if err != nil {
		return model.Response{}, err
	}
	if err := ValidateAnswer(q, item.Answer); err != nil {
		return model.Response{}, err
	}
	return tx.CreateResponse(ctx, model.Response{
		FormID:     q.FormID,
		QuestionID: q.ID,
		Answer:     item.Answer,
	})
}
