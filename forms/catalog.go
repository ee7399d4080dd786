package forms

import "github.com/mbolis/quick-forms/model"

// Force ceilings: the hard upper bound on max_length per text-like type.
var ceilings = map[model.QuestionType]int{
	model.ShortAnswer:    200,
	model.CompleteAnswer: 5000,
	model.Email:          254, // longest valid address
}

// CeilingFor returns the force ceiling of a text-like question type.
func CeilingFor(t model.QuestionType) (int, bool) {
	c, ok := ceilings[t]
	return c, ok
}

func IsTextType(t model.QuestionType) bool {
	_, ok := ceilings[t]
	return ok
}

func IsKnownType(t model.QuestionType) bool {
	return IsTextType(t) || t == model.NumericAnswer
}
