// Package classify turns a natural-language question into a query intent: a
// catalog function name plus raw text arguments. The LLM does text
// understanding only; every date, number, and limit is recomputed
// deterministically downstream.
package classify

import "context"

// FunctionNone is the intent returned when the question cannot be mapped to
// any catalog function.
const FunctionNone = "none"

// Intent is the classifier's guess: which catalog function to run and the
// raw argument values extracted from the question text.
type Intent struct {
	FunctionName string         `json:"function_name"`
	Arguments    map[string]any `json:"arguments"`
}

// None reports whether the intent failed to match a function.
func (i Intent) None() bool {
	return i.FunctionName == "" || i.FunctionName == FunctionNone
}

// Classifier maps a question to an Intent.
type Classifier interface {
	Classify(ctx context.Context, question string) (Intent, error)
}
