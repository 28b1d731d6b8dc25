// Package engine orchestrates the question pipeline: classify, refine, build
// SQL, execute, then attach a chart hint and summary statistics.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rmone/pursuitql/internal/catalog"
	"github.com/rmone/pursuitql/internal/classify"
	"github.com/rmone/pursuitql/internal/refine"
	"github.com/rmone/pursuitql/internal/sqlbuild"
)

// Error kinds reported in the response envelope.
const (
	ErrKindCannotClassify  = "cannot_classify"
	ErrKindUnknownFunction = "unknown_function"
)

const cannotClassifyMessage = "I couldn't match that question to a known query. " +
	"Try asking about projects by year, client, company, status, tags, fee range, or size."

// Executor runs a built statement against the database.
type Executor interface {
	Execute(ctx context.Context, sql string, args []any) ([]map[string]any, error)
}

// TierSource supplies the size tier CASE expression for size-aware templates.
type TierSource interface {
	CaseExpression(ctx context.Context) string
}

// Response is the envelope returned for every question.
type Response struct {
	Success      bool             `json:"success"`
	Question     string           `json:"question"`
	FunctionName string           `json:"function_name,omitempty"`
	Arguments    map[string]any   `json:"arguments,omitempty"`
	Data         []map[string]any `json:"data"`
	RowCount     int              `json:"row_count"`
	Summary      map[string]any   `json:"summary,omitempty"`
	ChartConfig  *ChartConfig     `json:"chart_config,omitempty"`
	Message      string           `json:"message,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// Engine wires the pipeline stages together.
type Engine struct {
	classifier classify.Classifier
	refiner    *refine.Refiner
	db         Executor
	tiers      TierSource
}

// New assembles an Engine. A nil refiner gets the default wall-clock refiner.
func New(classifier classify.Classifier, refiner *refine.Refiner, db Executor, tiers TierSource) *Engine {
	if refiner == nil {
		refiner = refine.New(nil)
	}
	return &Engine{classifier: classifier, refiner: refiner, db: db, tiers: tiers}
}

// Ask runs the full pipeline for one question. Unanswerable questions return
// a failed envelope with a nil error; infrastructure failures return an
// error for the caller to wrap.
func (e *Engine) Ask(ctx context.Context, question string) (*Response, error) {
	intent, err := e.classifier.Classify(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("classifying question: %w", err)
	}

	// A none classification is terminal. Refinement only corrects real
	// intents; running it here could promote stray date or fee tokens into a
	// query the classifier never chose.
	if intent.None() {
		return &Response{
			Success:  false,
			Question: question,
			Error:    ErrKindCannotClassify,
			Message:  cannotClassifyMessage,
			Data:     []map[string]any{},
		}, nil
	}

	intent = e.refiner.Apply(question, intent)

	log.Info().
		Str("function", intent.FunctionName).
		Interface("arguments", intent.Arguments).
		Msg("classified question")

	query, err := sqlbuild.Build(intent.FunctionName, intent.Arguments, e.tiers.CaseExpression(ctx))
	if err != nil {
		if errors.Is(err, sqlbuild.ErrUnknownFunction) {
			return &Response{
				Success:      false,
				Question:     question,
				FunctionName: intent.FunctionName,
				Error:        ErrKindUnknownFunction,
				Message:      fmt.Sprintf("The query function %q is not supported.", intent.FunctionName),
				Data:         []map[string]any{},
			}, nil
		}
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := e.db.Execute(ctx, query.SQL, query.Args)
	if err != nil {
		return nil, fmt.Errorf("executing %s: %w", intent.FunctionName, err)
	}

	tpl, _ := catalog.Lookup(intent.FunctionName)
	resp := &Response{
		Success:      true,
		Question:     question,
		FunctionName: intent.FunctionName,
		Arguments:    intent.Arguments,
		Data:         rows,
		RowCount:     len(rows),
		Summary:      Summarize(rows),
		ChartConfig:  BuildChartConfig(tpl, rows),
	}
	if len(rows) == 0 {
		resp.Message = "No matching records found."
	}
	return resp, nil
}
