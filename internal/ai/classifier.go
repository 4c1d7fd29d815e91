package ai

import (
	"context"

	dto "todo-assist.com/todo-assist/internal/data_models"
)

// ParseResult is the raw parser output before any validation or
// clamping. Nil fields were not extracted.
type ParseResult struct {
	Title         string
	Description   *string
	Priority      *int
	Category      *string
	EstimatedTime *int
}

type PriorityResult struct {
	Priority   int
	Confidence float64
	Reasoning  string
}

type CategoryResult struct {
	Category   string
	Confidence float64
	Reasoning  string
}

type TimeResult struct {
	Minutes    int
	Confidence float64
	Suggestion string
}

// Classifier is the inference boundary of the enrichment engine. The
// engine owns all validation, clamping and taxonomy mapping;
// implementations only run the underlying model call and decode its
// output. Calls are stateless and safe to run concurrently.
type Classifier interface {
	ParseTodo(ctx context.Context, text string) (*ParseResult, error)
	RecommendPriority(ctx context.Context, todo dto.TodoInput) (*PriorityResult, error)
	Categorize(ctx context.Context, todo dto.TodoInput) (*CategoryResult, error)
	EstimateTime(ctx context.Context, todo dto.TodoInput) (*TimeResult, error)
	AnalyzeBatch(ctx context.Context, todos []dto.TodoInput) (string, error)
}
