package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"todo-assist.com/todo-assist/internal/ai"
	config "todo-assist.com/todo-assist/internal/configs"
	"todo-assist.com/todo-assist/internal/constants"
	dto "todo-assist.com/todo-assist/internal/data_models"
	apperrors "todo-assist.com/todo-assist/internal/errors"
	"todo-assist.com/todo-assist/internal/validators"
)

// EnrichmentService turns free text or an existing todo into a
// confidence-annotated draft. It owns every decision rule around the
// classifier: input validation, range clamping, taxonomy mapping and
// the low-confidence policy. It is stateless and never touches
// storage; callers decide whether a draft is persisted.
type EnrichmentService struct {
	classifier ai.Classifier
	batchLimit int
}

func NewEnrichmentService(classifier ai.Classifier, batchLimit int) *EnrichmentService {
	return &EnrichmentService{
		classifier: classifier,
		batchLimit: batchLimit,
	}
}

// Parse converts natural-language input into a draft. The parser call
// must succeed; priority, category and time inferences run afterwards
// and are folded in only above the auto-apply threshold. A failed
// sub-inference leaves its field absent, never a partial error.
func (s *EnrichmentService) Parse(ctx context.Context, text string) (*dto.Draft, error) {
	if err := validators.ValidateParseText(text); err != nil {
		return nil, err
	}
	cleaned := sanitizeText(text)

	parsed, err := s.classifier.ParseTodo(ctx, cleaned)
	if err != nil {
		config.Logger.Errorw("parse inference failed", "error", err)
		return nil, apperrors.ErrUpstreamUnavailable
	}

	title := sanitizeText(parsed.Title)
	if title == "" {
		title = truncateRunes(cleaned, constants.MaxTitleLength)
	} else {
		title = truncateRunes(title, constants.MaxTitleLength)
	}

	draft := &dto.Draft{
		Title:       title,
		Description: parsed.Description,
	}

	// Parser-extracted fields survive only when already valid; the
	// dedicated inferences below may still override them.
	if parsed.Priority != nil && *parsed.Priority >= constants.MinPriority && *parsed.Priority <= constants.MaxPriority {
		draft.Priority = parsed.Priority
	}
	if parsed.Category != nil && constants.ValidCategory(*parsed.Category) {
		draft.Category = parsed.Category
	}
	if parsed.EstimatedTime != nil && *parsed.EstimatedTime > 0 && *parsed.EstimatedTime <= constants.MaxEstimatedMinutes {
		draft.EstimatedTime = parsed.EstimatedTime
	}

	input := dto.TodoInput{
		Title:         draft.Title,
		Description:   draft.Description,
		Priority:      draft.Priority,
		Category:      draft.Category,
		EstimatedTime: draft.EstimatedTime,
	}
	s.enrich(ctx, input, draft)
	return draft, nil
}

// Enrich re-analyzes an existing todo and returns a draft holding only
// the fields the engine inferred with enough confidence. Title and
// description stay empty so a partial merge never rewrites user-owned
// text.
func (s *EnrichmentService) Enrich(ctx context.Context, input dto.TodoInput) (*dto.Draft, error) {
	if err := validators.ValidateTodoInput(&input); err != nil {
		return nil, err
	}

	draft := &dto.Draft{}
	s.enrich(ctx, input, draft)
	return draft, nil
}

// enrich fans out the three field inferences, records their
// confidences in the draft metadata and applies suggestions above the
// auto-apply threshold.
func (s *EnrichmentService) enrich(ctx context.Context, input dto.TodoInput, draft *dto.Draft) {
	var (
		wg       sync.WaitGroup
		priority *dto.PrioritySuggestion
		category *dto.CategorySuggestion
		estimate *dto.TimeEstimate
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		suggestion, err := s.RecommendPriority(ctx, input)
		if err != nil {
			config.Logger.Warnw("priority inference skipped", "error", err)
			return
		}
		priority = suggestion
	}()
	go func() {
		defer wg.Done()
		suggestion, err := s.Categorize(ctx, input)
		if err != nil {
			config.Logger.Warnw("category inference skipped", "error", err)
			return
		}
		category = suggestion
	}()
	go func() {
		defer wg.Done()
		suggestion, err := s.EstimateTime(ctx, input)
		if err != nil {
			config.Logger.Warnw("time inference skipped", "error", err)
			return
		}
		estimate = suggestion
	}()
	wg.Wait()

	if priority != nil {
		draft.AIMetadata.PriorityConfidence = priority.Confidence
		if priority.Confidence > constants.AutoApplyThreshold {
			p := priority.Priority
			draft.Priority = &p
			draft.PriorityReasoning = priority.Reasoning
		}
	}
	if category != nil {
		draft.AIMetadata.CategoryConfidence = category.Confidence
		if category.Confidence > constants.AutoApplyThreshold {
			c := category.Category
			draft.Category = &c
		}
	}
	if estimate != nil {
		draft.AIMetadata.TimeConfidence = estimate.Confidence
		if estimate.Confidence > constants.AutoApplyThreshold {
			m := estimate.Minutes
			draft.EstimatedTime = &m
			draft.TimeSuggestion = estimate.Suggestion
		}
	}

	draft.AIMetadata.Processed = true
}

// RecommendPriority always returns a priority within [1,5]. An
// out-of-range model value is clamped and the clamp halves the
// reported confidence instead of being hidden.
func (s *EnrichmentService) RecommendPriority(ctx context.Context, input dto.TodoInput) (*dto.PrioritySuggestion, error) {
	if err := validators.ValidateTodoInput(&input); err != nil {
		return nil, err
	}

	res, err := s.classifier.RecommendPriority(ctx, input)
	if err != nil {
		config.Logger.Errorw("priority inference failed", "title", input.Title, "error", err)
		return nil, apperrors.ErrUpstreamUnavailable
	}

	confidence := clamp01(res.Confidence)
	priority := res.Priority
	if priority < constants.MinPriority || priority > constants.MaxPriority {
		config.Logger.Warnw("clamped out-of-range priority",
			"title", input.Title,
			"priority", res.Priority,
		)
		priority = clampPriority(priority)
		confidence /= 2
	}

	return &dto.PrioritySuggestion{
		Priority:      priority,
		Confidence:    confidence,
		LowConfidence: confidence < constants.LowConfidenceThreshold,
		Reasoning:     res.Reasoning,
	}, nil
}

// Categorize never fails on an off-taxonomy answer; the category maps
// to Other with halved confidence.
func (s *EnrichmentService) Categorize(ctx context.Context, input dto.TodoInput) (*dto.CategorySuggestion, error) {
	if err := validators.ValidateTodoInput(&input); err != nil {
		return nil, err
	}

	res, err := s.classifier.Categorize(ctx, input)
	if err != nil {
		config.Logger.Errorw("category inference failed", "title", input.Title, "error", err)
		return nil, apperrors.ErrUpstreamUnavailable
	}

	confidence := clamp01(res.Confidence)
	category := res.Category
	if !constants.ValidCategory(category) {
		config.Logger.Warnw("mapped off-taxonomy category",
			"title", input.Title,
			"category", res.Category,
		)
		category = constants.CategoryOther
		confidence /= 2
	}

	return &dto.CategorySuggestion{
		Category:      category,
		Confidence:    confidence,
		LowConfidence: confidence < constants.LowConfidenceThreshold,
		Reasoning:     res.Reasoning,
	}, nil
}

// EstimateTime returns a positive minute count. Estimates above the
// daily cap are clamped with halved confidence; non-positive estimates
// are unusable and fail as an upstream error.
func (s *EnrichmentService) EstimateTime(ctx context.Context, input dto.TodoInput) (*dto.TimeEstimate, error) {
	if err := validators.ValidateTodoInput(&input); err != nil {
		return nil, err
	}

	res, err := s.classifier.EstimateTime(ctx, input)
	if err != nil {
		config.Logger.Errorw("time inference failed", "title", input.Title, "error", err)
		return nil, apperrors.ErrUpstreamUnavailable
	}

	if res.Minutes <= 0 {
		config.Logger.Errorw("unusable time estimate", "title", input.Title, "minutes", res.Minutes)
		return nil, apperrors.ErrUpstreamUnavailable
	}

	confidence := clamp01(res.Confidence)
	minutes := res.Minutes
	if minutes > constants.MaxEstimatedMinutes {
		config.Logger.Warnw("clamped oversized time estimate",
			"title", input.Title,
			"minutes", res.Minutes,
		)
		minutes = constants.MaxEstimatedMinutes
		confidence /= 2
	}

	return &dto.TimeEstimate{
		Minutes:       minutes,
		Confidence:    confidence,
		LowConfidence: confidence < constants.LowConfidenceThreshold,
		Suggestion:    res.Suggestion,
	}, nil
}

// AnalyzeBatch summarizes a set of todos. An empty batch is not an
// error; the count always equals the input length.
func (s *EnrichmentService) AnalyzeBatch(ctx context.Context, todos []dto.TodoInput) (*dto.BatchAnalysis, error) {
	if len(todos) == 0 {
		return &dto.BatchAnalysis{
			Analysis:  "No todos to analyze yet.",
			TodoCount: 0,
		}, nil
	}
	if len(todos) > s.batchLimit {
		return nil, apperrors.NewValidation(fmt.Sprintf("batch size cannot exceed %d todos", s.batchLimit))
	}

	analysis, err := s.classifier.AnalyzeBatch(ctx, todos)
	if err != nil {
		config.Logger.Errorw("batch analysis failed", "count", len(todos), "error", err)
		return nil, apperrors.ErrUpstreamUnavailable
	}

	return &dto.BatchAnalysis{
		Analysis:  analysis,
		TodoCount: len(todos),
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampPriority(p int) int {
	if p < constants.MinPriority {
		return constants.MinPriority
	}
	if p > constants.MaxPriority {
		return constants.MaxPriority
	}
	return p
}

func sanitizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
