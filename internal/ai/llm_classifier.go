package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"

	config "todo-assist.com/todo-assist/internal/configs"
	dto "todo-assist.com/todo-assist/internal/data_models"
)

// LLMClassifier runs inference through a chat model. Each call is
// bounded by the configured timeout; callers translate failures into
// the upstream-unavailable error kind.
type LLMClassifier struct {
	model   llms.Model
	timeout time.Duration
}

func NewLLMClassifier(model llms.Model, timeout time.Duration) *LLMClassifier {
	return &LLMClassifier{
		model:   model,
		timeout: timeout,
	}
}

func (c *LLMClassifier) complete(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(0.3))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}

	return resp.Choices[0].Content, nil
}

func (c *LLMClassifier) ParseTodo(ctx context.Context, text string) (*ParseResult, error) {
	started := time.Now()

	content, err := c.complete(ctx, parseSystemPrompt, fmt.Sprintf(parsePromptTemplate, text))
	if err != nil {
		return nil, err
	}

	var wire struct {
		Title         string  `json:"title"`
		Description   *string `json:"description"`
		Priority      *int    `json:"priority"`
		Category      *string `json:"category"`
		EstimatedTime *int    `json:"estimated_time"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("undecodable parse output: %w", err)
	}

	config.Logger.Infow("parsed todo",
		"title", wire.Title,
		"elapsed", time.Since(started).String(),
	)

	return &ParseResult{
		Title:         wire.Title,
		Description:   wire.Description,
		Priority:      wire.Priority,
		Category:      wire.Category,
		EstimatedTime: wire.EstimatedTime,
	}, nil
}

func (c *LLMClassifier) RecommendPriority(ctx context.Context, todo dto.TodoInput) (*PriorityResult, error) {
	currentPriority := 3
	if todo.Priority != nil {
		currentPriority = *todo.Priority
	}

	prompt := fmt.Sprintf(priorityPromptTemplate,
		todo.Title,
		stringOrEmpty(todo.Description),
		stringOrDefault(todo.Category, "Other"),
		currentPriority,
	)

	content, err := c.complete(ctx, prioritySystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var wire struct {
		RecommendedPriority int     `json:"recommended_priority"`
		Confidence          float64 `json:"confidence"`
		Reasoning           string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("undecodable priority output: %w", err)
	}

	return &PriorityResult{
		Priority:   wire.RecommendedPriority,
		Confidence: wire.Confidence,
		Reasoning:  wire.Reasoning,
	}, nil
}

func (c *LLMClassifier) Categorize(ctx context.Context, todo dto.TodoInput) (*CategoryResult, error) {
	prompt := fmt.Sprintf(categoryPromptTemplate,
		todo.Title,
		stringOrEmpty(todo.Description),
	)

	content, err := c.complete(ctx, categorySystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var wire struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("undecodable category output: %w", err)
	}

	return &CategoryResult{
		Category:   wire.Category,
		Confidence: wire.Confidence,
		Reasoning:  wire.Reasoning,
	}, nil
}

func (c *LLMClassifier) EstimateTime(ctx context.Context, todo dto.TodoInput) (*TimeResult, error) {
	prompt := fmt.Sprintf(timePromptTemplate,
		todo.Title,
		stringOrEmpty(todo.Description),
		stringOrDefault(todo.Category, "Other"),
	)

	content, err := c.complete(ctx, timeSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var wire struct {
		EstimatedMinutes int     `json:"estimated_minutes"`
		Confidence       float64 `json:"confidence"`
		Suggestion       string  `json:"suggestion"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("undecodable time output: %w", err)
	}

	return &TimeResult{
		Minutes:    wire.EstimatedMinutes,
		Confidence: wire.Confidence,
		Suggestion: wire.Suggestion,
	}, nil
}

func (c *LLMClassifier) AnalyzeBatch(ctx context.Context, todos []dto.TodoInput) (string, error) {
	summary := make([]map[string]any, 0, len(todos))
	for _, todo := range todos {
		summary = append(summary, map[string]any{
			"title":          todo.Title,
			"priority":       todo.Priority,
			"category":       todo.Category,
			"estimated_time": todo.EstimatedTime,
			"status":         todo.Status,
		})
	}

	todosJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	content, err := c.complete(ctx, batchSystemPrompt, fmt.Sprintf(batchPromptTemplate, todosJSON))
	if err != nil {
		return "", err
	}

	var wire struct {
		Analysis string `json:"analysis"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return "", fmt.Errorf("undecodable batch output: %w", err)
	}
	if wire.Analysis == "" {
		return "", errors.New("model returned empty analysis")
	}

	return wire.Analysis, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringOrDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
