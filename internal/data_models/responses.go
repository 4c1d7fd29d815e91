package dto

import (
	model "todo-assist.com/todo-assist/internal/models"
)

// Draft is the ephemeral enrichment result. Nil fields were not
// inferred and must fall back to the store defaults when persisted.
type Draft struct {
	Title             string           `json:"title"`
	Description       *string          `json:"description"`
	Priority          *int             `json:"priority"`
	Category          *string          `json:"category"`
	EstimatedTime     *int             `json:"estimated_time"`
	PriorityReasoning string           `json:"priority_reasoning,omitempty"`
	TimeSuggestion    string           `json:"time_suggestion,omitempty"`
	AIMetadata        model.AIMetadata `json:"ai_metadata"`
}

type PrioritySuggestion struct {
	Priority      int     `json:"recommended_priority"`
	Confidence    float64 `json:"confidence"`
	LowConfidence bool    `json:"low_confidence"`
	Reasoning     string  `json:"reasoning"`
}

type CategorySuggestion struct {
	Category      string  `json:"category"`
	Confidence    float64 `json:"confidence"`
	LowConfidence bool    `json:"low_confidence"`
	Reasoning     string  `json:"reasoning"`
}

type TimeEstimate struct {
	Minutes       int     `json:"estimated_minutes"`
	Confidence    float64 `json:"confidence"`
	LowConfidence bool    `json:"low_confidence"`
	Suggestion    string  `json:"suggestion"`
}

type BatchAnalysis struct {
	Analysis  string `json:"analysis"`
	TodoCount int    `json:"todo_count"`
}

type ListResponse struct {
	Total    int64        `json:"total"`
	Items    []model.Todo `json:"items"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

type StatsResponse struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	CompletionRate float64          `json:"completion_rate"`
}
