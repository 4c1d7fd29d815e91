package model

import (
	"time"

	"todo-assist.com/todo-assist/internal/constants"
)

// AIMetadata records per-field confidence for values the enrichment
// engine inferred. Confidences are in [0,1]; zero means the field was
// not inferred.
type AIMetadata struct {
	PriorityConfidence float64 `json:"priority_confidence"`
	CategoryConfidence float64 `json:"category_confidence"`
	TimeConfidence     float64 `json:"time_confidence"`
	Processed          bool    `json:"processed"`
}

type Todo struct {
	ID            string               `gorm:"primaryKey;size:36" json:"id"`
	Title         string               `gorm:"size:255;not null" json:"title"`
	Description   *string              `gorm:"type:text" json:"description"`
	Status        constants.TodoStatus `gorm:"type:varchar(10);not null;default:TODO" json:"status"`
	Priority      int                  `gorm:"not null;default:3" json:"priority"`
	Category      *string              `gorm:"size:50" json:"category"`
	EstimatedTime *int                 `json:"estimated_time"`
	AIMetadata    *AIMetadata          `gorm:"serializer:json" json:"ai_metadata"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}
