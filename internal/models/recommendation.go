package model

import (
	"time"

	"todo-assist.com/todo-assist/internal/constants"
)

// Recommendation is an append-only audit row written when an
// engine-sourced value is accepted into a todo. Rows are removed
// together with their parent todo.
type Recommendation struct {
	ID         string                       `gorm:"primaryKey;size:36" json:"id"`
	TodoID     string                       `gorm:"size:36;index;not null" json:"todo_id"`
	Type       constants.RecommendationType `gorm:"column:recommendation_type;type:varchar(20);not null" json:"recommendation_type"`
	Payload    string                       `gorm:"type:text;not null" json:"payload"`
	Confidence float64                      `gorm:"not null" json:"confidence"`
	CreatedAt  time.Time                    `json:"created_at"`
}
