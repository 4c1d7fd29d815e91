package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "todo-assist.com/todo-assist/internal/models"
)

type RecommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Create appends an audit row. Rows are never updated afterwards.
func (r *RecommendationRepository) Create(ctx context.Context, rec *model.Recommendation) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RecommendationRepository) ListByTodo(ctx context.Context, todoID string) ([]model.Recommendation, error) {
	var recs []model.Recommendation
	err := r.db.WithContext(ctx).
		Where("todo_id = ?", todoID).
		Order("created_at asc").
		Find(&recs).Error
	return recs, err
}
