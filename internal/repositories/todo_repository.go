package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-assist.com/todo-assist/internal/constants"
	dto "todo-assist.com/todo-assist/internal/data_models"
	apperrors "todo-assist.com/todo-assist/internal/errors"
	model "todo-assist.com/todo-assist/internal/models"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.Status == "" {
		todo.Status = constants.StatusTodo
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).First(&todo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) List(ctx context.Context, q dto.ListQuery) ([]model.Todo, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Todo{})
	query = applyFilters(query, q)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var todos []model.Todo
	offset := (q.Page - 1) * q.PageSize
	err := query.
		Order(q.SortBy + " " + q.Order).
		Offset(offset).Limit(q.PageSize).
		Find(&todos).Error
	if err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

func applyFilters(query *gorm.DB, q dto.ListQuery) *gorm.DB {
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Priority != nil {
		query = query.Where("priority = ?", *q.Priority)
	}
	return query
}

func (r *TodoRepository) Update(ctx context.Context, todo *model.Todo) error {
	todo.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(todo).Error
}

// Delete removes the todo and its recommendation rows in one
// transaction so the audit trail never outlives its parent.
func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", id).Delete(&model.Recommendation{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Todo{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTodoNotFound
		}
		return nil
	})
}

func (r *TodoRepository) CountByStatus(ctx context.Context) (int64, map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Todo{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return 0, nil, err
	}

	byStatus := map[string]int64{
		string(constants.StatusTodo):  0,
		string(constants.StatusDoing): 0,
		string(constants.StatusDone):  0,
	}
	var total int64
	for _, row := range rows {
		byStatus[row.Status] = row.Count
		total += row.Count
	}

	return total, byStatus, nil
}
