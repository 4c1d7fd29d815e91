package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"todo-assist.com/todo-assist/internal/cache"
	config "todo-assist.com/todo-assist/internal/configs"
	"todo-assist.com/todo-assist/internal/constants"
	dto "todo-assist.com/todo-assist/internal/data_models"
	apperrors "todo-assist.com/todo-assist/internal/errors"
	model "todo-assist.com/todo-assist/internal/models"
	repository "todo-assist.com/todo-assist/internal/repositories"
	"todo-assist.com/todo-assist/internal/validators"
)

// TodoService owns the durable todo records and the merge of
// enrichment drafts into them. Concurrent merges are not arbitrated;
// the last write wins at the store.
type TodoService struct {
	repo  *repository.TodoRepository
	recs  *repository.RecommendationRepository
	cache *cache.TodoCache
}

func NewTodoService(
	repo *repository.TodoRepository,
	recs *repository.RecommendationRepository,
	todoCache *cache.TodoCache,
) *TodoService {
	return &TodoService{
		repo:  repo,
		recs:  recs,
		cache: todoCache,
	}
}

func (s *TodoService) Create(ctx context.Context, req dto.CreateTodoRequest) (*model.Todo, error) {
	if err := validators.ValidateCreateTodoRequest(&req); err != nil {
		return nil, err
	}

	todo := &model.Todo{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Status:        constants.StatusTodo,
		Priority:      constants.DefaultPriority,
		Category:      req.Category,
		EstimatedTime: req.EstimatedTime,
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, todo)
	config.Logger.Infow("created todo", "todoID", todo.ID, "title", todo.Title)
	return todo, nil
}

func (s *TodoService) Get(ctx context.Context, id string) (*model.Todo, error) {
	if id == "" {
		return nil, apperrors.ErrTodoIDRequired
	}

	if todo, ok := s.cache.Get(ctx, id); ok {
		return todo, nil
	}

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, todo)
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, q dto.ListQuery) (*dto.ListResponse, error) {
	if err := validators.NormalizeListQuery(&q); err != nil {
		return nil, err
	}

	todos, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &dto.ListResponse{
		Total:    total,
		Items:    todos,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

func (s *TodoService) Update(ctx context.Context, id string, req dto.UpdateTodoRequest) (*model.Todo, error) {
	if err := validators.ValidateUpdateTodoRequest(&req); err != nil {
		return nil, err
	}

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		todo.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		todo.Description = req.Description
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.Category != nil {
		todo.Category = req.Category
	}
	if req.EstimatedTime != nil {
		todo.EstimatedTime = req.EstimatedTime
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, todo)
	return todo, nil
}

func (s *TodoService) UpdateStatus(ctx context.Context, id, status string) (*model.Todo, error) {
	if err := validators.ValidateStatus(status); err != nil {
		return nil, err
	}

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.Status = constants.TodoStatus(status)
	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, todo)
	config.Logger.Infow("updated todo status", "todoID", id, "status", status)
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ErrTodoIDRequired
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	config.Logger.Infow("deleted todo", "todoID", id)
	return nil
}

func (s *TodoService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	total, byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if total > 0 {
		done := byStatus[string(constants.StatusDone)]
		rate = math.Round(float64(done)/float64(total)*100) / 100
	}

	return &dto.StatsResponse{
		Total:          total,
		ByStatus:       byStatus,
		CompletionRate: rate,
	}, nil
}

func (s *TodoService) Recommendations(ctx context.Context, todoID string) ([]model.Recommendation, error) {
	if _, err := s.repo.FindByID(ctx, todoID); err != nil {
		return nil, err
	}
	return s.recs.ListByTodo(ctx, todoID)
}

// CreateFromDraft persists an accepted draft as a new todo. Populated
// draft fields become the initial values; omitted fields take the
// store defaults.
func (s *TodoService) CreateFromDraft(ctx context.Context, draft *dto.Draft) (*model.Todo, error) {
	req := dto.CreateTodoRequest{
		Title:         draft.Title,
		Description:   draft.Description,
		Priority:      draft.Priority,
		Category:      draft.Category,
		EstimatedTime: draft.EstimatedTime,
	}
	if err := validators.ValidateCreateTodoRequest(&req); err != nil {
		return nil, err
	}

	metadata := draft.AIMetadata
	metadata.Processed = true

	todo := &model.Todo{
		Title:         strings.TrimSpace(draft.Title),
		Description:   draft.Description,
		Status:        constants.StatusTodo,
		Priority:      constants.DefaultPriority,
		Category:      draft.Category,
		EstimatedTime: draft.EstimatedTime,
		AIMetadata:    &metadata,
	}
	if draft.Priority != nil {
		todo.Priority = *draft.Priority
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, todo)
	s.recordDraft(ctx, todo.ID, draft, true)
	config.Logger.Infow("created todo from draft", "todoID", todo.ID, "title", todo.Title)
	return todo, nil
}

// ApplyDraft merges an accepted draft into an existing todo. Only
// fields present in the draft overwrite the record; absent fields stay
// untouched, so re-analysis can never zero out user data.
func (s *TodoService) ApplyDraft(ctx context.Context, id string, draft *dto.Draft) (*model.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if draft.Title != "" {
		todo.Title = truncateRunes(strings.TrimSpace(draft.Title), constants.MaxTitleLength)
	}
	if draft.Description != nil {
		todo.Description = draft.Description
	}
	if draft.Priority != nil {
		todo.Priority = *draft.Priority
	}
	if draft.Category != nil {
		todo.Category = draft.Category
	}
	if draft.EstimatedTime != nil {
		todo.EstimatedTime = draft.EstimatedTime
	}

	metadata := model.AIMetadata{Processed: true}
	if todo.AIMetadata != nil {
		metadata = *todo.AIMetadata
		metadata.Processed = true
	}
	if draft.AIMetadata.PriorityConfidence > 0 {
		metadata.PriorityConfidence = draft.AIMetadata.PriorityConfidence
	}
	if draft.AIMetadata.CategoryConfidence > 0 {
		metadata.CategoryConfidence = draft.AIMetadata.CategoryConfidence
	}
	if draft.AIMetadata.TimeConfidence > 0 {
		metadata.TimeConfidence = draft.AIMetadata.TimeConfidence
	}
	todo.AIMetadata = &metadata

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, todo)
	s.recordDraft(ctx, todo.ID, draft, false)
	config.Logger.Infow("merged draft into todo", "todoID", todo.ID)
	return todo, nil
}

// recordDraft appends the audit rows for the engine-sourced values in
// a draft. The trail is advisory; failures are logged and do not fail
// the merge.
func (s *TodoService) recordDraft(ctx context.Context, todoID string, draft *dto.Draft, includeParse bool) {
	var rows []model.Recommendation

	if includeParse {
		payload, _ := json.Marshal(draft)
		rows = append(rows, model.Recommendation{
			TodoID:     todoID,
			Type:       constants.RecommendationParse,
			Payload:    string(payload),
			Confidence: maxConfidence(draft.AIMetadata),
		})
	}

	if draft.Priority != nil && draft.AIMetadata.PriorityConfidence > 0 {
		payload, _ := json.Marshal(map[string]any{
			"recommended_priority": *draft.Priority,
			"reasoning":            draft.PriorityReasoning,
		})
		rows = append(rows, model.Recommendation{
			TodoID:     todoID,
			Type:       constants.RecommendationPriority,
			Payload:    string(payload),
			Confidence: draft.AIMetadata.PriorityConfidence,
		})
	}
	if draft.Category != nil && draft.AIMetadata.CategoryConfidence > 0 {
		payload, _ := json.Marshal(map[string]any{
			"category": *draft.Category,
		})
		rows = append(rows, model.Recommendation{
			TodoID:     todoID,
			Type:       constants.RecommendationCategory,
			Payload:    string(payload),
			Confidence: draft.AIMetadata.CategoryConfidence,
		})
	}
	if draft.EstimatedTime != nil && draft.AIMetadata.TimeConfidence > 0 {
		payload, _ := json.Marshal(map[string]any{
			"estimated_minutes": *draft.EstimatedTime,
			"suggestion":        draft.TimeSuggestion,
		})
		rows = append(rows, model.Recommendation{
			TodoID:     todoID,
			Type:       constants.RecommendationTime,
			Payload:    string(payload),
			Confidence: draft.AIMetadata.TimeConfidence,
		})
	}

	for i := range rows {
		if err := s.recs.Create(ctx, &rows[i]); err != nil {
			config.Logger.Warnw("failed to record recommendation",
				"todoID", todoID,
				"type", rows[i].Type,
				"error", err,
			)
		}
	}
}

func maxConfidence(m model.AIMetadata) float64 {
	max := m.PriorityConfidence
	if m.CategoryConfidence > max {
		max = m.CategoryConfidence
	}
	if m.TimeConfidence > max {
		max = m.TimeConfidence
	}
	return max
}
