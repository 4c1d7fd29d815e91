package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todo-assist.com/todo-assist/internal/cache"
	"todo-assist.com/todo-assist/internal/constants"
	dto "todo-assist.com/todo-assist/internal/data_models"
	apperrors "todo-assist.com/todo-assist/internal/errors"
	model "todo-assist.com/todo-assist/internal/models"
	repository "todo-assist.com/todo-assist/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.Todo{}, &model.Recommendation{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newTestTodoService(t *testing.T) (*TodoService, *repository.RecommendationRepository) {
	db := setupTestDB(t)
	repo := repository.NewTodoRepository(db)
	recs := repository.NewRecommendationRepository(db)
	service := NewTodoService(repo, recs, cache.NewTodoCache(nil, time.Minute))
	return service, recs
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestTodoService_CreateDefaults(t *testing.T) {
	service, _ := newTestTodoService(t)
	ctx := context.Background()

	todo, err := service.Create(ctx, dto.CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	if todo.ID == "" {
		t.Error("expected todo ID to be set")
	}
	if todo.Status != constants.StatusTodo {
		t.Errorf("expected status %s, got %s", constants.StatusTodo, todo.Status)
	}
	if todo.Priority != constants.DefaultPriority {
		t.Errorf("expected priority %d, got %d", constants.DefaultPriority, todo.Priority)
	}
	if todo.Category != nil {
		t.Errorf("expected no category, got %v", *todo.Category)
	}

	fetched, err := service.Get(ctx, todo.ID)
	if err != nil {
		t.Fatalf("failed to get todo: %v", err)
	}
	if fetched.Title != "Buy milk" {
		t.Errorf("expected title to round-trip, got %q", fetched.Title)
	}
}

func TestTodoService_CreateRejectsInvalidPriority(t *testing.T) {
	service, _ := newTestTodoService(t)
	ctx := context.Background()

	for _, p := range []int{0, 6, -1} {
		_, err := service.Create(ctx, dto.CreateTodoRequest{
			Title:    "Bad priority",
			Priority: intPtr(p),
		})
		if !apperrors.IsValidation(err) {
			t.Errorf("priority %d: expected validation error, got %v", p, err)
		}
	}
}

func TestTodoService_UpdatePartial(t *testing.T) {
	service, _ := newTestTodoService(t)
	ctx := context.Background()

	todo, err := service.Create(ctx, dto.CreateTodoRequest{
		Title:    "Write report",
		Category: strPtr("Work"),
	})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	updated, err := service.Update(ctx, todo.ID, dto.UpdateTodoRequest{
		Description: strPtr("Quarterly figures"),
	})
	if err != nil {
		t.Fatalf("failed to update todo: %v", err)
	}

	if updated.Title != "Write report" {
		t.Errorf("expected title untouched, got %q", updated.Title)
	}
	if updated.Category == nil || *updated.Category != "Work" {
		t.Errorf("expected category untouched, got %v", updated.Category)
	}
	if updated.Description == nil || *updated.Description != "Quarterly figures" {
		t.Errorf("expected description set, got %v", updated.Description)
	}
}

func TestTodoService_UpdateRejectsInvalidPriority(t *testing.T) {
	service, _ := newTestTodoService(t)
	ctx := context.Background()

	todo, err := service.Create(ctx, dto.CreateTodoRequest{Title: "Fix leak"})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	_, err = service.Update(ctx, todo.ID, dto.UpdateTodoRequest{Priority: intPtr(9)})
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	fetched, _ := service.Get(ctx, todo.ID)
	if fetched.Priority != constants.DefaultPriority {
		t.Errorf("expected priority unchanged, got %d", fetched.Priority)
	}
}

func TestTodoService_UpdateStatus(t *testing.T) {
	service, _ := newTestTodoService(t)
	ctx := context.Background()

	todo, err := service.Create(ctx, dto.CreateTodoRequest{Title: "Walk the dog"})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	done, err := service.UpdateStatus(ctx, todo.ID, "DONE")
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	if done.Status != constants.StatusDone {
		t.Errorf("expected DONE, got %s", done.Status)
	}

	// Reopening a finished todo is allowed.
	reopened, err := service.UpdateStatus(ctx, todo.ID, "TODO")
	if err != nil {
		t.Fatalf("failed to reopen todo: %v", err)
	}
	if reopened.Status != constants.StatusTodo {
		t.Errorf("expected TODO, got %s", reopened.Status)
	}

	_, err = service.UpdateStatus(ctx, todo.ID, "ARCHIVED")
	if !errors.Is(err, apperrors.ErrInvalidStatus) {
		t.Errorf("expected invalid status error, got %v", err)
	}
}

func TestTodoService_GetMissing(t *testing.T) {
	service, _ := newTestTodoService(t)

	_, err := service.Get(context.Background(), "no-such-id")
	if !errors.Is(err, apperrors.ErrTodoNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestTodoService_DeleteCascadesRecommendations(t *testing.T) {
	service, recs := newTestTodoService(t)
	ctx := context.Background()

	todo, err := service.Create(ctx, dto.CreateTodoRequest{Title: "Plan sprint"})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	draft := &dto.Draft{
		Priority: intPtr(4),
		AIMetadata: model.AIMetadata{
			PriorityConfidence: 0.9,
		},
	}
	if _, err := service.ApplyDraft(ctx, todo.ID, draft); err != nil {
		t.Fatalf("failed to apply draft: %v", err)
	}

	rows, err := recs.ListByTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("failed to list recommendations: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected recommendation rows before delete")
	}

	if err := service.Delete(ctx, todo.ID); err != nil {
		t.Fatalf("failed to delete todo: %v", err)
	}

	if _, err := service.Get(ctx, todo.ID); !errors.Is(err, apperrors.ErrTodoNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}

	rows, err = recs.ListByTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("failed to list recommendations: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected recommendations removed with todo, got %d rows", len(rows))
	}

	if err := service.Delete(ctx, todo.ID); !errors.Is(err, apperrors.ErrTodoNotFound) {
		t.Errorf("expected not found for second delete, got %v", err)
	}
}

func TestTodoService_ApplyDraftPartialMerge(t *testing.T) {
	service, _ := newTestTodoService(t)
	ctx := context.Background()

	todo, err := service.Create(ctx, dto.CreateTodoRequest{
		Title:       "Review budget",
		Description: strPtr("Check the Q3 numbers"),
		Category:    strPtr("Finance"),
	})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	draft := &dto.Draft{
		Priority:      intPtr(4),
		EstimatedTime: intPtr(60),
		AIMetadata: model.AIMetadata{
			PriorityConfidence: 0.85,
			TimeConfidence:     0.8,
		},
	}
	merged, err := service.ApplyDraft(ctx, todo.ID, draft)
	if err != nil {
		t.Fatalf("failed to apply draft: %v", err)
	}

	if merged.Title != "Review budget" {
		t.Errorf("expected title preserved, got %q", merged.Title)
	}
	if merged.Description == nil || *merged.Description != "Check the Q3 numbers" {
		t.Errorf("expected description preserved, got %v", merged.Description)
	}
	if merged.Category == nil || *merged.Category != "Finance" {
		t.Errorf("expected category preserved, got %v", merged.Category)
	}
	if merged.Priority != 4 {
		t.Errorf("expected priority 4, got %d", merged.Priority)
	}
	if merged.EstimatedTime == nil || *merged.EstimatedTime != 60 {
		t.Errorf("expected estimate 60, got %v", merged.EstimatedTime)
	}
	if merged.AIMetadata == nil || !merged.AIMetadata.Processed {
		t.Error("expected metadata marked processed")
	}
	if merged.AIMetadata.PriorityConfidence != 0.85 {
		t.Errorf("expected priority confidence 0.85, got %v", merged.AIMetadata.PriorityConfidence)
	}

	// A second draft overwrites only what it carries.
	second := &dto.Draft{
		Category: strPtr("Work"),
		AIMetadata: model.AIMetadata{
			CategoryConfidence: 0.9,
		},
	}
	merged, err = service.ApplyDraft(ctx, todo.ID, second)
	if err != nil {
		t.Fatalf("failed to apply second draft: %v", err)
	}
	if merged.Category == nil || *merged.Category != "Work" {
		t.Errorf("expected category overwritten, got %v", merged.Category)
	}
	if merged.Priority != 4 {
		t.Errorf("expected prior priority kept, got %d", merged.Priority)
	}
	if merged.AIMetadata.PriorityConfidence != 0.85 {
		t.Errorf("expected prior priority confidence kept, got %v", merged.AIMetadata.PriorityConfidence)
	}
	if merged.AIMetadata.CategoryConfidence != 0.9 {
		t.Errorf("expected new category confidence, got %v", merged.AIMetadata.CategoryConfidence)
	}
}

func TestTodoService_CreateFromDraft(t *testing.T) {
	service, recs := newTestTodoService(t)
	ctx := context.Background()

	draft := &dto.Draft{
		Title:    "Schedule annual checkup",
		Category: strPtr("Health"),
		Priority: intPtr(2),
		AIMetadata: model.AIMetadata{
			PriorityConfidence: 0.75,
			CategoryConfidence: 0.9,
		},
	}
	todo, err := service.CreateFromDraft(ctx, draft)
	if err != nil {
		t.Fatalf("failed to create from draft: %v", err)
	}

	if todo.Status != constants.StatusTodo {
		t.Errorf("expected status TODO, got %s", todo.Status)
	}
	if todo.Priority != 2 {
		t.Errorf("expected priority 2, got %d", todo.Priority)
	}
	if todo.AIMetadata == nil || !todo.AIMetadata.Processed {
		t.Error("expected metadata marked processed")
	}

	rows, err := recs.ListByTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("failed to list recommendations: %v", err)
	}
	// One parse row plus one row per confident field.
	if len(rows) != 3 {
		t.Fatalf("expected 3 recommendation rows, got %d", len(rows))
	}

	types := make(map[constants.RecommendationType]bool)
	for _, row := range rows {
		types[row.Type] = true
	}
	for _, want := range []constants.RecommendationType{
		constants.RecommendationParse,
		constants.RecommendationPriority,
		constants.RecommendationCategory,
	} {
		if !types[want] {
			t.Errorf("expected a %s recommendation row", want)
		}
	}
}

func TestTodoService_CreateFromDraftRejectsEmptyTitle(t *testing.T) {
	service, _ := newTestTodoService(t)

	_, err := service.CreateFromDraft(context.Background(), &dto.Draft{Title: "  "})
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestTodoService_Stats(t *testing.T) {
	service, _ := newTestTodoService(t)
	ctx := context.Background()

	stats, err := service.Stats(ctx)
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats.Total != 0 || stats.CompletionRate != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	var ids []string
	for _, title := range []string{"One", "Two", "Three"} {
		todo, err := service.Create(ctx, dto.CreateTodoRequest{Title: title})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}
		ids = append(ids, todo.ID)
	}
	if _, err := service.UpdateStatus(ctx, ids[0], "DONE"); err != nil {
		t.Fatalf("failed to mark done: %v", err)
	}
	if _, err := service.UpdateStatus(ctx, ids[1], "DOING"); err != nil {
		t.Fatalf("failed to mark doing: %v", err)
	}

	stats, err = service.Stats(ctx)
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.ByStatus["DONE"] != 1 || stats.ByStatus["DOING"] != 1 || stats.ByStatus["TODO"] != 1 {
		t.Errorf("unexpected status counts: %v", stats.ByStatus)
	}
	if stats.CompletionRate != 0.33 {
		t.Errorf("expected completion rate 0.33, got %v", stats.CompletionRate)
	}
}

func TestTodoService_ListFiltersAndPagination(t *testing.T) {
	service, _ := newTestTodoService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		req := dto.CreateTodoRequest{Title: "Work item", Category: strPtr("Work")}
		if i%2 == 0 {
			req.Category = strPtr("Personal")
		}
		if _, err := service.Create(ctx, req); err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}
	}

	res, err := service.List(ctx, dto.ListQuery{Category: "Work"})
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("expected 2 work todos, got %d", res.Total)
	}

	res, err = service.List(ctx, dto.ListQuery{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if res.Total != 5 {
		t.Errorf("expected total 5, got %d", res.Total)
	}
	if len(res.Items) != 2 {
		t.Errorf("expected 2 items on page, got %d", len(res.Items))
	}

	_, err = service.List(ctx, dto.ListQuery{Status: "BOGUS"})
	if !errors.Is(err, apperrors.ErrInvalidStatus) {
		t.Errorf("expected invalid status error, got %v", err)
	}

	_, err = service.List(ctx, dto.ListQuery{Category: "Chores"})
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for unknown category, got %v", err)
	}
}

func TestTodoService_RecommendationsRequireTodo(t *testing.T) {
	service, _ := newTestTodoService(t)

	_, err := service.Recommendations(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrTodoNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
