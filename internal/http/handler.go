package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "todo-assist.com/todo-assist/internal/data_models"
	apperrors "todo-assist.com/todo-assist/internal/errors"
	model "todo-assist.com/todo-assist/internal/models"
	"todo-assist.com/todo-assist/internal/services"
)

type TodoHandler struct {
	todoService *services.TodoService
	enrichment  *services.EnrichmentService
}

func NewTodoHandler(todoService *services.TodoService, enrichment *services.EnrichmentService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		enrichment:  enrichment,
	}
}

// httpError maps service errors onto HTTP responses without leaking
// internals; anything unrecognized becomes a plain 500.
func httpError(err error) error {
	code := apperrors.StatusCode(err)
	if code == http.StatusInternalServerError {
		return echo.NewHTTPError(code, "internal error")
	}
	return echo.NewHTTPError(code, err.Error())
}

func (h *TodoHandler) Create(c echo.Context) error {
	var req dto.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	todo, err := h.todoService.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, todo)
}

func (h *TodoHandler) Get(c echo.Context) error {
	todo, err := h.todoService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) List(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return httpError(err)
	}

	resp, err := h.todoService.List(c.Request().Context(), *q)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func bindListQuery(c echo.Context) (*dto.ListQuery, error) {
	q := dto.ListQuery{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		SortBy:   c.QueryParam("sort_by"),
		Order:    c.QueryParam("order"),
	}

	var err error
	if q.Page, err = queryInt(c, "page", 1); err != nil {
		return nil, err
	}
	if q.PageSize, err = queryInt(c, "page_size", 20); err != nil {
		return nil, err
	}

	if raw := c.QueryParam("priority"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.NewValidation("priority filter must be an integer")
		}
		q.Priority = &p
	}

	return &q, nil
}

func queryInt(c echo.Context, name string, defaultVal int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidation(name + " must be an integer")
	}
	return v, nil
}

func (h *TodoHandler) Update(c echo.Context) error {
	var req dto.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	todo, err := h.todoService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) UpdateStatus(c echo.Context) error {
	var req dto.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	todo, err := h.todoService.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) Delete(c echo.Context) error {
	if err := h.todoService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TodoHandler) Stats(c echo.Context) error {
	stats, err := h.todoService.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *TodoHandler) Recommendations(c echo.Context) error {
	recs, err := h.todoService.Recommendations(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":           len(recs),
		"recommendations": recs,
	})
}

// AICreate parses free text into a draft and persists it immediately.
func (h *TodoHandler) AICreate(c echo.Context) error {
	var req dto.ParseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	ctx := c.Request().Context()

	draft, err := h.enrichment.Parse(ctx, req.Text)
	if err != nil {
		return httpError(err)
	}

	todo, err := h.todoService.CreateFromDraft(ctx, draft)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"todo":  todo,
		"draft": draft,
	})
}

// Enrich re-analyzes an existing todo and merges the confident
// suggestions back into it.
func (h *TodoHandler) Enrich(c echo.Context) error {
	ctx := c.Request().Context()

	todo, err := h.todoService.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	draft, err := h.enrichment.Enrich(ctx, todoInput(todo))
	if err != nil {
		return httpError(err)
	}

	updated, err := h.todoService.ApplyDraft(ctx, todo.ID, draft)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"todo":  updated,
		"draft": draft,
	})
}

// Insights runs the batch analysis over the stored todos.
func (h *TodoHandler) Insights(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.todoService.List(ctx, dto.ListQuery{PageSize: 100})
	if err != nil {
		return httpError(err)
	}

	inputs := make([]dto.TodoInput, 0, len(resp.Items))
	for i := range resp.Items {
		inputs = append(inputs, todoInput(&resp.Items[i]))
	}

	analysis, err := h.enrichment.AnalyzeBatch(ctx, inputs)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"analysis":   analysis.Analysis,
		"todo_count": analysis.TodoCount,
	})
}

func todoInput(todo *model.Todo) dto.TodoInput {
	priority := todo.Priority
	return dto.TodoInput{
		Title:         todo.Title,
		Description:   todo.Description,
		Priority:      &priority,
		Category:      todo.Category,
		EstimatedTime: todo.EstimatedTime,
		Status:        string(todo.Status),
	}
}
