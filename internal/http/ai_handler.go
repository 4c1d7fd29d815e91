package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"todo-assist.com/todo-assist/internal/constants"
	dto "todo-assist.com/todo-assist/internal/data_models"
	"todo-assist.com/todo-assist/internal/services"
)

type AIHandler struct {
	enrichment *services.EnrichmentService
	configured bool
}

func NewAIHandler(enrichment *services.EnrichmentService, configured bool) *AIHandler {
	return &AIHandler{
		enrichment: enrichment,
		configured: configured,
	}
}

func (h *AIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":        "healthy",
		"service":       "todo-assist",
		"timestamp":     time.Now().UTC(),
		"ai_configured": h.configured,
	})
}

func (h *AIHandler) Parse(c echo.Context) error {
	var req dto.ParseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	draft, err := h.enrichment.Parse(c.Request().Context(), req.Text)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"todo":    draft,
	})
}

func (h *AIHandler) RecommendPriority(c echo.Context) error {
	var req dto.SuggestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	suggestion, err := h.enrichment.RecommendPriority(c.Request().Context(), req.Todo)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"recommendation": suggestion,
	})
}

func (h *AIHandler) Categorize(c echo.Context) error {
	var req dto.SuggestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	classification, err := h.enrichment.Categorize(c.Request().Context(), req.Todo)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"classification": classification,
	})
}

func (h *AIHandler) EstimateTime(c echo.Context) error {
	var req dto.SuggestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	estimation, err := h.enrichment.EstimateTime(c.Request().Context(), req.Todo)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"estimation": estimation,
	})
}

func (h *AIHandler) AnalyzeBatch(c echo.Context) error {
	var req dto.BatchAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	analysis, err := h.enrichment.AnalyzeBatch(c.Request().Context(), req.Todos)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"analysis":   analysis.Analysis,
		"todo_count": analysis.TodoCount,
	})
}

func (h *AIHandler) Capabilities(c echo.Context) error {
	priorityLevels := make(map[string]string, len(constants.PriorityLabels))
	for level, label := range constants.PriorityLabels {
		priorityLevels[strconv.Itoa(level)] = label
	}

	return c.JSON(http.StatusOK, echo.Map{
		"capabilities": echo.Map{
			"parse":              "Convert natural language to structured todos",
			"recommend_priority": "Suggest priority levels based on content",
			"categorize":         "Classify todos into categories",
			"estimate_time":      "Estimate time required for tasks",
			"analyze_batch":      "Provide insights on multiple todos",
		},
		"categories":      constants.Categories,
		"priority_levels": priorityLevels,
	})
}
