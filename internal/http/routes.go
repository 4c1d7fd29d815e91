package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "todo-assist.com/todo-assist/internal/http/middlewares"
)

func Register(e *echo.Echo, todos *TodoHandler, ai *AIHandler, rateLimitPerMinute int) {
	e.Use(middleware.RequestLogger())
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/health", ai.Health)

	e.POST("/todos", todos.Create)
	e.GET("/todos", todos.List)
	e.GET("/todos/stats/summary", todos.Stats)
	e.GET("/todos/insights", todos.Insights)
	e.POST("/todos/ai-create", todos.AICreate)
	e.GET("/todos/:id", todos.Get)
	e.PUT("/todos/:id", todos.Update)
	e.PATCH("/todos/:id/status", todos.UpdateStatus)
	e.DELETE("/todos/:id", todos.Delete)
	e.GET("/todos/:id/recommendations", todos.Recommendations)
	e.POST("/todos/:id/enrich", todos.Enrich)

	e.POST("/ai/parse", ai.Parse)
	e.POST("/ai/recommend-priority", ai.RecommendPriority)
	e.POST("/ai/categorize", ai.Categorize)
	e.POST("/ai/estimate-time", ai.EstimateTime)
	e.POST("/ai/analyze-batch", ai.AnalyzeBatch)
	e.GET("/ai/capabilities", ai.Capabilities)
}
