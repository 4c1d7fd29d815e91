package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	config "todo-assist.com/todo-assist/internal/configs"
)

// RequestLogger tags every request with an ID and logs method, path,
// status and latency once the handler returns.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := uuid.New().String()
			c.Set("requestID", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			config.Logger.Infow("request",
				"requestID", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"clientIP", c.RealIP(),
				"latency", time.Since(start).String(),
			)

			return err
		}
	}
}
