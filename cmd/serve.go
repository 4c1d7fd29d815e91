package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"github.com/spf13/cobra"

	"todo-assist.com/todo-assist/internal/ai"
	"todo-assist.com/todo-assist/internal/cache"
	config "todo-assist.com/todo-assist/internal/configs"
	httpapi "todo-assist.com/todo-assist/internal/http"
	repository "todo-assist.com/todo-assist/internal/repositories"
	"todo-assist.com/todo-assist/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the todo CRUD API and the AI enrichment endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		if err := config.InitLogger(); err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer config.Logger.Sync()

		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		var redisClient rueidis.Client
		if cfg.RedisAddr != "" {
			redisClient = config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
		} else {
			config.Logger.Info("redis not configured, todo cache disabled")
		}

		chatModel, err := ai.NewChatModel(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("failed to create chat model: %v", err)
		}
		classifier := ai.NewLLMClassifier(chatModel, time.Duration(cfg.AITimeoutSeconds)*time.Second)

		todoRepo := repository.NewTodoRepository(database)
		recRepo := repository.NewRecommendationRepository(database)
		todoCache := cache.NewTodoCache(redisClient, time.Duration(cfg.CacheTTLSeconds)*time.Second)

		todoService := services.NewTodoService(todoRepo, recRepo, todoCache)
		enrichmentService := services.NewEnrichmentService(classifier, cfg.BatchAnalysisLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		todoHandler := httpapi.NewTodoHandler(todoService, enrichmentService)
		aiHandler := httpapi.NewAIHandler(enrichmentService, cfg.OpenAIAPIKey != "")
		httpapi.Register(e, todoHandler, aiHandler, cfg.RateLimit)

		go func() {
			config.Logger.Infow("HTTP server listening", "addr", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				config.Logger.Infow("server stopped", "error", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		config.Logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
