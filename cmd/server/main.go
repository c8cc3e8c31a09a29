package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"rag-pipeline/internal/adapter/httpapi"
	"rag-pipeline/internal/di"
	"rag-pipeline/internal/infra"
	"rag-pipeline/internal/infra/config"
	"rag-pipeline/internal/infra/logger"
	"rag-pipeline/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New()
	slog.SetDefault(log)

	// The pgvector pool is optional; without it the server runs with the
	// staged retriever only.
	pool, err := infra.NewPostgresPool(context.Background(), cfg.DB)
	if err != nil {
		log.Warn("db_unavailable_running_without_index_backend", slog.String("error", err.Error()))
		pool = nil
	} else {
		defer pool.Close()
	}

	components, err := di.NewApplicationComponents(cfg, pool, log)
	if err != nil {
		log.Error("failed_to_wire_components", slog.String("error", err.Error()))
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// With a database attached, answered interactions are re-indexed in
	// the background so the vector backend stays warm.
	var indexWorker *worker.IndexWorker
	var enqueuer httpapi.IndexEnqueuer
	if components.IndexUsecase != nil {
		indexWorker = worker.NewIndexWorker(components.IndexUsecase, 0, log)
		indexWorker.Start()
		defer indexWorker.Stop()
		enqueuer = indexWorker
	}

	handler := httpapi.NewHandler(components.AnswerUsecase, enqueuer, log)
	handler.Register(e)

	e.GET("/v1/health", func(c echo.Context) error {
		status := map[string]string{"status": "ok"}
		if pool != nil {
			if err := pool.Ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable,
					map[string]string{"status": "db down", "error": err.Error()})
			}
			status["index_backend"] = "ready"
		}
		return c.JSON(http.StatusOK, status)
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Info("starting_server", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
