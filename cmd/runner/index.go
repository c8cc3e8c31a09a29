package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"rag-pipeline/internal/dataset"
	"rag-pipeline/internal/infra/logger"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the pgvector chunk index from the dataset",
	RunE:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, pool, err := components(ctx, true)
	if err != nil {
		return err
	}
	defer pool.Close()

	loader := dataset.NewLoader(profile.DatasetPath, profile.BatchSize, log)

	start := time.Now()
	indexed := 0
	totalChunks := 0
	err = loader.Batches(func(batch []dataset.Record) error {
		if profile.Limit > 0 && indexed >= profile.Limit {
			return errLimitReached
		}
		if profile.Limit > 0 && indexed+len(batch) > profile.Limit {
			batch = batch[:profile.Limit-indexed]
		}
		for _, rec := range batch {
			queryCtx := logger.WithInteractionID(ctx, rec.InteractionID)
			count, err := app.IndexUsecase.Index(queryCtx, rec.InteractionID, rec.SearchResults)
			if err != nil {
				return err
			}
			indexed++
			totalChunks += count
		}
		return nil
	})
	if err != nil && err != errLimitReached {
		return err
	}

	log.Info("index_run_completed",
		slog.Int("interactions", indexed),
		slog.Int("chunks", totalChunks),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
