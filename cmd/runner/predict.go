package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"rag-pipeline/internal/dataset"
	"rag-pipeline/internal/infra/logger"
	"rag-pipeline/internal/usecase"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Answer every dataset query and write predictions",
	RunE:  runPredict,
}

func runPredict(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, pool, err := components(ctx, false)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	skip := 0
	var checkpoints *dataset.CheckpointManager
	if profile.CheckpointPath != "" {
		checkpoints = dataset.NewCheckpointManager(profile.CheckpointPath)
		if err := checkpoints.Lock(); err != nil {
			return err
		}
		defer func() { _ = checkpoints.Unlock() }()
		cp, err := checkpoints.Load()
		if err != nil {
			return err
		}
		skip = cp.ProcessedCount
		if skip > 0 {
			log.Info("resuming_from_checkpoint",
				slog.Int("processed", skip),
				slog.String("last_interaction_id", cp.LastInteractionID))
		}
	}

	var writer *dataset.PredictionWriter
	if skip > 0 {
		writer, err = dataset.NewPredictionAppender(profile.OutputPath)
	} else {
		writer, err = dataset.NewPredictionWriter(profile.OutputPath)
	}
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	loader := dataset.NewLoader(profile.DatasetPath, profile.BatchSize, log)

	start := time.Now()
	processed := skip
	skipped := 0
	batchNum := 0
	err = loader.Batches(func(batch []dataset.Record) error {
		if skipped < skip {
			n := min(skip-skipped, len(batch))
			skipped += n
			batch = batch[n:]
			if len(batch) == 0 {
				return nil
			}
		}
		if profile.Limit > 0 && processed >= profile.Limit {
			return errLimitReached
		}
		if profile.Limit > 0 && processed+len(batch) > profile.Limit {
			batch = batch[:profile.Limit-processed]
		}
		batchNum++
		batchStart := time.Now()
		batchCtx := logger.WithBatchID(ctx, batchNum)

		answers := make([]string, len(batch))
		g, gctx := errgroup.WithContext(batchCtx)
		g.SetLimit(len(batch))
		for i, rec := range batch {
			g.Go(func() error {
				queryCtx := logger.WithInteractionID(gctx, rec.InteractionID)
				answers[i] = app.AnswerUsecase.Answer(queryCtx, usecase.AnswerInput{
					InteractionID:  rec.InteractionID,
					Query:          rec.Query,
					QueryTime:      rec.QueryTime,
					SearchResults:  rec.SearchResults,
					DomainHint:     rec.Domain,
					VolatilityHint: rec.StaticOrDynamic,
				})
				return nil
			})
		}
		_ = g.Wait()

		for i, rec := range batch {
			if err := writer.Write(dataset.Prediction{
				InteractionID: rec.InteractionID,
				Query:         rec.Query,
				Prediction:    answers[i],
				Answer:        rec.Answer,
			}); err != nil {
				return err
			}
		}
		processed += len(batch)
		if checkpoints != nil {
			if err := checkpoints.Save(dataset.Checkpoint{
				LastInteractionID: batch[len(batch)-1].InteractionID,
				ProcessedCount:    processed,
			}); err != nil {
				return err
			}
		}
		log.Info("batch_completed",
			slog.Int("batch", batchNum),
			slog.Int("processed", processed),
			slog.Int64("duration_ms", time.Since(batchStart).Milliseconds()))
		return nil
	})
	if err != nil && err != errLimitReached {
		return err
	}
	if checkpoints != nil {
		if err := checkpoints.Reset(); err != nil {
			return err
		}
	}

	log.Info("prediction_run_completed",
		slog.Int("total", processed),
		slog.String("output", profile.OutputPath),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// errLimitReached stops the batch iteration once the profile limit is hit.
var errLimitReached = errStop("query limit reached")

type errStop string

func (e errStop) Error() string { return string(e) }
