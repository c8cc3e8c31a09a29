package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"rag-pipeline/internal/di"
	"rag-pipeline/internal/infra"
	"rag-pipeline/internal/infra/config"
	"rag-pipeline/internal/infra/logger"
)

var (
	profilePath string
	cfg         *config.Config
	profile     *config.Profile
	log         *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Batch tools for the answer pipeline",
	Long: `runner drives the answer pipeline over a dataset file.

Example usage:
  runner predict --profile run.yaml    # Answer every query, write predictions
  runner index --profile run.yaml      # Build the pgvector chunk index`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg = config.Load()
		log = logger.New()
		slog.SetDefault(log)
		profile, err = config.LoadProfile(profilePath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "run.yaml", "run profile YAML file")
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(indexCmd)
}

// openPool connects to the database, required by the index backend and the
// index command.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	return infra.NewPostgresPool(ctx, cfg.DB)
}

// components wires the application, with or without a database pool.
func components(ctx context.Context, needDB bool) (*di.ApplicationComponents, *pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	if needDB || profile.RetrieverBackend == "index" {
		p, err := openPool(ctx)
		if err != nil {
			return nil, nil, err
		}
		pool = p
	}

	app, err := di.NewApplicationComponents(cfg, pool, log)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, nil, err
	}
	if profile.RetrieverBackend == "index" {
		if err := app.UseIndexRetriever(cfg, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return app, pool, nil
}
