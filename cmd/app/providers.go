package main

import (
	"context"
	"log/slog"

	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
	"github.com/yanqian/nutrition-recommender/internal/infra/config"
	"github.com/yanqian/nutrition-recommender/internal/infra/foodsource"
)

func provideRecommenderConfig(cfg *config.Config) recommender.Config {
	return recommender.Config{
		TopK:              cfg.Recommender.TopK,
		MaxTopK:           cfg.Recommender.MaxTopK,
		ParallelThreshold: cfg.Recommender.ParallelThreshold,
		Workers:           cfg.Recommender.Workers,
	}
}

// provideFoodTable loads the table once; a failure aborts startup.
func provideFoodTable(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*recommender.Table, error) {
	return foodsource.Open(ctx, cfg.Dataset, logger)
}
