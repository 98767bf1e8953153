//go:build wireinject
// +build wireinject

package main

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/yanqian/nutrition-recommender/internal/bootstrap"
	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
	"github.com/yanqian/nutrition-recommender/internal/infra/config"
	httpiface "github.com/yanqian/nutrition-recommender/internal/interface/http"
)

var domainSet = wire.NewSet(
	config.Load,
	provideRecommenderConfig,
	provideFoodTable,
	recommender.NewService,
)

func initializeApp(ctx context.Context, logger *slog.Logger) (*bootstrap.App, error) {
	wire.Build(
		domainSet,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}

func initializeService(ctx context.Context, logger *slog.Logger) (recommender.Service, error) {
	wire.Build(domainSet)
	return nil, nil
}
