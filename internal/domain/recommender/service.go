package recommender

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yanqian/nutrition-recommender/internal/domain/nutrition"
	apperrors "github.com/yanqian/nutrition-recommender/pkg/errors"
	"github.com/yanqian/nutrition-recommender/pkg/metrics"
)

// Service exposes calorie estimation and food recommendation.
type Service interface {
	Estimate(ctx context.Context, req Request) (Estimate, error)
	Recommend(ctx context.Context, req Request) (Response, error)
	Dataset() DatasetInfo
}

// DatasetInfo summarizes the table the service ranks against.
type DatasetInfo struct {
	Source   string    `json:"source"`
	Foods    int       `json:"foods"`
	LoadedAt time.Time `json:"loadedAt"`
}

type service struct {
	cfg    Config
	table  *Table
	ranker Ranker
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the recommender domain around a loaded table.
func NewService(cfg Config, table *Table, logger *slog.Logger) Service {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	return &service{
		cfg:    cfg,
		table:  table,
		ranker: NewRanker(cfg),
		logger: logger.With("component", "recommender.service"),
		now:    time.Now,
	}
}

func (s *service) Dataset() DatasetInfo {
	return DatasetInfo{Source: s.table.Source(), Foods: s.table.Len(), LoadedAt: s.table.LoadedAt()}
}

func (s *service) Estimate(_ context.Context, req Request) (Estimate, error) {
	profile, err := nutrition.NewProfile(req.Sex, req.AgeYears, req.WeightKg, req.HeightCm, req.ActivityLevel)
	if err != nil {
		return Estimate{}, err
	}
	calories, err := nutrition.ComputeDailyCalories(profile)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		BMR:            nutrition.BMR(profile),
		CaloriesNeeded: calories,
		Targets:        nutrition.DeriveMacroTargets(calories),
	}, nil
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	k, err := s.resolveTopK(req.TopK)
	if err != nil {
		return Response{}, err
	}
	est, err := s.Estimate(ctx, req)
	if err != nil {
		return Response{}, err
	}

	started := s.now()
	records := s.table.Records()
	if len(records) == 0 {
		s.logger.Warn("food table is empty, returning no recommendations", "dataset", s.table.Source())
	}
	ranked, workers, err := s.ranker.Rank(ctx, est.Targets, records, k)
	if err != nil {
		return Response{}, err
	}
	stats := metrics.RankStats{
		Candidates: len(records),
		Returned:   len(ranked),
		Workers:    workers,
		DurationMs: s.now().Sub(started).Milliseconds(),
	}
	s.logger.Info("recommendations ranked",
		"calories", est.CaloriesNeeded,
		"candidates", stats.Candidates,
		"returned", stats.Returned,
		"workers", stats.Workers,
	)

	return Response{
		CaloriesNeeded:  est.CaloriesNeeded,
		BMR:             est.BMR,
		Targets:         est.Targets,
		Recommendations: ranked,
		MacroBreakdown:  Breakdown(ranked),
		Dataset:         s.table.Source(),
		Stats:           &stats,
	}, nil
}

func (s *service) resolveTopK(requested int) (int, error) {
	switch {
	case requested == 0:
		return s.cfg.TopK, nil
	case requested < 0:
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, "topK must be positive", nil)
	case s.cfg.MaxTopK > 0 && requested > s.cfg.MaxTopK:
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("topK must be at most %d", s.cfg.MaxTopK), nil)
	default:
		return requested, nil
	}
}
