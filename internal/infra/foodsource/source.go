package foodsource

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
	"github.com/yanqian/nutrition-recommender/internal/infra/config"
	apperrors "github.com/yanqian/nutrition-recommender/pkg/errors"
)

// Loader reads the full nutrient table from one backend, in table order.
type Loader interface {
	Name() string
	Load(ctx context.Context) ([]recommender.FoodRecord, error)
}

// Open loads the configured table once. Any failure is a dataset_unavailable error.
func Open(ctx context.Context, cfg config.DatasetConfig, logger *slog.Logger) (*recommender.Table, error) {
	logger = logger.With("component", "foodsource")
	loader, err := NewLoader(cfg, logger)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatasetUnavailable, "food table unavailable", err)
	}
	return Load(ctx, loader, cfg, logger)
}

// Load runs loader with the configured timeout and wraps the records in a table.
func Load(ctx context.Context, loader Loader, cfg config.DatasetConfig, logger *slog.Logger) (*recommender.Table, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	records, err := loader.Load(ctx)
	if err != nil {
		logger.Error("food table load failed", "source", loader.Name(), "error", err)
		return nil, apperrors.Wrap(apperrors.CodeDatasetUnavailable, fmt.Sprintf("food table unavailable from %s", loader.Name()), err)
	}
	logger.Info("food table loaded", "source", loader.Name(), "foods", len(records))
	return recommender.NewTable(loader.Name(), records), nil
}

// NewLoader picks the backend named by cfg.Source.
func NewLoader(cfg config.DatasetConfig, logger *slog.Logger) (Loader, error) {
	switch cfg.Source {
	case config.SourceCSV:
		return NewCSVFileLoader(cfg.CSV.Path), nil
	case config.SourcePostgres:
		return asLoader(NewPostgresLoader(cfg.Postgres))
	case config.SourceSQLite:
		return asLoader(NewSQLiteLoader(cfg.SQLite))
	case config.SourceS3:
		return asLoader(NewS3Loader(cfg.S3, logger))
	case config.SourceValkey:
		return asLoader(NewValkeyLoader(cfg.Valkey))
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

func asLoader[L Loader](l L, err error) (Loader, error) {
	if err != nil {
		return nil, err
	}
	return l, nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdent(kind, name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("%s %q is not a plain identifier", kind, name)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodRecord(row rowScanner) (recommender.FoodRecord, error) {
	var (
		name                           sql.NullString
		calories, protein, fat, carbs sql.NullFloat64
	)
	if err := row.Scan(&name, &calories, &protein, &fat, &carbs); err != nil {
		return recommender.FoodRecord{}, err
	}
	return recommender.FoodRecord{
		Name:     name.String,
		Calories: nullable(calories),
		ProteinG: nullable(protein),
		FatG:     nullable(fat),
		CarbsG:   nullable(carbs),
	}, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return nil
	}
	f := v.Float64
	return &f
}
