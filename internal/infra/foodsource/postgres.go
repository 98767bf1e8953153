package foodsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
	"github.com/yanqian/nutrition-recommender/internal/infra/config"
)

// PostgresLoader reads the nutrient table with pgx.
type PostgresLoader struct {
	poolConfig *pgxpool.Config
	table      string
	orderBy    string
}

// NewPostgresLoader validates the table settings and parses the DSN.
func NewPostgresLoader(cfg config.PostgresConfig) (*PostgresLoader, error) {
	for _, part := range strings.Split(cfg.Table, ".") {
		if err := checkIdent("table", part); err != nil {
			return nil, err
		}
	}
	orderBy := strings.TrimSpace(cfg.OrderBy)
	if err := checkIdent("order column", orderBy); err != nil {
		return nil, err
	}
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	return &PostgresLoader{poolConfig: poolConfig, table: cfg.Table, orderBy: orderBy}, nil
}

func (l *PostgresLoader) Name() string {
	return "postgres:" + l.table
}

func (l *PostgresLoader) Load(ctx context.Context) ([]recommender.FoodRecord, error) {
	pool, err := pgxpool.NewWithConfig(ctx, l.poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, l.query())
	if err != nil {
		return nil, fmt.Errorf("query foods: %w", err)
	}
	defer rows.Close()

	var records []recommender.FoodRecord
	for rows.Next() {
		rec, err := scanFoodRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return records, nil
}

func (l *PostgresLoader) query() string {
	table := pgx.Identifier(strings.Split(l.table, ".")).Sanitize()
	return fmt.Sprintf(`SELECT food_name, "Calories", protein_g, fat_g, carbs_g FROM %s ORDER BY %s`,
		table, pgx.Identifier{l.orderBy}.Sanitize())
}

var _ Loader = (*PostgresLoader)(nil)
