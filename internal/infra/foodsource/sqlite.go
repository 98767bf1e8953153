package foodsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
	"github.com/yanqian/nutrition-recommender/internal/infra/config"
)

// SQLiteLoader reads the nutrient table from a SQLite file, e.g. a pandas to_sql export.
type SQLiteLoader struct {
	path    string
	table   string
	orderBy string
}

// NewSQLiteLoader validates the table settings.
func NewSQLiteLoader(cfg config.SQLiteConfig) (*SQLiteLoader, error) {
	if err := checkIdent("table", cfg.Table); err != nil {
		return nil, err
	}
	orderBy := firstNonEmpty(cfg.OrderBy, "rowid")
	if err := checkIdent("order column", orderBy); err != nil {
		return nil, err
	}
	return &SQLiteLoader{path: strings.TrimSpace(cfg.Path), table: cfg.Table, orderBy: orderBy}, nil
}

func (l *SQLiteLoader) Name() string {
	return "sqlite:" + l.path + "#" + l.table
}

func (l *SQLiteLoader) Load(ctx context.Context) ([]recommender.FoodRecord, error) {
	db, err := sql.Open("sqlite", "file:"+l.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, l.query())
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var records []recommender.FoodRecord
	for rows.Next() {
		rec, err := scanFoodRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate foods: %w", err)
	}
	return records, nil
}

func (l *SQLiteLoader) query() string {
	return fmt.Sprintf(`SELECT food_name, Calories, protein_g, fat_g, carbs_g FROM %s ORDER BY %s`, l.table, l.orderBy)
}

var _ Loader = (*SQLiteLoader)(nil)
