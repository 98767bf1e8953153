package foodsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/yanqian/nutrition-recommender/internal/domain/recommender"
)

// Column names of the cleaned nutrient export. Matching is case-insensitive.
const (
	ColumnName     = "food_name"
	ColumnCalories = "calories"
	ColumnProtein  = "protein_g"
	ColumnFat      = "fat_g"
	ColumnCarbs    = "carbs_g"
)

var requiredColumns = []string{ColumnName, ColumnCalories, ColumnProtein, ColumnFat, ColumnCarbs}

var missingMarkers = map[string]struct{}{
	"":     {},
	"nan":  {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"none": {},
}

// CSVFileLoader reads a CSV export from local disk.
type CSVFileLoader struct {
	path string
}

// NewCSVFileLoader constructs a loader for path.
func NewCSVFileLoader(path string) *CSVFileLoader {
	return &CSVFileLoader{path: strings.TrimSpace(path)}
}

func (l *CSVFileLoader) Name() string {
	return "csv:" + l.path
}

func (l *CSVFileLoader) Load(ctx context.Context) ([]recommender.FoodRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV decodes a header-led CSV table. Extra columns are ignored, blank or
// NaN-like numeric cells become nil.
func ParseCSV(r io.Reader) ([]recommender.FoodRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty, header row missing")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	records := make([]recommender.FoodRecord, 0, 256)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rec, err := decodeRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv header missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func decodeRow(row []string, index map[string]int) (recommender.FoodRecord, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	rec := recommender.FoodRecord{Name: cell(ColumnName)}
	targets := []struct {
		col string
		dst **float64
	}{
		{ColumnCalories, &rec.Calories},
		{ColumnProtein, &rec.ProteinG},
		{ColumnFat, &rec.FatG},
		{ColumnCarbs, &rec.CarbsG},
	}
	for _, t := range targets {
		v, err := parseAmount(cell(t.col))
		if err != nil {
			return recommender.FoodRecord{}, fmt.Errorf("column %s: %w", t.col, err)
		}
		*t.dst = v
	}
	return rec, nil
}

func parseAmount(raw string) (*float64, error) {
	if _, ok := missingMarkers[strings.ToLower(raw)]; ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, nil
	}
	return &v, nil
}

var _ Loader = (*CSVFileLoader)(nil)
