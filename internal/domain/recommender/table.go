package recommender

import (
	"time"

	"github.com/yanqian/nutrition-recommender/pkg/util"
)

// Table is a loaded, read-only nutrient table. Its lifecycle belongs to the caller
// that loaded it; the recommender never mutates the records.
type Table struct {
	records  []FoodRecord
	source   string
	loadedAt time.Time
}

// NewTable wraps records loaded from source.
func NewTable(source string, records []FoodRecord) *Table {
	return &Table{records: records, source: source, loadedAt: util.NowUTC()}
}

// Records exposes the rows in table order. Callers must not modify them.
func (t *Table) Records() []FoodRecord {
	if t == nil {
		return nil
	}
	return t.records
}

// Len reports the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Source names where the table came from.
func (t *Table) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// LoadedAt is when the table was wrapped.
func (t *Table) LoadedAt() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.loadedAt
}
