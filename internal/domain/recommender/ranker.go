package recommender

import (
	"math"
	"sort"

	"github.com/yanqian/nutrition-recommender/internal/domain/nutrition"
)

// DefaultTopK is used when the caller does not ask for a specific count.
const DefaultTopK = 10

// Vector is [calories, protein, fat, carbs].
type Vector [4]float64

// TargetVector builds the comparison vector for macro targets.
func TargetVector(t nutrition.MacroTargets) Vector {
	return Vector{t.Calories, t.ProteinG, t.FatG, t.CarbsG}
}

// Features builds the food's vector, substituting 0 for missing values.
func (f FoodRecord) Features() Vector {
	return Vector{valueOrZero(f.Calories), valueOrZero(f.ProteinG), valueOrZero(f.FatG), valueOrZero(f.CarbsG)}
}

// Amount is a helper for building records with known values.
func Amount(v float64) *float64 {
	return &v
}

func valueOrZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

func (v Vector) dot(o Vector) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

func (v Vector) norm() float64 {
	return math.Sqrt(v.dot(v))
}

// CosineSimilarity returns 0 when either vector has zero norm.
func CosineSimilarity(a, b Vector) float64 {
	na, nb := a.norm(), b.norm()
	if na == 0 || nb == 0 {
		return 0
	}
	sim := a.dot(b) / (na * nb)
	if math.IsNaN(sim) {
		return 0
	}
	return sim
}

// RankFoods scores every record against the targets and returns the k most similar,
// best first. Equal scores keep table order. k <= 0 selects DefaultTopK.
func RankFoods(targets nutrition.MacroTargets, table []FoodRecord, k int) []RankedFood {
	if k <= 0 {
		k = DefaultTopK
	}
	target := TargetVector(targets)
	scored := make([]RankedFood, len(table))
	for i, rec := range table {
		scored[i] = score(target, rec, i)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > k {
		scored = scored[:k:k]
	}
	return scored
}

func score(target Vector, rec FoodRecord, row int) RankedFood {
	return RankedFood{
		FoodRecord: rec,
		Row:        row,
		Similarity: CosineSimilarity(target, rec.Features()),
	}
}

// ranksBefore is the total order behind RankFoods: higher similarity first, then
// lower row.
func ranksBefore(a, b RankedFood) bool {
	if a.Similarity != b.Similarity {
		return a.Similarity > b.Similarity
	}
	return a.Row < b.Row
}

// Breakdown returns the calorie split of a single food.
func (r RankedFood) Breakdown() MacroBreakdown {
	protein := valueOrZero(r.ProteinG) * nutrition.KcalPerGramProtein
	fat := valueOrZero(r.FatG) * nutrition.KcalPerGramFat
	carbs := valueOrZero(r.CarbsG) * nutrition.KcalPerGramCarbs
	return MacroBreakdown{
		FoodName:   r.Name,
		ProteinCal: protein,
		FatCal:     fat,
		CarbsCal:   carbs,
		TotalCal:   protein + fat + carbs,
	}
}

// Breakdown computes the per-food calorie split with each food's share of the
// combined total.
func Breakdown(foods []RankedFood) []MacroBreakdown {
	out := make([]MacroBreakdown, 0, len(foods))
	var total float64
	for _, f := range foods {
		b := f.Breakdown()
		total += b.TotalCal
		out = append(out, b)
	}
	if total > 0 {
		for i := range out {
			out[i].Share = out[i].TotalCal / total
		}
	}
	return out
}
