package recommender

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/nutrition-recommender/internal/domain/nutrition"
)

func food(name string, cal, protein, fat, carbs float64) FoodRecord {
	return FoodRecord{Name: name, Calories: Amount(cal), ProteinG: Amount(protein), FatG: Amount(fat), CarbsG: Amount(carbs)}
}

func TestCosineSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, CosineSimilarity(Vector{1, 2, 3, 4}, Vector{2, 4, 6, 8}), 1e-12)
	require.InDelta(t, 0.0, CosineSimilarity(Vector{1, 0, 0, 0}, Vector{0, 1, 0, 0}), 1e-12)
	require.Equal(t, 0.0, CosineSimilarity(Vector{}, Vector{1, 2, 3, 4}))
	require.Equal(t, 0.0, CosineSimilarity(Vector{1, 2, 3, 4}, Vector{}))
	require.Equal(t, 0.0, CosineSimilarity(Vector{math.MaxFloat64, math.MaxFloat64}, Vector{1, 1}))
}

func TestRankFoodsExactMatchFirst(t *testing.T) {
	targets := nutrition.DeriveMacroTargets(2000)
	table := []FoodRecord{
		food("butter", 717, 0.9, 81, 0.1),
		food("balanced bowl", 2000, 75, 500.0/9, 300),
		food("chicken breast", 165, 31, 3.6, 0),
	}

	ranked := RankFoods(targets, table, 10)
	require.Len(t, ranked, 3)
	require.Equal(t, "balanced bowl", ranked[0].Name)
	require.Equal(t, 1, ranked[0].Row)
	require.InDelta(t, 1.0, ranked[0].Similarity, 1e-9)
}

func TestRankFoodsLengthIsMinOfKAndTable(t *testing.T) {
	targets := nutrition.DeriveMacroTargets(1800)
	table := randomTable(rand.New(rand.NewSource(7)), 25)

	require.Len(t, RankFoods(targets, table, 10), 10)
	require.Len(t, RankFoods(targets, table, 0), DefaultTopK)
	require.Len(t, RankFoods(targets, table, 40), 25)
	require.Len(t, RankFoods(targets, table[:3], 10), 3)
	require.Empty(t, RankFoods(targets, nil, 10))
	require.NotNil(t, RankFoods(targets, nil, 10))
}

func TestRankFoodsSortedAndIdempotent(t *testing.T) {
	targets := nutrition.DeriveMacroTargets(2400)
	table := randomTable(rand.New(rand.NewSource(11)), 200)

	first := RankFoods(targets, table, 50)
	for i := 1; i < len(first); i++ {
		require.GreaterOrEqual(t, first[i-1].Similarity, first[i].Similarity)
	}
	require.Equal(t, first, RankFoods(targets, table, 50))
}

func TestRankFoodsTiesKeepTableOrder(t *testing.T) {
	targets := nutrition.DeriveMacroTargets(2000)
	table := []FoodRecord{
		food("a", 100, 1, 1, 1),
		food("b", 200, 2, 2, 2),
		food("c", 400, 4, 4, 4),
		food("d", 2000, 75, 500.0/9, 300),
	}
	ranked := RankFoods(targets, table, 4)
	require.Equal(t, "d", ranked[0].Name)
	require.Equal(t, []string{"a", "b", "c"}, []string{ranked[1].Name, ranked[2].Name, ranked[3].Name})
}

func TestRankFoodsZeroAndMissingValues(t *testing.T) {
	targets := nutrition.DeriveMacroTargets(2000)
	table := []FoodRecord{
		food("water", 0, 0, 0, 0),
		{Name: "unknown"},
		{Name: "sugar", Calories: Amount(387), CarbsG: Amount(100)},
	}
	ranked := RankFoods(targets, table, 10)
	require.Equal(t, "sugar", ranked[0].Name)
	require.Greater(t, ranked[0].Similarity, 0.0)
	for _, r := range ranked[1:] {
		require.Equal(t, 0.0, r.Similarity)
		require.False(t, math.IsNaN(r.Similarity))
	}
	require.Equal(t, "water", ranked[1].Name)
	require.Equal(t, "unknown", ranked[2].Name)
}

func TestRankFoodsZeroTargets(t *testing.T) {
	ranked := RankFoods(nutrition.MacroTargets{}, []FoodRecord{food("rice", 130, 2.7, 0.3, 28)}, 10)
	require.Len(t, ranked, 1)
	require.Equal(t, 0.0, ranked[0].Similarity)
}

func TestRankFoodsDoesNotMutateInput(t *testing.T) {
	table := randomTable(rand.New(rand.NewSource(3)), 30)
	snapshot := make([]FoodRecord, len(table))
	copy(snapshot, table)
	values := make([]Vector, len(table))
	for i, rec := range table {
		values[i] = rec.Features()
	}

	_ = RankFoods(nutrition.DeriveMacroTargets(2100), table, 5)

	require.Equal(t, snapshot, table)
	for i, rec := range table {
		require.Equal(t, values[i], rec.Features())
	}
}

func TestRankerParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	table := randomTable(rng, 20000)
	// force duplicates so ties cross partition boundaries
	for i := 0; i < len(table); i += 97 {
		table[i] = food("dup", 500, 20, 15, 60)
	}
	targets := nutrition.DeriveMacroTargets(2300)

	for _, k := range []int{1, 10, 150} {
		want := RankFoods(targets, table, k)
		got, workers, err := Ranker{ParallelThreshold: 1000, Workers: 7}.Rank(context.Background(), targets, table, k)
		require.NoError(t, err)
		require.Equal(t, 7, workers)
		require.Equal(t, want, got, "k=%d", k)
	}
}

func TestRankerCapsKAtTableSize(t *testing.T) {
	table := randomTable(rand.New(rand.NewSource(11)), 40)
	targets := nutrition.DeriveMacroTargets(2100)

	got, workers, err := Ranker{ParallelThreshold: 10, Workers: 3}.Rank(context.Background(), targets, table, math.MaxInt)
	require.NoError(t, err)
	require.Equal(t, 3, workers)
	require.Len(t, got, len(table))
	require.Equal(t, RankFoods(targets, table, len(table)), got)
}

func TestRankerSequentialBelowThreshold(t *testing.T) {
	table := randomTable(rand.New(rand.NewSource(5)), 50)
	targets := nutrition.DeriveMacroTargets(2000)
	got, workers, err := Ranker{ParallelThreshold: 1000, Workers: 4}.Rank(context.Background(), targets, table, 10)
	require.NoError(t, err)
	require.Equal(t, 1, workers)
	require.Equal(t, RankFoods(targets, table, 10), got)
}

func TestRankerHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	table := randomTable(rand.New(rand.NewSource(9)), 5000)

	_, _, err := Ranker{ParallelThreshold: 100, Workers: 4}.Rank(ctx, nutrition.DeriveMacroTargets(2000), table, 10)
	require.ErrorIs(t, err, context.Canceled)

	_, _, err = Ranker{}.Rank(ctx, nutrition.DeriveMacroTargets(2000), table, 10)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBreakdown(t *testing.T) {
	foods := []RankedFood{
		{FoodRecord: food("oats", 389, 16.9, 6.9, 66.3)},
		{FoodRecord: FoodRecord{Name: "egg white", ProteinG: Amount(10.9)}},
	}
	got := Breakdown(foods)
	require.Len(t, got, 2)

	require.Equal(t, "oats", got[0].FoodName)
	require.InDelta(t, 67.6, got[0].ProteinCal, 1e-9)
	require.InDelta(t, 62.1, got[0].FatCal, 1e-9)
	require.InDelta(t, 265.2, got[0].CarbsCal, 1e-9)
	require.InDelta(t, 394.9, got[0].TotalCal, 1e-9)

	require.InDelta(t, 43.6, got[1].TotalCal, 1e-9)
	require.InDelta(t, 1.0, got[0].Share+got[1].Share, 1e-12)
	require.InDelta(t, 394.9/438.5, got[0].Share, 1e-12)

	require.Equal(t, got, Breakdown(foods))
	require.Empty(t, Breakdown(nil))
}

func TestBreakdownAllZero(t *testing.T) {
	got := Breakdown([]RankedFood{{FoodRecord: FoodRecord{Name: "water"}}})
	require.Equal(t, 0.0, got[0].TotalCal)
	require.Equal(t, 0.0, got[0].Share)
}

func randomTable(rng *rand.Rand, n int) []FoodRecord {
	table := make([]FoodRecord, n)
	for i := range table {
		rec := food("food", rng.Float64()*900, rng.Float64()*40, rng.Float64()*60, rng.Float64()*90)
		if i%13 == 0 {
			rec.FatG = nil
		}
		table[i] = rec
	}
	return table
}
