package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/nutrition-recommender/pkg/errors"
)

func TestBMRMaleExample(t *testing.T) {
	p, err := NewProfile("Male", 25, 55, 160, "Sedentary")
	require.NoError(t, err)

	// 88.362 + 13.397*55 + 4.799*160 - 5.677*25
	require.InDelta(t, 1451.112, BMR(p), 1e-9)

	calories, err := ComputeDailyCalories(p)
	require.NoError(t, err)
	require.InDelta(t, 1451.112*1.2, calories, 1e-9)
}

func TestBMRFemale(t *testing.T) {
	p, err := NewProfile("f", 30, 60, 165, "moderate")
	require.NoError(t, err)
	want := 447.593 + 9.247*60 + 3.098*165 - 4.330*30
	require.InDelta(t, want, BMR(p), 1e-9)

	calories, err := ComputeDailyCalories(p)
	require.NoError(t, err)
	require.InDelta(t, want*1.55, calories, 1e-9)
}

func TestDeriveMacroTargets(t *testing.T) {
	m := DeriveMacroTargets(2000)
	require.InDelta(t, 75.0, m.ProteinG, 1e-9)
	require.InDelta(t, 55.5556, m.FatG, 1e-4)
	require.InDelta(t, 300.0, m.CarbsG, 1e-9)
	require.Equal(t, 2000.0, m.Calories)
}

func TestMacroEnergyMatchesCalories(t *testing.T) {
	for _, sex := range []string{"male", "female"} {
		for _, lvl := range ActivityLevels() {
			for age := 10; age <= 100; age += 15 {
				for w := 30.0; w <= 150; w += 30 {
					for h := 120.0; h <= 220; h += 25 {
						p, err := NewProfile(sex, age, w, h, string(lvl.Level))
						require.NoError(t, err)
						calories, err := ComputeDailyCalories(p)
						require.NoError(t, err)
						require.Greater(t, calories, 0.0, "profile %+v", p)

						m := DeriveMacroTargets(calories)
						require.LessOrEqual(t, math.Abs(m.Energy()-calories)/calories, 1e-6)
					}
				}
			}
		}
	}
}

func TestComputeDailyCaloriesDeterministic(t *testing.T) {
	p := Profile{Sex: SexMale, AgeYears: 40, WeightKg: 80, HeightCm: 180, ActivityLevel: ActivityActive}
	first, err := ComputeDailyCalories(p)
	require.NoError(t, err)
	second, err := ComputeDailyCalories(p)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestParseSex(t *testing.T) {
	cases := []struct {
		in   string
		want Sex
		ok   bool
	}{
		{"Male", SexMale, true},
		{" m ", SexMale, true},
		{"FEMALE", SexFemale, true},
		{"f", SexFemale, true},
		{"", "", false},
		{"other", "", false},
	}
	for _, tc := range cases {
		got, err := ParseSex(tc.in)
		if !tc.ok {
			require.Error(t, err, tc.in)
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidProfile))
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got)
	}
}

func TestParseActivityLevel(t *testing.T) {
	lvl, err := ParseActivityLevel("Light")
	require.NoError(t, err)
	require.Equal(t, ActivityLight, lvl)
	require.Equal(t, 1.375, lvl.Factor())
	require.Equal(t, "Light", lvl.Label())

	_, err = ParseActivityLevel("very_active")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidProfile))
}

func TestNewProfileRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name     string
		age      int
		weight   float64
		height   float64
		contains string
	}{
		{"weight too low", 25, 29.9, 160, "weightKg must be at least 30"},
		{"weight too high", 25, 151, 160, "weightKg must be at most 150"},
		{"height too low", 25, 55, 119, "heightCm must be at least 120"},
		{"height too high", 25, 55, 221, "heightCm must be at most 220"},
		{"age too low", 9, 55, 160, "ageYears must be at least 10"},
		{"age too high", 101, 55, 160, "ageYears must be at most 100"},
		{"weight NaN", 25, math.NaN(), 160, "weightKg"},
	}
	for _, tc := range cases {
		_, err := NewProfile("male", tc.age, tc.weight, tc.height, "sedentary")
		require.Error(t, err, tc.name)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidProfile), tc.name)
		require.Contains(t, err.Error(), tc.contains, tc.name)
	}
}

func TestComputeDailyCaloriesValidatesStructLiteral(t *testing.T) {
	_, err := ComputeDailyCalories(Profile{Sex: SexFemale, AgeYears: 90, WeightKg: 10, HeightCm: 150, ActivityLevel: ActivityLight})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidProfile))

	_, err = ComputeDailyCalories(Profile{Sex: "x", AgeYears: 30, WeightKg: 60, HeightCm: 150, ActivityLevel: ActivityLight})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidProfile))
	require.Contains(t, err.Error(), "sex must be one of")
}

func TestActivityLevelsOrdered(t *testing.T) {
	levels := ActivityLevels()
	require.Len(t, levels, 4)
	require.Equal(t, "Sedentary", levels[0].Label)
	for i := 1; i < len(levels); i++ {
		require.Greater(t, levels[i].Factor, levels[i-1].Factor)
	}
}
