package recommender

import (
	"github.com/yanqian/nutrition-recommender/internal/domain/nutrition"
	"github.com/yanqian/nutrition-recommender/pkg/metrics"
)

// FoodRecord is a row of the external nutrient table. Nil values are missing.
type FoodRecord struct {
	Name     string   `json:"foodName"`
	Calories *float64 `json:"calories"`
	ProteinG *float64 `json:"proteinG"`
	FatG     *float64 `json:"fatG"`
	CarbsG   *float64 `json:"carbsG"`
}

// RankedFood is a food scored against the request targets.
type RankedFood struct {
	FoodRecord
	Row        int     `json:"row"`
	Similarity float64 `json:"similarity"`
}

// MacroBreakdown splits a food's energy by macronutrient.
type MacroBreakdown struct {
	FoodName   string  `json:"foodName"`
	ProteinCal float64 `json:"proteinCal"`
	FatCal     float64 `json:"fatCal"`
	CarbsCal   float64 `json:"carbsCal"`
	TotalCal   float64 `json:"totalCal"`
	Share      float64 `json:"share"`
}

// Request captures the payload accepted by the recommendation service.
type Request struct {
	Sex           string  `json:"sex"`
	AgeYears      int     `json:"ageYears"`
	WeightKg      float64 `json:"weightKg"`
	HeightCm      float64 `json:"heightCm"`
	ActivityLevel string  `json:"activityLevel"`
	TopK          int     `json:"topK,omitempty"`
}

// Estimate is the calorie-only answer.
type Estimate struct {
	BMR            float64                `json:"bmr"`
	CaloriesNeeded float64                `json:"caloriesNeeded"`
	Targets        nutrition.MacroTargets `json:"targets"`
}

// Response is serialized back to API consumers.
type Response struct {
	CaloriesNeeded  float64                `json:"caloriesNeeded"`
	BMR             float64                `json:"bmr"`
	Targets         nutrition.MacroTargets `json:"targets"`
	Recommendations []RankedFood           `json:"recommendations"`
	MacroBreakdown  []MacroBreakdown       `json:"macroBreakdown"`
	Dataset         string                 `json:"dataset"`
	Stats           *metrics.RankStats     `json:"stats,omitempty"`
}

// Config wires runtime knobs for the recommender domain.
type Config struct {
	TopK              int
	MaxTopK           int
	ParallelThreshold int
	Workers           int
}
