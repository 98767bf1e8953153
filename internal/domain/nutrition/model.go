package nutrition

// Sex selects the BMR equation.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel scales BMR to total daily energy expenditure.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityActive:    1.725,
}

var activityLabels = map[ActivityLevel]string{
	ActivitySedentary: "Sedentary",
	ActivityLight:     "Light",
	ActivityModerate:  "Moderate",
	ActivityActive:    "Active",
}

// Factor returns the TDEE multiplier, or 0 for an unknown level.
func (a ActivityLevel) Factor() float64 {
	return activityFactors[a]
}

// Label returns the display label ("Sedentary", ...).
func (a ActivityLevel) Label() string {
	return activityLabels[a]
}

// ActivityOption describes a selectable activity level.
type ActivityOption struct {
	Level  ActivityLevel `json:"level"`
	Label  string        `json:"label"`
	Factor float64       `json:"factor"`
}

// ActivityLevels lists every level ordered by factor.
func ActivityLevels() []ActivityOption {
	levels := []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive}
	out := make([]ActivityOption, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, ActivityOption{Level: lvl, Label: lvl.Label(), Factor: lvl.Factor()})
	}
	return out
}

// Profile holds the anthropometric inputs of a single request.
type Profile struct {
	Sex           Sex           `json:"sex" validate:"oneof=male female"`
	AgeYears      int           `json:"ageYears" validate:"gte=10,lte=100"`
	WeightKg      float64       `json:"weightKg" validate:"gte=30,lte=150"`
	HeightCm      float64       `json:"heightCm" validate:"gte=120,lte=220"`
	ActivityLevel ActivityLevel `json:"activityLevel" validate:"oneof=sedentary light moderate active"`
}

// MacroTargets are the daily energy and macronutrient goals.
type MacroTargets struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	FatG     float64 `json:"fatG"`
	CarbsG   float64 `json:"carbsG"`
}
