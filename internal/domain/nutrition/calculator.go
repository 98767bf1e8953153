package nutrition

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/yanqian/nutrition-recommender/pkg/errors"
)

// Fixed macro split of daily calories. Not configurable.
const (
	ProteinShare = 0.15
	FatShare     = 0.25
	CarbsShare   = 0.60

	KcalPerGramProtein = 4.0
	KcalPerGramFat     = 9.0
	KcalPerGramCarbs   = 4.0
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ParseSex canonicalizes a sex label. Accepts male/m/female/f in any case.
func ParseSex(raw string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m":
		return SexMale, nil
	case "female", "f":
		return SexFemale, nil
	default:
		return "", apperrors.Wrap(apperrors.CodeInvalidProfile, fmt.Sprintf("sex %q must be male or female", raw), nil)
	}
}

// ParseActivityLevel canonicalizes an activity label such as "Sedentary".
func ParseActivityLevel(raw string) (ActivityLevel, error) {
	lvl := ActivityLevel(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := activityFactors[lvl]; !ok {
		return "", apperrors.Wrap(apperrors.CodeInvalidProfile, fmt.Sprintf("activityLevel %q must be one of Sedentary, Light, Moderate, Active", raw), nil)
	}
	return lvl, nil
}

// NewProfile parses the labels and validates every value against its domain range.
func NewProfile(sex string, ageYears int, weightKg, heightCm float64, activity string) (Profile, error) {
	s, err := ParseSex(sex)
	if err != nil {
		return Profile{}, err
	}
	lvl, err := ParseActivityLevel(activity)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{Sex: s, AgeYears: ageYears, WeightKg: weightKg, HeightCm: heightCm, ActivityLevel: lvl}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate reports the first field outside its domain as an invalid_profile error.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Wrap(apperrors.CodeInvalidProfile, "invalid profile", err)
	}
	return apperrors.Wrap(apperrors.CodeInvalidProfile, describe(fieldErrs[0]), nil)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// BMR evaluates the revised Harris-Benedict equation. It does not validate.
func BMR(p Profile) float64 {
	w, h, age := p.WeightKg, p.HeightCm, float64(p.AgeYears)
	switch p.Sex {
	case SexMale:
		return 88.362 + 13.397*w + 4.799*h - 5.677*age
	default:
		return 447.593 + 9.247*w + 3.098*h - 4.330*age
	}
}

// ComputeDailyCalories returns BMR scaled by the activity factor.
func ComputeDailyCalories(p Profile) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return BMR(p) * p.ActivityLevel.Factor(), nil
}

// DeriveMacroTargets splits calories 15/25/60 across protein, fat and carbs.
func DeriveMacroTargets(calories float64) MacroTargets {
	return MacroTargets{
		Calories: calories,
		ProteinG: calories * ProteinShare / KcalPerGramProtein,
		FatG:     calories * FatShare / KcalPerGramFat,
		CarbsG:   calories * CarbsShare / KcalPerGramCarbs,
	}
}

// Energy returns the kcal implied by the gram targets.
func (m MacroTargets) Energy() float64 {
	return m.ProteinG*KcalPerGramProtein + m.FatG*KcalPerGramFat + m.CarbsG*KcalPerGramCarbs
}
