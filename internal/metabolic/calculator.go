// Package metabolic computes basal metabolic rate, total daily energy
// expenditure and a goal-adjusted calorie target. Everything here is pure:
// no I/O, no state between calls.
package metabolic

import (
	"math"
	"strings"

	"fitai/plan-service/internal/apperr"
)

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Goal selects the calorie offset applied to TDEE.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
)

// Fixed goal offsets in kcal.
const (
	loseOffset = -500.0
	gainOffset = 400.0
)

// Input is the anthropometric input to Calculate.
type Input struct {
	AgeYears float64
	WeightKg float64
	HeightCm float64
	Sex      Sex
	// ActivityLevel is a free-text label matched against the activity bands.
	ActivityLevel string
	Goal          Goal
}

// EnergyProfile holds the unrounded results. Use Rounded for display.
type EnergyProfile struct {
	BMRKcal    float64 `json:"bmrKcal"`
	TDEEKcal   float64 `json:"tdeeKcal"`
	TargetKcal float64 `json:"targetKcal"`
	Multiplier float64 `json:"multiplier"`
	Band       Band    `json:"band"`
	// BandMatched is false when the activity label fell back to moderate.
	BandMatched bool `json:"bandMatched"`
}

// RoundedProfile is EnergyProfile rounded to whole kcal.
type RoundedProfile struct {
	BMRKcal    int `json:"bmrKcal"`
	TDEEKcal   int `json:"tdeeKcal"`
	TargetKcal int `json:"targetKcal"`
}

// Rounded rounds each value to the nearest whole kcal.
func (p EnergyProfile) Rounded() RoundedProfile {
	return RoundedProfile{
		BMRKcal:    int(math.Round(p.BMRKcal)),
		TDEEKcal:   int(math.Round(p.TDEEKcal)),
		TargetKcal: int(math.Round(p.TargetKcal)),
	}
}

// Calculate validates in and computes its EnergyProfile.
// Invalid input yields an apperr VALIDATION_ERROR naming every bad field.
func Calculate(in Input) (EnergyProfile, error) {
	if err := validate(in); err != nil {
		return EnergyProfile{}, err
	}

	bmr := BMR(in.WeightKg, in.HeightCm, in.AgeYears, in.Sex)
	mult, band, matched := Multiplier(in.ActivityLevel)
	tdee := bmr * mult

	return EnergyProfile{
		BMRKcal:     bmr,
		TDEEKcal:    tdee,
		TargetKcal:  tdee + goalOffset(in.Goal),
		Multiplier:  mult,
		Band:        band,
		BandMatched: matched,
	}, nil
}

// BMR applies the Mifflin-St Jeor equation.
func BMR(weightKg, heightCm, ageYears float64, sex Sex) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*ageYears
	if sex == SexFemale {
		return bmr - 161
	}
	return bmr + 5
}

func goalOffset(g Goal) float64 {
	switch g {
	case GoalLose:
		return loseOffset
	case GoalGain:
		return gainOffset
	default:
		return 0
	}
}

func validate(in Input) error {
	var bad []string
	if !positive(in.AgeYears) {
		bad = append(bad, "ageYears")
	}
	if !positive(in.WeightKg) {
		bad = append(bad, "weightKg")
	}
	if !positive(in.HeightCm) {
		bad = append(bad, "heightCm")
	}
	if in.Sex != SexMale && in.Sex != SexFemale {
		bad = append(bad, "sex")
	}
	switch in.Goal {
	case GoalLose, GoalGain, GoalMaintain:
	default:
		bad = append(bad, "goal")
	}
	if len(bad) > 0 {
		return apperr.Invalid(bad...)
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ParseSex maps a user-facing sex label onto the formula branches.
// ok is false for empty or unrecognized labels; the caller picks the default.
func ParseSex(label string) (sex Sex, ok bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "male", "m", "masculino", "homem":
		return SexMale, true
	case "female", "f", "feminino", "mulher":
		return SexFemale, true
	default:
		return SexMale, false
	}
}

// ParseGoal maps a free-text objective onto a Goal.
// ok is false when nothing matched; the returned goal is then maintain.
func ParseGoal(label string) (goal Goal, ok bool) {
	l := strings.ToLower(label)
	switch {
	case containsAny(l, "emagre", "perder", "perda", "lose", "cutting", "secar", "defini"):
		return GoalLose, true
	case containsAny(l, "ganh", "hipertrof", "massa", "gain", "bulking"):
		return GoalGain, true
	case containsAny(l, "manter", "manuten", "maint"):
		return GoalMaintain, true
	default:
		return GoalMaintain, false
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
