package metabolic

import "math"

// MacroTargets are daily macronutrient targets in grams.
type MacroTargets struct {
	ProteinG int `json:"proteinG"`
	CarbsG   int `json:"carbsG"`
	FatG     int `json:"fatG"`
}

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
	fatShare           = 0.25
)

// Macros splits the profile's target calories: protein by body weight
// (2.0 g/kg when cutting or bulking, 1.6 g/kg otherwise), fat at 25% of the
// target, carbs take the remainder (never negative).
func Macros(p EnergyProfile, weightKg float64, goal Goal) MacroTargets {
	perKg := 1.6
	if goal == GoalLose || goal == GoalGain {
		perKg = 2.0
	}
	protein := weightKg * perKg
	fat := p.TargetKcal * fatShare / kcalPerGramFat
	carbs := (p.TargetKcal - protein*kcalPerGramProtein - fat*kcalPerGramFat) / kcalPerGramCarbs
	if carbs < 0 {
		carbs = 0
	}
	return MacroTargets{
		ProteinG: int(math.Round(protein)),
		CarbsG:   int(math.Round(carbs)),
		FatG:     int(math.Round(fat)),
	}
}
