package domain

// FoodAnalysis is the vision model's reading of a food photo.
type FoodAnalysis struct {
	FoodName         string            `json:"food_name"`
	Confidence       Number            `json:"confidence"` // 0-1
	EstimatedWeightG Number            `json:"estimated_weight_g"`
	CaloriesTotal    Number            `json:"calories_total"`
	Macros           FoodMacros        `json:"macros"`
	Micronutrients   []string          `json:"micronutrients"`
	Description      string            `json:"description"`
	Alternatives     []FoodAlternative `json:"alternatives"`
}

type FoodMacros struct {
	CarbsG   Number `json:"carbs_g"`
	ProteinG Number `json:"protein_g"`
	FatG     Number `json:"fat_g"`
	FiberG   Number `json:"fiber_g"`
	SugarG   Number `json:"sugar_g"`
}

type FoodAlternative struct {
	Name        string `json:"name"`
	Probability Number `json:"probability"`
}
