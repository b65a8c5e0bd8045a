package domain

// DietProfile is the userProfile object posted to /generate-diet-plan.
// Field names follow the frontend contract.
type DietProfile struct {
	Objetivo       string     `json:"objetivo" validate:"required"`
	Idade          Number     `json:"idade" validate:"required"`
	PesoAtual      Number     `json:"pesoAtual" validate:"required"`
	Altura         Number     `json:"altura" validate:"required"`
	NivelAtividade string     `json:"nivelAtividade" validate:"required"`
	NumRefeicoes   Number     `json:"numRefeicoes" validate:"required"`
	Sexo           string     `json:"sexo,omitempty"`
	PesoMeta       Number     `json:"pesoMeta,omitempty"`
	Restricoes     StringList `json:"restricoes,omitempty"`
	Preferencias   StringList `json:"preferencias,omitempty"`
	Alergias       StringList `json:"alergias,omitempty"`
	Orcamento      string     `json:"orcamento,omitempty"`
}

// DietPlan is the plan returned under "dietPlan".
type DietPlan struct {
	Resumo      DietSummary `json:"resumo"`
	Refeicoes   []Meal      `json:"refeicoes"`
	Dicas       []string    `json:"dicas"`
	Observacoes string      `json:"observacoes"`
}

type DietSummary struct {
	CaloriasTotais Number `json:"caloriasTotais"`
	Proteinas      Number `json:"proteinas"`
	Carboidratos   Number `json:"carboidratos"`
	Gorduras       Number `json:"gorduras"`
	Tmb            Number `json:"tmb"`
	GastoTotal     Number `json:"gastoTotal"`
}

type Meal struct {
	Nome          string     `json:"nome"`
	Horario       string     `json:"horario"`
	Calorias      Number     `json:"calorias"`
	Proteinas     Number     `json:"proteinas"`
	Carboidratos  Number     `json:"carboidratos"`
	Gorduras      Number     `json:"gorduras"`
	Alimentos     []MealFood `json:"alimentos"`
	Substituicoes []string   `json:"substituicoes,omitempty"`
}

type MealFood struct {
	Nome         string `json:"nome"`
	Quantidade   string `json:"quantidade"`
	Calorias     Number `json:"calorias"`
	Proteinas    Number `json:"proteinas"`
	Carboidratos Number `json:"carboidratos"`
	Gorduras     Number `json:"gorduras"`
}
