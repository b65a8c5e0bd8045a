package domain

import "encoding/json"

// WorkoutRequest is the body posted to /generate-workout-plan.
type WorkoutRequest struct {
	Biotipo      string     `json:"biotipo" validate:"required"`
	Objetivo     string     `json:"objetivo" validate:"required"`
	Nivel        string     `json:"nivel" validate:"required"`
	DiasTreino   Number     `json:"diasTreino" validate:"required"`
	Tempo        Number     `json:"tempo" validate:"required"`
	Equipamentos StringList `json:"equipamentos,omitempty"`
	Limitacoes   string     `json:"limitacoes,omitempty"`
}

// WorkoutPlan is the plan returned under "plano". Sections the frontend only
// renders (summary, schedule, tips) are passed through untouched.
type WorkoutPlan struct {
	Resumo             json.RawMessage `json:"resumo,omitempty"`
	Treinos            []WorkoutDay    `json:"treinos"`
	CronogramaSugerido json.RawMessage `json:"cronogramaSugerido,omitempty"`
	DicasNutricao      json.RawMessage `json:"dicasNutricao,omitempty"`
	ProgressaoSugerida json.RawMessage `json:"progressaoSugerida,omitempty"`
}

type WorkoutDay struct {
	ID                json.RawMessage   `json:"id,omitempty"`
	Nome              string            `json:"nome"`
	Dia               string            `json:"dia"`
	Tipo              string            `json:"tipo"`
	Foco              string            `json:"foco"`
	DuracaoEstimada   json.RawMessage   `json:"duracaoEstimada,omitempty"`
	Aquecimento       json.RawMessage   `json:"aquecimento,omitempty"`
	Exercicios        []WorkoutExercise `json:"exercicios"`
	Alongamento       json.RawMessage   `json:"alongamento,omitempty"`
	ObservacoesGerais json.RawMessage   `json:"observacoesGerais,omitempty"`
}

// WorkoutExercise is one prescribed exercise. VideoURL is always overwritten
// by the exercise resolver; an empty value means "no catalog video".
type WorkoutExercise struct {
	Ordem            Number          `json:"ordem"`
	Nome             string          `json:"nome"`
	GruposMusculares []string        `json:"gruposMusculares"`
	Series           json.RawMessage `json:"series,omitempty"`
	Repeticoes       json.RawMessage `json:"repeticoes,omitempty"`
	Descanso         json.RawMessage `json:"descanso,omitempty"`
	CargaSugerida    json.RawMessage `json:"cargaSugerida,omitempty"`
	Observacoes      string          `json:"observacoes"`
	VideoURL         string          `json:"videoUrl"`
	TecnicaExecucao  string          `json:"tecnicaExecucao"`
}
