package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fitai/plan-service/internal/apperr"
	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/repository/memory"
	"fitai/plan-service/internal/resolver"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeGenerator records prompts and answers with canned replies.
type fakeGenerator struct {
	completeFn  func(ctx context.Context, system, user string) (string, error)
	withImageFn func(ctx context.Context, system, prompt, imageURL string) (string, error)

	lastPrompt   string
	lastImageURL string
	calls        int
}

func (f *fakeGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastPrompt = user
	return f.completeFn(ctx, system, user)
}

func (f *fakeGenerator) CompleteWithImage(ctx context.Context, system, prompt, imageURL string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastImageURL = imageURL
	return f.withImageFn(ctx, system, prompt, imageURL)
}

func replying(content string) *fakeGenerator {
	return &fakeGenerator{
		completeFn:  func(context.Context, string, string) (string, error) { return content, nil },
		withImageFn: func(context.Context, string, string, string) (string, error) { return content, nil },
	}
}

func failing(err error) *fakeGenerator {
	return &fakeGenerator{
		completeFn:  func(context.Context, string, string) (string, error) { return "", err },
		withImageFn: func(context.Context, string, string, string) (string, error) { return "", err },
	}
}

func newPlanService(gen Generator, catalog ...domain.Exercise) (PlanService, *memory.MissingExerciseRepository) {
	misses := memory.NewMissingExerciseRepository()
	res := resolver.New(memory.NewExerciseRepository(catalog...), misses, nil)
	return NewPlanService(gen, res, nil), misses
}

/* ─── Diet ───────────────────────────────────────────────────────────── */

func scenarioProfile() *domain.DietProfile {
	return &domain.DietProfile{
		Objetivo:       "emagrecer",
		Idade:          30,
		PesoAtual:      70,
		Altura:         175,
		Sexo:           "masculino",
		NivelAtividade: "moderado",
		NumRefeicoes:   5,
	}
}

const dietReply = "```json\n" + `{
  "resumo": {"caloriasTotais": 0, "proteinas": 140, "carboidratos": 200, "gorduras": 57, "tmb": 1, "gastoTotal": 2},
  "refeicoes": [{"nome": "Café da manhã", "horario": "07:00", "calorias": "400 kcal", "alimentos": [{"nome": "Ovos", "quantidade": "2 unidades", "calorias": 140}]}],
  "dicas": ["Beba água"],
  "observacoes": "ok"
}` + "\n```"

func TestGenerateDietPlan_Scenario(t *testing.T) {
	gen := replying(dietReply)
	svc, _ := newPlanService(gen)

	plan, err := svc.GenerateDietPlan(context.Background(), scenarioProfile())
	if err != nil {
		t.Fatalf("GenerateDietPlan: %v", err)
	}

	// BMR 1648.75 -> 1649, TDEE 2555.56 -> 2556, target 2055.56 -> 2056.
	if plan.Resumo.Tmb != 1649 || plan.Resumo.GastoTotal != 2556 {
		t.Errorf("resumo = %+v, want tmb 1649 gastoTotal 2556", plan.Resumo)
	}
	if plan.Resumo.CaloriasTotais != 2056 {
		t.Errorf("caloriasTotais = %v, want 2056 (filled from target)", plan.Resumo.CaloriasTotais)
	}
	if plan.Refeicoes[0].Calorias != 400 {
		t.Errorf("meal calories = %v, want 400", plan.Refeicoes[0].Calorias)
	}
	for _, want := range []string{"Meta calórica diária: 2056 kcal", "TMB: 1649 kcal", "exatamente 5 refeições"} {
		if !strings.Contains(gen.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateDietPlan_KeepsModelCaloriesWhenPresent(t *testing.T) {
	svc, _ := newPlanService(replying(`{"resumo": {"caloriasTotais": 2000}, "refeicoes": []}`))
	plan, err := svc.GenerateDietPlan(context.Background(), scenarioProfile())
	if err != nil {
		t.Fatal(err)
	}
	if plan.Resumo.CaloriasTotais != 2000 {
		t.Errorf("caloriasTotais = %v", plan.Resumo.CaloriasTotais)
	}
	if plan.Dicas == nil {
		t.Error("dicas should be an empty list, not null")
	}
}

func TestGenerateDietPlan_MissingFieldsListedTogether(t *testing.T) {
	gen := replying("{}")
	svc, _ := newPlanService(gen)

	profile := scenarioProfile()
	profile.Idade = 0
	profile.Altura = 0
	profile.NivelAtividade = ""

	_, err := svc.GenerateDietPlan(context.Background(), profile)
	if !errors.Is(err, apperr.ErrMissingFields) {
		t.Fatalf("err = %v", err)
	}
	got := apperr.FieldsOf(err)
	want := []string{"idade", "altura", "nivelAtividade"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("fields = %v, want %v", got, want)
	}
	if gen.calls != 0 {
		t.Error("generator called for an invalid request")
	}
}

func TestGenerateDietPlan_NilProfileListsEveryField(t *testing.T) {
	svc, _ := newPlanService(replying("{}"))
	_, err := svc.GenerateDietPlan(context.Background(), nil)
	if got := apperr.FieldsOf(err); len(got) != 6 {
		t.Errorf("fields = %v, want all six", got)
	}
}

func TestGenerateDietPlan_NegativeWeightUsesRequestFieldName(t *testing.T) {
	svc, _ := newPlanService(replying("{}"))
	profile := scenarioProfile()
	profile.PesoAtual = -70

	_, err := svc.GenerateDietPlan(context.Background(), profile)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	if got := apperr.FieldsOf(err); len(got) != 1 || got[0] != "pesoAtual" {
		t.Errorf("fields = %v", got)
	}
}

func TestGenerateDietPlan_InvalidFieldsListedTogether(t *testing.T) {
	gen := replying("{}")
	svc, _ := newPlanService(gen)
	profile := scenarioProfile()
	profile.Idade = -30
	profile.NumRefeicoes = -2

	_, err := svc.GenerateDietPlan(context.Background(), profile)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	if got := strings.Join(apperr.FieldsOf(err), ","); got != "idade,numRefeicoes" {
		t.Errorf("fields = %s, want idade,numRefeicoes", got)
	}
	if gen.calls != 0 {
		t.Error("generator called for invalid profile")
	}
}

func TestGenerateDietPlan_DefaultSexIsLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	res := resolver.New(memory.NewExerciseRepository(), memory.NewMissingExerciseRepository(), nil)
	gen := replying(`{"resumo": {}}`)
	svc := NewPlanService(gen, res, zap.New(core))

	profile := scenarioProfile()
	profile.Sexo = ""
	plan, err := svc.GenerateDietPlan(context.Background(), profile)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Resumo.Tmb != 1649 {
		t.Errorf("tmb = %v, want male formula 1649", plan.Resumo.Tmb)
	}
	if logs.FilterMessageSnippet("defaulting to male").Len() != 1 {
		t.Error("default-to-male was not logged")
	}
	if !strings.Contains(gen.lastPrompt, "Sexo: masculino") {
		t.Error("prompt should state the sex used")
	}
}

func TestGenerateDietPlan_UpstreamErrorsPassThrough(t *testing.T) {
	for _, upstream := range []*apperr.Error{apperr.ErrRateLimited, apperr.ErrQuotaExceeded, apperr.ErrUpstreamTimeout} {
		svc, _ := newPlanService(failing(upstream))
		_, err := svc.GenerateDietPlan(context.Background(), scenarioProfile())
		if !errors.Is(err, upstream) {
			t.Errorf("err = %v, want %s", err, upstream.Code)
		}
	}
}

func TestGenerateDietPlan_MalformedReply(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	res := resolver.New(memory.NewExerciseRepository(), memory.NewMissingExerciseRepository(), nil)
	svc := NewPlanService(replying("Desculpe, não consigo."), res, zap.New(core))

	_, err := svc.GenerateDietPlan(context.Background(), scenarioProfile())
	if !errors.Is(err, apperr.ErrMalformedUpstream) {
		t.Fatalf("err = %v", err)
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].ContextMap()["raw"] != "Desculpe, não consigo." {
		t.Errorf("raw reply not logged: %+v", entries)
	}
}

/* ─── Workout ────────────────────────────────────────────────────────── */

func validWorkoutRequest() *domain.WorkoutRequest {
	return &domain.WorkoutRequest{
		Biotipo:    "mesomorfo",
		Objetivo:   "hipertrofia",
		Nivel:      "intermediario",
		DiasTreino: 3,
		Tempo:      60,
	}
}

const workoutReply = `{
  "resumo": {"objetivo": "hipertrofia"},
  "treinos": [
    {"id": 1, "nome": "Treino A", "dia": "Segunda", "exercicios": [
      {"ordem": 1, "nome": "Supino Reto", "series": 4, "repeticoes": "8-12", "videoUrl": "https://made-up"},
      {"ordem": 2, "nome": "Crucifixo Máquina", "series": 3}
    ]},
    {"id": 2, "nome": "Treino B", "dia": "Quarta", "exercicios": [
      {"ordem": 1, "nome": "Agachamento Búlgaro", "series": "3"},
      {"ordem": 2, "nome": "supino reto", "series": 4}
    ]}
  ],
  "dicasNutricao": ["Proteína em todas as refeições"]
}`

func TestGenerateWorkoutPlan_ResolvesVideosInPlace(t *testing.T) {
	svc, misses := newPlanService(replying(workoutReply),
		domain.Exercise{Name: "Supino Reto", VideoURL: "https://v/supino"},
		domain.Exercise{Name: "Agachamento Livre", VideoURL: "https://v/agachamento"},
	)

	plan, err := svc.GenerateWorkoutPlan(context.Background(), validWorkoutRequest())
	if err != nil {
		t.Fatalf("GenerateWorkoutPlan: %v", err)
	}

	got := []string{
		plan.Treinos[0].Exercicios[0].VideoURL,
		plan.Treinos[0].Exercicios[1].VideoURL,
		plan.Treinos[1].Exercicios[0].VideoURL,
		plan.Treinos[1].Exercicios[1].VideoURL,
	}
	want := []string{"https://v/supino", "", "https://v/agachamento", "https://v/supino"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("video[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if names := misses.Names(); len(names) != 1 || names[0] != "Crucifixo Máquina" {
		t.Errorf("misses = %q", names)
	}
	if string(plan.Treinos[0].ID) != "1" || string(plan.DicasNutricao) == "" {
		t.Error("pass-through fields were lost")
	}
}

func TestGenerateWorkoutPlan_MissingTwoFields(t *testing.T) {
	gen := replying(workoutReply)
	svc, _ := newPlanService(gen)

	req := validWorkoutRequest()
	req.Biotipo = ""
	req.Tempo = 0

	_, err := svc.GenerateWorkoutPlan(context.Background(), req)
	if !errors.Is(err, apperr.ErrMissingFields) {
		t.Fatalf("err = %v", err)
	}
	fields := apperr.FieldsOf(err)
	if len(fields) != 2 || fields[0] != "biotipo" || fields[1] != "tempo" {
		t.Errorf("fields = %v, want [biotipo tempo]", fields)
	}
	if gen.calls != 0 {
		t.Error("generator called for an invalid request")
	}
}

func TestGenerateWorkoutPlan_DaysOutOfRange(t *testing.T) {
	svc, _ := newPlanService(replying(workoutReply))
	req := validWorkoutRequest()
	req.DiasTreino = 9
	_, err := svc.GenerateWorkoutPlan(context.Background(), req)
	if got := apperr.FieldsOf(err); len(got) != 1 || got[0] != "diasTreino" {
		t.Errorf("err = %v", err)
	}
}

func TestGenerateWorkoutPlan_PromptCarriesOptionalFields(t *testing.T) {
	gen := replying(`{"treinos": []}`)
	svc, _ := newPlanService(gen)
	req := validWorkoutRequest()
	req.Equipamentos = domain.StringList{"halteres", "elástico"}
	req.Limitacoes = "dor no joelho"

	plan, err := svc.GenerateWorkoutPlan(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Treinos == nil {
		t.Error("treinos should be an empty list")
	}
	for _, want := range []string{"halteres, elástico", "dor no joelho", "exatamente 3 treinos"} {
		if !strings.Contains(gen.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateWorkoutPlan_CatalogDownStillReturnsPlan(t *testing.T) {
	res := resolver.New(brokenCatalog{}, memory.NewMissingExerciseRepository(), nil)
	svc := NewPlanService(replying(workoutReply), res, nil)

	plan, err := svc.GenerateWorkoutPlan(context.Background(), validWorkoutRequest())
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	for _, day := range plan.Treinos {
		for _, ex := range day.Exercicios {
			if ex.VideoURL != "" {
				t.Errorf("%s: VideoURL = %q, want empty", ex.Nome, ex.VideoURL)
			}
		}
	}
}

type brokenCatalog struct{}

func (brokenCatalog) FindByNameExact(context.Context, string) (*domain.Exercise, error) {
	return nil, errors.New("server selection timeout")
}

func (brokenCatalog) FindByNameContaining(context.Context, string) (*domain.Exercise, error) {
	return nil, errors.New("server selection timeout")
}
