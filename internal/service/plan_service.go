package service

import (
	"context"
	"errors"
	"math"

	"fitai/plan-service/internal/ai"
	"fitai/plan-service/internal/apperr"
	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/metabolic"
	"fitai/plan-service/internal/resolver"

	"go.uber.org/zap"
)

// Generator is the generative model as seen by the services. *ai.Client
// implements it.
type Generator interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteWithImage(ctx context.Context, system, prompt, imageURL string) (string, error)
}

// ExerciseResolver attaches catalog videos to exercise names. *resolver.Resolver
// implements it.
type ExerciseResolver interface {
	ResolveAll(ctx context.Context, names []string) []resolver.Result
}

// --- Service Interface ---
type PlanService interface {
	GenerateDietPlan(ctx context.Context, profile *domain.DietProfile) (*domain.DietPlan, error)
	GenerateWorkoutPlan(ctx context.Context, req *domain.WorkoutRequest) (*domain.WorkoutPlan, error)
}

// --- Service Implementation ---

type planService struct {
	generator Generator
	resolver  ExerciseResolver
	logger    *zap.Logger
}

// NewPlanService creates the diet and workout plan generator.
func NewPlanService(generator Generator, resolver ExerciseResolver, logger *zap.Logger) PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &planService{generator: generator, resolver: resolver, logger: logger}
}

// calculatorFields maps calculator input names onto the request fields
// they came from.
var calculatorFields = map[string]string{
	"ageYears": "idade",
	"weightKg": "pesoAtual",
	"heightCm": "altura",
}

// GenerateDietPlan validates the profile, computes the energy targets, asks the
// model for a plan and overwrites the summary with the computed values.
func (s *planService) GenerateDietPlan(ctx context.Context, profile *domain.DietProfile) (*domain.DietPlan, error) {
	if profile == nil {
		profile = &domain.DietProfile{}
	}
	if err := requireFields(profile); err != nil {
		return nil, err
	}

	sex, ok := metabolic.ParseSex(profile.Sexo)
	if !ok {
		s.logger.Warn("sex not recognized, defaulting to male for BMR",
			zap.String("sexo", profile.Sexo))
	}
	goal, ok := metabolic.ParseGoal(profile.Objetivo)
	if !ok {
		s.logger.Info("objective not recognized, using maintain",
			zap.String("objetivo", profile.Objetivo))
	}

	energy, err := metabolic.Calculate(metabolic.Input{
		AgeYears:      profile.Idade.Float64(),
		WeightKg:      profile.PesoAtual.Float64(),
		HeightCm:      profile.Altura.Float64(),
		Sex:           sex,
		ActivityLevel: profile.NivelAtividade,
		Goal:          goal,
	})
	var invalid []string
	if err != nil {
		err = renameFields(err, calculatorFields)
		if !errors.Is(err, apperr.ErrValidation) {
			return nil, err
		}
		invalid = apperr.FieldsOf(err)
	}
	if profile.NumRefeicoes < 1 {
		invalid = append(invalid, "numRefeicoes")
	}
	if len(invalid) > 0 {
		return nil, apperr.Invalid(invalid...)
	}
	if !energy.BandMatched {
		s.logger.Info("activity level not recognized, using moderate",
			zap.String("nivelAtividade", profile.NivelAtividade),
			zap.Float64("multiplier", energy.Multiplier))
	}
	rounded := energy.Rounded()
	macros := metabolic.Macros(energy, profile.PesoAtual.Float64(), goal)

	raw, err := s.generator.Complete(ctx, dietSystemPrompt, dietPrompt(profile, sex, rounded, macros))
	if err != nil {
		return nil, err
	}

	var plan domain.DietPlan
	if err := ai.DecodeJSON(raw, &plan); err != nil {
		s.logger.Error("malformed diet plan from model", zap.String("raw", ai.Excerpt(raw)), zap.Error(err))
		return nil, err
	}

	plan.Resumo.Tmb = domain.Number(rounded.BMRKcal)
	plan.Resumo.GastoTotal = domain.Number(rounded.TDEEKcal)
	if plan.Resumo.CaloriasTotais <= 0 {
		plan.Resumo.CaloriasTotais = domain.Number(rounded.TargetKcal)
	}
	if plan.Refeicoes == nil {
		plan.Refeicoes = []domain.Meal{}
	}
	if plan.Dicas == nil {
		plan.Dicas = []string{}
	}

	s.logger.Info("diet plan generated",
		zap.Int("targetKcal", rounded.TargetKcal),
		zap.String("band", string(energy.Band)),
		zap.Int("meals", len(plan.Refeicoes)))
	return &plan, nil
}

// GenerateWorkoutPlan validates the request, asks the model for a plan and
// replaces every exercise's videoUrl with the resolver's answer.
func (s *planService) GenerateWorkoutPlan(ctx context.Context, req *domain.WorkoutRequest) (*domain.WorkoutPlan, error) {
	if req == nil {
		req = &domain.WorkoutRequest{}
	}
	if err := requireFields(req); err != nil {
		return nil, err
	}
	if req.DiasTreino < 1 || req.DiasTreino > 7 {
		return nil, apperr.Invalid("diasTreino")
	}
	if req.Tempo < 1 || math.IsInf(req.Tempo.Float64(), 0) {
		return nil, apperr.Invalid("tempo")
	}

	raw, err := s.generator.Complete(ctx, workoutSystemPrompt, workoutPrompt(req))
	if err != nil {
		return nil, err
	}

	var plan domain.WorkoutPlan
	if err := ai.DecodeJSON(raw, &plan); err != nil {
		s.logger.Error("malformed workout plan from model", zap.String("raw", ai.Excerpt(raw)), zap.Error(err))
		return nil, err
	}
	if plan.Treinos == nil {
		plan.Treinos = []domain.WorkoutDay{}
	}

	s.attachVideos(ctx, &plan)
	return &plan, nil
}

// attachVideos resolves every exercise in place, keeping plan order.
func (s *planService) attachVideos(ctx context.Context, plan *domain.WorkoutPlan) {
	var names []string
	for _, day := range plan.Treinos {
		for _, ex := range day.Exercicios {
			names = append(names, ex.Nome)
		}
	}
	if len(names) == 0 {
		return
	}

	results := s.resolver.ResolveAll(ctx, names)

	misses := 0
	i := 0
	for d := range plan.Treinos {
		for e := range plan.Treinos[d].Exercicios {
			plan.Treinos[d].Exercicios[e].VideoURL = results[i].VideoURL
			if !results[i].Found() {
				misses++
			}
			i++
		}
	}
	s.logger.Info("workout plan generated",
		zap.Int("days", len(plan.Treinos)),
		zap.Int("exercises", len(names)),
		zap.Int("withoutVideo", misses))
}

// renameFields rewrites the field names on a validation error.
func renameFields(err error, names map[string]string) error {
	fields := apperr.FieldsOf(err)
	if len(fields) == 0 {
		return err
	}
	renamed := make([]string, len(fields))
	for i, f := range fields {
		if n, ok := names[f]; ok {
			renamed[i] = n
		} else {
			renamed[i] = f
		}
	}
	return apperr.Invalid(renamed...)
}
