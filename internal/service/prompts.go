package service

import (
	"fmt"
	"strings"

	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/metabolic"
)

/* ─── Diet ───────────────────────────────────────────────────────────── */

const dietSystemPrompt = `Você é um nutricionista esportivo. Monte planos alimentares práticos, com alimentos comuns no Brasil, respeitando restrições e alergias.
Responda APENAS com um objeto JSON válido, sem texto adicional e sem markdown.`

const dietResponseShape = `{
  "resumo": {"caloriasTotais": number, "proteinas": number, "carboidratos": number, "gorduras": number, "tmb": number, "gastoTotal": number},
  "refeicoes": [{"nome": string, "horario": "HH:MM", "calorias": number, "proteinas": number, "carboidratos": number, "gorduras": number,
    "alimentos": [{"nome": string, "quantidade": string, "calorias": number, "proteinas": number, "carboidratos": number, "gorduras": number}],
    "substituicoes": [string]}],
  "dicas": [string],
  "observacoes": string
}`

func dietPrompt(p *domain.DietProfile, sex metabolic.Sex, energy metabolic.RoundedProfile, macros metabolic.MacroTargets) string {
	var b strings.Builder
	b.WriteString("Crie um plano alimentar diário para o seguinte perfil:\n")
	fmt.Fprintf(&b, "- Objetivo: %s\n", p.Objetivo)
	fmt.Fprintf(&b, "- Idade: %g anos\n", p.Idade.Float64())
	fmt.Fprintf(&b, "- Sexo: %s\n", sexLabel(sex))
	fmt.Fprintf(&b, "- Peso atual: %g kg\n", p.PesoAtual.Float64())
	if p.PesoMeta > 0 {
		fmt.Fprintf(&b, "- Peso meta: %g kg\n", p.PesoMeta.Float64())
	}
	fmt.Fprintf(&b, "- Altura: %g cm\n", p.Altura.Float64())
	fmt.Fprintf(&b, "- Nível de atividade: %s\n", p.NivelAtividade)
	fmt.Fprintf(&b, "- Número de refeições: %d\n", int(p.NumRefeicoes))
	writeList(&b, "Restrições alimentares", p.Restricoes)
	writeList(&b, "Preferências", p.Preferencias)
	writeList(&b, "Alergias (NUNCA incluir)", p.Alergias)
	if p.Orcamento != "" {
		fmt.Fprintf(&b, "- Orçamento: %s\n", p.Orcamento)
	}

	b.WriteString("\nValores calculados (use-os, não recalcule):\n")
	fmt.Fprintf(&b, "- TMB: %d kcal\n", energy.BMRKcal)
	fmt.Fprintf(&b, "- Gasto energético total: %d kcal\n", energy.TDEEKcal)
	fmt.Fprintf(&b, "- Meta calórica diária: %d kcal\n", energy.TargetKcal)
	fmt.Fprintf(&b, "- Macros alvo: %dg proteína, %dg carboidratos, %dg gorduras\n", macros.ProteinG, macros.CarbsG, macros.FatG)

	fmt.Fprintf(&b, "\nDistribua as calorias em exatamente %d refeições. Responda neste formato:\n%s", int(p.NumRefeicoes), dietResponseShape)
	return b.String()
}

/* ─── Workout ────────────────────────────────────────────────────────── */

const workoutSystemPrompt = `Você é um personal trainer experiente. Monte treinos seguros e progressivos, usando nomes de exercícios em português como são conhecidos nas academias brasileiras (ex.: "Supino Reto", "Agachamento Livre").
Responda APENAS com um objeto JSON válido, sem texto adicional e sem markdown.`

const workoutResponseShape = `{
  "resumo": {"objetivo": string, "frequencia": string, "duracao": string, "observacoes": string},
  "treinos": [{"id": number, "nome": string, "dia": string, "tipo": string, "foco": string, "duracaoEstimada": string,
    "aquecimento": {"duracao": string, "exercicios": [string]},
    "exercicios": [{"ordem": number, "nome": string, "gruposMusculares": [string], "series": number, "repeticoes": string,
      "descanso": string, "cargaSugerida": string, "observacoes": string, "videoUrl": "", "tecnicaExecucao": string}],
    "alongamento": {"duracao": string, "exercicios": [string]},
    "observacoesGerais": string}],
  "cronogramaSugerido": object,
  "dicasNutricao": [string],
  "progressaoSugerida": string
}`

func workoutPrompt(r *domain.WorkoutRequest) string {
	var b strings.Builder
	b.WriteString("Crie um plano de treino semanal para o seguinte perfil:\n")
	fmt.Fprintf(&b, "- Biotipo: %s\n", r.Biotipo)
	fmt.Fprintf(&b, "- Objetivo: %s\n", r.Objetivo)
	fmt.Fprintf(&b, "- Nível: %s\n", r.Nivel)
	fmt.Fprintf(&b, "- Dias de treino por semana: %d\n", int(r.DiasTreino))
	fmt.Fprintf(&b, "- Tempo por sessão: %d minutos\n", int(r.Tempo))
	if len(r.Equipamentos) > 0 {
		writeList(&b, "Equipamentos disponíveis", r.Equipamentos)
	} else {
		b.WriteString("- Equipamentos disponíveis: academia completa\n")
	}
	if r.Limitacoes != "" {
		fmt.Fprintf(&b, "- Limitações/lesões: %s\n", r.Limitacoes)
	}
	fmt.Fprintf(&b, "\nGere exatamente %d treinos. Deixe \"videoUrl\" vazio. Responda neste formato:\n%s", int(r.DiasTreino), workoutResponseShape)
	return b.String()
}

/* ─── Food image ─────────────────────────────────────────────────────── */

const foodSystemPrompt = `Você é um nutricionista que identifica alimentos em fotos e estima seu valor nutricional.
Responda APENAS com um objeto JSON válido, sem texto adicional e sem markdown.`

const foodPrompt = `Identifique o alimento principal da imagem e estime a porção mostrada. Responda neste formato:
{
  "food_name": string,
  "confidence": number entre 0 e 1,
  "estimated_weight_g": number,
  "calories_total": number,
  "macros": {"carbs_g": number, "protein_g": number, "fat_g": number, "fiber_g": number, "sugar_g": number},
  "micronutrients": [string],
  "description": string,
  "alternatives": [{"name": string, "probability": number entre 0 e 1}]
}`

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(items, ", "))
}

func sexLabel(s metabolic.Sex) string {
	if s == metabolic.SexFemale {
		return "feminino"
	}
	return "masculino"
}
