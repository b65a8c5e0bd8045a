package metabolic

import "strings"

// Band is one of the five activity tiers.
type Band string

const (
	BandSedentary       Band = "sedentary"
	BandLight           Band = "light"
	BandModerate        Band = "moderate"
	BandVeryActive      Band = "very_active"
	BandExtremelyActive Band = "extremely_active"
)

type activityBand struct {
	band       Band
	multiplier float64
	keywords   []string
}

// activityBands is checked in order. "extremely active" must be tried before
// "very active" since both labels contain "ativo"/"active".
var activityBands = []activityBand{
	{BandSedentary, 1.2, []string{"sedent", "inativ", "inactive"}},
	{BandLight, 1.375, []string{"leve", "light", "pouco ativo"}},
	{BandModerate, 1.55, []string{"moderad", "moderate"}},
	{BandExtremelyActive, 1.9, []string{"extrem", "muito intens", "atleta", "athlete"}},
	{BandVeryActive, 1.725, []string{"muito ativo", "very active", "intens", "ativo", "active"}},
}

var multipliers = func() map[Band]float64 {
	m := make(map[Band]float64, len(activityBands))
	for _, b := range activityBands {
		m[b.band] = b.multiplier
	}
	return m
}()

// Multiplier looks up the TDEE multiplier for a free-text activity label by
// case-insensitive substring match. Unmatched labels fall back to moderate
// (1.55) with matched=false instead of failing.
func Multiplier(label string) (multiplier float64, band Band, matched bool) {
	l := strings.ToLower(label)
	l = strings.NewReplacer("_", " ", "-", " ").Replace(l)
	for _, b := range activityBands {
		if containsAny(l, b.keywords...) {
			return b.multiplier, b.band, true
		}
	}
	return multipliers[BandModerate], BandModerate, false
}

// BandMultiplier returns the multiplier for a known band.
func BandMultiplier(b Band) (float64, bool) {
	m, ok := multipliers[b]
	return m, ok
}
