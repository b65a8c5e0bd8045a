package service

import (
	"context"
	"encoding/base64"
	"strings"

	"fitai/plan-service/internal/ai"
	"fitai/plan-service/internal/apperr"
	"fitai/plan-service/internal/domain"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

type FoodService interface {
	AnalyzeFoodImage(ctx context.Context, imageData string) (*domain.FoodAnalysis, error)
}

type foodService struct {
	generator Generator
	logger    *zap.Logger
}

func NewFoodService(generator Generator, logger *zap.Logger) FoodService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &foodService{generator: generator, logger: logger}
}

// AnalyzeFoodImage sends the photo to the vision model and returns its
// nutritional reading with probabilities clamped to [0,1].
func (s *foodService) AnalyzeFoodImage(ctx context.Context, imageData string) (*domain.FoodAnalysis, error) {
	imageURL, err := imageDataURI(imageData)
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.CompleteWithImage(ctx, foodSystemPrompt, foodPrompt, imageURL)
	if err != nil {
		return nil, err
	}

	var analysis domain.FoodAnalysis
	if err := ai.DecodeJSON(raw, &analysis); err != nil {
		s.logger.Error("malformed food analysis from model", zap.String("raw", ai.Excerpt(raw)), zap.Error(err))
		return nil, err
	}

	analysis.Confidence = clampUnit(analysis.Confidence)
	for i := range analysis.Alternatives {
		analysis.Alternatives[i].Probability = clampUnit(analysis.Alternatives[i].Probability)
	}
	if analysis.Micronutrients == nil {
		analysis.Micronutrients = []string{}
	}
	if analysis.Alternatives == nil {
		analysis.Alternatives = []domain.FoodAlternative{}
	}
	return &analysis, nil
}

// imageDataURI accepts a data URI, an http(s) URL or raw base64. Raw base64
// is sniffed and wrapped into a data URI; anything that is not an image is
// rejected.
func imageDataURI(imageData string) (string, error) {
	imageData = strings.TrimSpace(imageData)
	switch {
	case imageData == "":
		return "", apperr.Missing("imageData")
	case strings.HasPrefix(imageData, "data:"):
		if !strings.HasPrefix(imageData, "data:image/") {
			return "", apperr.Invalid("imageData")
		}
		return imageData, nil
	case strings.HasPrefix(imageData, "https://"), strings.HasPrefix(imageData, "http://"):
		return imageData, nil
	}

	encoded := strings.Join(strings.Fields(imageData), "")
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", apperr.Invalid("imageData").WithCause(err)
	}
	mime := mimetype.Detect(decoded)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", apperr.Invalid("imageData")
	}
	return "data:" + mime.String() + ";base64," + encoded, nil
}

// clampUnit keeps a model-reported probability in [0,1]. Models sometimes
// answer in percent; values in (1,100] are scaled down.
func clampUnit(n domain.Number) domain.Number {
	switch {
	case n < 0:
		return 0
	case n > 1 && n <= 100:
		return n / 100
	case n > 100:
		return 1
	default:
		return n
	}
}
