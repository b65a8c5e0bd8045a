package api

import (
	"errors"
	"io"
	"net/http"

	"fitai/plan-service/internal/apperr"
	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanHandler serves the public generation endpoints.
type PlanHandler struct {
	planService service.PlanService
	foodService service.FoodService
	logger      *zap.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, foodService service.FoodService, logger *zap.Logger) *PlanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanHandler{planService: planService, foodService: foodService, logger: logger}
}

// --- Request/Response Structs ---

type DietPlanRequest struct {
	UserProfile *domain.DietProfile `json:"userProfile"`
}

type DietPlanResponse struct {
	Success  bool             `json:"success"`
	DietPlan *domain.DietPlan `json:"dietPlan"`
}

type WorkoutPlanResponse struct {
	Plano *domain.WorkoutPlan `json:"plano"`
}

type FoodImageRequest struct {
	ImageData string `json:"imageData"`
}

// bindBody decodes the JSON body into dst. An empty body leaves dst zeroed so
// the service reports every required field as missing.
func bindBody(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Wrap(err, apperr.CodeValidation, "request body is not valid JSON")
	}
	return nil
}

// --- Handler Methods ---

// GenerateDietPlan godoc
// @Summary Generate a diet plan
// @Description Computes BMR/TDEE for the profile and asks the model for a meal plan.
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body DietPlanRequest true "User profile"
// @Success 200 {object} DietPlanResponse
// @Failure 400 {object} ErrorResponse "Missing or invalid fields"
// @Failure 402 {object} ErrorResponse "Quota exceeded"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Generation failed"
// @Router /generate-diet-plan [post]
func (h *PlanHandler) GenerateDietPlan(c *gin.Context) {
	var req DietPlanRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	plan, err := h.planService.GenerateDietPlan(c.Request.Context(), req.UserProfile)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, DietPlanResponse{Success: true, DietPlan: plan})
}

// GenerateWorkoutPlan godoc
// @Summary Generate a workout plan
// @Description Asks the model for a weekly plan and attaches catalog videos to every exercise.
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body domain.WorkoutRequest true "Workout preferences"
// @Success 200 {object} WorkoutPlanResponse
// @Failure 400 {object} ErrorResponse "Missing or invalid fields"
// @Failure 402 {object} ErrorResponse "Quota exceeded"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Generation failed"
// @Router /generate-workout-plan [post]
func (h *PlanHandler) GenerateWorkoutPlan(c *gin.Context) {
	var req domain.WorkoutRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	plan, err := h.planService.GenerateWorkoutPlan(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, WorkoutPlanResponse{Plano: plan})
}

// AnalyzeFoodImage godoc
// @Summary Estimate the nutrition of a food photo
// @Tags Food
// @Accept json
// @Produce json
// @Param request body FoodImageRequest true "Data URI or raw base64 image"
// @Success 200 {object} domain.FoodAnalysis
// @Failure 400 {object} ErrorResponse "Missing or invalid image"
// @Failure 402 {object} ErrorResponse "Quota exceeded"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Analysis failed"
// @Router /analyze-food-image [post]
func (h *PlanHandler) AnalyzeFoodImage(c *gin.Context) {
	var req FoodImageRequest
	if err := bindBody(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	analysis, err := h.foodService.AnalyzeFoodImage(c.Request.Context(), req.ImageData)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
