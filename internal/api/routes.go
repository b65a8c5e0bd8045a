package api

import (
	"net/http"

	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles what the handlers need.
type Services struct {
	Auth     service.AuthService
	Plan     service.PlanService
	Food     service.FoodService
	Exercise service.ExerciseService
}

// NewRouter builds a gin engine with the standard middleware chain and all routes.
func NewRouter(services Services, jwtSecret string, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		RequestIDMiddleware(),
		LoggerMiddleware(logger.Named("http")),
		RecoveryMiddleware(logger),
		CORSMiddleware(allowedOrigins),
	)
	SetupRoutes(router, jwtSecret, services, logger)
	return router
}

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services, logger *zap.Logger) {
	planHandler := NewPlanHandler(services.Plan, services.Food, logger)
	authHandler := NewAuthHandler(services.Auth, logger)
	exerciseHandler := NewExerciseHandler(services.Exercise, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public generation endpoints. Preflight is answered by CORSMiddleware;
	// the explicit OPTIONS routes keep it working when the middleware chain
	// is assembled without it.
	public := map[string]gin.HandlerFunc{
		"/analyze-food-image":    planHandler.AnalyzeFoodImage,
		"/generate-diet-plan":    planHandler.GenerateDietPlan,
		"/generate-workout-plan": planHandler.GenerateWorkoutPlan,
	}
	for path, handler := range public {
		router.POST(path, handler)
		router.OPTIONS(path, func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
	}

	// All routes in this group require authentication AND the admin role.
	admin := apiV1.Group("/admin")
	admin.Use(AuthMiddleware(jwtSecret), RoleMiddleware(domain.RoleAdmin))
	{
		exerciseGroup := admin.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:id/video-upload", exerciseHandler.RequestVideoUpload)
		}

		missingGroup := admin.Group("/missing-exercises")
		{
			missingGroup.GET("", exerciseHandler.ListMissingExercises)
			missingGroup.POST("/:id/resolve", exerciseHandler.ResolveMissingExercise)
		}
	}
}
