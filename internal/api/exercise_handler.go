package api

import (
	"net/http"
	"strconv"
	"time"

	"fitai/plan-service/internal/apperr"
	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ExerciseHandler serves catalog administration.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	logger          *zap.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, logger *zap.Logger) *ExerciseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExerciseHandler{exerciseService: exerciseService, logger: logger}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest defines the expected JSON for creating or replacing an exercise.
type ExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	MuscleGroup string `json:"muscleGroup" binding:"required"` // e.g., "Peito", "Pernas"
	VideoURL    string `json:"videoUrl" binding:"omitempty,url"`
	Difficulty  string `json:"difficulty" binding:"omitempty"`
	Description string `json:"description"`
}

// VideoUploadRequest asks for a presigned upload slot.
type VideoUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscleGroup"`
	VideoURL    string    `json:"videoUrl"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID.Hex(),
		Name:        ex.Name,
		MuscleGroup: ex.MuscleGroup,
		VideoURL:    ex.VideoURL,
		Difficulty:  ex.Difficulty,
		Description: ex.Description,
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

func (r ExerciseRequest) toInput() service.ExerciseInput {
	return service.ExerciseInput{
		Name:        r.Name,
		MuscleGroup: r.MuscleGroup,
		VideoURL:    r.VideoURL,
		Difficulty:  r.Difficulty,
		Description: r.Description,
	}
}

// pathObjectID parses the named path parameter, aborting with 400 when it is
// not an ObjectID.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List the exercise catalog
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse "Catalog sorted by name"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (not an admin)"
// @Router /api/v1/admin/exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// CreateExercise godoc
// @Summary Add an exercise to the catalog
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} ErrorResponse "Invalid input (validation error)"
// @Failure 409 {object} ErrorResponse "Name already in the catalog"
// @Router /api/v1/admin/exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetExercise godoc
// @Summary Get one catalog entry
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /api/v1/admin/exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise godoc
// @Summary Replace a catalog entry
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Name already in the catalog"
// @Router /api/v1/admin/exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise godoc
// @Summary Remove a catalog entry and its stored video
// @Tags Exercises
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /api/v1/admin/exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestVideoUpload godoc
// @Summary Get a presigned URL to upload the exercise video
// @Description The entry's videoUrl is pointed at the new object right away.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param upload body VideoUploadRequest true "File details"
// @Success 200 {object} service.VideoUpload
// @Failure 400 {object} ErrorResponse "Not a video"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 500 {object} ErrorResponse "Storage not configured"
// @Router /api/v1/admin/exercises/{id}/video-upload [post]
func (h *ExerciseHandler) RequestVideoUpload(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req VideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.exerciseService.RequestVideoUpload(c.Request.Context(), id, req.FileName, req.ContentType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// ListMissingExercises godoc
// @Summary List names the resolver could not match
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param resolved query bool false "Filter by resolution state"
// @Success 200 {array} domain.MissingExercise
// @Failure 400 {object} ErrorResponse "Bad filter"
// @Router /api/v1/admin/missing-exercises [get]
func (h *ExerciseHandler) ListMissingExercises(c *gin.Context) {
	var resolved *bool
	if raw, ok := c.GetQuery("resolved"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, h.logger, apperr.Invalid("resolved"))
			return
		}
		resolved = &v
	}

	records, err := h.exerciseService.ListMissingExercises(c.Request.Context(), resolved)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if records == nil {
		records = []domain.MissingExercise{}
	}
	c.JSON(http.StatusOK, records)
}

// ResolveMissingExercise godoc
// @Summary Mark a missing-exercise record as handled
// @Tags Exercises
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 204 "Resolved"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /api/v1/admin/missing-exercises/{id}/resolve [post]
func (h *ExerciseHandler) ResolveMissingExercise(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.exerciseService.ResolveMissingExercise(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
