package api

import (
	"errors"
	"fmt"
	"net/http"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs for API (Data Transfer Objects) ---

type WorkoutSetRequest struct {
	Reps      float64 `json:"reps" binding:"gte=0"`
	Weight    float64 `json:"weight" binding:"gte=0"`
	Completed bool    `json:"completed"`
}

type WorkoutExerciseRequest struct {
	ExerciseID string              `json:"exercise" binding:"required"`
	Sets       []WorkoutSetRequest `json:"sets"`
	Notes      string              `json:"notes"`
}

// WorkoutRequest defines the expected JSON for creating or updating a
// workout. Category and difficulty default in the service when omitted.
type WorkoutRequest struct {
	Name              string                   `json:"name" binding:"required"`
	Description       string                   `json:"description"`
	Exercises         []WorkoutExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
	Category          string                   `json:"category" binding:"omitempty,oneof=strength cardio flexibility full-body upper-body lower-body"`
	Difficulty        string                   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedDuration int                      `json:"estimatedDuration" binding:"gte=0"`
}

func (r *WorkoutRequest) toDomain() (*domain.Workout, error) {
	exercises := make([]domain.WorkoutExercise, len(r.Exercises))
	for i, ex := range r.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(ex.ExerciseID)
		if err != nil {
			return nil, fmt.Errorf("exercise %d: invalid exercise ID %q", i+1, ex.ExerciseID)
		}
		sets := make([]domain.WorkoutSet, len(ex.Sets))
		for j, set := range ex.Sets {
			sets[j] = domain.WorkoutSet{Reps: set.Reps, Weight: set.Weight, Completed: set.Completed}
		}
		exercises[i] = domain.WorkoutExercise{
			ExerciseID: exerciseID,
			Sets:       sets,
			Notes:      ex.Notes,
		}
	}
	return &domain.Workout{
		Name:              r.Name,
		Description:       r.Description,
		Exercises:         exercises,
		Category:          r.Category,
		Difficulty:        r.Difficulty,
		EstimatedDuration: r.EstimatedDuration,
	}, nil
}

// --- Handler Methods ---

// CreateWorkout saves a new workout for the authenticated user.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, workout)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create workout")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetWorkouts lists the authenticated user's workouts, newest first, with
// exercise names resolved from the catalog.
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workouts, err := h.workoutService.GetWorkoutsForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout returns one of the user's workouts by ID.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	workout, err := h.workoutService.GetWorkoutByID(c.Request.Context(), userID, workoutID)
	if err != nil {
		h.abortWorkoutError(c, err, "Failed to retrieve workout")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// UpdateWorkout replaces one of the user's workouts.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	workout.ID = workoutID

	updated, err := h.workoutService.UpdateWorkout(c.Request.Context(), userID, workout)
	if err != nil {
		h.abortWorkoutError(c, err, "Failed to update workout")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteWorkout removes a workout and all logs recorded against it.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		h.abortWorkoutError(c, err, "Failed to delete workout")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleFavorite flips the favorite flag on one of the user's workouts.
func (h *WorkoutHandler) ToggleFavorite(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	updated, err := h.workoutService.ToggleFavorite(c.Request.Context(), userID, workoutID)
	if err != nil {
		h.abortWorkoutError(c, err, "Failed to update workout")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *WorkoutHandler) abortWorkoutError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrWorkoutInvalid):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
