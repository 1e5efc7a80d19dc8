package service

import (
	"context"
	"errors"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("not authorized to access this workout")
	ErrWorkoutInvalid      = errors.New("workout validation failed")
)

// WorkoutService manages user-created workouts. Every operation is scoped to
// the requesting user; ownership is enforced here, not in the repositories.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, userID primitive.ObjectID, workout *domain.Workout) (*domain.PopulatedWorkout, error)
	GetWorkoutsForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.PopulatedWorkout, error)
	GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.PopulatedWorkout, error)
	UpdateWorkout(ctx context.Context, userID primitive.ObjectID, workout *domain.Workout) (*domain.PopulatedWorkout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error
	ToggleFavorite(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	logRepo      repository.WorkoutLogRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	logRepo repository.WorkoutLogRepository,
) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		logRepo:      logRepo,
	}
}

// CreateWorkout validates and stores a new workout for the user.
func (s *workoutService) CreateWorkout(ctx context.Context, userID primitive.ObjectID, workout *domain.Workout) (*domain.PopulatedWorkout, error) {
	if workout.Name == "" {
		return nil, ErrWorkoutInvalid
	}
	workout.UserID = userID
	applyWorkoutDefaults(workout)

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID

	return s.populate(ctx, workout)
}

// GetWorkoutsForUser returns the user's workouts with exercise names resolved,
// newest first.
func (s *workoutService) GetWorkoutsForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.PopulatedWorkout, error) {
	workouts, err := s.workoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	names, err := s.exerciseNames(ctx, workouts)
	if err != nil {
		return nil, err
	}

	populated := make([]domain.PopulatedWorkout, len(workouts))
	for i := range workouts {
		populated[i] = populateWorkout(&workouts[i], names)
	}
	return populated, nil
}

// GetWorkoutByID returns a single workout with exercise names resolved. Any
// authenticated owner may read it; other users get ErrWorkoutAccessDenied.
func (s *workoutService) GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.PopulatedWorkout, error) {
	workout, err := s.ownedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, workout)
}

// UpdateWorkout overwrites a workout the user owns.
func (s *workoutService) UpdateWorkout(ctx context.Context, userID primitive.ObjectID, workout *domain.Workout) (*domain.PopulatedWorkout, error) {
	if workout.Name == "" {
		return nil, ErrWorkoutInvalid
	}

	existing, err := s.ownedWorkout(ctx, userID, workout.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = workout.Name
	existing.Description = workout.Description
	existing.Exercises = workout.Exercises
	existing.Category = workout.Category
	existing.Difficulty = workout.Difficulty
	existing.EstimatedDuration = workout.EstimatedDuration
	applyWorkoutDefaults(existing)

	if err := s.workoutRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return s.populate(ctx, existing)
}

// DeleteWorkout removes a workout the user owns, together with every log
// recorded against it.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if _, err := s.ownedWorkout(ctx, userID, workoutID); err != nil {
		return err
	}

	if err := s.workoutRepo.Delete(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}

	_, err := s.logRepo.DeleteByWorkoutID(ctx, workoutID.Hex())
	return err
}

// ToggleFavorite flips the favorite flag on a workout the user owns.
func (s *workoutService) ToggleFavorite(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.ownedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	workout.IsFavorite = !workout.IsFavorite
	if err := s.workoutRepo.SetFavorite(ctx, workoutID, workout.IsFavorite); err != nil {
		return nil, err
	}
	return workout, nil
}

// ownedWorkout fetches a workout and verifies the caller owns it.
func (s *workoutService) ownedWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutAccessDenied
	}
	return workout, nil
}

// populate resolves exercise names for a single workout.
func (s *workoutService) populate(ctx context.Context, workout *domain.Workout) (*domain.PopulatedWorkout, error) {
	names, err := s.exerciseNames(ctx, []domain.Workout{*workout})
	if err != nil {
		return nil, err
	}
	populated := populateWorkout(workout, names)
	return &populated, nil
}

// exerciseNames loads the catalog names for every exercise referenced by the
// given workouts in a single query.
func (s *workoutService) exerciseNames(ctx context.Context, workouts []domain.Workout) (map[primitive.ObjectID]string, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for i := range workouts {
		for _, ex := range workouts[i].Exercises {
			if _, ok := seen[ex.ExerciseID]; !ok {
				seen[ex.ExerciseID] = struct{}{}
				ids = append(ids, ex.ExerciseID)
			}
		}
	}

	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range exercises {
		names[exercises[i].ID] = exercises[i].Name
	}
	return names, nil
}

// populateWorkout maps workout exercises to their catalog names. References
// to deleted exercises resolve to the unknown-exercise placeholder.
func populateWorkout(workout *domain.Workout, names map[primitive.ObjectID]string) domain.PopulatedWorkout {
	exercises := make([]domain.PopulatedExercise, len(workout.Exercises))
	for i, ex := range workout.Exercises {
		name, ok := names[ex.ExerciseID]
		if !ok || name == "" {
			name = domain.UnknownExerciseName
		}
		exercises[i] = domain.PopulatedExercise{
			ExerciseID: ex.ExerciseID,
			Name:       name,
			Sets:       ex.Sets,
			Notes:      ex.Notes,
		}
	}
	return domain.PopulatedWorkout{
		ID:                workout.ID,
		UserID:            workout.UserID,
		Name:              workout.Name,
		Description:       workout.Description,
		Exercises:         exercises,
		IsFavorite:        workout.IsFavorite,
		Category:          workout.Category,
		Difficulty:        workout.Difficulty,
		EstimatedDuration: workout.EstimatedDuration,
		LastPerformed:     workout.LastPerformed,
		CreatedAt:         workout.CreatedAt,
	}
}

// applyWorkoutDefaults fills category and difficulty the way the persisted
// schema defaults them.
func applyWorkoutDefaults(workout *domain.Workout) {
	if workout.Category == "" {
		workout.Category = domain.CategoryStrength
	}
	if workout.Difficulty == "" {
		workout.Difficulty = domain.DifficultyIntermediate
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}
}
