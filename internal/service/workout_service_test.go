package service

import (
	"context"
	"errors"
	"testing"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeExerciseRepo is an in-memory ExerciseRepository.
type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.Exercise)}
}

func (f *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *exercise
	stored.ID = id
	f.exercises[id] = &stored
	return id, nil
}

func (f *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, ok := f.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *exercise
	return &copied, nil
}

func (f *fakeExerciseRepo) GetAll(_ context.Context) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, exercise := range f.exercises {
		out = append(out, *exercise)
	}
	return out, nil
}

func (f *fakeExerciseRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, id := range ids {
		if exercise, ok := f.exercises[id]; ok {
			out = append(out, *exercise)
		}
	}
	return out, nil
}

func (f *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	if _, ok := f.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *exercise
	f.exercises[exercise.ID] = &stored
	return nil
}

func (f *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.exercises, id)
	return nil
}

func workoutFixture(t *testing.T) (WorkoutService, *fakeWorkoutRepo, *fakeExerciseRepo, *fakeLogRepo) {
	t.Helper()
	workoutRepo := newFakeWorkoutRepo()
	exerciseRepo := newFakeExerciseRepo()
	logRepo := &fakeLogRepo{}
	return NewWorkoutService(workoutRepo, exerciseRepo, logRepo), workoutRepo, exerciseRepo, logRepo
}

func TestCreateWorkoutAppliesDefaults(t *testing.T) {
	svc, _, exerciseRepo, _ := workoutFixture(t)
	userID := primitive.NewObjectID()

	squatID, _ := exerciseRepo.Create(context.Background(), &domain.Exercise{Name: "Squats"})

	created, err := svc.CreateWorkout(context.Background(), userID, &domain.Workout{
		Name: "Leg Day",
		Exercises: []domain.WorkoutExercise{
			{ExerciseID: squatID, Sets: []domain.WorkoutSet{{Reps: 10, Weight: 80}}},
		},
	})
	if err != nil {
		t.Fatalf("createWorkout: %v", err)
	}

	if created.Category != domain.CategoryStrength {
		t.Errorf("category = %q, want %q", created.Category, domain.CategoryStrength)
	}
	if created.Difficulty != domain.DifficultyIntermediate {
		t.Errorf("difficulty = %q, want %q", created.Difficulty, domain.DifficultyIntermediate)
	}
	if created.UserID != userID {
		t.Errorf("userID = %v, want %v", created.UserID, userID)
	}
	if created.Exercises[0].Name != "Squats" {
		t.Errorf("exercise name = %q, want Squats", created.Exercises[0].Name)
	}
}

func TestCreateWorkoutRequiresName(t *testing.T) {
	svc, _, _, _ := workoutFixture(t)

	_, err := svc.CreateWorkout(context.Background(), primitive.NewObjectID(), &domain.Workout{})
	if !errors.Is(err, ErrWorkoutInvalid) {
		t.Errorf("err = %v, want ErrWorkoutInvalid", err)
	}
}

func TestPopulateUnknownExercise(t *testing.T) {
	svc, _, exerciseRepo, _ := workoutFixture(t)
	userID := primitive.NewObjectID()

	squatID, _ := exerciseRepo.Create(context.Background(), &domain.Exercise{Name: "Squats"})

	created, err := svc.CreateWorkout(context.Background(), userID, &domain.Workout{
		Name: "Leg Day",
		Exercises: []domain.WorkoutExercise{
			{ExerciseID: squatID},
			{ExerciseID: primitive.NewObjectID()}, // never existed
		},
	})
	if err != nil {
		t.Fatalf("createWorkout: %v", err)
	}

	// Deleting the catalog entry must not break reads of workouts that
	// reference it.
	if err := exerciseRepo.Delete(context.Background(), squatID); err != nil {
		t.Fatalf("delete exercise: %v", err)
	}

	fetched, err := svc.GetWorkoutByID(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("getWorkoutByID: %v", err)
	}
	for i, ex := range fetched.Exercises {
		if ex.Name != domain.UnknownExerciseName {
			t.Errorf("exercise %d name = %q, want %q", i, ex.Name, domain.UnknownExerciseName)
		}
	}
}

func TestWorkoutOwnershipEnforced(t *testing.T) {
	svc, _, _, _ := workoutFixture(t)
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	created, err := svc.CreateWorkout(context.Background(), owner, &domain.Workout{Name: "Mine"})
	if err != nil {
		t.Fatalf("createWorkout: %v", err)
	}

	if _, err := svc.GetWorkoutByID(context.Background(), stranger, created.ID); !errors.Is(err, ErrWorkoutAccessDenied) {
		t.Errorf("foreign read err = %v, want ErrWorkoutAccessDenied", err)
	}
	if err := svc.DeleteWorkout(context.Background(), stranger, created.ID); !errors.Is(err, ErrWorkoutAccessDenied) {
		t.Errorf("foreign delete err = %v, want ErrWorkoutAccessDenied", err)
	}
	if _, err := svc.ToggleFavorite(context.Background(), stranger, created.ID); !errors.Is(err, ErrWorkoutAccessDenied) {
		t.Errorf("foreign favorite err = %v, want ErrWorkoutAccessDenied", err)
	}
	if _, err := svc.GetWorkoutByID(context.Background(), stranger, primitive.NewObjectID()); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("missing read err = %v, want ErrWorkoutNotFound", err)
	}
}

func TestDeleteWorkoutCascadesLogs(t *testing.T) {
	svc, _, _, logRepo := workoutFixture(t)
	userID := primitive.NewObjectID()

	created, err := svc.CreateWorkout(context.Background(), userID, &domain.Workout{Name: "Push Day"})
	if err != nil {
		t.Fatalf("createWorkout: %v", err)
	}

	// Two logs against this workout, one against another source.
	logRepo.logs = []domain.WorkoutLog{
		{ID: primitive.NewObjectID(), WorkoutID: created.ID.Hex()},
		{ID: primitive.NewObjectID(), WorkoutID: created.ID.Hex()},
		{ID: primitive.NewObjectID(), WorkoutID: "full-body-1"},
	}

	if err := svc.DeleteWorkout(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("deleteWorkout: %v", err)
	}

	if len(logRepo.logs) != 1 {
		t.Fatalf("remaining logs = %d, want 1", len(logRepo.logs))
	}
	if logRepo.logs[0].WorkoutID != "full-body-1" {
		t.Errorf("wrong log survived: %+v", logRepo.logs[0])
	}
}

func TestToggleFavoriteFlips(t *testing.T) {
	svc, workoutRepo, _, _ := workoutFixture(t)
	userID := primitive.NewObjectID()

	created, err := svc.CreateWorkout(context.Background(), userID, &domain.Workout{Name: "Push Day"})
	if err != nil {
		t.Fatalf("createWorkout: %v", err)
	}

	updated, err := svc.ToggleFavorite(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("toggleFavorite: %v", err)
	}
	if !updated.IsFavorite {
		t.Error("favorite = false after first toggle, want true")
	}
	if stored := workoutRepo.workouts[created.ID]; !stored.IsFavorite {
		t.Error("favorite flag not persisted")
	}

	updated, err = svc.ToggleFavorite(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("toggleFavorite: %v", err)
	}
	if updated.IsFavorite {
		t.Error("favorite = true after second toggle, want false")
	}
}

func TestUpdateWorkoutOverwrites(t *testing.T) {
	svc, _, exerciseRepo, _ := workoutFixture(t)
	userID := primitive.NewObjectID()

	benchID, _ := exerciseRepo.Create(context.Background(), &domain.Exercise{Name: "Bench Press"})

	created, err := svc.CreateWorkout(context.Background(), userID, &domain.Workout{Name: "Push Day"})
	if err != nil {
		t.Fatalf("createWorkout: %v", err)
	}

	updated, err := svc.UpdateWorkout(context.Background(), userID, &domain.Workout{
		ID:   created.ID,
		Name: "Push Day v2",
		Exercises: []domain.WorkoutExercise{
			{ExerciseID: benchID, Sets: []domain.WorkoutSet{{Reps: 8, Weight: 60}}},
		},
		Category:   domain.CategoryUpperBody,
		Difficulty: domain.DifficultyAdvanced,
	})
	if err != nil {
		t.Fatalf("updateWorkout: %v", err)
	}

	if updated.Name != "Push Day v2" || updated.Category != domain.CategoryUpperBody {
		t.Errorf("updated = %+v", updated)
	}
	if len(updated.Exercises) != 1 || updated.Exercises[0].Name != "Bench Press" {
		t.Errorf("exercises = %+v", updated.Exercises)
	}
}
