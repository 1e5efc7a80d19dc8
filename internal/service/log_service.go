package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogNotFound     = errors.New("workout log not found")
	ErrLogAccessDenied = errors.New("not authorized to access this workout log")
)

// LogValidationError carries the individual schema problems of a rejected
// submission so the API layer can report all of them at once.
type LogValidationError struct {
	Problems []string
}

func (e *LogValidationError) Error() string {
	return "workout log validation failed: " + strings.Join(e.Problems, "; ")
}

// Recent history window returned by GetRecent.
const recentLogLimit = 6

// LogPage is the paginated envelope for log queries.
type LogPage struct {
	WorkoutLogs []domain.WorkoutLog `json:"workoutLogs"`
	Total       int64               `json:"total"`
	CurrentPage int64               `json:"currentPage"`
	TotalPages  int64               `json:"totalPages"`
}

// LogService persists and queries finished-session logs.
type LogService interface {
	CreateLog(ctx context.Context, userID primitive.ObjectID, log *domain.WorkoutLog) (*domain.WorkoutLog, error)
	GetRecent(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	GetByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WorkoutLog, error)
	Query(ctx context.Context, userID primitive.ObjectID, filter repository.LogFilter) (*LogPage, error)
	GetByID(ctx context.Context, userID, logID primitive.ObjectID) (*domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, userID, logID primitive.ObjectID) error
}

// logService implements the LogService interface.
type logService struct {
	logRepo     repository.WorkoutLogRepository
	workoutRepo repository.WorkoutRepository
}

// NewLogService creates a new instance of logService.
func NewLogService(logRepo repository.WorkoutLogRepository, workoutRepo repository.WorkoutRepository) LogService {
	return &logService{
		logRepo:     logRepo,
		workoutRepo: workoutRepo,
	}
}

// CreateLog validates and stores a finished session. The client validates
// before submitting; the same rules are enforced here regardless.
func (s *logService) CreateLog(ctx context.Context, userID primitive.ObjectID, log *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	if err := validateLog(log); err != nil {
		return nil, err
	}

	log.UserID = userID
	logID, err := s.logRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = logID

	// Stamp the source workout when the session ran against a stored one.
	// Predefined template IDs are not ObjectIDs and are skipped.
	if workoutID, err := primitive.ObjectIDFromHex(log.WorkoutID); err == nil {
		_ = s.workoutRepo.SetLastPerformed(ctx, workoutID, log.EndTime)
	}

	return log, nil
}

// GetRecent returns the user's newest logs by start time.
func (s *logService) GetRecent(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return s.logRepo.GetRecentByUser(ctx, userID, recentLogLimit)
}

// GetByDate returns the logs whose start time falls on the given day,
// ascending.
func (s *logService) GetByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WorkoutLog, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24*time.Hour - time.Millisecond)
	return s.logRepo.GetByUserBetween(ctx, userID, startOfDay, endOfDay)
}

// Query returns a paginated window of logs, newest first.
func (s *logService) Query(ctx context.Context, userID primitive.ObjectID, filter repository.LogFilter) (*LogPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	logs, total, err := s.logRepo.GetByUserFiltered(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []domain.WorkoutLog{}
	}

	totalPages := int64(math.Ceil(float64(total) / float64(filter.Limit)))
	return &LogPage{
		WorkoutLogs: logs,
		Total:       total,
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
	}, nil
}

// GetByID returns a single log the user owns.
func (s *logService) GetByID(ctx context.Context, userID, logID primitive.ObjectID) (*domain.WorkoutLog, error) {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if log.UserID != userID {
		return nil, ErrLogAccessDenied
	}
	return log, nil
}

// DeleteLog removes a single log the user owns.
func (s *logService) DeleteLog(ctx context.Context, userID, logID primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, userID, logID); err != nil {
		return err
	}
	return s.logRepo.Delete(ctx, logID)
}

// validateLog enforces the submission schema: identity and timing fields are
// required, duration is non-negative, and the exercise list is structurally
// complete down to each set's numbers.
func validateLog(log *domain.WorkoutLog) error {
	var problems []string

	if log.WorkoutID == "" {
		problems = append(problems, "workoutId is required")
	}
	if log.WorkoutName == "" {
		problems = append(problems, "workoutName is required")
	}
	if log.StartTime.IsZero() {
		problems = append(problems, "startTime is required")
	}
	if log.EndTime.IsZero() {
		problems = append(problems, "endTime is required")
	}
	if log.Duration < 0 {
		problems = append(problems, "duration cannot be negative")
	}
	if len(log.Exercises) == 0 {
		problems = append(problems, "at least one exercise is required")
	}

	for i, ex := range log.Exercises {
		if ex.Name == "" {
			problems = append(problems, fmt.Sprintf("exercises[%d]: name is required", i))
		}
		if len(ex.Sets) == 0 {
			problems = append(problems, fmt.Sprintf("exercises[%d]: at least one set is required", i))
		}
		for j, set := range ex.Sets {
			if math.IsNaN(set.Reps) || math.IsInf(set.Reps, 0) || set.Reps < 0 {
				problems = append(problems, fmt.Sprintf("exercises[%d].sets[%d]: reps must be a non-negative number", i, j))
			}
			if math.IsNaN(set.Weight) || math.IsInf(set.Weight, 0) || set.Weight < 0 {
				problems = append(problems, fmt.Sprintf("exercises[%d].sets[%d]: weight must be a non-negative number", i, j))
			}
		}
	}

	if len(problems) > 0 {
		return &LogValidationError{Problems: problems}
	}
	return nil
}
