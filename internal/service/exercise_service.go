package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrValidationFailed     = errors.New("exercise validation failed")
	ErrUnsupportedMediaType = errors.New("unsupported media content type")
)

// ExerciseWithMedia bundles a catalog entry with a presigned download URL for
// its demonstration media, when present.
type ExerciseWithMedia struct {
	domain.Exercise
	MediaURL string `json:"mediaUrl,omitempty"`
}

// ExerciseService maintains the shared exercise catalog. Reads are open to
// all authenticated users; writes are restricted to admins at the API layer.
type ExerciseService interface {
	GetCatalog(ctx context.Context) ([]domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*ExerciseWithMedia, error)
	CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error
	GenerateMediaUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (uploadURL string, err error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

// GetCatalog returns the full exercise catalog.
func (s *exerciseService) GetCatalog(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

// GetExerciseByID retrieves a single exercise, attaching a presigned media URL
// when the exercise has demonstration media.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*ExerciseWithMedia, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	result := &ExerciseWithMedia{Exercise: *exercise}
	if exercise.MediaObjectKey != "" && s.fileStorage != nil {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaObjectKey, storage.DefaultPresignedURLExpiry)
		if err == nil {
			result.MediaURL = url
		}
		// A presign failure degrades to no media URL rather than failing
		// the whole read.
	}
	return result, nil
}

// CreateExercise adds a new entry to the catalog.
func (s *exerciseService) CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, ErrValidationFailed
	}
	normalizeExercise(exercise)

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// UpdateExercise overwrites an existing catalog entry.
func (s *exerciseService) UpdateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exercise.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	// Media is managed through GenerateMediaUploadURL, not PUT.
	exercise.MediaObjectKey = existing.MediaObjectKey
	normalizeExercise(exercise)

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes a catalog entry and its media object, if any.
func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error {
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if existing.MediaObjectKey != "" && s.fileStorage != nil {
		// Workouts referencing this exercise keep their reference and render
		// it as "Unknown Exercise"; only the media object is cleaned up.
		_ = s.fileStorage.DeleteObject(ctx, existing.MediaObjectKey)
	}
	return nil
}

// GenerateMediaUploadURL issues a presigned PUT URL for an exercise's
// demonstration media and records the object key on the exercise.
func (s *exerciseService) GenerateMediaUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (string, error) {
	if s.fileStorage == nil {
		return "", errors.New("file storage is not configured")
	}
	ext, ok := mediaExtension(contentType)
	if !ok {
		return "", ErrUnsupportedMediaType
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExerciseNotFound
		}
		return "", err
	}

	objectKey := fmt.Sprintf("exercises/%s/%s%s", exerciseID.Hex(), uuid.NewString(), ext)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}

	previousKey := exercise.MediaObjectKey
	exercise.MediaObjectKey = objectKey
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return "", err
	}
	if previousKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, previousKey)
	}

	return uploadURL, nil
}

// mediaExtension maps an accepted content type to a file extension.
func mediaExtension(contentType string) (string, bool) {
	switch {
	case contentType == "image/jpeg":
		return ".jpg", true
	case contentType == "image/png":
		return ".png", true
	case contentType == "image/gif":
		return ".gif", true
	case contentType == "video/mp4":
		return ".mp4", true
	case strings.HasPrefix(contentType, "video/") || strings.HasPrefix(contentType, "image/"):
		exts, err := mime.ExtensionsByType(contentType)
		if err != nil || len(exts) == 0 {
			return "", false
		}
		return exts[0], true
	default:
		return "", false
	}
}

// normalizeExercise replaces nil slices so documents always carry arrays.
func normalizeExercise(e *domain.Exercise) {
	if e.PrimaryMuscles == nil {
		e.PrimaryMuscles = []string{}
	}
	if e.SecondaryMuscles == nil {
		e.SecondaryMuscles = []string{}
	}
	if e.Instructions == nil {
		e.Instructions = []string{}
	}
}
