package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	activitieserrors "dopo/internal/activities/errors"
	"dopo/internal/activities/repository"
	"dopo/internal/activities/validator"
	"dopo/internal/events"
	"dopo/pkg/config"
	mongostore "dopo/pkg/db/mongo"
	apperrors "dopo/pkg/errors"
	"dopo/pkg/model"
)

type ActivityService interface {
	List(ctx context.Context) ([]model.Activity, error)
	Search(ctx context.Context, keyword string) ([]model.Activity, error)
	UpdateSpaces(ctx context.Context, updates []model.SpacesUpdate) *SpacesBatch
}

// SpacesBatch holds one outcome per requested update, in request order.
type SpacesBatch struct {
	Results []model.SpacesUpdateResult
	errs    []*apperrors.AppError
}

// NewSpacesBatch sizes a batch for n updates. Record may be called for
// distinct indexes from different goroutines.
func NewSpacesBatch(n int) *SpacesBatch {
	return &SpacesBatch{
		Results: make([]model.SpacesUpdateResult, n),
		errs:    make([]*apperrors.AppError, n),
	}
}

func (b *SpacesBatch) Record(i int, id string, err *apperrors.AppError) {
	b.Results[i] = model.SpacesUpdateResult{ID: id}
	if err != nil {
		b.Results[i].Error = err.Code
		b.Results[i].Message = err.Message
		b.errs[i] = err
	}
}

func (b *SpacesBatch) Failed() int {
	failed := 0
	for _, err := range b.errs {
		if err != nil {
			failed++
		}
	}
	return failed
}

// FirstError returns the failure of the earliest failed element, or nil.
func (b *SpacesBatch) FirstError() *apperrors.AppError {
	for _, err := range b.errs {
		if err != nil {
			return err
		}
	}
	return nil
}

type activityService struct {
	repo      repository.ActivityRepository
	validator *validator.SpacesUpdateValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewActivityService(
	repo repository.ActivityRepository,
	validator *validator.SpacesUpdateValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ActivityService {
	return &activityService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *activityService) List(ctx context.Context) ([]model.Activity, error) {
	activities, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list activities", "error", err)
		return nil, mongostore.StoreError("Failed to retrieve activities", err)
	}
	return activities, nil
}

func (s *activityService) Search(ctx context.Context, keyword string) ([]model.Activity, error) {
	activities, err := s.repo.Search(ctx, keyword)
	if err != nil {
		s.cfg.Log.Error("Failed to search activities",
			"keyword", keyword,
			"error", err,
		)
		return nil, mongostore.StoreError("Failed to search activities", err)
	}
	return activities, nil
}

// UpdateSpaces applies every update concurrently. A failing element never
// stops the others; the batch reports each outcome.
func (s *activityService) UpdateSpaces(ctx context.Context, updates []model.SpacesUpdate) *SpacesBatch {
	batch := NewSpacesBatch(len(updates))

	var wg sync.WaitGroup
	wg.Add(len(updates))
	for i := range updates {
		go func(i int, update model.SpacesUpdate) {
			defer wg.Done()
			batch.Record(i, update.ID, s.updateOne(ctx, update))
		}(i, updates[i])
	}
	wg.Wait()

	if failed := batch.Failed(); failed > 0 {
		s.cfg.Log.Warn("Spaces update finished with failures",
			"total", len(updates),
			"failed", failed,
		)
	} else {
		s.cfg.Log.Info("Spaces updated", "total", len(updates))
	}

	return batch
}

func (s *activityService) updateOne(ctx context.Context, update model.SpacesUpdate) *apperrors.AppError {
	if err := s.validator.Validate(&update); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation("Invalid spaces update", map[string]any{
				"errors": verrs,
			})
		}
		return apperrors.Validation("Invalid spaces update", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.DecrementSpaces(ctx, update.ID, update.BookedSpaces); err != nil {
		return s.mapDecrementError(update, err)
	}

	if err := s.publisher.Publish(ctx, events.SpacesDecremented(update.ID, update.BookedSpaces)); err != nil {
		s.cfg.Log.Warn("Failed to publish spaces event",
			"activity_id", update.ID,
			"error", err,
		)
	}

	return nil
}

func (s *activityService) mapDecrementError(update model.SpacesUpdate, err error) *apperrors.AppError {
	switch {
	case errors.Is(err, activitieserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Activity", update.ID)
	case errors.Is(err, activitieserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid activity ID format")
	case errors.Is(err, activitieserrors.ErrInsufficientSpaces):
		return apperrors.Conflict(fmt.Sprintf("Activity %s does not have %d spaces left", update.ID, update.BookedSpaces))
	}

	s.cfg.Log.Error("Failed to update activity spaces",
		"activity_id", update.ID,
		"booked_spaces", update.BookedSpaces,
		"error", err,
	)
	return apperrors.AsAppError(mongostore.StoreError("Failed to update activity spaces", err))
}
