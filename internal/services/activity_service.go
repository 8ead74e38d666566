package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hirestage/hirestage/internal/models"
	mongorepo "github.com/hirestage/hirestage/internal/repositories/mongo"
	"github.com/hirestage/hirestage/internal/utils"
)

type ActivityService interface {
	Record(ctx context.Context, userID, action, description string) error
	ListForUser(ctx context.Context, userID string, limit int64) ([]models.Activity, error)
	ListAll(ctx context.Context, limit int64) ([]models.Activity, error)
}

type activityService struct {
	activities mongorepo.ActivityRepository
}

func NewActivityService(activities mongorepo.ActivityRepository) ActivityService {
	return &activityService{activities: activities}
}

func (s *activityService) Record(ctx context.Context, userID, action, description string) error {
	const op = "ActivityService.Record"

	if userID == "" || action == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and action are required", nil)
	}

	a := &models.Activity{
		ActivityID:  uuid.NewString(),
		UserID:      userID,
		Action:      action,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.activities.Insert(ctx, a); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to record activity", err)
	}
	return nil
}

func (s *activityService) ListForUser(ctx context.Context, userID string, limit int64) ([]models.Activity, error) {
	const op = "ActivityService.ListForUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.activities.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list activities", err)
	}
	return rows, nil
}

func (s *activityService) ListAll(ctx context.Context, limit int64) ([]models.Activity, error) {
	const op = "ActivityService.ListAll"

	rows, err := s.activities.ListAll(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list activities", err)
	}
	return rows, nil
}
