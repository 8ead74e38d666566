package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hirestage/hirestage/internal/models"
	pgrepo "github.com/hirestage/hirestage/internal/repositories/postgres"
	"github.com/hirestage/hirestage/internal/utils"
)

type InterviewService interface {
	// Schedule creates an interview for candidateID against jobID.
	// scheduledAt must not be in the past; equal-to-now is accepted.
	Schedule(ctx context.Context, candidateID, jobID string, scheduledAt time.Time) (*models.Interview, error)
	Get(ctx context.Context, id string) (*models.Interview, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]models.Interview, error)
	ListAll(ctx context.Context) ([]models.Interview, error)
	// Cancel is only valid before the interview starts.
	Cancel(ctx context.Context, userID, id string) (*models.Interview, error)
	// Complete records the terminal result. Used by the explicit complete
	// endpoint; the question loop completes interviews on its own.
	Complete(ctx context.Context, userID, id, summary string, score int, feedback string) (*models.Interview, error)
}

type interviewService struct {
	interviews pgrepo.InterviewRepository
	jobs       pgrepo.JobRepository
	activities ActivityService
}

func NewInterviewService(interviews pgrepo.InterviewRepository, jobs pgrepo.JobRepository, activities ActivityService) InterviewService {
	return &interviewService{interviews: interviews, jobs: jobs, activities: activities}
}

func validateScheduleTime(scheduledAt, now time.Time) error {
	if scheduledAt.Before(now) {
		return errors.New("scheduled_at is in the past")
	}
	return nil
}

func (s *interviewService) Schedule(ctx context.Context, candidateID, jobID string, scheduledAt time.Time) (*models.Interview, error) {
	const op = "InterviewService.Schedule"

	if candidateID == "" || jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id and job_id are required", nil)
	}
	if scheduledAt.IsZero() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "scheduled_at is required", nil)
	}
	if err := validateScheduleTime(scheduledAt, time.Now().UTC()); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "scheduled_at must not be in the past", err)
	}

	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}

	now := time.Now().UTC()
	iv := &models.Interview{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		JobID:       jobID,
		ScheduledAt: scheduledAt.UTC(),
		Status:      models.StatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create interview", err)
	}

	_ = s.activities.Record(ctx, candidateID, models.ActivityInterviewScheduled,
		fmt.Sprintf("Scheduled interview for job: %s", jobID))

	return iv, nil
}

func (s *interviewService) Get(ctx context.Context, id string) (*models.Interview, error) {
	const op = "InterviewService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview id is required", nil)
	}

	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}
	return iv, nil
}

func (s *interviewService) ListForCandidate(ctx context.Context, candidateID string) ([]models.Interview, error) {
	const op = "InterviewService.ListForCandidate"

	if candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}
	rows, err := s.interviews.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list interviews", err)
	}
	return rows, nil
}

func (s *interviewService) ListAll(ctx context.Context) ([]models.Interview, error) {
	const op = "InterviewService.ListAll"

	rows, err := s.interviews.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list interviews", err)
	}
	return rows, nil
}

func (s *interviewService) Cancel(ctx context.Context, userID, id string) (*models.Interview, error) {
	const op = "InterviewService.Cancel"

	iv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(iv.Status, models.StatusCancelled) {
		return nil, utils.E(utils.CodeConflict, op, "interview can no longer be cancelled", nil)
	}

	err = s.interviews.Transition(ctx, id, iv.Status, models.StatusCancelled, map[string]any{
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, utils.ErrStale) {
			return nil, utils.E(utils.CodeConflict, op, "interview state changed, try again", err)
		}
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to cancel interview", err)
	}

	iv.Status = models.StatusCancelled
	_ = s.activities.Record(ctx, userID, models.ActivityInterviewCancelled,
		fmt.Sprintf("Cancelled interview: %s", id))

	return iv, nil
}

func (s *interviewService) Complete(ctx context.Context, userID, id, summary string, score int, feedback string) (*models.Interview, error) {
	const op = "InterviewService.Complete"

	if score != 0 && (score < 1 || score > 5) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "performance_score must be between 1 and 5", nil)
	}

	iv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.Status == models.StatusCompleted {
		return nil, utils.E(utils.CodeConflict, op, "interview already completed", nil)
	}
	if !models.CanTransition(iv.Status, models.StatusCompleted) {
		return nil, utils.E(utils.CodeConflict, op, "interview has not started", nil)
	}

	now := time.Now().UTC()
	err = s.interviews.Transition(ctx, id, iv.Status, models.StatusCompleted, map[string]any{
		"completed_at":      now,
		"ai_summary":        summary,
		"performance_score": score,
		"feedback":          feedback,
		"updated_at":        now,
	})
	if err != nil {
		if errors.Is(err, utils.ErrStale) {
			return nil, utils.E(utils.CodeConflict, op, "interview state changed, try again", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to complete interview", err)
	}

	iv.Status = models.StatusCompleted
	iv.CompletedAt = &now
	iv.AISummary = summary
	iv.PerformanceScore = score
	iv.Feedback = feedback

	_ = s.activities.Record(ctx, userID, models.ActivityInterviewCompleted,
		fmt.Sprintf("Completed interview: %s", id))

	return iv, nil
}
