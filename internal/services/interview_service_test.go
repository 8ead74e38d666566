package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/utils"
)

func newInterviewFixture(t *testing.T) (InterviewService, *fakeInterviewRepo) {
	t.Helper()

	jobs := newFakeJobRepo()
	require.NoError(t, jobs.Create(context.Background(), &models.Job{
		ID: "job-1", Title: "Backend Engineer", Company: "Acme",
	}))
	interviews := newFakeInterviewRepo()
	return NewInterviewService(interviews, jobs, &fakeActivities{}), interviews
}

func TestValidateScheduleTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Error(t, validateScheduleTime(now.Add(-time.Second), now))
	// Exactly now is accepted; only strictly-past times are rejected.
	assert.NoError(t, validateScheduleTime(now, now))
	assert.NoError(t, validateScheduleTime(now.Add(time.Hour), now))
}

func TestScheduleRejectsPastTime(t *testing.T) {
	svc, _ := newInterviewFixture(t)

	_, err := svc.Schedule(context.Background(), "cand-1", "job-1", time.Now().UTC().Add(-time.Minute))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestScheduleUnknownJob(t *testing.T) {
	svc, _ := newInterviewFixture(t)

	_, err := svc.Schedule(context.Background(), "cand-1", "missing", time.Now().UTC().Add(time.Hour))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestScheduleCreatesScheduledInterview(t *testing.T) {
	svc, _ := newInterviewFixture(t)

	iv, err := svc.Schedule(context.Background(), "cand-1", "job-1", time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, iv.Status)
	assert.Equal(t, "cand-1", iv.CandidateID)
	assert.NotEmpty(t, iv.ID)
}

func TestCancelOnlyBeforeStart(t *testing.T) {
	svc, repo := newInterviewFixture(t)

	iv, err := svc.Schedule(context.Background(), "cand-1", "job-1", time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)

	got, err := svc.Cancel(context.Background(), "cand-1", iv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)

	// Cancelled is terminal.
	_, err = svc.Cancel(context.Background(), "cand-1", iv.ID)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	// In-progress interviews cannot be cancelled either.
	iv2, err := svc.Schedule(context.Background(), "cand-1", "job-1", time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Transition(context.Background(), iv2.ID, models.StatusScheduled, models.StatusResumeUploaded, nil))
	require.NoError(t, repo.Transition(context.Background(), iv2.ID, models.StatusResumeUploaded, models.StatusInProgress, nil))

	_, err = svc.Cancel(context.Background(), "cand-1", iv2.ID)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestCompleteValidatesScoreRange(t *testing.T) {
	svc, _ := newInterviewFixture(t)

	for _, score := range []int{-1, 6, 42} {
		_, err := svc.Complete(context.Background(), "cand-1", "iv-x", "summary", score, "")
		require.Error(t, err)
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	}
}

func TestCompleteRequiresInProgress(t *testing.T) {
	svc, repo := newInterviewFixture(t)

	iv, err := svc.Schedule(context.Background(), "cand-1", "job-1", time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), "cand-1", iv.ID, "summary", 4, "fine")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	require.NoError(t, repo.Transition(context.Background(), iv.ID, models.StatusScheduled, models.StatusResumeUploaded, nil))
	require.NoError(t, repo.Transition(context.Background(), iv.ID, models.StatusResumeUploaded, models.StatusInProgress, nil))

	got, err := svc.Complete(context.Background(), "cand-1", iv.ID, "Solid showing.", 4, "Good depth.")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 4, got.PerformanceScore)

	// Completing twice is a conflict.
	_, err = svc.Complete(context.Background(), "cand-1", iv.ID, "again", 3, "")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}
