package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirestage/hirestage/internal/models"
)

func TestInterviewAnalyticsComputation(t *testing.T) {
	interviews := newFakeInterviewRepo()
	users := newFakeUserRepo()

	seed := []struct {
		status models.InterviewStatus
		score  int
	}{
		{models.StatusCompleted, 5},
		{models.StatusCompleted, 4},
		{models.StatusCompleted, 2},
		{models.StatusInProgress, 0},
		{models.StatusScheduled, 0},
		{models.StatusCancelled, 0},
	}
	for i, s := range seed {
		require.NoError(t, interviews.Create(context.Background(), &models.Interview{
			ID:               string(rune('a' + i)),
			CandidateID:      "cand-1",
			JobID:            "job-1",
			Status:           s.status,
			PerformanceScore: s.score,
		}))
	}

	svc := NewAnalyticsService(interviews, users, nil)
	out, err := svc.InterviewAnalytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), out.TotalInterviews)
	assert.Equal(t, int64(3), out.CompletedInterviews)
	// (5+4+2)/3 rounded to one decimal place.
	assert.InDelta(t, 3.7, out.AverageScore, 0.001)
	assert.Equal(t, int64(2), out.HighPerformers)
	assert.Len(t, out.RecentInterviews, 6)
}

func TestInterviewAnalyticsServedFromCache(t *testing.T) {
	interviews := newFakeInterviewRepo()
	users := newFakeUserRepo()
	c := newFakeCache()

	svc := NewAnalyticsService(interviews, users, c)

	first, err := svc.InterviewAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.TotalInterviews)

	// New rows are invisible until the cache entry expires.
	require.NoError(t, interviews.Create(context.Background(), &models.Interview{
		ID: "iv-1", Status: models.StatusCompleted, PerformanceScore: 4,
	}))

	second, err := svc.InterviewAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.TotalInterviews)
}

func TestListCandidatesFiltersAdmins(t *testing.T) {
	interviews := newFakeInterviewRepo()
	users := newFakeUserRepo()

	require.NoError(t, users.Create(context.Background(), &models.User{
		ID: "u1", Email: "c@example.com", Role: models.RoleCandidate,
	}))
	require.NoError(t, users.Create(context.Background(), &models.User{
		ID: "u2", Email: "a@example.com", Role: models.RoleAdmin,
	}))

	svc := NewAnalyticsService(interviews, users, nil)
	rows, err := svc.ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0].ID)
}
