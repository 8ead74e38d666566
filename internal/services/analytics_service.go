package services

import (
	"context"
	"math"
	"time"

	"github.com/hirestage/hirestage/internal/cache"
	"github.com/hirestage/hirestage/internal/models"
	pgrepo "github.com/hirestage/hirestage/internal/repositories/postgres"
	"github.com/hirestage/hirestage/internal/utils"
)

const (
	analyticsCacheKey = "analytics:interviews"
	analyticsCacheTTL = 30 * time.Second
)

// InterviewAnalytics is the admin dashboard snapshot.
type InterviewAnalytics struct {
	TotalInterviews     int64              `json:"total_interviews"`
	CompletedInterviews int64              `json:"completed_interviews"`
	AverageScore        float64            `json:"average_score"`
	HighPerformers      int64              `json:"high_performers"`
	RecentInterviews    []models.Interview `json:"recent_interviews"`
}

type AnalyticsService interface {
	InterviewAnalytics(ctx context.Context) (*InterviewAnalytics, error)
	ListCandidates(ctx context.Context) ([]models.User, error)
}

type analyticsService struct {
	interviews pgrepo.InterviewRepository
	users      pgrepo.UserRepository
	cache      cache.Cache
}

func NewAnalyticsService(interviews pgrepo.InterviewRepository, users pgrepo.UserRepository, c cache.Cache) AnalyticsService {
	return &analyticsService{interviews: interviews, users: users, cache: c}
}

func (s *analyticsService) InterviewAnalytics(ctx context.Context) (*InterviewAnalytics, error) {
	const op = "AnalyticsService.InterviewAnalytics"

	if s.cache != nil {
		var cached InterviewAnalytics
		if hit, err := s.cache.GetJSON(ctx, analyticsCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	total, err := s.interviews.CountAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count interviews", err)
	}
	completed, err := s.interviews.CountByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count completed interviews", err)
	}
	avg, err := s.interviews.AverageScore(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to average scores", err)
	}
	high, err := s.interviews.CountScoredAtLeast(ctx, 4)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count high performers", err)
	}
	recent, err := s.interviews.ListRecent(ctx, 10)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list recent interviews", err)
	}

	out := &InterviewAnalytics{
		TotalInterviews:     total,
		CompletedInterviews: completed,
		AverageScore:        math.Round(avg*10) / 10,
		HighPerformers:      high,
		RecentInterviews:    recent,
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, analyticsCacheKey, out, analyticsCacheTTL)
	}
	return out, nil
}

func (s *analyticsService) ListCandidates(ctx context.Context) ([]models.User, error) {
	const op = "AnalyticsService.ListCandidates"

	rows, err := s.users.ListByRole(ctx, models.RoleCandidate)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list candidates", err)
	}
	return rows, nil
}
