package postgres

import (
	"context"
	"errors"

	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/utils"
	"gorm.io/gorm"
)

type InterviewRepository interface {
	Create(ctx context.Context, iv *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]models.Interview, error)
	ListAll(ctx context.Context) ([]models.Interview, error)
	ListRecent(ctx context.Context, limit int) ([]models.Interview, error)

	// Transition applies set only if the row is currently in status from.
	// A concurrent writer that already moved the row on gets ErrStale.
	Transition(ctx context.Context, id string, from, to models.InterviewStatus, set map[string]any) error

	// AdvanceQuestion applies set only while in_progress and still at
	// fromIndex, so the same question cannot be answered twice.
	AdvanceQuestion(ctx context.Context, id string, fromIndex int, set map[string]any) error

	SetEvaluation(ctx context.Context, id string, summary string, score int, feedback string) error

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.InterviewStatus) (int64, error)
	AverageScore(ctx context.Context) (float64, error)
	CountScoredAtLeast(ctx context.Context, minScore int) (int64, error)
}

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Create(ctx context.Context, iv *models.Interview) error {
	return r.db.WithContext(ctx).Create(iv).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var row models.Interview
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *interviewRepo) ListByCandidate(ctx context.Context, candidateID string) ([]models.Interview, error) {
	var rows []models.Interview
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("scheduled_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *interviewRepo) ListAll(ctx context.Context) ([]models.Interview, error) {
	var rows []models.Interview
	err := r.db.WithContext(ctx).Order("scheduled_at DESC").Find(&rows).Error
	return rows, err
}

func (r *interviewRepo) ListRecent(ctx context.Context, limit int) ([]models.Interview, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.Interview
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *interviewRepo) Transition(ctx context.Context, id string, from, to models.InterviewStatus, set map[string]any) error {
	values := map[string]any{"status": to}
	for k, v := range set {
		values[k] = v
	}

	res := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrStale(ctx, id)
	}
	return nil
}

func (r *interviewRepo) AdvanceQuestion(ctx context.Context, id string, fromIndex int, set map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ? AND status = ? AND current_question_index = ?", id, models.StatusInProgress, fromIndex).
		Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrStale(ctx, id)
	}
	return nil
}

func (r *interviewRepo) SetEvaluation(ctx context.Context, id string, summary string, score int, feedback string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ai_summary":        summary,
			"performance_score": score,
			"feedback":          feedback,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// missOrStale reports why a conditional update matched nothing.
func (r *interviewRepo) missOrStale(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return utils.ErrNotFound
	}
	return utils.ErrStale
}

func (r *interviewRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Interview{}).Count(&n).Error
	return n, err
}

func (r *interviewRepo) CountByStatus(ctx context.Context, status models.InterviewStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *interviewRepo) AverageScore(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("status = ? AND performance_score > 0", models.StatusCompleted).
		Select("AVG(performance_score)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *interviewRepo) CountScoredAtLeast(ctx context.Context, minScore int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("status = ? AND performance_score >= ?", models.StatusCompleted, minScore).
		Count(&n).Error
	return n, err
}
