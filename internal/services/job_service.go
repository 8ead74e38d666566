package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hirestage/hirestage/internal/cache"
	"github.com/hirestage/hirestage/internal/models"
	pgrepo "github.com/hirestage/hirestage/internal/repositories/postgres"
	"github.com/hirestage/hirestage/internal/utils"
)

const jobsListCacheKey = "jobs:list"

type JobInput struct {
	Title        string
	Company      string
	Description  string
	TechStack    []string
	Requirements []string
	Location     string
	Type         models.EmploymentType
	SalaryRange  string
}

type JobService interface {
	Create(ctx context.Context, adminID string, in JobInput) (*models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context) ([]models.Job, error)
	Update(ctx context.Context, adminID, id string, in JobInput) (*models.Job, error)
	Delete(ctx context.Context, adminID, id string) error
}

type jobService struct {
	jobs       pgrepo.JobRepository
	cache      cache.Cache
	cacheTTL   time.Duration
	activities ActivityService
}

func NewJobService(jobs pgrepo.JobRepository, c cache.Cache, cacheTTL time.Duration, activities ActivityService) JobService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &jobService{jobs: jobs, cache: c, cacheTTL: cacheTTL, activities: activities}
}

func validateJobInput(op string, in JobInput) error {
	if in.Title == "" || in.Company == "" || in.Description == "" || in.Location == "" {
		return utils.E(utils.CodeInvalidArgument, op, "title, company, description, and location are required", nil)
	}
	if len(in.TechStack) == 0 {
		return utils.E(utils.CodeInvalidArgument, op, "tech_stack must not be empty", nil)
	}
	if !in.Type.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "type must be full-time, part-time, or contract", nil)
	}
	return nil
}

func (s *jobService) Create(ctx context.Context, adminID string, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	if adminID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "admin_id is required", nil)
	}
	if err := validateJobInput(op, in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	j := &models.Job{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Company:      in.Company,
		Description:  in.Description,
		TechStack:    in.TechStack,
		Requirements: in.Requirements,
		Location:     in.Location,
		Type:         in.Type,
		SalaryRange:  in.SalaryRange,
		CreatedBy:    adminID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}

	_ = s.cache.Del(ctx, jobsListCacheKey)
	_ = s.activities.Record(ctx, adminID, models.ActivityJobCreation,
		fmt.Sprintf("Created job: %s", j.Title))

	return j, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	const op = "JobService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}

	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	return j, nil
}

func (s *jobService) List(ctx context.Context) ([]models.Job, error) {
	const op = "JobService.List"

	var cached []models.Job
	if hit, err := s.cache.GetJSON(ctx, jobsListCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.jobs.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}

	_ = s.cache.SetJSON(ctx, jobsListCacheKey, rows, s.cacheTTL)
	return rows, nil
}

func (s *jobService) Update(ctx context.Context, adminID, id string, in JobInput) (*models.Job, error) {
	const op = "JobService.Update"

	if err := validateJobInput(op, in); err != nil {
		return nil, err
	}

	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}

	j.Title = in.Title
	j.Company = in.Company
	j.Description = in.Description
	j.TechStack = in.TechStack
	j.Requirements = in.Requirements
	j.Location = in.Location
	j.Type = in.Type
	j.SalaryRange = in.SalaryRange
	j.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}

	_ = s.cache.Del(ctx, jobsListCacheKey)
	_ = s.activities.Record(ctx, adminID, models.ActivityJobUpdate,
		fmt.Sprintf("Updated job: %s", j.Title))

	return j, nil
}

func (s *jobService) Delete(ctx context.Context, adminID, id string) error {
	const op = "JobService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}

	_ = s.cache.Del(ctx, jobsListCacheKey)
	_ = s.activities.Record(ctx, adminID, models.ActivityJobDeletion,
		fmt.Sprintf("Deleted job: %s", id))

	return nil
}
