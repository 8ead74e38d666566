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

func validJobInput() JobInput {
	return JobInput{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build the hiring backend.",
		TechStack:   []string{"Go", "Postgres", "Redis"},
		Location:    "Remote",
		Type:        models.EmploymentFullTime,
		SalaryRange: "$120k-$150k",
	}
}

func newJobFixture() (JobService, *fakeJobRepo, *fakeCache) {
	jobs := newFakeJobRepo()
	c := newFakeCache()
	return NewJobService(jobs, c, time.Minute, &fakeActivities{}), jobs, c
}

func TestCreateJobValidation(t *testing.T) {
	svc, _, _ := newJobFixture()

	missingTitle := validJobInput()
	missingTitle.Title = ""
	_, err := svc.Create(context.Background(), "admin-1", missingTitle)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	emptyStack := validJobInput()
	emptyStack.TechStack = nil
	_, err = svc.Create(context.Background(), "admin-1", emptyStack)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	badType := validJobInput()
	badType.Type = "freelance"
	_, err = svc.Create(context.Background(), "admin-1", badType)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestCreateJobStoresTechStack(t *testing.T) {
	svc, jobs, _ := newJobFixture()

	j, err := svc.Create(context.Background(), "admin-1", validJobInput())
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Postgres", "Redis"}, []string(j.TechStack))
	assert.Equal(t, "admin-1", j.CreatedBy)

	stored, err := jobs.GetByID(context.Background(), j.ID)
	require.NoError(t, err)
	assert.Equal(t, j.Title, stored.Title)
}

func TestListJobsUsesCache(t *testing.T) {
	svc, jobs, _ := newJobFixture()

	_, err := svc.Create(context.Background(), "admin-1", validJobInput())
	require.NoError(t, err)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Direct repo write bypasses invalidation; the cached list wins.
	require.NoError(t, jobs.Create(context.Background(), &models.Job{ID: "sneaky"}))
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestWritesInvalidateJobCache(t *testing.T) {
	svc, _, _ := newJobFixture()

	j, err := svc.Create(context.Background(), "admin-1", validJobInput())
	require.NoError(t, err)

	_, err = svc.List(context.Background())
	require.NoError(t, err)

	in := validJobInput()
	in.Title = "Staff Engineer"
	_, err = svc.Update(context.Background(), "admin-1", j.ID, in)
	require.NoError(t, err)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Staff Engineer", rows[0].Title)
}

func TestDeleteJobNotFound(t *testing.T) {
	svc, _, _ := newJobFixture()

	err := svc.Delete(context.Background(), "admin-1", "missing")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
