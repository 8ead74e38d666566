package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/utils"
)

func toJSONSlice[T any](v any) datatypes.JSONSlice[T] {
	switch x := v.(type) {
	case datatypes.JSONSlice[T]:
		return x
	case []T:
		return datatypes.NewJSONSlice(x)
	}
	return nil
}

// In-memory fakes mirroring the repository guard semantics.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*models.Job{}}
}

func (r *fakeJobRepo) Create(_ context.Context, j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeJobRepo) List(_ context.Context) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (r *fakeJobRepo) Update(_ context.Context, j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[j.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

type fakeInterviewRepo struct {
	mu         sync.Mutex
	interviews map[string]*models.Interview
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: map[string]*models.Interview{}}
}

func (r *fakeInterviewRepo) Create(_ context.Context, iv *models.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *iv
	r.interviews[iv.ID] = &cp
	return nil
}

func (r *fakeInterviewRepo) GetByID(_ context.Context, id string) (*models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if iv, ok := r.interviews[id]; ok {
		cp := *iv
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeInterviewRepo) ListByCandidate(_ context.Context, candidateID string) ([]models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Interview
	for _, iv := range r.interviews {
		if iv.CandidateID == candidateID {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) ListAll(_ context.Context) ([]models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Interview, 0, len(r.interviews))
	for _, iv := range r.interviews {
		out = append(out, *iv)
	}
	return out, nil
}

func (r *fakeInterviewRepo) ListRecent(ctx context.Context, limit int) ([]models.Interview, error) {
	rows, _ := r.ListAll(ctx)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *fakeInterviewRepo) applySet(iv *models.Interview, set map[string]any) {
	for k, v := range set {
		switch k {
		case "status":
			iv.Status = v.(models.InterviewStatus)
		case "questions":
			iv.Questions = toJSONSlice[models.Question](v)
		case "answers":
			iv.Answers = toJSONSlice[models.Answer](v)
		case "current_question_index":
			iv.CurrentQuestionIndex = v.(int)
		case "resume_path":
			iv.ResumePath = v.(string)
		case "resume_text":
			iv.ResumeText = v.(string)
		case "started_at":
			t := v.(time.Time)
			iv.StartedAt = &t
		case "completed_at":
			t := v.(time.Time)
			iv.CompletedAt = &t
		case "ai_summary":
			iv.AISummary = v.(string)
		case "performance_score":
			iv.PerformanceScore = v.(int)
		case "feedback":
			iv.Feedback = v.(string)
		case "updated_at":
			iv.UpdatedAt = v.(time.Time)
		}
	}
}

func (r *fakeInterviewRepo) Transition(_ context.Context, id string, from, to models.InterviewStatus, set map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return utils.ErrNotFound
	}
	if iv.Status != from {
		return utils.ErrStale
	}
	iv.Status = to
	r.applySet(iv, set)
	return nil
}

func (r *fakeInterviewRepo) AdvanceQuestion(_ context.Context, id string, fromIndex int, set map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return utils.ErrNotFound
	}
	if iv.Status != models.StatusInProgress || iv.CurrentQuestionIndex != fromIndex {
		return utils.ErrStale
	}
	r.applySet(iv, set)
	return nil
}

func (r *fakeInterviewRepo) SetEvaluation(_ context.Context, id string, summary string, score int, feedback string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return utils.ErrNotFound
	}
	iv.AISummary = summary
	iv.PerformanceScore = score
	iv.Feedback = feedback
	return nil
}

func (r *fakeInterviewRepo) CountAll(ctx context.Context) (int64, error) {
	rows, _ := r.ListAll(ctx)
	return int64(len(rows)), nil
}

func (r *fakeInterviewRepo) CountByStatus(ctx context.Context, status models.InterviewStatus) (int64, error) {
	rows, _ := r.ListAll(ctx)
	var n int64
	for _, iv := range rows {
		if iv.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeInterviewRepo) AverageScore(ctx context.Context) (float64, error) {
	rows, _ := r.ListAll(ctx)
	sum, n := 0, 0
	for _, iv := range rows {
		if iv.Status == models.StatusCompleted && iv.PerformanceScore > 0 {
			sum += iv.PerformanceScore
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (r *fakeInterviewRepo) CountScoredAtLeast(ctx context.Context, minScore int) (int64, error) {
	rows, _ := r.ListAll(ctx)
	var n int64
	for _, iv := range rows {
		if iv.Status == models.StatusCompleted && iv.PerformanceScore >= minScore {
			n++
		}
	}
	return n, nil
}

type fakeResumeRepo struct {
	mu   sync.Mutex
	rows []models.ResumeFile
}

func (r *fakeResumeRepo) Insert(_ context.Context, rf *models.ResumeFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *rf)
	return nil
}

func (r *fakeResumeRepo) LatestByInterview(_ context.Context, interviewID string) (*models.ResumeFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].InterviewID == interviewID {
			cp := r.rows[i]
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

// Service-level fakes.

type fakeTranscripts struct {
	mu   sync.Mutex
	rows []models.TranscriptMessage
	err  error // when set, Append fails with it
}

func (f *fakeTranscripts) Append(_ context.Context, interviewID string, sender models.Sender, message string) (*models.TranscriptMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m := models.TranscriptMessage{
		InterviewID: interviewID,
		Sender:      sender,
		Message:     message,
		Timestamp:   time.Now().UTC(),
	}
	f.rows = append(f.rows, m)
	return &m, nil
}

func (f *fakeTranscripts) ListByInterview(_ context.Context, interviewID string, _ int64) ([]models.TranscriptMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TranscriptMessage
	for _, m := range f.rows {
		if m.InterviewID == interviewID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeActivities struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeActivities) Record(_ context.Context, _, action, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeActivities) ListForUser(context.Context, string, int64) ([]models.Activity, error) {
	return nil, nil
}

func (f *fakeActivities) ListAll(context.Context, int64) ([]models.Activity, error) {
	return nil, nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.store, k)
	}
	return nil
}

// Provider fakes.

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Complete(context.Context, string) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) StreamAnswer(_ context.Context, _ string) (<-chan string, <-chan error) {
	ch := make(chan string, 1)
	errs := make(chan error, 1)
	ch <- f.reply
	close(ch)
	close(errs)
	return ch, errs
}

func (f *fakeLLM) Close() error { return nil }

type fakeSTT struct{ text string }

func (f *fakeSTT) Transcribe(context.Context, []byte, string) (string, float64, error) {
	return f.text, 0.9, nil
}

func (f *fakeSTT) Close() error { return nil }

type fakeTTS struct{}

func (fakeTTS) Synthesize(context.Context, string, string) ([]byte, error) {
	return []byte("mp3"), nil
}

func (fakeTTS) Close() error { return nil }

type fakeStorage struct {
	mu      sync.Mutex
	objects []string
}

func (f *fakeStorage) Upload(_ context.Context, objectName string, _ string, r io.Reader) (string, error) {
	_, _ = io.ReadAll(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects = append(f.objects, objectName)
	return objectName, nil
}

func (f *fakeStorage) SignedGetURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectName, nil
}
