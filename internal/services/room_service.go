package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/hirestage/hirestage/internal/ai"
	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/providers/llm"
	"github.com/hirestage/hirestage/internal/providers/stt"
	"github.com/hirestage/hirestage/internal/providers/tts"
	pgrepo "github.com/hirestage/hirestage/internal/repositories/postgres"
	"github.com/hirestage/hirestage/internal/resume"
	"github.com/hirestage/hirestage/internal/storage"
	"github.com/hirestage/hirestage/internal/utils"
)

// EvaluationStream receives one entry per completed interview; the
// evaluation worker group consumes it.
const EvaluationStream = "interviews:evaluate"

// InterviewEventsChannel is the pub/sub channel the room websocket
// forwards to the client.
func InterviewEventsChannel(interviewID string) string {
	return "interview:" + interviewID + ":events"
}

// SubmitResult is the server-authoritative reply to an answer submission:
// either the next question or the completion flag, never both.
type SubmitResult struct {
	Completed      bool             `json:"completed"`
	Question       *models.Question `json:"current_question,omitempty"`
	QuestionIndex  int              `json:"question_index"`
	TotalQuestions int              `json:"total_questions"`
}

type RoomService interface {
	// UploadResume stores the resume, extracts its text, and generates
	// the question list. Retryable: a failed upload leaves the interview
	// untouched, and re-uploading regenerates the questions.
	UploadResume(ctx context.Context, interviewID, fileName, mimeType string, size int, data []byte) (*models.Interview, error)
	// Start flips the interview to in_progress and returns it with the
	// first question loaded. Requires a prior resume upload.
	Start(ctx context.Context, interviewID string) (*models.Interview, error)
	// SubmitAnswer records the answer for the current question and
	// advances. Completion is decided here, by the server, when the last
	// question is answered.
	SubmitAnswer(ctx context.Context, interviewID, answer string) (*SubmitResult, error)
	Transcribe(ctx context.Context, interviewID string, audio []byte, language string) (string, float64, error)
	// ResumeDownloadURL signs a short-lived link to the latest uploaded
	// resume file.
	ResumeDownloadURL(ctx context.Context, interviewID string) (string, error)
	// SpeakText synthesizes the text and returns a short-lived URL for
	// the audio.
	SpeakText(ctx context.Context, interviewID, text, language string) (string, error)
}

type roomService struct {
	interviews  pgrepo.InterviewRepository
	jobs        pgrepo.JobRepository
	resumes     pgrepo.ResumeFileRepository
	transcripts TranscriptService
	activities  ActivityService

	llm llm.Provider
	stt stt.Provider
	tts tts.Provider

	uploader storage.Uploader
	signer   storage.Signer
	redis    *redis.Client
	log      *logrus.Logger
}

func NewRoomService(
	interviews pgrepo.InterviewRepository,
	jobs pgrepo.JobRepository,
	resumes pgrepo.ResumeFileRepository,
	transcripts TranscriptService,
	activities ActivityService,
	llmProvider llm.Provider,
	sttProvider stt.Provider,
	ttsProvider tts.Provider,
	uploader storage.Uploader,
	signer storage.Signer,
	rdb *redis.Client,
	log *logrus.Logger,
) RoomService {
	if log == nil {
		log = logrus.New()
	}
	return &roomService{
		interviews:  interviews,
		jobs:        jobs,
		resumes:     resumes,
		transcripts: transcripts,
		activities:  activities,
		llm:         llmProvider,
		stt:         sttProvider,
		tts:         ttsProvider,
		uploader:    uploader,
		signer:      signer,
		redis:       rdb,
		log:         log,
	}
}

func (s *roomService) load(ctx context.Context, op, interviewID string) (*models.Interview, error) {
	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}
	iv, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}
	return iv, nil
}

func (s *roomService) UploadResume(ctx context.Context, interviewID, fileName, mimeType string, size int, data []byte) (*models.Interview, error) {
	const op = "RoomService.UploadResume"

	if fileName == "" || len(data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume file is required", nil)
	}
	if !resume.SupportedExt(fileName) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unsupported resume format (use PDF or DOCX)", nil)
	}

	iv, err := s.load(ctx, op, interviewID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(iv.Status, models.StatusResumeUploaded) {
		return nil, utils.E(utils.CodeConflict, op, "interview does not accept a resume in its current state", nil)
	}

	text, err := resume.ExtractText(bytes.NewReader(data), fileName)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "failed to extract resume text", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume contains no extractable text", nil)
	}

	objectName := fmt.Sprintf("resumes/%s/%s%s", interviewID, uuid.NewString(), strings.ToLower(filepath.Ext(fileName)))
	storedPath, err := s.uploader.Upload(ctx, objectName, mimeType, bytes.NewReader(data))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store resume", err)
	}

	job, err := s.jobs.GetByID(ctx, iv.JobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load job for question context", err)
	}

	prompt := ai.BuildQuestionPrompt(text, ai.JobContext{
		Title:        job.Title,
		Company:      job.Company,
		Description:  job.Description,
		TechStack:    job.TechStack,
		Requirements: job.Requirements,
	}, ai.DefaultQuestionCount)

	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "question generation failed", err)
	}
	questions, err := ai.ParseQuestions(raw)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "question generation returned an unusable reply", err)
	}

	now := time.Now().UTC()
	err = s.interviews.Transition(ctx, interviewID, iv.Status, models.StatusResumeUploaded, map[string]any{
		"questions":              datatypes.NewJSONSlice(questions),
		"answers":                datatypes.NewJSONSlice([]models.Answer{}),
		"current_question_index": 0,
		"resume_path":            storedPath,
		"resume_text":            text,
		"updated_at":             now,
	})
	if err != nil {
		if errors.Is(err, utils.ErrStale) {
			return nil, utils.E(utils.CodeConflict, op, "interview state changed, try again", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save generated questions", err)
	}

	rf := &models.ResumeFile{
		ID:          uuid.NewString(),
		UserID:      iv.CandidateID,
		InterviewID: interviewID,
		FileName:    fileName,
		FilePath:    storedPath,
		FileSize:    size,
		MimeType:    mimeType,
		UploadAt:    now,
	}
	if err := s.resumes.Insert(ctx, rf); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist resume metadata", err)
	}

	_ = s.activities.Record(ctx, iv.CandidateID, models.ActivityResumeUpload,
		fmt.Sprintf("Uploaded resume for interview: %s", interviewID))

	iv.Status = models.StatusResumeUploaded
	iv.Questions = datatypes.NewJSONSlice(questions)
	iv.Answers = datatypes.NewJSONSlice([]models.Answer{})
	iv.CurrentQuestionIndex = 0
	iv.ResumePath = storedPath
	iv.ResumeText = text
	return iv, nil
}

func (s *roomService) Start(ctx context.Context, interviewID string) (*models.Interview, error) {
	const op = "RoomService.Start"

	iv, err := s.load(ctx, op, interviewID)
	if err != nil {
		return nil, err
	}
	if len(iv.Questions) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "upload a resume before starting", nil)
	}
	if !models.CanTransition(iv.Status, models.StatusInProgress) {
		if iv.Status == models.StatusCompleted {
			return nil, utils.E(utils.CodeConflict, op, "interview already completed", nil)
		}
		return nil, utils.E(utils.CodeConflict, op, "interview cannot start from its current state", nil)
	}

	now := time.Now().UTC()
	err = s.interviews.Transition(ctx, interviewID, iv.Status, models.StatusInProgress, map[string]any{
		"started_at":             now,
		"current_question_index": 0,
		"updated_at":             now,
	})
	if err != nil {
		if errors.Is(err, utils.ErrStale) {
			return nil, utils.E(utils.CodeConflict, op, "interview state changed, try again", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to start interview", err)
	}

	// First question enters the transcript as the interviewer speaking.
	// Best effort: the interview still starts if the transcript store is down.
	if _, err := s.transcripts.Append(ctx, interviewID, models.SenderAI, iv.Questions[0].Question); err != nil {
		s.log.WithError(err).WithField("interview_id", interviewID).Warn("failed to append question to transcript")
	}
	_ = s.activities.Record(ctx, iv.CandidateID, models.ActivityInterviewStarted,
		fmt.Sprintf("Started interview: %s", interviewID))

	iv.Status = models.StatusInProgress
	iv.StartedAt = &now
	iv.CurrentQuestionIndex = 0
	return iv, nil
}

func (s *roomService) SubmitAnswer(ctx context.Context, interviewID, answer string) (*SubmitResult, error) {
	const op = "RoomService.SubmitAnswer"

	// Rejected before any state is touched; a blank answer must not
	// advance the question index.
	if strings.TrimSpace(answer) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "answer must not be empty", nil)
	}

	iv, err := s.load(ctx, op, interviewID)
	if err != nil {
		return nil, err
	}
	if iv.Status == models.StatusCompleted {
		return nil, utils.E(utils.CodeConflict, op, "interview already completed", nil)
	}
	if iv.Status != models.StatusInProgress {
		return nil, utils.E(utils.CodeConflict, op, "interview is not in progress", nil)
	}

	idx := iv.CurrentQuestionIndex
	total := len(iv.Questions)
	if idx >= total {
		return nil, utils.E(utils.CodeConflict, op, "no question awaiting an answer", nil)
	}

	now := time.Now().UTC()
	answers := append([]models.Answer(iv.Answers), models.Answer{
		QuestionIndex: idx,
		Question:      iv.Questions[idx].Question,
		Answer:        answer,
		AnsweredAt:    now,
	})
	nextIdx := idx + 1

	set := map[string]any{
		"answers":                datatypes.NewJSONSlice(answers),
		"current_question_index": nextIdx,
		"updated_at":             now,
	}
	completed := nextIdx >= total
	if completed {
		set["status"] = models.StatusCompleted
		set["completed_at"] = now
	}

	// Guarded on (in_progress, idx): a duplicate submission for the same
	// question loses instead of double-recording.
	if err := s.interviews.AdvanceQuestion(ctx, interviewID, idx, set); err != nil {
		if errors.Is(err, utils.ErrStale) {
			return nil, utils.E(utils.CodeConflict, op, "this question was already answered", err)
		}
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to record answer", err)
	}

	// Transcript writes stay best effort so an outage never blocks the
	// answer loop, but the loss has to land in the logs.
	if _, err := s.transcripts.Append(ctx, interviewID, models.SenderCandidate, answer); err != nil {
		s.log.WithError(err).WithField("interview_id", interviewID).Warn("failed to append answer to transcript")
	}
	_ = s.activities.Record(ctx, iv.CandidateID, models.ActivityInterviewMessage,
		fmt.Sprintf("Answered question %d of %d", idx+1, total))

	if completed {
		_ = s.activities.Record(ctx, iv.CandidateID, models.ActivityInterviewCompleted,
			fmt.Sprintf("Completed interview: %s", interviewID))
		s.enqueueEvaluation(ctx, interviewID)
		s.publishEvent(ctx, interviewID, map[string]any{
			"type":   "interview_completed",
			"status": models.StatusCompleted,
		})
		return &SubmitResult{Completed: true, QuestionIndex: nextIdx, TotalQuestions: total}, nil
	}

	next := iv.Questions[nextIdx]
	if _, err := s.transcripts.Append(ctx, interviewID, models.SenderAI, next.Question); err != nil {
		s.log.WithError(err).WithField("interview_id", interviewID).Warn("failed to append question to transcript")
	}

	return &SubmitResult{
		Question:       &next,
		QuestionIndex:  nextIdx,
		TotalQuestions: total,
	}, nil
}

func (s *roomService) Transcribe(ctx context.Context, interviewID string, audio []byte, language string) (string, float64, error) {
	const op = "RoomService.Transcribe"

	if len(audio) == 0 {
		return "", 0, utils.E(utils.CodeInvalidArgument, op, "audio is required", nil)
	}
	if _, err := s.load(ctx, op, interviewID); err != nil {
		return "", 0, err
	}

	// Keep the raw audio for later review; transcription still proceeds
	// if the upload fails.
	objectName := fmt.Sprintf("audio/%s/stt_%s.webm", interviewID, uuid.NewString())
	_, _ = s.uploader.Upload(ctx, objectName, "audio/webm", bytes.NewReader(audio))

	text, conf, err := s.stt.Transcribe(ctx, audio, language)
	if err != nil {
		return "", 0, utils.E(utils.CodeUnavailable, op, "transcription failed", err)
	}
	return text, conf, nil
}

func (s *roomService) SpeakText(ctx context.Context, interviewID, text, language string) (string, error) {
	const op = "RoomService.SpeakText"

	if strings.TrimSpace(text) == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "text is required", nil)
	}
	if _, err := s.load(ctx, op, interviewID); err != nil {
		return "", err
	}

	audio, err := s.tts.Synthesize(ctx, text, language)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "speech synthesis failed", err)
	}

	objectName := fmt.Sprintf("audio/%s/tts_%s.mp3", interviewID, uuid.NewString())
	if _, err := s.uploader.Upload(ctx, objectName, "audio/mpeg", bytes.NewReader(audio)); err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to store synthesized audio", err)
	}

	url, err := s.signer.SignedGetURL(ctx, objectName, 15*time.Minute)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to sign audio url", err)
	}
	return url, nil
}

func (s *roomService) ResumeDownloadURL(ctx context.Context, interviewID string) (string, error) {
	const op = "RoomService.ResumeDownloadURL"

	if _, err := s.load(ctx, op, interviewID); err != nil {
		return "", err
	}

	rf, err := s.resumes.LatestByInterview(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "no resume uploaded for this interview", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to load resume metadata", err)
	}

	url, err := s.signer.SignedGetURL(ctx, rf.FilePath, 15*time.Minute)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to sign resume url", err)
	}
	return url, nil
}

func (s *roomService) enqueueEvaluation(ctx context.Context, interviewID string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: EvaluationStream,
		Values: map[string]any{
			"interview_id": interviewID,
			"ts_unix":      time.Now().UTC().Unix(),
		},
	}).Err()
}

func (s *roomService) publishEvent(ctx context.Context, interviewID string, payload map[string]any) {
	if s.redis == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = s.redis.Publish(ctx, InterviewEventsChannel(interviewID), string(b)).Err()
}
