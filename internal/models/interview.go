package models

import (
	"time"

	"gorm.io/datatypes"
)

type InterviewStatus string

const (
	StatusScheduled      InterviewStatus = "scheduled"
	StatusResumeUploaded InterviewStatus = "resume_uploaded"
	StatusInProgress     InterviewStatus = "in_progress"
	StatusCompleted      InterviewStatus = "completed"
	StatusCancelled      InterviewStatus = "cancelled"
)

// statusNext encodes the forward-only lifecycle. Completed and cancelled are
// terminal; cancellation is only reachable before the interview starts.
var statusNext = map[InterviewStatus][]InterviewStatus{
	StatusScheduled:      {StatusResumeUploaded, StatusCancelled},
	StatusResumeUploaded: {StatusResumeUploaded, StatusInProgress, StatusCancelled},
	StatusInProgress:     {StatusCompleted},
}

func CanTransition(from, to InterviewStatus) bool {
	for _, n := range statusNext[from] {
		if n == to {
			return true
		}
	}
	return false
}

type QuestionType string

const (
	QuestionTechnical   QuestionType = "technical"
	QuestionBehavioral  QuestionType = "behavioral"
	QuestionSituational QuestionType = "situational"
)

type Question struct {
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
}

type Answer struct {
	QuestionIndex int       `json:"question_index"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	AnsweredAt    time.Time `json:"answered_at"`
}

type Interview struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CandidateID string    `gorm:"column:candidate_id;type:uuid;index" json:"candidate_id"`
	JobID       string    `gorm:"column:job_id;type:uuid;index" json:"job_id"`
	ScheduledAt time.Time `gorm:"column:scheduled_at;type:timestamptz" json:"scheduled_at"`

	Status InterviewStatus `gorm:"column:status;type:text;index" json:"status"`

	// Session state owned by the server; only writable through guarded
	// status transitions.
	Questions            datatypes.JSONSlice[Question] `gorm:"column:questions;type:jsonb" json:"questions,omitempty"`
	CurrentQuestionIndex int                           `gorm:"column:current_question_index" json:"current_question_index"`
	Answers              datatypes.JSONSlice[Answer]   `gorm:"column:answers;type:jsonb" json:"answers,omitempty"`

	ResumePath string `gorm:"column:resume_path;type:text" json:"resume_path,omitempty"`
	ResumeText string `gorm:"column:resume_text;type:text" json:"-"`

	StartedAt   *time.Time `gorm:"column:started_at;type:timestamptz" json:"started_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz" json:"completed_at,omitempty"`

	AISummary        string `gorm:"column:ai_summary;type:text" json:"ai_summary,omitempty"`
	PerformanceScore int    `gorm:"column:performance_score" json:"performance_score,omitempty"` // 1..5, 0 = unscored
	Feedback         string `gorm:"column:feedback;type:text" json:"feedback,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Interview) TableName() string { return "interviews" }
