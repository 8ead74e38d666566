package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ActivityID  string             `bson:"activity_id" json:"id"` // uuid v4
	UserID      string             `bson:"user_id" json:"user_id"`
	Action      string             `bson:"action" json:"action"`
	Description string             `bson:"description" json:"description"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// Activity actions recorded across the portal.
const (
	ActivityUserRegistration   = "user_registration"
	ActivityUserLogin          = "user_login"
	ActivityProfileUpdate      = "profile_update"
	ActivityJobCreation        = "job_creation"
	ActivityJobUpdate          = "job_update"
	ActivityJobDeletion        = "job_deletion"
	ActivityInterviewScheduled = "interview_scheduled"
	ActivityInterviewCancelled = "interview_cancelled"
	ActivityResumeUpload       = "interview_resume_upload"
	ActivityInterviewStarted   = "interview_started"
	ActivityInterviewMessage   = "interview_message"
	ActivityInterviewCompleted = "interview_completed"
)
