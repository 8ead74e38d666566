package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Sender string

const (
	SenderCandidate Sender = "candidate"
	SenderAI        Sender = "ai"
)

func (s Sender) Valid() bool {
	return s == SenderCandidate || s == SenderAI
}

// TranscriptMessage is append-only; ordering is insertion order.
type TranscriptMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	MessageID   string             `bson:"message_id" json:"id"` // uuid v4
	InterviewID string             `bson:"interview_id" json:"interview_id"`
	Sender      Sender             `bson:"sender" json:"sender"`
	Message     string             `bson:"message" json:"message"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
