package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hirestage/hirestage/internal/models"
	mongorepo "github.com/hirestage/hirestage/internal/repositories/mongo"
	"github.com/hirestage/hirestage/internal/utils"
)

type TranscriptService interface {
	Append(ctx context.Context, interviewID string, sender models.Sender, message string) (*models.TranscriptMessage, error)
	ListByInterview(ctx context.Context, interviewID string, limit int64) ([]models.TranscriptMessage, error)
}

type transcriptService struct {
	transcripts mongorepo.TranscriptRepository
}

func NewTranscriptService(transcripts mongorepo.TranscriptRepository) TranscriptService {
	return &transcriptService{transcripts: transcripts}
}

func (s *transcriptService) Append(ctx context.Context, interviewID string, sender models.Sender, message string) (*models.TranscriptMessage, error) {
	const op = "TranscriptService.Append"

	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}
	if !sender.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "sender must be candidate or ai", nil)
	}
	if strings.TrimSpace(message) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}

	m := &models.TranscriptMessage{
		MessageID:   uuid.NewString(),
		InterviewID: interviewID,
		Sender:      sender,
		Message:     message,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.transcripts.Append(ctx, m); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to append transcript message", err)
	}
	return m, nil
}

func (s *transcriptService) ListByInterview(ctx context.Context, interviewID string, limit int64) ([]models.TranscriptMessage, error) {
	const op = "TranscriptService.ListByInterview"

	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}
	rows, err := s.transcripts.ListByInterview(ctx, interviewID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list transcript", err)
	}
	return rows, nil
}
