package mongo

import (
	"context"
	"time"

	"github.com/hirestage/hirestage/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TranscriptRepository interface {
	Append(ctx context.Context, m *models.TranscriptMessage) error
	ListByInterview(ctx context.Context, interviewID string, limit int64) ([]models.TranscriptMessage, error)
}

type transcriptRepo struct {
	col *mongo.Collection
}

func NewTranscriptRepo(db *mongo.Database) TranscriptRepository {
	return &transcriptRepo{col: db.Collection("transcripts")}
}

func (r *transcriptRepo) Append(ctx context.Context, m *models.TranscriptMessage) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

func (r *transcriptRepo) ListByInterview(ctx context.Context, interviewID string, limit int64) ([]models.TranscriptMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := r.col.Find(ctx, bson.M{"interview_id": interviewID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.TranscriptMessage
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
