package mongo

import (
	"context"
	"time"

	"github.com/hirestage/hirestage/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityRepository interface {
	Insert(ctx context.Context, a *models.Activity) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Activity, error)
	ListAll(ctx context.Context, limit int64) ([]models.Activity, error)
}

type activityRepo struct {
	col *mongo.Collection
}

func NewActivityRepo(db *mongo.Database) ActivityRepository {
	return &activityRepo{col: db.Collection("activities")}
}

func (r *activityRepo) Insert(ctx context.Context, a *models.Activity) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *activityRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Activity, error) {
	return r.list(ctx, bson.M{"user_id": userID}, limit)
}

func (r *activityRepo) ListAll(ctx context.Context, limit int64) ([]models.Activity, error) {
	return r.list(ctx, bson.M{}, limit)
}

func (r *activityRepo) list(ctx context.Context, filter bson.M, limit int64) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.Activity
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
