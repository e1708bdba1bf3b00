package recordsRepo

import (
	"context"
	"time"

	"hoardify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ActivityRecordRepository stores the audit trail of admin writes.
type ActivityRecordRepository interface {
	Create(ctx context.Context, record models.ActivityRecord) (string, error)
	ListRecent(ctx context.Context, limit int64) ([]models.ActivityRecord, error)
	ListByEntity(ctx context.Context, entity, entityID string) ([]models.ActivityRecord, error)
	CountByAction(ctx context.Context, since time.Time) ([]models.ActionCount, error)
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns an ActivityRecordRepository using MongoDB.
func NewMongoRecordRepo(db *mongo.Database) ActivityRecordRepository {
	return &mongoRecordRepo{coll: db.Collection("activity_records")}
}
