package recordsRepo

import (
	"context"
	"fmt"
	"time"

	"hoardify/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes used by the activity queries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entityId", Value: 1}, {Key: "at", Value: -1}}},
	}
	if _, err := db.Collection("activity_records").Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new activity record and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.ActivityRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.At.IsZero() {
		record.At = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("failed to insert activity record: %w", err)
	}
	return record.ID, nil
}

// ListRecent returns the newest records first.
func (r *mongoRecordRepo) ListRecent(ctx context.Context, limit int64) ([]models.ActivityRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{}, opts)
}

// ListByEntity returns the history of one document.
func (r *mongoRecordRepo) ListByEntity(ctx context.Context, entity, entityID string) ([]models.ActivityRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})
	return r.find(ctx, bson.M{"entity": entity, "entityId": entityID}, opts)
}

func (r *mongoRecordRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.ActivityRecord, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.ActivityRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode activity records: %w", err)
	}
	return records, nil
}
