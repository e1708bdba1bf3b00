package recordsRepo

import (
	"context"
	"fmt"
	"time"

	"hoardify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CountByAction groups records since the given time by action, most frequent first.
func (r *mongoRecordRepo) CountByAction(ctx context.Context, since time.Time) ([]models.ActionCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": "$action", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity records: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []models.ActionCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode activity counts: %w", err)
	}
	return counts, nil
}
