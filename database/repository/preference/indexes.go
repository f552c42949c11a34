// FILE: database/repository/preference/indexes.go
package preferenceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the shift_preferences collection.
func (r *mongoPreferenceRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: a shop's week.
		{
			Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "weekStart", Value: 1}},
			Options: options.Index().SetName("shop_week_idx"),
		},
		{
			Keys: bson.D{
				{Key: "shopId", Value: 1},
				{Key: "employeeId", Value: 1},
				{Key: "weekStart", Value: 1},
			},
			Options: options.Index().SetName("shop_employee_week_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create shift preference indexes: %w", err)
	}
	return nil
}
