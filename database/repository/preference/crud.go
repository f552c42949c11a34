// File: database/repository/preference/crud.go
package preferenceRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shiffy/models"
)

// ReplaceForEmployee swaps an employee's preferences for one week inside a
// transaction so readers never see a half-written week.
func (r *mongoPreferenceRepo) ReplaceForEmployee(
	ctx context.Context,
	shopID, employeeID, weekStart string,
	prefs []models.ShiftPreference,
) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"shopId": shopID, "employeeId": employeeID, "weekStart": weekStart}
		if _, err := r.coll.DeleteMany(sc, filter); err != nil {
			return nil, err
		}
		if len(prefs) == 0 {
			return nil, nil
		}

		docs := make([]interface{}, len(prefs))
		for i, p := range prefs {
			if p.ID == "" {
				p.ID = uuid.New().String()
			}
			docs[i] = p
		}
		return r.coll.InsertMany(sc, docs, options.InsertMany().SetOrdered(true))
	})
	return err
}

func (r *mongoPreferenceRepo) GetByWeek(ctx context.Context, shopID, weekStart string) ([]models.ShiftPreference, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": shopID, "weekStart": weekStart}
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "shift", Value: 1},
		{Key: "employeeId", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prefs []models.ShiftPreference
	if err := cursor.All(ctx, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *mongoPreferenceRepo) ShopIDsForWeek(ctx context.Context, weekStart string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "shopId", bson.M{"weekStart": weekStart})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
