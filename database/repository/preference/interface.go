// File: database/repository/preference/interface.go
package preferenceRepo

import (
	"context"

	"shiffy/database"
	"shiffy/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type PreferenceRepository interface {
	ReplaceForEmployee(ctx context.Context, shopID, employeeID, weekStart string, prefs []models.ShiftPreference) error
	GetByWeek(ctx context.Context, shopID, weekStart string) ([]models.ShiftPreference, error)
	ShopIDsForWeek(ctx context.Context, weekStart string) ([]string, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoPreferenceRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoPreferenceRepo constructs a new MongoDB PreferenceRepository.
func NewMongoPreferenceRepo() PreferenceRepository {
	return &mongoPreferenceRepo{
		client: database.MongoClient,
		coll:   database.DB().Collection("shift_preferences"),
	}
}
