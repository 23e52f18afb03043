package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"leave-backend/internal/repository"
)

// EnsureIndexes creates the indexes the repositories rely on. Creating an
// existing index with the same definition is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// one account per email
	if _, err := db.Collection(repository.UsersCollection).Indexes().CreateOne(ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	if _, err := db.Collection(repository.OrganizationsCollection).Indexes().CreateOne(ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_organization_id"),
		},
	); err != nil {
		return fmt.Errorf("organizations indexes: %w", err)
	}

	if _, err := db.Collection(repository.LeavesCollection).Indexes().CreateMany(ctx,
		[]mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("user_status"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}},
				Options: options.Index().SetName("status"),
			},
			{
				Keys:    bson.D{{Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}},
				Options: options.Index().SetName("date_span"),
			},
		},
	); err != nil {
		return fmt.Errorf("leaverequests indexes: %w", err)
	}
	return nil
}
