package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

const defaultTimeout = 5 * time.Second

// NewMongoStore wires the Mongo repositories against db. client is needed for sessions.
func NewMongoStore(client *mongo.Client, db *mongo.Database, timeout time.Duration) Store {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return Store{
		Users:         NewUserRepository(client, db, timeout),
		Organizations: NewOrganizationRepository(client, db, timeout),
		Leaves:        NewLeaveRepository(db, timeout),
	}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}
