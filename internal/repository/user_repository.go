package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"leave-backend/internal/models"
)

type MongoUserRepository struct {
	client  *mongo.Client
	col     *mongo.Collection
	timeout time.Duration
}

func NewUserRepository(client *mongo.Client, db *mongo.Database, timeout time.Duration) *MongoUserRepository {
	return &MongoUserRepository{
		client:  client,
		col:     db.Collection(UsersCollection),
		timeout: timeout,
	}
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *MongoUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{})
}

// SearchByName matches a case-insensitive substring; the fragment is taken literally.
func (r *MongoUserRepository) SearchByName(ctx context.Context, fragment string) ([]models.User, error) {
	return r.find(ctx, bson.M{
		"name": bson.Regex{Pattern: regexp.QuoteMeta(fragment), Options: "i"},
	})
}

func (r *MongoUserRepository) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Register runs the email lookup and the insert in one transaction. The unique index on
// email (see bootstrap.EnsureIndexes) rejects a racing insert that slips past the lookup.
func (r *MongoUserRepository) Register(ctx context.Context, u *models.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (any, error) {
		n, err := r.col.CountDocuments(sc, bson.M{"email": u.Email})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrDuplicateEmail
		}
		if _, err := r.col.InsertOne(sc, u); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) || mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *MongoUserRepository) Save(ctx context.Context, u *models.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
