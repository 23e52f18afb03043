package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"leave-backend/internal/models"
)

type MongoLeaveRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewLeaveRepository(db *mongo.Database, timeout time.Duration) *MongoLeaveRepository {
	return &MongoLeaveRepository{
		col:     db.Collection(LeavesCollection),
		timeout: timeout,
	}
}

func (r *MongoLeaveRepository) Create(ctx context.Context, l *models.LeaveRequest) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, l)
	return err
}

func (r *MongoLeaveRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.LeaveRequest, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var l models.LeaveRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *MongoLeaveRepository) FindAll(ctx context.Context) ([]models.LeaveRequest, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoLeaveRepository) FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.LeaveRequest, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MongoLeaveRepository) FindByUserAndStatus(ctx context.Context, userID bson.ObjectID, status string) ([]models.LeaveRequest, error) {
	return r.find(ctx, bson.M{"user_id": userID, "status": status})
}

func (r *MongoLeaveRepository) find(ctx context.Context, filter bson.M) ([]models.LeaveRequest, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	leaves := []models.LeaveRequest{}
	if err := cur.All(ctx, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *MongoLeaveRepository) Save(ctx context.Context, l *models.LeaveRequest) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoLeaveRepository) FindWithUsers(ctx context.Context, f LeaveFilter) ([]models.LeaveWithUsers, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, BuildLeavePipeline(f), options.Aggregate())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []models.LeaveWithUsers{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
