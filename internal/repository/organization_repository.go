package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"leave-backend/internal/models"
)

type MongoOrganizationRepository struct {
	client  *mongo.Client
	col     *mongo.Collection
	timeout time.Duration
}

func NewOrganizationRepository(client *mongo.Client, db *mongo.Database, timeout time.Duration) *MongoOrganizationRepository {
	return &MongoOrganizationRepository{
		client:  client,
		col:     db.Collection(OrganizationsCollection),
		timeout: timeout,
	}
}

func (r *MongoOrganizationRepository) InsertMany(ctx context.Context, orgs []models.Organization) ([]models.Organization, error) {
	if len(orgs) == 0 {
		return []models.Organization{}, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	for i := range orgs {
		PrepareOrganization(&orgs[i])
	}
	if HasDuplicateOrganizationID(orgs) {
		return nil, ErrDuplicateOrganization
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer sess.EndSession(ctx)

	// all or nothing: a clash with a stored organization aborts the whole batch
	_, err = sess.WithTransaction(ctx, func(sc context.Context) (any, error) {
		ids := make([]string, len(orgs))
		for i := range orgs {
			ids[i] = orgs[i].OrganizationID
		}
		n, err := r.col.CountDocuments(sc, bson.M{"organization_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrDuplicateOrganization
		}
		if _, err := r.col.InsertMany(sc, orgs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateOrganization) || mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateOrganization
		}
		return nil, err
	}
	return orgs, nil
}

// HasDuplicateOrganizationID reports whether two organizations of one batch share an organization_id.
func HasDuplicateOrganizationID(orgs []models.Organization) bool {
	seen := make(map[string]struct{}, len(orgs))
	for _, o := range orgs {
		if _, ok := seen[o.OrganizationID]; ok {
			return true
		}
		seen[o.OrganizationID] = struct{}{}
	}
	return false
}

// PrepareOrganization fills the ids Mongo would otherwise leave empty.
func PrepareOrganization(o *models.Organization) {
	if o.ID.IsZero() {
		o.ID = bson.NewObjectID()
	}
	if o.OrganizationID == "" {
		o.OrganizationID = bson.NewObjectID().Hex()
	}
	if o.LeaveTypes == nil {
		o.LeaveTypes = []models.LeaveType{}
	}
}

func (r *MongoOrganizationRepository) FindAll(ctx context.Context) ([]models.Organization, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orgs := []models.Organization{}
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *MongoOrganizationRepository) FindByOrganizationID(ctx context.Context, organizationID string) (*models.Organization, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var o models.Organization
	if err := r.col.FindOne(ctx, bson.M{"organization_id": organizationID}).Decode(&o); err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *MongoOrganizationRepository) AddLeaveType(ctx context.Context, id bson.ObjectID, lt models.LeaveType) (*models.Organization, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var o models.Organization
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"leaveTypes": lt}},
		opts,
	).Decode(&o)
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *MongoOrganizationRepository) Delete(ctx context.Context, id bson.ObjectID) error {
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
