package repository

import (
	"context"
	"fmt"
	"time"

	activitieserrors "dopo/internal/activities/errors"
	"dopo/pkg/config"
	"dopo/pkg/model"
	"dopo/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "activities"
)

type ActivityRepository interface {
	FindAll(ctx context.Context) ([]model.Activity, error)
	Search(ctx context.Context, keyword string) ([]model.Activity, error)
	DecrementSpaces(ctx context.Context, id string, amount int) error
}

type mongoActivityRepository struct {
	collection         *mongo.Collection
	readTimeout        time.Duration
	writeTimeout       time.Duration
	enforceSpacesFloor bool
}

func NewMongoActivityRepository(cfg *config.Config) ActivityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoActivityRepository{
		collection:         db.Collection(CollectionName),
		readTimeout:        cfg.ReadTimeout,
		writeTimeout:       cfg.WriteTimeout,
		enforceSpacesFloor: cfg.EnforceSpacesFloor,
	}
}

// withTimeout bounds ctx by timeout, keeping a shorter caller deadline if one is set.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoActivityRepository) FindAll(ctx context.Context) ([]model.Activity, error) {
	return r.find(ctx, bson.M{}, "failed to query activities")
}

func (r *mongoActivityRepository) Search(ctx context.Context, keyword string) ([]model.Activity, error) {
	return r.find(ctx, BuildSearchFilter(keyword), "failed to search activities")
}

func (r *mongoActivityRepository) find(ctx context.Context, filter bson.M, failure string) ([]model.Activity, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	defer cursor.Close(ctx)

	activities := []model.Activity{}
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}

	return activities, nil
}

func (r *mongoActivityRepository) DecrementSpaces(ctx context.Context, id string, amount int) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", activitieserrors.ErrInvalidID, id)
	}

	filter := BuildDecrementFilter(objectID, amount, r.enforceSpacesFloor)
	result, err := r.collection.UpdateOne(ctx, filter, BuildDecrementUpdate(amount))
	if err != nil {
		return fmt.Errorf("failed to update activity spaces: %w", err)
	}

	if result.MatchedCount == 0 {
		if r.enforceSpacesFloor {
			return r.explainMiss(ctx, objectID)
		}
		return fmt.Errorf("%w: %s", activitieserrors.ErrNotFound, id)
	}

	return nil
}

// explainMiss tells a missing activity apart from one the floor guard rejected.
func (r *mongoActivityRepository) explainMiss(ctx context.Context, objectID primitive.ObjectID) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to check activity existence: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", activitieserrors.ErrNotFound, objectID.Hex())
	}
	return fmt.Errorf("%w: %s", activitieserrors.ErrInsufficientSpaces, objectID.Hex())
}

// BuildSearchFilter matches keyword as a case-insensitive literal substring of
// title or location.
func BuildSearchFilter(keyword string) bson.M {
	pattern := sanitizer.SanitizeSearchKeyword(keyword)
	return bson.M{
		"$or": bson.A{
			bson.M{"location": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}
}

func BuildDecrementFilter(id primitive.ObjectID, amount int, enforceFloor bool) bson.M {
	filter := bson.M{"_id": id}
	if enforceFloor {
		filter["spaces"] = bson.M{"$gte": amount}
	}
	return filter
}

func BuildDecrementUpdate(amount int) bson.M {
	return bson.M{"$inc": bson.M{"spaces": -amount}}
}
