package repository

import (
	"context"
	"fmt"
	"time"

	orderserrors "dopo/internal/orders/errors"
	"dopo/pkg/config"
	"dopo/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "orders"
)

type OrderRepository interface {
	FindAll(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (string, error)
}

type mongoOrderRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoOrderRepository(cfg *config.Config) OrderRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOrderRepository{
		collection:   db.Collection(CollectionName),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

// withTimeout bounds ctx by timeout, keeping a shorter caller deadline if one is set.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoOrderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []model.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

// Create stores order as given and sets its _id to the stored id.
func (r *mongoOrderRepository) Create(ctx context.Context, order model.Order) (string, error) {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: %v", orderserrors.ErrDuplicateID, order["_id"])
		}
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	order["_id"] = result.InsertedID
	return insertedIDString(result.InsertedID), nil
}

func insertedIDString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
