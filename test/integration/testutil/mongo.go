//go:build integration

package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ConnectionTimeout    = 10 * time.Second
	ActivitiesCollection = "activities"
	OrdersCollection     = "orders"
	FixtureMarkerField   = "integrationRun"
)

// MongoHelper gives tests direct access to the backing database
type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	RunID    string
}

func NewMongoHelper(t *testing.T, mongoURI, dbName, runID string) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(mongoURI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
		RunID:    runID,
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// InsertActivity stores doc tagged with the run marker and returns its id
func (m *MongoHelper) InsertActivity(t *testing.T, doc bson.M) primitive.ObjectID {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id := primitive.NewObjectID()
	doc["_id"] = id
	doc[FixtureMarkerField] = m.RunID

	if _, err := m.Database.Collection(ActivitiesCollection).InsertOne(ctx, doc); err != nil {
		t.Fatalf("failed to insert activity fixture: %v", err)
	}
	return id
}

// ActivitySpaces reads the stored spaces counter of an activity
func (m *MongoHelper) ActivitySpaces(t *testing.T, id primitive.ObjectID) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc struct {
		Spaces int `bson:"spaces"`
	}
	if err := m.Database.Collection(ActivitiesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		t.Fatalf("failed to read activity %s: %v", id.Hex(), err)
	}
	return doc.Spaces
}

// CountOrders counts stored orders carrying this run's marker
func (m *MongoHelper) CountOrders(t *testing.T) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := m.Database.Collection(OrdersCollection).CountDocuments(ctx, bson.M{FixtureMarkerField: m.RunID})
	if err != nil {
		t.Fatalf("failed to count orders: %v", err)
	}
	return count
}

// CleanFixtures removes only the documents written by this run
func (m *MongoHelper) CleanFixtures(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{FixtureMarkerField: m.RunID}
	for _, name := range []string{ActivitiesCollection, OrdersCollection} {
		result, err := m.Database.Collection(name).DeleteMany(ctx, filter)
		if err != nil {
			t.Logf("warning: failed to clean %s: %v", name, err)
			continue
		}
		t.Logf("Cleaned %d fixtures from collection: %s", result.DeletedCount, name)
	}
}
