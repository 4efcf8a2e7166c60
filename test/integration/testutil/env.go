//go:build integration

package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"dopo/pkg/client"
)

const (
	DefaultServerURL          = "http://localhost:3000"
	DefaultMongoURI           = "mongodb://localhost:27017"
	DefaultDatabaseName       = "dopo"
	DefaultHealthCheckTimeout = 30 * time.Second
)

type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string

	// RunID tags every fixture written by this run so cleanup never
	// touches documents it did not create.
	RunID string
}

type Clients struct {
	Activities *client.ActivityClient
	Orders     *client.OrderClient
	HTTP       *client.HttpClient
}

func NewTestEnv() *TestEnv {
	return &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:    getEnv("TEST_SERVER_URL", DefaultServerURL),
		RunID:        uuid.NewString(),
	}
}

func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Clients) {
	t.Helper()

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName, e.RunID)

	clients := &Clients{
		Activities: client.NewActivityClient(e.ServerURL),
		Orders:     client.NewOrderClient(e.ServerURL),
		HTTP:       client.NewHttpClient(e.ServerURL),
	}
	if err := clients.HTTP.WaitForHealthy(DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("server at %s is not healthy: %v", e.ServerURL, err)
	}

	t.Cleanup(func() {
		mongo.CleanFixtures(t)
		mongo.Close(t)
	})

	return mongo, clients
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
