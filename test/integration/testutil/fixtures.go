//go:build integration

package testutil

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"dopo/pkg/client"
	"dopo/pkg/model"
)

// ActivityFixture builds an activity document whose title and location
// both contain tag, so searches can be scoped to this run.
func ActivityFixture(tag string, spaces int) bson.M {
	return bson.M{
		"title":    "Kayak tour " + tag,
		"location": "Lake " + tag,
		"spaces":   spaces,
		"price":    25.5,
		"guide":    bson.M{"name": "Ana"},
	}
}

// OrderFixture builds an order carrying the run marker for cleanup
func OrderFixture(runID string) model.Order {
	return model.Order{
		"activityId":       "65a1f0c2e4b0a1b2c3d4e5f6",
		"bookedSpaces":     2,
		"customer":         map[string]any{"name": "Luca", "email": "luca@example.com"},
		FixtureMarkerField: runID,
	}
}

func AssertStatusCode(t *testing.T, resp *client.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %s", expected, resp)
	}
}

func AssertMessage(t *testing.T, resp *client.Response, expected string) {
	t.Helper()
	if got := client.GetErrorMessage(resp); got != expected {
		t.Errorf("expected message %q, got %q", expected, got)
	}
}

func AssertContains(t *testing.T, resp *client.Response, substr string) {
	t.Helper()
	if !strings.Contains(string(resp.Body), substr) {
		t.Errorf("expected body to contain %q, got %s", substr, resp.Body)
	}
}
