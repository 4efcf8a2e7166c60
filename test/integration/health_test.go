//go:build integration

package integration

import (
	"net/http"
	"testing"

	"dopo/test/integration/testutil"
)

func TestRoot_ReportsReady(t *testing.T) {
	env := testutil.NewTestEnv()
	_, clients := env.Setup(t)

	resp, err := clients.HTTP.GET("/")
	if err != nil {
		t.Fatalf("root request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	if string(resp.Body) != "Backend ready" {
		t.Errorf("unexpected root body %q", resp.Body)
	}
}

func TestReady_PingsDatabase(t *testing.T) {
	env := testutil.NewTestEnv()
	_, clients := env.Setup(t)

	resp, err := clients.HTTP.GET("/ready")
	if err != nil {
		t.Fatalf("ready request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertContains(t, resp, `"database":"ok"`)
}

func TestImages_UnknownAndTraversalAre404(t *testing.T) {
	env := testutil.NewTestEnv()
	_, clients := env.Setup(t)

	for _, path := range []string{"/images/does-not-exist.png", "/images/..%2f..%2fetc%2fpasswd"} {
		resp, err := clients.HTTP.GET(path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	}
}

func TestUnknownRoute_IsJSON404(t *testing.T) {
	env := testutil.NewTestEnv()
	_, clients := env.Setup(t)

	resp, err := clients.HTTP.GET("/nope")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	testutil.AssertMessage(t, resp, "Resource not found")
}
