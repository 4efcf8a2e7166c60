package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusBadRequest)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeStore,
				Message: "failed to list activities",
				Err:     errors.New("connection reset"),
			},
			expected: "STORE_ERROR: failed to list activities (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if !errors.Is(appErr, originalErr) {
		t.Errorf("errors.Is should see the original error through Unwrap")
	}
}

func TestAppError_StatusCode(t *testing.T) {
	err := New(CodeNotFound, "not found", http.StatusNotFound)
	if err.StatusCode() != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want %d", err.StatusCode(), http.StatusNotFound)
	}

	zero := &AppError{Code: CodeInternal}
	if zero.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode() with no status = %d, want 500", zero.StatusCode())
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusBadRequest)
	err = err.WithDetails(map[string]any{"field": "_id"})

	if err.Details["field"] != "_id" {
		t.Errorf("expected field '_id', got %v", err.Details["field"])
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Activity"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Activity", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusBadRequest},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("taken"), CodeConflict, http.StatusConflict},
		{"internal", Internal("oops", cause), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("Events"), CodeUnavailable, http.StatusServiceUnavailable},
		{"method not allowed", MethodNotAllowed("DELETE", "/orders"), CodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"unsupported media type", UnsupportedMediaType("json only"), CodeUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{"payload too large", PayloadTooLarge(10), CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"store", Store("failed", cause), CodeStore, http.StatusInternalServerError},
		{"store unavailable", StoreUnavailable(cause), CodeStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Activity", "12345")

	if err.Details["id"] != "12345" {
		t.Errorf("expected id '12345', got %v", err.Details["id"])
	}
	if err.Details["resource"] != "Activity" {
		t.Errorf("expected resource 'Activity', got %v", err.Details["resource"])
	}
	if err.Message != "Activity not found" {
		t.Errorf("expected message 'Activity not found', got %s", err.Message)
	}
}

func TestIsAppError(t *testing.T) {
	appErr := NotFound("Order")
	regularErr := errors.New("regular error")

	if !IsAppError(appErr) {
		t.Errorf("IsAppError() should return true for AppError")
	}
	if !IsAppError(fmt.Errorf("context: %w", appErr)) {
		t.Errorf("IsAppError() should see a wrapped AppError")
	}
	if IsAppError(regularErr) {
		t.Errorf("IsAppError() should return false for regular error")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Order")
	regularErr := errors.New("regular error")

	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}
	if AsAppError(fmt.Errorf("context: %w", appErr)) != appErr {
		t.Errorf("AsAppError() should unwrap to the AppError")
	}

	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	err := StoreUnavailable(errors.New("server selection timeout"))

	var body map[string]any
	if decodeErr := json.Unmarshal(err.ToJSON(), &body); decodeErr != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", decodeErr)
	}
	if body["error"] != CodeStoreUnavailable {
		t.Errorf("expected error %q, got %v", CodeStoreUnavailable, body["error"])
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "unavailable") {
		t.Errorf("expected message to mention unavailability, got %v", body["message"])
	}
	if _, ok := body["details"]; ok {
		t.Errorf("details should be omitted when empty")
	}
	if strings.Contains(string(err.ToJSON()), "server selection") {
		t.Errorf("underlying cause must not leak into the response body")
	}
}
