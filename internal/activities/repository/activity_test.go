package repository

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildSearchFilter(t *testing.T) {
	filter := BuildSearchFilter("art.")

	or, ok := filter["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or with two clauses, got %v", filter)
	}

	fields := []string{"location", "title"}
	for i, field := range fields {
		clause := or[i].(bson.M)[field].(bson.M)
		if clause["$regex"] != `art\.` {
			t.Errorf("%s: expected escaped pattern, got %v", field, clause["$regex"])
		}
		if clause["$options"] != "i" {
			t.Errorf("%s: expected case-insensitive option, got %v", field, clause["$options"])
		}
	}
}

func TestBuildSearchFilter_EmptyKeyword(t *testing.T) {
	filter := BuildSearchFilter("")
	clause := filter["$or"].(bson.A)[0].(bson.M)["location"].(bson.M)
	if clause["$regex"] != "" {
		t.Errorf("expected empty pattern, got %v", clause["$regex"])
	}
}

func TestBuildDecrementFilter(t *testing.T) {
	id := primitive.NewObjectID()

	filter := BuildDecrementFilter(id, 2, false)
	if filter["_id"] != id {
		t.Errorf("expected _id filter, got %v", filter)
	}
	if _, ok := filter["spaces"]; ok {
		t.Error("floor condition must be absent when disabled")
	}

	filter = BuildDecrementFilter(id, 2, true)
	spaces, ok := filter["spaces"].(bson.M)
	if !ok || spaces["$gte"] != 2 {
		t.Errorf("expected spaces >= 2 condition, got %v", filter["spaces"])
	}
}

func TestBuildDecrementUpdate(t *testing.T) {
	tests := []struct {
		amount int
		want   int
	}{
		{amount: 3, want: -3},
		{amount: 0, want: 0},
		{amount: -2, want: 2},
	}

	for _, tt := range tests {
		update := BuildDecrementUpdate(tt.amount)
		inc := update["$inc"].(bson.M)
		if inc["spaces"] != tt.want {
			t.Errorf("amount %d: expected $inc spaces %d, got %v", tt.amount, tt.want, inc["spaces"])
		}
	}
}

func TestWithTimeout_KeepsShorterDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ctx, cancelChild := withTimeout(parent, time.Hour)
	defer cancelChild()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected deadline")
	}
	if time.Until(deadline) > 50*time.Millisecond {
		t.Errorf("child deadline should not exceed the parent's, got %v", time.Until(deadline))
	}
}

func TestWithTimeout_AppliesTimeout(t *testing.T) {
	ctx, cancel := withTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected deadline")
	}
	if remaining := time.Until(deadline); remaining > 2*time.Second || remaining < time.Second {
		t.Errorf("unexpected remaining time %v", remaining)
	}
}
