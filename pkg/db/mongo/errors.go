package mongo

import (
	"errors"

	apperrors "dopo/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// IsUnavailable reports whether err means the cluster could not be reached,
// as opposed to the server rejecting the operation.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}

	var selectionErr topology.ServerSelectionError
	if errors.As(err, &selectionErr) {
		return true
	}

	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

// StoreError converts a driver error into an AppError. Errors that are already
// AppErrors pass through untouched.
func StoreError(message string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	if IsUnavailable(err) {
		return apperrors.StoreUnavailable(err)
	}
	return apperrors.Store(message, err)
}
