package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrStateNotFound is returned when no state document exists for a vehicle.
	ErrStateNotFound = errors.New("mongodb: construction state not found")

	// ErrInvalidLeafPath is returned for leaf keys the store cannot hold.
	ErrInvalidLeafPath = errors.New("mongodb: invalid leaf path")

	ErrDuplicateKey = errors.New("mongodb: duplicate key")
	ErrTimeout      = errors.New("mongodb: operation timed out")
	ErrUnavailable  = errors.New("mongodb: server unavailable")
)

// TranslateError maps driver errors to the package sentinels. The driver error
// stays in the chain so callers can still inspect it. Unknown errors are
// returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrStateNotFound
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(ErrDuplicateKey, err)
	case mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrTimeout, err)
	case mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return errors.Join(ErrUnavailable, err)
	}
	return err
}
