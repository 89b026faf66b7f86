package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Aleph-Alpha/digitaltwin/v1/statetree"
)

// StateDocument is one vehicle's stored construction state.
type StateDocument struct {
	VehicleID string         `bson:"vehicleId" json:"vehicleId"`
	State     statetree.Flat `bson:"state" json:"state"`
}

// StateStore is the construction-state persistence surface.
type StateStore interface {
	// FindOne returns ErrStateNotFound when the vehicle has no document.
	FindOne(ctx context.Context, vehicleID string) (*StateDocument, error)

	// FindVehicleIDs returns the IDs of all documents matching filter.
	FindVehicleIDs(ctx context.Context, filter bson.D) ([]string, error)

	Count(ctx context.Context, filter bson.D) (int64, error)

	// UpsertLeaves writes every leaf for vehicleID, creating the document on
	// first use. The store sets hasConflict, lastModified and owner.
	UpsertLeaves(ctx context.Context, vehicleID, owner string, leaves map[string]any) error
}
