package constructionstate

import (
	"context"
	"fmt"
	"slices"
)

// DefaultOwner is used for inserts without an owner and for owners resolved
// through a vehicle ID.
const DefaultOwner = "fleet"

// ValidOwners are accepted as given.
var ValidOwners = []string{"fleet", "containerupd", "testcloud", "oemil", "admin"}

// resolveOwner returns the owner an insert is recorded under. An unknown
// owner is accepted as DefaultOwner when it names a managed vehicle or when
// the platform knows the target vehicle.
func (s *Service) resolveOwner(ctx context.Context, owner, vehicleID string) (string, error) {
	if owner == "" {
		return DefaultOwner, nil
	}
	if slices.Contains(ValidOwners, owner) {
		return owner, nil
	}
	if s.registry.Contains(owner) {
		return DefaultOwner, nil
	}

	registered, err := s.vehicles.VehicleRegistered(ctx, vehicleID)
	if err != nil {
		return "", fmt.Errorf("constructionstate: check registration of %q: %w", vehicleID, err)
	}
	if !registered {
		return "", fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}
	return DefaultOwner, nil
}
