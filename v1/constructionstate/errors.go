package constructionstate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOwner is returned when an insert names an owner that is neither
	// valid nor resolvable to a known vehicle.
	ErrInvalidOwner = errors.New("constructionstate: invalid owner")

	// ErrInvalidPayload is returned when an insert body is not a JSON object.
	ErrInvalidPayload = errors.New("constructionstate: payload must be a JSON object")

	ErrMissingVehicleID = errors.New("constructionstate: vehicle id is required")

	// ErrCommandRejected is matched by every *CommandRejectedError.
	ErrCommandRejected = errors.New("constructionstate: command rejected")
)

// CommandRejectedError reports a flush the vehicle platform did not accept.
type CommandRejectedError struct {
	VehicleID  string
	StatusCode int
}

func (e *CommandRejectedError) Error() string {
	return fmt.Sprintf("%s: enqueuing command for vehicle %q failed with status %d",
		ErrCommandRejected, e.VehicleID, e.StatusCode)
}

func (e *CommandRejectedError) Unwrap() error {
	return ErrCommandRejected
}
