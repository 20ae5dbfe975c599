package schedule

import "errors"

// Domain errors surfaced to callers as typed results. Handlers map these to
// HTTP status codes; repositories wrap lower-level failures separately.
var (
	// ErrInvalidRange indicates an interval whose end is not after its start.
	ErrInvalidRange = errors.New("end date must be after start date")

	// ErrConflict indicates an overlapping reservation for the same owner.
	ErrConflict = errors.New("reservation conflict")

	// ErrNotFound indicates the target reservation does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("reservation not found")
)
