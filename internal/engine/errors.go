package engine

import "errors"

// All engine failures are local, synchronous and recoverable by the caller.
// Handlers map them to HTTP statuses with errors.Is; the engine itself never
// renders user-facing messages.
var (
	// ErrSpotNotFound is returned when the referenced spot does not exist.
	ErrSpotNotFound = errors.New("spot not found")

	// ErrSpotUnavailable is returned by registration when the spot is not
	// available or its class does not match the vehicle's.
	ErrSpotUnavailable = errors.New("spot unavailable")

	// ErrSpotNotOccupied is returned by release when the spot holds no vehicle.
	ErrSpotNotOccupied = errors.New("spot not occupied")

	// ErrInvalidTransition is returned when an operational-status change is
	// attempted on a spot that currently holds a vehicle, or when the target
	// status is not an operator-settable one.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTokenNotFound is returned by ConfirmExit when no active session
	// carries the token.
	ErrTokenNotFound = errors.New("no active session for token")

	// ErrEmptyToken is returned when token input is blank. Distinct from a
	// well-formed token that simply matches nothing.
	ErrEmptyToken = errors.New("empty token")

	// ErrTokenCollision is returned when the generator failed to produce a
	// token unused by any active session within the retry budget. Collisions
	// inside the budget are retried and never surfaced.
	ErrTokenCollision = errors.New("exit token collision")
)
