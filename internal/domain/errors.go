package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP statuses: ErrForbidden -> 403, ErrNotFound/ErrUserNotFound ->
// 404, ErrConflict -> 409, and the business-rule rejections -> 400.
var (
	// ErrNotFound is returned when a referenced trip does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller lacks the role an operation
	// requires (not owner, or not owner/co-owner).
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when a conditional write loses an optimistic
	// concurrency race. The caller must reload the trip and resubmit.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrInvalidInput is returned when a request is structurally valid but
	// semantically unusable (e.g. empty invitation email list).
	ErrInvalidInput = errors.New("invalid input")
)

// Business-rule rejections: the caller is valid but the state transition is
// not. Messages name the invariant that blocked the action.
var (
	ErrTripFull           = errors.New("trip is full")
	ErrAlreadyParticipant = errors.New("already participating in this trip")
	ErrNotParticipant     = errors.New("not participating in this trip")
	ErrAlreadyCoOwner     = errors.New("user is already a co-owner")
	ErrNotCoOwner         = errors.New("user is not a co-owner")
	ErrSelfTransfer       = errors.New("cannot transfer ownership to yourself")
	ErrOwnerCannotLeave   = errors.New("owner cannot leave the trip; transfer ownership or delete the trip instead")
	ErrTargetNotMember    = errors.New("user must be a participant of the trip")
	ErrCapacityTooSmall   = errors.New("capacity cannot be less than the current participant count")
)
