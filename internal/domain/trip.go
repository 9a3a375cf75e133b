package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Capacity bounds for a trip.
const (
	MinCapacity = 1
	MaxCapacity = 100
)

// Trip is the aggregate root for a group trip: the trip row plus its owner,
// participant, and co-owner associations, loaded eagerly as one consistency
// boundary. The owner is always a participant; co-owners are a subset of the
// participants. ConcurrencyStamp is an opaque version token regenerated on
// every mutating write and used as the compare-and-swap condition at commit.
// swagger:model Trip
type Trip struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Destination      string    `json:"destination"`
	Description      string    `json:"description"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Price            float64   `json:"price"`
	Capacity         int       `json:"capacity"`
	OwnerID          string    `json:"owner_id"`
	Owner            *User     `json:"owner,omitempty"`
	Participants     []*User   `json:"participants"`
	CoOwners         []*User   `json:"co_owners"`
	ConcurrencyStamp string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsOwner reports whether userID is the trip's single owner.
func (t *Trip) IsOwner(userID string) bool {
	return t.OwnerID == userID
}

// IsCoOwner reports whether userID is in the co-owner set.
func (t *Trip) IsCoOwner(userID string) bool {
	for _, u := range t.CoOwners {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// CanEdit reports whether userID may edit trip fields: owner or co-owner.
func (t *Trip) CanEdit(userID string) bool {
	return t.IsOwner(userID) || t.IsCoOwner(userID)
}

// IsParticipant reports whether userID is in the participant set.
func (t *Trip) IsParticipant(userID string) bool {
	for _, u := range t.Participants {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// CurrentParticipantCount returns the number of participants.
func (t *Trip) CurrentParticipantCount() int {
	return len(t.Participants)
}

// HasAvailableSpots reports whether the trip is below capacity.
func (t *Trip) HasAvailableSpots() bool {
	return len(t.Participants) < t.Capacity
}

// AddParticipant appends user to the participant set. Callers must check
// HasAvailableSpots and IsParticipant first.
func (t *Trip) AddParticipant(user *User) {
	t.Participants = append(t.Participants, user)
}

// RemoveParticipant removes userID from the participant set, and from the
// co-owner set as well so that co-owners stay a subset of participants.
func (t *Trip) RemoveParticipant(userID string) {
	t.Participants = removeUser(t.Participants, userID)
	t.CoOwners = removeUser(t.CoOwners, userID)
}

// AddCoOwner appends user to the co-owner set. Callers must check
// IsParticipant and IsCoOwner first.
func (t *Trip) AddCoOwner(user *User) {
	t.CoOwners = append(t.CoOwners, user)
}

// RemoveCoOwner removes userID from the co-owner set only; the user remains a
// participant.
func (t *Trip) RemoveCoOwner(userID string) {
	t.CoOwners = removeUser(t.CoOwners, userID)
}

func removeUser(users []*User, userID string) []*User {
	out := users[:0]
	for _, u := range users {
		if u.ID != userID {
			out = append(out, u)
		}
	}
	return out
}

// MarshalJSON adds the computed participant-count fields to the trip
// representation returned to callers.
func (t *Trip) MarshalJSON() ([]byte, error) {
	type alias Trip
	return json.Marshal(struct {
		*alias
		CurrentParticipantCount int  `json:"current_participant_count"`
		HasAvailableSpots       bool `json:"has_available_spots"`
	}{
		alias:                   (*alias)(t),
		CurrentParticipantCount: t.CurrentParticipantCount(),
		HasAvailableSpots:       t.HasAvailableSpots(),
	})
}

// TripUpdate carries the replacement field values for a trip edit. PUT
// semantics: every field is set, mirroring the client's edit form.
type TripUpdate struct {
	Name        string
	Destination string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Price       float64
	Capacity    int
}

// TripRepository defines storage for the trip aggregate. Loads are eager:
// GetByID and the list queries return the trip with owner, participants, and
// co-owners populated. Save commits the whole aggregate conditionally on
// expectedStamp (the ConcurrencyStamp read at load time) and returns
// ErrConflict when another writer committed first.
type TripRepository interface {
	Create(ctx context.Context, trip *Trip) error
	GetByID(ctx context.Context, id int64) (*Trip, error)
	ListFuture(ctx context.Context, now time.Time) ([]*Trip, error)
	ListByParticipant(ctx context.Context, userID string) ([]*Trip, error)
	Save(ctx context.Context, trip *Trip, expectedStamp string) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// TripCache is an optional read-through cache for the future-trips listing.
// GetFuture returns (nil, nil) on a miss. The cache is advisory: membership
// rules are never evaluated against cached data.
type TripCache interface {
	GetFuture(ctx context.Context) ([]*Trip, error)
	SetFuture(ctx context.Context, trips []*Trip) error
	Invalidate(ctx context.Context) error
}

// TripService defines the trip operations exposed to the HTTP layer. Caller
// identity comes from the authenticated request; target users are referenced
// by ID. Role violations surface as ErrForbidden, business-rule violations as
// the rejection sentinels, and lost optimistic-concurrency races as
// ErrConflict (after a not-found recheck).
type TripService interface {
	CreateTrip(ctx context.Context, trip *Trip, ownerID string) error
	GetTrip(ctx context.Context, tripID int64) (*Trip, error)
	ListFutureTrips(ctx context.Context) ([]*Trip, error)
	ListMyTrips(ctx context.Context, userID string) ([]*Trip, error)
	UpdateTrip(ctx context.Context, tripID int64, callerID string, upd TripUpdate) (*Trip, error)
	JoinTrip(ctx context.Context, tripID int64, callerID string) (*Trip, error)
	LeaveTrip(ctx context.Context, tripID int64, callerID string) (*Trip, error)
	AddCoOwner(ctx context.Context, tripID int64, targetUserID, callerID string) (*Trip, error)
	RemoveCoOwner(ctx context.Context, tripID int64, targetUserID, callerID string) (*Trip, error)
	TransferOwnership(ctx context.Context, tripID int64, newOwnerID, callerID string) (*Trip, error)
	DeleteTrip(ctx context.Context, tripID int64, callerID string) error
	InviteToTrip(ctx context.Context, tripID int64, callerID string, emails []string) (sent int, failed []string, err error)
	ListTripInvitations(ctx context.Context, tripID int64, callerID string, params PaginationParams) ([]*TripInvitation, int, error)
}
