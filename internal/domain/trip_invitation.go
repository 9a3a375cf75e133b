package domain

import (
	"context"
	"time"
)

// TripInvitation represents an email invited to join a trip.
// swagger:model TripInvitation
type TripInvitation struct {
	ID     string    `json:"id"`
	TripID int64     `json:"trip_id"`
	Email  string    `json:"email"`
	SentAt time.Time `json:"sent_at"`
}

// TripInvitationRepository defines storage operations for trip invitations.
type TripInvitationRepository interface {
	Create(ctx context.Context, inv *TripInvitation) error
	ListByTripID(ctx context.Context, tripID int64, params PaginationParams) ([]*TripInvitation, int, error)
}
