package postgres

import (
	"context"
	"database/sql"

	"triporganizer/internal/domain"
)

type tripInvitationRepository struct {
	DB *sql.DB
}

func NewTripInvitationRepository(db *sql.DB) domain.TripInvitationRepository {
	return &tripInvitationRepository{DB: db}
}

func (r *tripInvitationRepository) Create(ctx context.Context, inv *domain.TripInvitation) error {
	query := `
		INSERT INTO trip_invitations (trip_id, email, sent_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, inv.TripID, inv.Email, inv.SentAt).Scan(&inv.ID)
}

func (r *tripInvitationRepository) ListByTripID(ctx context.Context, tripID int64, params domain.PaginationParams) ([]*domain.TripInvitation, int, error) {
	query := `
		SELECT id, trip_id, email, sent_at, COUNT(*) OVER() AS total
		FROM trip_invitations
		WHERE trip_id = $1
		ORDER BY sent_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, tripID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invs := make([]*domain.TripInvitation, 0)
	total := 0
	for rows.Next() {
		inv := &domain.TripInvitation{}
		if err := rows.Scan(&inv.ID, &inv.TripID, &inv.Email, &inv.SentAt, &total); err != nil {
			return nil, 0, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return invs, total, nil
}
