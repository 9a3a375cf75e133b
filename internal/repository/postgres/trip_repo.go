package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"triporganizer/internal/domain"
)

type tripRepository struct {
	DB *sql.DB
}

func NewTripRepository(db *sql.DB) domain.TripRepository {
	return &tripRepository{DB: db}
}

const tripColumns = `
	t.id, t.name, t.destination, t.description, t.start_date, t.end_date,
	t.price, t.capacity, t.owner_id, t.concurrency_stamp, t.created_at, t.updated_at,
	u.id, u.email, u.full_name, u.created_at, u.updated_at`

func scanTrip(row interface{ Scan(...any) error }) (*domain.Trip, error) {
	t := &domain.Trip{}
	owner := &domain.User{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Destination, &t.Description, &t.StartDate, &t.EndDate,
		&t.Price, &t.Capacity, &t.OwnerID, &t.ConcurrencyStamp, &t.CreatedAt, &t.UpdatedAt,
		&owner.ID, &owner.Email, &owner.FullName, &owner.CreatedAt, &owner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Owner = owner
	t.Participants = []*domain.User{}
	t.CoOwners = []*domain.User{}
	return t, nil
}

func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO trips (name, destination, description, start_date, end_date, price, capacity, owner_id, concurrency_stamp, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		trip.Name, trip.Destination, trip.Description, trip.StartDate, trip.EndDate,
		trip.Price, trip.Capacity, trip.OwnerID, trip.ConcurrencyStamp, trip.CreatedAt, trip.UpdatedAt,
	).Scan(&trip.ID)
	if err != nil {
		return err
	}

	// The owner joins as the sole initial participant.
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO trip_participants (trip_id, user_id) VALUES ($1, $2)`,
		trip.ID, trip.OwnerID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *tripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.owner_id
		WHERE t.id = $1
	`
	trip, err := scanTrip(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadAssociations(ctx, []*domain.Trip{trip}); err != nil {
		return nil, err
	}
	return trip, nil
}

func (r *tripRepository) ListFuture(ctx context.Context, now time.Time) ([]*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.owner_id
		WHERE t.start_date > $1
		ORDER BY t.start_date
	`
	return r.list(ctx, query, now)
}

func (r *tripRepository) ListByParticipant(ctx context.Context, userID string) ([]*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.owner_id
		JOIN trip_participants tp ON tp.trip_id = t.id
		WHERE tp.user_id = $1
		ORDER BY t.start_date
	`
	return r.list(ctx, query, userID)
}

func (r *tripRepository) list(ctx context.Context, query string, arg any) ([]*domain.Trip, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAssociations(ctx, trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// loadAssociations eagerly fills participants and co-owners for all trips in
// one batch query per association table.
func (r *tripRepository) loadAssociations(ctx context.Context, trips []*domain.Trip) error {
	if len(trips) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Trip, len(trips))
	ids := make([]int64, 0, len(trips))
	for _, t := range trips {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	if err := r.loadMembers(ctx, "trip_participants", ids, func(tripID int64, u *domain.User) {
		byID[tripID].Participants = append(byID[tripID].Participants, u)
	}); err != nil {
		return err
	}
	return r.loadMembers(ctx, "trip_co_owners", ids, func(tripID int64, u *domain.User) {
		byID[tripID].CoOwners = append(byID[tripID].CoOwners, u)
	})
}

func (r *tripRepository) loadMembers(ctx context.Context, table string, tripIDs []int64, add func(int64, *domain.User)) error {
	query := `
		SELECT m.trip_id, u.id, u.email, u.full_name, u.created_at, u.updated_at
		FROM ` + table + ` m
		JOIN users u ON u.id = m.user_id
		WHERE m.trip_id = ANY($1)
		ORDER BY m.trip_id, u.id
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(tripIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tripID int64
		u := &domain.User{}
		if err := rows.Scan(&tripID, &u.ID, &u.Email, &u.FullName, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		add(tripID, u)
	}
	return rows.Err()
}

// Save commits the whole aggregate in one transaction, gated on the
// concurrency stamp read at load time. The trips row is updated with a
// compare-and-swap on the stamp; zero rows affected means another writer
// committed first and the caller gets ErrConflict with nothing persisted.
// Association tables are then reconciled to match the aggregate.
func (r *tripRepository) Save(ctx context.Context, trip *domain.Trip, expectedStamp string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE trips
		SET name = $1, destination = $2, description = $3, start_date = $4, end_date = $5,
		    price = $6, capacity = $7, owner_id = $8, concurrency_stamp = $9, updated_at = $10
		WHERE id = $11 AND concurrency_stamp = $12
	`
	result, err := tx.ExecContext(ctx, query,
		trip.Name, trip.Destination, trip.Description, trip.StartDate, trip.EndDate,
		trip.Price, trip.Capacity, trip.OwnerID, trip.ConcurrencyStamp, trip.UpdatedAt,
		trip.ID, expectedStamp,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConflict
	}

	if err := reconcileMembers(ctx, tx, "trip_participants", trip.ID, trip.Participants); err != nil {
		return err
	}
	if err := reconcileMembers(ctx, tx, "trip_co_owners", trip.ID, trip.CoOwners); err != nil {
		return err
	}

	return tx.Commit()
}

func reconcileMembers(ctx context.Context, tx *sql.Tx, table string, tripID int64, users []*domain.User) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE trip_id = $1`, tripID); err != nil {
		return err
	}
	for _, u := range users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+table+` (trip_id, user_id) VALUES ($1, $2)`,
			tripID, u.ID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *tripRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_co_owners WHERE trip_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_participants WHERE trip_id = $1`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}

func (r *tripRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM trips WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
