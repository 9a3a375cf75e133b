package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"triporganizer/internal/domain"

	"github.com/stretchr/testify/require"
)

var (
	tripColumnNames = []string{
		"id", "name", "destination", "description", "start_date", "end_date",
		"price", "capacity", "owner_id", "concurrency_stamp", "created_at", "updated_at",
		"owner_uid", "owner_email", "owner_full_name", "owner_created_at", "owner_updated_at",
	}
	memberColumnNames = []string{"trip_id", "id", "email", "full_name", "created_at", "updated_at"}
)

func TestTripRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	trip := &domain.Trip{
		Name:             "Alps",
		Destination:      "Chamonix",
		Description:      "Hiking week",
		StartDate:        time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC),
		Price:            950,
		Capacity:         4,
		OwnerID:          "user-1",
		ConcurrencyStamp: "stamp-1",
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO trips`).
		WithArgs("Alps", "Chamonix", "Hiking week", trip.StartDate, trip.EndDate, 950.0, 4, "user-1", "stamp-1", createdAt, createdAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(`INSERT INTO trip_participants`).
		WithArgs(int64(7), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewTripRepository(db)
	require.NoError(t, repo.Create(ctx, trip))
	require.Equal(t, int64(7), trip.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		check   func(t *testing.T, got *domain.Trip)
		wantErr bool
		errIs   error
	}{
		{
			name: "success with participants and co-owners",
			id:   7,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT(.|\s)+FROM trips t(.|\s)+WHERE t\.id = \$1`).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows(tripColumnNames).
						AddRow(int64(7), "Alps", "Chamonix", "Hiking week",
							time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC),
							950.0, 4, "user-1", "stamp-1", ts, ts,
							"user-1", "alice@example.com", "Alice", ts, ts))
				mock.ExpectQuery(`FROM trip_participants m`).
					WithArgs(pq.Array([]int64{7})).
					WillReturnRows(sqlmock.NewRows(memberColumnNames).
						AddRow(int64(7), "user-1", "alice@example.com", "Alice", ts, ts).
						AddRow(int64(7), "user-2", "bob@example.com", "Bob", ts, ts))
				mock.ExpectQuery(`FROM trip_co_owners m`).
					WithArgs(pq.Array([]int64{7})).
					WillReturnRows(sqlmock.NewRows(memberColumnNames).
						AddRow(int64(7), "user-2", "bob@example.com", "Bob", ts, ts))
			},
			check: func(t *testing.T, got *domain.Trip) {
				require.Equal(t, int64(7), got.ID)
				require.Equal(t, "Alps", got.Name)
				require.Equal(t, "stamp-1", got.ConcurrencyStamp)
				require.NotNil(t, got.Owner)
				require.Equal(t, "Alice", got.Owner.FullName)
				require.Len(t, got.Participants, 2)
				require.Len(t, got.CoOwners, 1)
				require.Equal(t, "user-2", got.CoOwners[0].ID)
			},
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT(.|\s)+FROM trips t(.|\s)+WHERE t\.id = \$1`).
					WithArgs(int64(99)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTripRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTripRepository_ListFuture_Empty(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE t\.start_date > \$1`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(tripColumnNames))

	repo := NewTripRepository(db)
	got, err := repo.ListFuture(ctx, now)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_Save(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	owner := &domain.User{ID: "user-1"}
	joiner := &domain.User{ID: "user-2"}
	trip := &domain.Trip{
		ID:               7,
		Name:             "Alps",
		Destination:      "Chamonix",
		Description:      "Hiking week",
		StartDate:        time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC),
		Price:            950,
		Capacity:         4,
		OwnerID:          "user-1",
		ConcurrencyStamp: "stamp-2",
		UpdatedAt:        ts,
		Participants:     []*domain.User{owner, joiner},
		CoOwners:         []*domain.User{},
	}

	t.Run("success swaps stamp and reconciles members", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE trips`).
			WithArgs("Alps", "Chamonix", "Hiking week", trip.StartDate, trip.EndDate,
				950.0, 4, "user-1", "stamp-2", ts, int64(7), "stamp-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM trip_participants`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO trip_participants`).
			WithArgs(int64(7), "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO trip_participants`).
			WithArgs(int64(7), "user-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM trip_co_owners`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		repo := NewTripRepository(db)
		require.NoError(t, repo.Save(ctx, trip, "stamp-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale stamp returns ErrConflict and rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE trips`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		repo := NewTripRepository(db)
		err = repo.Save(ctx, trip, "stale-stamp")
		require.ErrorIs(t, err, domain.ErrConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTripRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success clears associations first",
			id:   7,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM trip_co_owners`).
					WithArgs(int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM trip_participants`).
					WithArgs(int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec(`DELETE FROM trips`).
					WithArgs(int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM trip_co_owners`).
					WithArgs(int64(99)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM trip_participants`).
					WithArgs(int64(99)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM trips`).
					WithArgs(int64(99)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTripRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTripRepository_Exists(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewTripRepository(db)
	ok, err := repo.Exists(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
