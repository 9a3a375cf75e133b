package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"triporganizer/internal/domain"
)

type tripService struct {
	tripRepo       domain.TripRepository
	userRepo       domain.UserRepository
	invitationRepo domain.TripInvitationRepository
	emailService   domain.EmailService
	cache          domain.TripCache
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewTripService creates a TripService with the given repositories and
// collaborators. cache and emailService may be nil; the service then skips
// caching and invitation delivery respectively.
func NewTripService(
	tripRepo domain.TripRepository,
	userRepo domain.UserRepository,
	invitationRepo domain.TripInvitationRepository,
	emailService domain.EmailService,
	cache domain.TripCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.TripService {
	return &tripService{
		tripRepo:       tripRepo,
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		emailService:   emailService,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func newConcurrencyStamp() string {
	return uuid.NewString()
}

func (s *tripService) CreateTrip(ctx context.Context, trip *domain.Trip, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get owner: %w", err)
	}

	now := time.Now()
	trip.OwnerID = owner.ID
	trip.Owner = owner
	trip.Participants = []*domain.User{owner}
	trip.CoOwners = []*domain.User{}
	trip.ConcurrencyStamp = newConcurrencyStamp()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return fmt.Errorf("create trip: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *tripService) GetTrip(ctx context.Context, tripID int64) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return trip, nil
}

func (s *tripService) ListFutureTrips(ctx context.Context) ([]*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.cache != nil {
		cached, err := s.cache.GetFuture(ctx)
		if err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "trip cache read failed", "err", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	trips, err := s.tripRepo.ListFuture(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list future trips: %w", err)
	}
	if trips == nil {
		trips = []*domain.Trip{}
	}
	if s.cache != nil {
		if err := s.cache.SetFuture(ctx, trips); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "trip cache write failed", "err", err)
		}
	}
	return trips, nil
}

func (s *tripService) ListMyTrips(ctx context.Context, userID string) ([]*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trips, err := s.tripRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list trips by participant: %w", err)
	}
	if trips == nil {
		trips = []*domain.Trip{}
	}
	return trips, nil
}

func (s *tripService) UpdateTrip(ctx context.Context, tripID int64, callerID string, upd domain.TripUpdate) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.CanEdit(callerID) {
		return nil, domain.ErrForbidden
	}
	if upd.Capacity < trip.CurrentParticipantCount() {
		return nil, domain.ErrCapacityTooSmall
	}

	expected := trip.ConcurrencyStamp
	trip.Name = upd.Name
	trip.Destination = upd.Destination
	trip.Description = upd.Description
	trip.StartDate = upd.StartDate
	trip.EndDate = upd.EndDate
	trip.Price = upd.Price
	trip.Capacity = upd.Capacity

	if err := s.commit(ctx, trip, expected); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) JoinTrip(ctx context.Context, tripID int64, callerID string) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.HasAvailableSpots() {
		return nil, domain.ErrTripFull
	}
	if trip.IsParticipant(callerID) {
		return nil, domain.ErrAlreadyParticipant
	}
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	expected := trip.ConcurrencyStamp
	trip.AddParticipant(caller)

	if err := s.commit(ctx, trip, expected); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) LeaveTrip(ctx context.Context, tripID int64, callerID string) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsParticipant(callerID) {
		return nil, domain.ErrNotParticipant
	}
	if trip.IsOwner(callerID) {
		return nil, domain.ErrOwnerCannotLeave
	}

	expected := trip.ConcurrencyStamp
	trip.RemoveParticipant(callerID)

	if err := s.commit(ctx, trip, expected); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) AddCoOwner(ctx context.Context, tripID int64, targetUserID, callerID string) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsOwner(callerID) {
		return nil, domain.ErrForbidden
	}
	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if trip.IsCoOwner(target.ID) {
		return nil, domain.ErrAlreadyCoOwner
	}
	if !trip.IsParticipant(target.ID) {
		return nil, domain.ErrTargetNotMember
	}

	expected := trip.ConcurrencyStamp
	trip.AddCoOwner(target)

	if err := s.commit(ctx, trip, expected); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) RemoveCoOwner(ctx context.Context, tripID int64, targetUserID, callerID string) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsOwner(callerID) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !trip.IsCoOwner(targetUserID) {
		return nil, domain.ErrNotCoOwner
	}

	expected := trip.ConcurrencyStamp
	trip.RemoveCoOwner(targetUserID)

	if err := s.commit(ctx, trip, expected); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) TransferOwnership(ctx context.Context, tripID int64, newOwnerID, callerID string) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsOwner(callerID) {
		return nil, domain.ErrForbidden
	}
	if newOwnerID == callerID {
		return nil, domain.ErrSelfTransfer
	}
	newOwner, err := s.userRepo.GetByID(ctx, newOwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !trip.IsParticipant(newOwner.ID) {
		return nil, domain.ErrTargetNotMember
	}

	// The old owner stays a plain participant.
	expected := trip.ConcurrencyStamp
	trip.OwnerID = newOwner.ID
	trip.Owner = newOwner

	if err := s.commit(ctx, trip, expected); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) DeleteTrip(ctx context.Context, tripID int64, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if !trip.IsOwner(callerID) {
		return domain.ErrForbidden
	}
	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete trip: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *tripService) InviteToTrip(ctx context.Context, tripID int64, callerID string, emails []string) (sent int, failed []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return 0, nil, err
	}
	if !trip.IsOwner(callerID) {
		return 0, nil, domain.ErrForbidden
	}

	ownerName := "Trip owner"
	if trip.Owner != nil {
		if name := strings.TrimSpace(trip.Owner.FullName); name != "" {
			ownerName = name
		} else if trip.Owner.Email != "" {
			ownerName = trip.Owner.Email
		}
	}

	for _, email := range emails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		inv := &domain.TripInvitation{
			TripID: tripID,
			Email:  email,
			SentAt: time.Now(),
		}
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			failed = append(failed, email)
			continue
		}
		if s.emailService != nil {
			data := &domain.TripInvitationEmailData{
				Email:       email,
				OwnerName:   ownerName,
				TripName:    trip.Name,
				Destination: trip.Destination,
				StartDate:   trip.StartDate.Format("2006-01-02"),
				EndDate:     trip.EndDate.Format("2006-01-02"),
			}
			if err := s.emailService.SendTripInvitation(ctx, data); err != nil {
				failed = append(failed, email)
				continue
			}
		}
		sent++
	}
	return sent, failed, nil
}

func (s *tripService) ListTripInvitations(ctx context.Context, tripID int64, callerID string, params domain.PaginationParams) ([]*domain.TripInvitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, 0, err
	}
	if !trip.IsOwner(callerID) {
		return nil, 0, domain.ErrForbidden
	}
	invs, total, err := s.invitationRepo.ListByTripID(ctx, tripID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list trip invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.TripInvitation{}
	}
	return invs, total, nil
}

func (s *tripService) loadTrip(ctx context.Context, tripID int64) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return trip, nil
}

// commit regenerates the concurrency stamp and saves the aggregate gated on
// the stamp read at load. On a lost race it rechecks existence: a deleted row
// surfaces as ErrNotFound, otherwise the conflict goes to the caller to retry
// with fresh data.
func (s *tripService) commit(ctx context.Context, trip *domain.Trip, expectedStamp string) error {
	trip.ConcurrencyStamp = newConcurrencyStamp()
	trip.UpdatedAt = time.Now()

	if err := s.tripRepo.Save(ctx, trip, expectedStamp); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			exists, exErr := s.tripRepo.Exists(ctx, trip.ID)
			if exErr != nil {
				return fmt.Errorf("check trip exists: %w", exErr)
			}
			if !exists {
				return domain.ErrNotFound
			}
			return domain.ErrConflict
		}
		return fmt.Errorf("save trip: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *tripService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "trip cache invalidation failed", "err", err)
	}
}
