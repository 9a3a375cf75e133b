package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"triporganizer/internal/delivery/http/helpers"
	"triporganizer/internal/delivery/http/middleware"
	"triporganizer/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// TripRequest is the request body for POST /trips and PUT /trips/{tripID}.
// PUT carries the full replacement state of the editable fields.
type TripRequest struct {
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Price       float64   `json:"price"`
	Capacity    int       `json:"capacity"`
}

// Validate implements Validator.
func (t TripRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(t.Destination) == "" {
		errs = append(errs, "destination is required")
	}
	if t.StartDate.IsZero() {
		errs = append(errs, "start_date is required")
	}
	if t.EndDate.IsZero() {
		errs = append(errs, "end_date is required")
	}
	if !t.StartDate.IsZero() && !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		errs = append(errs, "end_date must not be before start_date")
	}
	if t.Price < 0 {
		errs = append(errs, "price must be non-negative")
	}
	if t.Capacity < domain.MinCapacity || t.Capacity > domain.MaxCapacity {
		errs = append(errs, "capacity must be between 1 and 100")
	}
	return errs
}

// TripSuccessResponse is the success response envelope for endpoints returning a single trip.
type TripSuccessResponse struct {
	Data  *domain.Trip      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListTripsSuccessResponse is the success response envelope for trip list endpoints.
type ListTripsSuccessResponse struct {
	Data  []*domain.Trip    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteTripResponse is the data payload for DELETE /trips/{tripID} (200).
type DeleteTripResponse struct {
	Status string `json:"status"`
}

// DeleteTripSuccessResponse is the success response envelope for DELETE /trips/{tripID} (200).
type DeleteTripSuccessResponse struct {
	Data  DeleteTripResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// TripController handles the trip endpoints.
type TripController struct {
	Logger  *slog.Logger
	Service domain.TripService
}

// NewTripController creates a TripController with the given logger and service.
func NewTripController(logger *slog.Logger, svc domain.TripService) *TripController {
	return &TripController{
		Logger:  logger,
		Service: svc,
	}
}

// tripIDFromPath parses the tripID path value. On failure it writes a 400 and
// returns false.
func tripIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("tripID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid tripID")
		return 0, false
	}
	return id, true
}

// writeServiceError maps service-layer sentinel errors to HTTP responses.
// Role violations map to 403, business-rule rejections to 400 with the rule in
// the message, missing aggregates to 404, and lost concurrent updates to 409.
func (c *TripController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "trip not found")
	case errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "the trip was modified concurrently; reload and retry")
	case errors.Is(err, domain.ErrTripFull),
		errors.Is(err, domain.ErrAlreadyParticipant),
		errors.Is(err, domain.ErrNotParticipant),
		errors.Is(err, domain.ErrAlreadyCoOwner),
		errors.Is(err, domain.ErrNotCoOwner),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrOwnerCannotLeave),
		errors.Is(err, domain.ErrTargetNotMember),
		errors.Is(err, domain.ErrCapacityTooSmall),
		errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Create a new trip. The authenticated user becomes the owner and the first participant. Capacity must be between 1 and 100.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TripRequest true "Trip data"
// @Success 201 {object} controllers.TripSuccessResponse "data contains the created trip"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips [post]
func (c *TripController) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	trip := &domain.Trip{
		Name:        strings.TrimSpace(req.Name),
		Destination: strings.TrimSpace(req.Destination),
		Description: strings.TrimSpace(req.Description),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Price:       req.Price,
		Capacity:    req.Capacity,
	}
	if err := c.Service.CreateTrip(r.Context(), trip, userID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, trip)
}

// GetTrip godoc
// @Summary Get a trip by ID
// @Description Returns the trip with its owner, participants, and co-owners, plus the computed current_participant_count and has_available_spots fields.
// @Tags trips
// @Produce json
// @Param tripID path int true "Trip ID"
// @Success 200 {object} controllers.TripSuccessResponse "data contains the trip"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID} [get]
func (c *TripController) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	trip, err := c.Service.GetTrip(r.Context(), tripID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trip)
}

// ListFutureTrips godoc
// @Summary List upcoming trips
// @Description Returns all trips whose start date is in the future, ordered by start date.
// @Tags trips
// @Produce json
// @Success 200 {object} controllers.ListTripsSuccessResponse "data is an array of trips"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips [get]
func (c *TripController) ListFutureTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := c.Service.ListFutureTrips(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if trips == nil {
		trips = []*domain.Trip{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trips)
}

// ListMyTrips godoc
// @Summary List trips the current user participates in
// @Description Returns all trips where the authenticated user is a participant (including trips they own), ordered by start date. Requires Bearer token.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListTripsSuccessResponse "data is an array of trips"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/me [get]
func (c *TripController) ListMyTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	trips, err := c.Service.ListMyTrips(r.Context(), userID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if trips == nil {
		trips = []*domain.Trip{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trips)
}

// UpdateTrip godoc
// @Summary Update a trip
// @Description Replaces the trip's editable fields. Only the owner or a co-owner can update. Capacity cannot be lowered below the current participant count. Returns 409 if the trip was modified concurrently.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tripID path int true "Trip ID"
// @Param body body TripRequest true "Replacement trip data"
// @Success 200 {object} controllers.TripSuccessResponse "data contains the updated trip"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner or co-owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (concurrent update)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID} [put]
func (c *TripController) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	var req TripRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd := domain.TripUpdate{
		Name:        strings.TrimSpace(req.Name),
		Destination: strings.TrimSpace(req.Destination),
		Description: strings.TrimSpace(req.Description),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Price:       req.Price,
		Capacity:    req.Capacity,
	}
	trip, err := c.Service.UpdateTrip(r.Context(), tripID, userID, upd)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trip)
}

// DeleteTrip godoc
// @Summary Delete a trip
// @Description Deletes the trip and all its membership records. Only the owner can delete; co-owners cannot.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param tripID path int true "Trip ID"
// @Success 200 {object} controllers.DeleteTripSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID} [delete]
func (c *TripController) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteTrip(r.Context(), tripID, userID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteTripResponse{Status: "deleted"})
}

// JoinTrip godoc
// @Summary Join a trip
// @Description Adds the authenticated user to the trip's participants. Fails if the trip is full or the user already participates. Returns 409 if a concurrent join takes the last spot.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param tripID path int true "Trip ID"
// @Success 200 {object} controllers.TripSuccessResponse "data contains the updated trip"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (full or already participating)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (concurrent update)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID}/join [post]
func (c *TripController) JoinTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	trip, err := c.Service.JoinTrip(r.Context(), tripID, userID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trip)
}

// LeaveTrip godoc
// @Summary Leave a trip
// @Description Removes the authenticated user from the trip's participants (and co-owners, if applicable). The owner cannot leave; they must transfer ownership or delete the trip.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param tripID path int true "Trip ID"
// @Success 200 {object} controllers.TripSuccessResponse "data contains the updated trip"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (not participating or owner)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (concurrent update)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID}/leave [post]
func (c *TripController) LeaveTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	trip, err := c.Service.LeaveTrip(r.Context(), tripID, userID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trip)
}

// AddCoOwner godoc
// @Summary Promote a participant to co-owner
// @Description Adds the target user to the trip's co-owners. Only the owner can promote. The target must already be a participant.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param tripID path int true "Trip ID"
// @Param userID path string true "User ID of the participant to promote"
// @Success 200 {object} controllers.TripSuccessResponse "data contains the updated trip"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (not a participant or already co-owner)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (concurrent update)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID}/co-owners/{userID} [post]
func (c *TripController) AddCoOwner(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	targetID := r.PathValue("userID")
	if targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	trip, err := c.Service.AddCoOwner(r.Context(), tripID, targetID, callerID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trip)
}

// RemoveCoOwner godoc
// @Summary Demote a co-owner
// @Description Removes the target user from the trip's co-owners. The user stays a participant. Only the owner can demote.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param tripID path int true "Trip ID"
// @Param userID path string true "User ID of the co-owner to demote"
// @Success 200 {object} controllers.TripSuccessResponse "data contains the updated trip"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (not a co-owner)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (concurrent update)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID}/co-owners/{userID} [delete]
func (c *TripController) RemoveCoOwner(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	targetID := r.PathValue("userID")
	if targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	trip, err := c.Service.RemoveCoOwner(r.Context(), tripID, targetID, callerID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trip)
}

// TransferOwnership godoc
// @Summary Transfer trip ownership
// @Description Makes the target user the trip's owner. Only the current owner can transfer. The target must be a participant and different from the caller. The previous owner stays a participant.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param tripID path int true "Trip ID"
// @Param userID path string true "User ID of the new owner"
// @Success 200 {object} controllers.TripSuccessResponse "data contains the updated trip"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (self-transfer or target not a participant)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (concurrent update)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID}/transfer-ownership/{userID} [post]
func (c *TripController) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	targetID := r.PathValue("userID")
	if targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	trip, err := c.Service.TransferOwnership(r.Context(), tripID, targetID, callerID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trip)
}

// SendTripInvitationsRequest is the request body for POST /trips/{tripID}/invitations.
// Emails is a long string of emails separated by commas or spaces.
type SendTripInvitationsRequest struct {
	Emails string `json:"emails"`
}

// Validate implements Validator.
func (s SendTripInvitationsRequest) Validate() []string {
	if strings.TrimSpace(s.Emails) == "" {
		return []string{"emails is required"}
	}
	return nil
}

// parseEmailsFromString splits the input by commas and spaces, trims, lowercases,
// deduplicates, and returns only strings that match emailRegex. May return an
// empty slice.
func parseEmailsFromString(raw string) []string {
	raw = strings.ReplaceAll(raw, ",", " ")
	parts := strings.Fields(raw)
	seen := make(map[string]struct{})
	var out []string
	for _, p := range parts {
		email := strings.TrimSpace(strings.ToLower(p))
		if email == "" {
			continue
		}
		if !emailRegex.MatchString(email) {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out
}

// SendTripInvitationsResponse is the data payload for POST /trips/{tripID}/invitations (200).
type SendTripInvitationsResponse struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

// SendTripInvitationsSuccessResponse is the success response envelope for POST /trips/{tripID}/invitations (200).
type SendTripInvitationsSuccessResponse struct {
	Data  SendTripInvitationsResponse `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// InviteToTrip godoc
// @Summary Send trip invitation emails
// @Description Send invitation emails for the trip. Body contains a string of emails separated by commas or spaces. Only the trip owner can invite. Each invitation is persisted and emailed. Returns count of sent and list of failed addresses.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tripID path int true "Trip ID"
// @Param body body SendTripInvitationsRequest true "Emails string (comma or space separated)"
// @Success 200 {object} controllers.SendTripInvitationsSuccessResponse "data contains sent count and failed list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (empty or no valid emails)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID}/invitations [post]
func (c *TripController) InviteToTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	var req SendTripInvitationsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	emails := parseEmailsFromString(req.Emails)
	if len(emails) == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "no valid emails found")
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sent, failed, err := c.Service.InviteToTrip(r.Context(), tripID, callerID, emails)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SendTripInvitationsResponse{Sent: sent, Failed: failed})
}

// ListTripInvitationsResponse is the data payload for GET /trips/{tripID}/invitations (200).
type ListTripInvitationsResponse struct {
	Items      []*domain.TripInvitation `json:"items"`
	Pagination helpers.PaginationMeta   `json:"pagination"`
}

// ListTripInvitationsSuccessResponse is the success response envelope for GET /trips/{tripID}/invitations (200).
type ListTripInvitationsSuccessResponse struct {
	Data  ListTripInvitationsResponse `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// ListTripInvitations godoc
// @Summary List invited emails for a trip
// @Description Returns a paginated list of emails invited to the trip (with id and sent_at). Only the trip owner can list. Use page and page_size query params.
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param tripID path int true "Trip ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListTripInvitationsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips/{tripID}/invitations [get]
func (c *TripController) ListTripInvitations(w http.ResponseWriter, r *http.Request) {
	tripID, ok := tripIDFromPath(w, r)
	if !ok {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.ListTripInvitations(r.Context(), tripID, callerID, params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*domain.TripInvitation{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListTripInvitationsResponse{Items: list, Pagination: meta})
}
