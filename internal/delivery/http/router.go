package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"triporganizer/internal/delivery/http/controllers"
	"triporganizer/internal/delivery/http/middleware"
	"triporganizer/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Trip listings and detail are public; everything that acts on behalf of a
// user requires a Bearer token.
func NewRouter(
	tripController *controllers.TripController,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/register", authController.Register)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /auth/verify", auth(authController.Verify))
	mux.HandleFunc("GET /auth/health", authController.Health)

	// Users
	mux.HandleFunc("GET /users/me", auth(userController.GetMe))
	mux.HandleFunc("PUT /users/me", auth(userController.UpdateMe))

	// Trips
	mux.HandleFunc("GET /trips", tripController.ListFutureTrips)
	mux.HandleFunc("GET /trips/future", tripController.ListFutureTrips)
	mux.HandleFunc("GET /trips/me", auth(tripController.ListMyTrips))
	mux.HandleFunc("GET /trips/{tripID}", tripController.GetTrip)
	mux.HandleFunc("POST /trips", auth(tripController.CreateTrip))
	mux.HandleFunc("PUT /trips/{tripID}", auth(tripController.UpdateTrip))
	mux.HandleFunc("DELETE /trips/{tripID}", auth(tripController.DeleteTrip))

	// Membership
	mux.HandleFunc("POST /trips/{tripID}/join", auth(tripController.JoinTrip))
	mux.HandleFunc("POST /trips/{tripID}/leave", auth(tripController.LeaveTrip))
	mux.HandleFunc("POST /trips/{tripID}/co-owners/{userID}", auth(tripController.AddCoOwner))
	mux.HandleFunc("DELETE /trips/{tripID}/co-owners/{userID}", auth(tripController.RemoveCoOwner))
	mux.HandleFunc("POST /trips/{tripID}/transfer-ownership/{userID}", auth(tripController.TransferOwnership))

	// Invitations
	mux.HandleFunc("POST /trips/{tripID}/invitations", auth(tripController.InviteToTrip))
	mux.HandleFunc("GET /trips/{tripID}/invitations", auth(tripController.ListTripInvitations))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
