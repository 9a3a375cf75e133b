package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"triporganizer/config"
	_ "triporganizer/docs"
	"triporganizer/internal/adapters/auth"
	"triporganizer/internal/adapters/cache"
	"triporganizer/internal/adapters/email"
	httpdelivery "triporganizer/internal/delivery/http"
	"triporganizer/internal/delivery/http/controllers"
	"triporganizer/internal/delivery/http/middleware"
	"triporganizer/internal/domain"
	"triporganizer/internal/repository/postgres"
	"triporganizer/internal/services"
)

// @title Trip Organizer API
// @version 1.0
// @description Group trip planning API: trips with an owner, co-owners, participants, capacity limits, and email invitations.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	var tripCache domain.TripCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		tripCache = cache.NewTripCache(redis.NewClient(opts), cfg.CacheTTL)
		logger.Info("trip cache enabled", "ttl", cfg.CacheTTL)
	} else {
		logger.Info("trip cache disabled (REDIS_URL not set)")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureTLS,
		},
	})
	if err != nil {
		log.Fatalf("failed to create mailer: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	invitationRepo := postgres.NewTripInvitationRepository(db)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, hasher, issuer, cfg.JWTExpiry)
	userService := services.NewUserService(userRepo)
	tripService := services.NewTripService(tripRepo, userRepo, invitationRepo, emailService, tripCache, logger, 10*time.Second)

	tripController := controllers.NewTripController(logger, tripService)
	authController := controllers.NewAuthController(logger, authService, userService)
	userController := controllers.NewUserController(logger, userService)

	mux := httpdelivery.NewRouter(tripController, authController, userController, verifier, logger)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
