package main

import (
	"log"

	"boatwork/internal/config"
	"boatwork/internal/database"
	"boatwork/internal/domain"
	"boatwork/internal/middleware"
	"boatwork/internal/modules/auth"
	"boatwork/internal/modules/bid"
	"boatwork/internal/modules/events"
	"boatwork/internal/modules/job"
	"boatwork/internal/modules/notification"
	"boatwork/internal/modules/payment"
	"boatwork/internal/modules/recommend"
	"boatwork/internal/modules/request"
	"boatwork/internal/modules/review"
	"boatwork/internal/repository"

	jwtsvc "boatwork/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.ServiceRequest{},
		&domain.Bid{},
		&domain.AssignedJob{},
		&domain.Review{},
		&domain.Payment{},
		&domain.Payout{},
		&notification.Notification{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	bidRepo := repository.NewBidRepository(db)
	assignedRepo := repository.NewAssignedJobRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	hub := events.NewHub()
	notifService := notification.NewService(db)

	authService := auth.NewService(userRepo, jwtService)
	requestService := request.NewService(requestRepo)
	bidService := bid.NewService(bidRepo, requestRepo, notifService, hub)
	jobService := job.NewService(requestRepo, assignedRepo, notifService, hub)
	paymentService := payment.NewService(
		paymentRepo, requestRepo, assignedRepo, hub,
		log.Printf, cfg.WebhookSecret, cfg.PlatformFeePercent,
	)
	reviewService := review.NewService(reviewRepo, requestRepo, userRepo, assignedRepo)
	recommendService := recommend.NewService(bidRepo, requestRepo, userRepo)

	authHandler := auth.NewHandler(authService)
	requestHandler := request.NewHandler(requestService)
	bidHandler := bid.NewHandler(bidService)
	jobHandler := job.NewHandler(jobService)
	paymentHandler := payment.NewHandler(paymentService)
	reviewHandler := review.NewHandler(reviewService)
	recommendHandler := recommend.NewHandler(recommendService)
	notifHandler := notification.NewHandler(notifService)
	eventsHandler := events.NewHandler(hub)

	router := gin.New()
	router.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	api := router.Group("/api/v1")

	authHandler.RegisterPublicRoutes(api)
	paymentHandler.RegisterWebhookRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtService))

	authHandler.RegisterProtectedRoutes(protected)
	requestHandler.RegisterRoutes(protected)
	bidHandler.RegisterRoutes(protected)
	jobHandler.RegisterRoutes(protected)
	paymentHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)
	recommendHandler.RegisterRoutes(protected)
	notifHandler.RegisterRoutes(protected)
	eventsHandler.RegisterRoutes(protected)

	log.Printf("Listening on %s", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
