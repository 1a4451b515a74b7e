package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/servipro-app/servipro-backend/internal/api"
	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/availability"
	"github.com/servipro-app/servipro-backend/internal/booking"
	"github.com/servipro-app/servipro-backend/internal/catalog"
	"github.com/servipro-app/servipro-backend/internal/notification"
	"github.com/servipro-app/servipro-backend/internal/review"
	"github.com/servipro-app/servipro-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DBPool          *pgxpool.Pool
	Logger          *zap.Logger
	JWTSecret       string
	JWTTTL          time.Duration
	BcryptCost      int
	SlotGranularity time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Availability Module
	availRepo := availability.NewPgxRepository(cfg.DBPool)
	availService := availability.NewService(availRepo)

	// Catalog Module
	catalogRepo := catalog.NewPgxRepository(cfg.DBPool)
	catalogService := catalog.NewCatalog(catalogRepo)

	// Notification Module
	notifRepo := notification.NewPgxRepository(cfg.DBPool)
	notifService := notification.NewService(notifRepo, cfg.Logger)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(
		bookingRepo,
		catalogService,
		availService,
		userService,
		notifService,
		cfg.SlotGranularity,
	)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, bookingService, notifService)

	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		AvailabilityService: availService,
		CatalogService:      catalogService,
		BookingService:      bookingService,
		ReviewService:       reviewService,
		NotificationService: notifService,
		JWTManager:          jwtManager,
	}

	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
