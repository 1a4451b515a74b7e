package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/servipro-app/servipro-backend/internal/auth"
	"github.com/servipro-app/servipro-backend/internal/availability"
	availHttp "github.com/servipro-app/servipro-backend/internal/availability/http"
	"github.com/servipro-app/servipro-backend/internal/booking"
	bookingHttp "github.com/servipro-app/servipro-backend/internal/booking/http"
	"github.com/servipro-app/servipro-backend/internal/catalog"
	catalogHttp "github.com/servipro-app/servipro-backend/internal/catalog/http"
	"github.com/servipro-app/servipro-backend/internal/notification"
	notificationHttp "github.com/servipro-app/servipro-backend/internal/notification/http"
	"github.com/servipro-app/servipro-backend/internal/review"
	reviewHttp "github.com/servipro-app/servipro-backend/internal/review/http"
	"github.com/servipro-app/servipro-backend/internal/user"
	userHttp "github.com/servipro-app/servipro-backend/internal/user/http"
)

// Config carries the services the router wires handlers around.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	AvailabilityService availability.Service
	CatalogService      catalog.Catalog
	BookingService      booking.Service
	ReviewService       review.Service
	NotificationService notification.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers each module's routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Recovery captures panics so a bad request cannot take the server down.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	professionalMiddleware := RequireProfessional(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	availHandler := availHttp.NewHandler(cfg.AvailabilityService)
	catalogHandler := catalogHttp.NewHandler(cfg.CatalogService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	notificationHandler := notificationHttp.NewHandler(cfg.NotificationService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		availHttp.RegisterRoutes(v1, availHandler, authMiddleware, professionalMiddleware)
		catalogHttp.RegisterRoutes(v1, catalogHandler, authMiddleware, professionalMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
		notificationHttp.RegisterRoutes(v1, notificationHandler, authMiddleware)
	}

	return r
}
