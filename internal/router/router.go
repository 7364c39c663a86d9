package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ticketbase-dev/ticketbase/internal/auth"
	"github.com/ticketbase-dev/ticketbase/internal/blobstore"
	"github.com/ticketbase-dev/ticketbase/internal/config"
	"github.com/ticketbase-dev/ticketbase/internal/handlers"
	"github.com/ticketbase-dev/ticketbase/internal/images"
	"github.com/ticketbase-dev/ticketbase/internal/middleware"
	"gorm.io/gorm"
)

// Deps holds the explicitly constructed collaborators the routes need. They
// are opened in main and injected here; nothing route-level owns a global.
type Deps struct {
	DB     *gorm.DB
	Tokens *auth.Service
	Blobs  *blobstore.Store
	Images *images.Processor
	Config config.Config
}

func New(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(deps.DB, deps.Tokens)
	eventsHandler := handlers.NewEventsHandler(deps.DB, deps.Images, deps.Config.BaseURL)
	filesHandler := handlers.NewFilesHandler(deps.Blobs)
	bookingsHandler := handlers.NewBookingsHandler(deps.DB, deps.Config.BaseURL)

	uploadLimiter := middleware.NewIPRateLimiter(
		middleware.PerMinute(deps.Config.UploadRatePerMinute),
		deps.Config.UploadBurst,
	)

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.GET("/file/:filename", filesHandler.Get)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/events", uploadLimiter.Middleware(), eventsHandler.Create)
		api.GET("/events", eventsHandler.List)

		authed := api.Group("", middleware.Auth(deps.Tokens))
		{
			authed.POST("/book/:eventId", bookingsHandler.Create)
			authed.GET("/bookings", bookingsHandler.List)
			authed.GET("/user/events", bookingsHandler.UserEvents)
			authed.DELETE("/user/events/:eventId", bookingsHandler.Delete)
		}
	}

	return r
}
