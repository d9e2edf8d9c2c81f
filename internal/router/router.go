// Package router assembles the HTTP routes of the API.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"findash/internal/handlers"
	"findash/internal/logger"
	"findash/internal/middleware"

	_ "findash/internal/docs" // Import swagger docs
)

// healthTimeout bounds the store ping of the health check.
const healthTimeout = 2 * time.Second

// Options holds the router dependencies.
type Options struct {
	CORSAllowedOrigin string
	Finance           *handlers.FinanceHandler
	User              *handlers.UserHandler
	// Ping reports whether the store is reachable. Nil skips the check.
	Ping func(ctx context.Context) error
}

// New returns a gin engine with middleware, docs, health and API routes.
func New(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSAllowedOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", func(c *gin.Context) {
		if opts.Ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := opts.Ping(ctx); err != nil {
				logger.Get().Warnw("health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	finances := api.Group("/finances")
	finances.POST("/upload/:user_id/:year", opts.Finance.UploadFinances)
	finances.GET("/:user_id/:year", opts.Finance.GetFinances)

	users := api.Group("/users")
	users.GET("", opts.User.ListUsers)
	users.GET("/:user_id/uploads", opts.User.ListUploads)

	return router
}
