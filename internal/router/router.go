// Package router wires middleware and handlers into a gin engine.
package router

import (
	"net/http"

	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/handler"
	"gamehub/backend/internal/logging"
	"gamehub/backend/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options are the settings the routes depend on.
type Options struct {
	JWTSecret      string
	UploadDir      string
	CORSOrigins    []string
	AuthRatePerSec int
	AuthRateBurst  int
}

// New builds the engine. Every API route is served both under /api/v1 and at
// the root.
func New(h *handler.Handler, opts Options) *gin.Engine {
	router := gin.New()
	// Match on the escaped path so a tag name containing "/" stays one segment.
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(gin.Recovery(), logging.RequestLogger(), metrics.Middleware(), cors.New(corsConfig(opts.CORSOrigins)))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	limiter := auth.NewRateLimiter(opts.AuthRatePerSec, opts.AuthRateBurst)
	register(router.Group("/api/v1"), h, opts.JWTSecret, limiter)
	register(&router.RouterGroup, h, opts.JWTSecret, limiter)

	return router
}

func register(api *gin.RouterGroup, h *handler.Handler, secret string, limiter *auth.RateLimiter) {
	requireAuth := auth.Middleware(secret)
	optionalAuth := auth.OptionalMiddleware(secret)

	authRoutes := api.Group("/auth")
	authRoutes.Use(limiter.Handler())
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
	}

	gameRoutes := api.Group("/games")
	{
		gameRoutes.GET("", h.ListGames)
		gameRoutes.POST("", optionalAuth, h.CreateGame)
		gameRoutes.POST("/upload", requireAuth, h.UploadGame)
		gameRoutes.GET("/:id", optionalAuth, h.GetGame)
		gameRoutes.POST("/:id/download", h.RecordDownload)
		gameRoutes.POST("/:id/comments", requireAuth, h.AddComment)
	}

	api.GET("/search", h.SearchGames)

	tagRoutes := api.Group("/tags")
	{
		tagRoutes.GET("", h.ListTags)
		tagRoutes.GET("/:name", h.GamesByTag)
	}

	userRoutes := api.Group("/user")
	userRoutes.Use(requireAuth)
	{
		userRoutes.GET("/me", h.Me)
		userRoutes.GET("/games", h.UserGames)
		userRoutes.GET("/favorites", h.FavoriteGames)
		userRoutes.POST("/favorites", h.AddFavorite)
		userRoutes.DELETE("/favorites", h.RemoveFavorite)
		userRoutes.GET("/favorites/check", h.CheckFavorite)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", logging.RequestIDHeader)
	cfg.ExposeHeaders = []string{handler.TotalCountHeader, logging.RequestIDHeader}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
