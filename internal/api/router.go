// Package api exposes the editor session over HTTP.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/latoulicious/dexbox/internal/config"
	"github.com/latoulicious/dexbox/pkg/logging"
)

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(h *Handler, cfg config.ServerConfig) *gin.Engine {
	gin.SetMode(cfg.Mode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	SetupRoutes(router, h)
	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	c.MaxAge = 12 * time.Hour

	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	for _, origin := range origins {
		if origin == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// SetupRoutes registers the API routes.
func SetupRoutes(router *gin.Engine, h *Handler) {
	router.GET("/health", h.Health)
	router.GET("/status", h.Status)

	api := router.Group("/api")
	{
		api.GET("/creatures", h.SearchCreatures)
		api.GET("/lists", h.GetLists)

		current := api.Group("/current")
		{
			current.GET("", h.GetCurrent)
			current.POST("/select", h.SelectCreature)
			current.POST("/field", h.ChangeField)
		}

		box := api.Group("/box")
		{
			box.GET("", h.ListBox)
			box.POST("", h.SaveToBox)
			box.GET("/:handle", h.GetBoxEntry)
			box.POST("/:handle/edit", h.EditBoxEntry)
			box.DELETE("/:handle", h.DeleteBoxEntry)
		}

		api.GET("/sprite/candidates", h.SpriteCandidates)
		api.GET("/sprite/resolve", h.ResolveSprite)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger := logging.GetGlobalLoggerFactory().CreateRequestLogger(c.Request.Method, c.FullPath())
		fields := map[string]interface{}{
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if c.Writer.Status() >= 500 {
			logger.Warn("Request failed", fields)
			return
		}
		logger.Debug("Request served", fields)
	}
}
