package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// NewRouter wires the API routes, static assets and metrics.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	// CORS for browser front ends
	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
	}))
	r.Use(h.recordRequests)

	// API routes
	limiter := NewIPRateLimiter(rate.Limit(h.cfg.Server.RequestsPerSecond), h.cfg.Server.Burst)
	api := r.Group("/api", RateLimit(limiter))
	{
		api.GET("/bodies", h.GetBodies)
		api.GET("/bodies/:name", h.GetBodyByName)
		api.GET("/bodies/:name/position", h.GetBodyPosition)
		api.GET("/snapshot", h.GetSnapshot)
		api.GET("/stream", h.Stream)
	}

	r.Static("/assets", h.cfg.Assets)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	return r
}

func (h *Handler) recordRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	h.metrics.RecordRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
}
