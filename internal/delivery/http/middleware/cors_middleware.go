package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORSConfig describes the CORS headers attached to contact responses.
type CORSConfig struct {
	AllowOrigin  string
	AllowHeaders string
	AllowMethods string
}

// DefaultCORSConfig is the permissive policy the static portfolio page relies on.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowHeaders: "Content-Type",
		AllowMethods: "POST, OPTIONS",
	}
}

// CORSMiddleware adds CORS headers to every response of the routes it wraps.
// Preflight requests are not aborted here: the contact handler answers them
// itself so that the acknowledgment body is part of its contract.
func CORSMiddleware(cfg CORSConfig) gin.HandlerFunc {
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.AllowOrigin)
		c.Header("Access-Control-Allow-Headers", cfg.AllowHeaders)
		c.Header("Access-Control-Allow-Methods", cfg.AllowMethods)
		if cfg.AllowOrigin != "*" {
			// Vary header to ensure caches differentiate by Origin
			c.Header("Vary", "Origin")
		}
		c.Next()
	}
}
