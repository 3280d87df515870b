package httpapi

import (
	"crypto/ed25519"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
)

// VerifySignature is a Gin middleware that rejects requests not signed with
// the application's Ed25519 key (X-Signature-Ed25519 over timestamp + body).
func VerifySignature(key ed25519.PublicKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		// VerifyInteraction puts the body back after reading it
		if !discordgo.VerifyInteraction(c.Request, key) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid request signature"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request through slog.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http_request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
