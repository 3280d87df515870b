// Package httpapi serves Discord interactions delivered as signed webhooks,
// as an alternative to the gateway connection.
package httpapi

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"

	"bibliobot/internal/discord"
)

// Processor finishes an interaction that was already acknowledged.
type Processor interface {
	Complete(ctx context.Context, i *discordgo.Interaction)
}

type InteractionHandler struct {
	processor Processor
	logger    *slog.Logger
	inflight  sync.WaitGroup
}

func NewInteractionHandler(processor Processor, logger *slog.Logger) *InteractionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InteractionHandler{processor: processor, logger: logger}
}

// Interactions acknowledges an interaction webhook. Slash commands get a
// deferred ephemeral reply right away and are completed in the background.
func (h *InteractionHandler) Interactions(c *gin.Context) {
	var i discordgo.Interaction
	if err := c.ShouldBindJSON(&i); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction payload"})
		return
	}

	switch i.Type {
	case discordgo.InteractionPing:
		c.JSON(http.StatusOK, discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})

	case discordgo.InteractionApplicationCommand:
		c.JSON(http.StatusOK, discord.DeferredResponse)
		// the acknowledgement must reach Discord before the reply is edited
		c.Writer.Flush()

		h.inflight.Add(1)
		go func() {
			defer h.inflight.Done()
			h.processor.Complete(context.Background(), &i)
		}()

	default:
		h.logger.Warn("interaction_type_unsupported", "type", int(i.Type))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported interaction type"})
	}
}

// Wait blocks until every background completion has finished.
func (h *InteractionHandler) Wait() {
	h.inflight.Wait()
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ParsePublicKey decodes the hex encoded application public key.
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// NewRouter wires the interactions endpoint and the health check.
func NewRouter(key ed25519.PublicKey, h *InteractionHandler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	r.GET("/healthz", Health)
	r.POST("/interactions", VerifySignature(key), h.Interactions)
	return r
}
