package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Gateway keeps a websocket session to Discord and answers slash commands
// received over it.
type Gateway struct {
	session *discordgo.Session
	logger  *slog.Logger
}

// NewSession creates a bot session for token without connecting it.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}

// NewGateway routes the session's interactions to the responder built by
// newResponder, which receives the session as its Sender.
func NewGateway(s *discordgo.Session, newResponder func(Sender) *Responder, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{session: s, logger: logger}
	responder := newResponder(s)

	s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		g.logger.Info("discord_ready", "user", r.User.Username, "guilds", len(r.Guilds))
	})
	// discordgo runs every handler in its own goroutine
	s.AddHandler(func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
		responder.Handle(context.Background(), ic.Interaction)
	})
	return g
}

// Open connects to the Discord gateway.
func (g *Gateway) Open() error {
	if err := g.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	g.logger.Info("discord_gateway_open")
	return nil
}

// Close disconnects from the gateway.
func (g *Gateway) Close() error {
	if err := g.session.Close(); err != nil {
		return fmt.Errorf("close discord gateway: %w", err)
	}
	g.logger.Info("discord_gateway_closed")
	return nil
}
