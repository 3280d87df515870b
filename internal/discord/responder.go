package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"bibliobot/internal/bot"
	"bibliobot/internal/render"
)

const defaultTimeout = 15 * time.Second

// Sender is the part of a Discord session used to answer interactions.
type Sender interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Dispatcher executes a decoded command.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd bot.Command) render.Response
}

// DeferredResponse acknowledges an interaction with an ephemeral "thinking" state.
var DeferredResponse = &discordgo.InteractionResponse{
	Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
}

// Responder answers slash command interactions: it acknowledges the
// interaction, runs the command and delivers the reply and its follow-ups.
type Responder struct {
	sender     Sender
	dispatcher Dispatcher
	timeout    time.Duration
	logger     *slog.Logger
}

func NewResponder(sender Sender, dispatcher Dispatcher, timeout time.Duration, logger *slog.Logger) *Responder {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		sender:     sender,
		dispatcher: dispatcher,
		timeout:    timeout,
		logger:     logger,
	}
}

// Handle defers and completes a gateway interaction. Other interaction types are ignored.
func (r *Responder) Handle(ctx context.Context, i *discordgo.Interaction) {
	if i == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if err := r.sender.InteractionRespond(i, DeferredResponse, discordgo.WithContext(ctx)); err != nil {
		r.logger.Error("interaction_defer_failed", "interaction_id", i.ID, "error", err)
		return
	}
	r.Complete(ctx, i)
}

// Complete runs the command of an already deferred interaction and delivers
// its reply. The whole exchange is bounded by the responder timeout.
func (r *Responder) Complete(ctx context.Context, i *discordgo.Interaction) {
	cmd, ok := CommandFromInteraction(i)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp := r.dispatcher.Dispatch(ctx, cmd)
	r.deliver(ctx, i, resp)
}

func (r *Responder) deliver(ctx context.Context, i *discordgo.Interaction, resp render.Response) {
	logger := r.logger.With("interaction_id", i.ID, "command", i.ApplicationCommandData().Name)

	content, embeds := resp.Primary()
	edit := &discordgo.WebhookEdit{Content: &content}
	if len(embeds) > 0 {
		me := toMessageEmbeds(embeds)
		edit.Embeds = &me
	}
	if _, err := r.sender.InteractionResponseEdit(i, edit, discordgo.WithContext(ctx)); err != nil {
		logger.Error("reply_edit_failed", "error", err)
		return
	}

	for n, e := range resp.FollowUps() {
		params := &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{ToMessageEmbed(e)},
			Flags:  discordgo.MessageFlagsEphemeral,
		}
		if _, err := r.sender.FollowupMessageCreate(i, true, params, discordgo.WithContext(ctx)); err != nil {
			logger.Error("reply_followup_failed", "followup", n+1, "error", err)
			return
		}
	}
}
