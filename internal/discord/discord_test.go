package discord

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bibliobot/internal/bot"
	"bibliobot/internal/render"
)

// fakeSender records every call made to Discord
type fakeSender struct {
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	followups []*discordgo.WebhookParams
	editErr   error
}

func (f *fakeSender) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSender) InteractionResponseEdit(_ *discordgo.Interaction, e *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, e)
	return &discordgo.Message{}, f.editErr
}

func (f *fakeSender) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, p *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.followups = append(f.followups, p)
	return &discordgo.Message{}, nil
}

// MockDispatcher mocks the Dispatcher interface
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, cmd bot.Command) render.Response {
	args := m.Called(ctx, cmd)
	return args.Get(0).(render.Response)
}

func slashInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:   "int1",
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
		Member: &discordgo.Member{
			User: &discordgo.User{Username: "piet"},
		},
	}
}

func newTestResponder(sender Sender, d Dispatcher) *Responder {
	return NewResponder(sender, d, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCommands(t *testing.T) {
	cmds := Commands()

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
		// required options must precede optional ones
		seenOptional := false
		for _, o := range c.Options {
			if !o.Required {
				seenOptional = true
			}
			assert.False(t, seenOptional && o.Required, "%s/%s", c.Name, o.Name)
		}
	}
	assert.Equal(t, []string{bot.CmdAddBook, bot.CmdListCatalog, bot.CmdSearchBook, bot.CmdUpdateStatus, bot.CmdHelp}, names)

	add := cmds[0]
	require.Len(t, add.Options, 13)
	assert.Equal(t, bot.OptStatus, add.Options[2].Name)
	assert.Len(t, add.Options[2].Choices, 2)
	assert.Equal(t, discordgo.ApplicationCommandOptionInteger, add.Options[9].Type)
	assert.Len(t, add.Options[10].Choices, 8)
}

type fakeRegistrar struct {
	appID, guildID string
	cmds           []*discordgo.ApplicationCommand
	err            error
}

func (f *fakeRegistrar) ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.appID, f.guildID, f.cmds = appID, guildID, cmds
	return cmds, f.err
}

func TestRegisterCommands(t *testing.T) {
	r := &fakeRegistrar{}
	registered, err := RegisterCommands(r, "app", "guild")
	require.NoError(t, err)
	assert.Equal(t, "app", r.appID)
	assert.Equal(t, "guild", r.guildID)
	assert.Len(t, registered, 5)

	_, err = RegisterCommands(&fakeRegistrar{err: errors.New("401")}, "app", "guild")
	assert.ErrorContains(t, err, "register commands")
}

func TestCommandFromInteraction(t *testing.T) {
	i := slashInteraction(bot.CmdAddBook,
		&discordgo.ApplicationCommandInteractionDataOption{Name: bot.OptTitle, Type: discordgo.ApplicationCommandOptionString, Value: "Dune"},
		&discordgo.ApplicationCommandInteractionDataOption{Name: bot.OptPageCount, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(412)},
	)

	cmd, ok := CommandFromInteraction(i)

	require.True(t, ok)
	assert.Equal(t, bot.CmdAddBook, cmd.Name)
	assert.Equal(t, "piet", cmd.User)
	assert.Equal(t, "Dune", cmd.Options.String(bot.OptTitle))
	n, ok := cmd.Options.Int(bot.OptPageCount)
	assert.True(t, ok)
	assert.Equal(t, 412, n)

	_, ok = CommandFromInteraction(&discordgo.Interaction{Type: discordgo.InteractionPing})
	assert.False(t, ok)
}

func TestToMessageEmbed(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	me := ToMessageEmbed(render.Embed{
		Title:        "Dune",
		Color:        render.ColorDefault,
		Fields:       []render.Field{{Name: "Auteur", Value: "Herbert", Inline: true}},
		ThumbnailURL: "front.jpg",
		Footer:       "Verbondsbibliotheek",
		Timestamp:    ts,
	})

	assert.Equal(t, "Dune", me.Title)
	assert.Equal(t, 0x0099ff, me.Color)
	require.Len(t, me.Fields, 1)
	assert.True(t, me.Fields[0].Inline)
	assert.Equal(t, "front.jpg", me.Thumbnail.URL)
	assert.Nil(t, me.Image)
	assert.Equal(t, "Verbondsbibliotheek", me.Footer.Text)
	assert.Equal(t, "2025-03-01T10:00:00Z", me.Timestamp)

	bare := ToMessageEmbed(render.Embed{Title: "x"})
	assert.Empty(t, bare.Timestamp)
	assert.Nil(t, bare.Footer)
}

func TestResponder_EmbedsOnly(t *testing.T) {
	sender := &fakeSender{}
	d := new(MockDispatcher)
	pages := []render.Embed{{Title: "Bibliotheek (Deel 1)"}, {Title: "Bibliotheek (Deel 2)"}, {Title: "Bibliotheek (Deel 3)"}}
	d.On("Dispatch", mock.Anything, mock.MatchedBy(func(c bot.Command) bool { return c.Name == bot.CmdListCatalog })).
		Return(render.Response{Embeds: pages})

	newTestResponder(sender, d).Handle(context.Background(), slashInteraction(bot.CmdListCatalog))

	require.Len(t, sender.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, sender.responses[0].Type)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, sender.responses[0].Data.Flags)

	require.Len(t, sender.edits, 1)
	assert.Empty(t, *sender.edits[0].Content)
	require.NotNil(t, sender.edits[0].Embeds)
	assert.Equal(t, "Bibliotheek (Deel 1)", (*sender.edits[0].Embeds)[0].Title)

	require.Len(t, sender.followups, 2)
	assert.Equal(t, "Bibliotheek (Deel 2)", sender.followups[0].Embeds[0].Title)
	assert.Equal(t, "Bibliotheek (Deel 3)", sender.followups[1].Embeds[0].Title)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, sender.followups[1].Flags)
}

func TestResponder_ContentWithEmbeds(t *testing.T) {
	sender := &fakeSender{}
	d := new(MockDispatcher)
	d.On("Dispatch", mock.Anything, mock.Anything).
		Return(render.Response{Content: "Hier zijn de gevonden boeken:", Embeds: []render.Embed{{Title: "a"}, {Title: "b"}}})

	newTestResponder(sender, d).Handle(context.Background(), slashInteraction(bot.CmdSearchBook))

	require.Len(t, sender.edits, 1)
	assert.Equal(t, "Hier zijn de gevonden boeken:", *sender.edits[0].Content)
	assert.Nil(t, sender.edits[0].Embeds)
	assert.Len(t, sender.followups, 2)
}

func TestResponder_StopsAfterFailedEdit(t *testing.T) {
	sender := &fakeSender{editErr: errors.New("unknown webhook")}
	d := new(MockDispatcher)
	d.On("Dispatch", mock.Anything, mock.Anything).Return(render.Response{Embeds: []render.Embed{{}, {}}})

	newTestResponder(sender, d).Handle(context.Background(), slashInteraction(bot.CmdListCatalog))

	assert.Len(t, sender.edits, 1)
	assert.Empty(t, sender.followups)
}

func TestResponder_IgnoresOtherInteractions(t *testing.T) {
	sender := &fakeSender{}
	d := new(MockDispatcher)

	newTestResponder(sender, d).Handle(context.Background(), &discordgo.Interaction{Type: discordgo.InteractionMessageComponent})

	assert.Empty(t, sender.responses)
	d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}
