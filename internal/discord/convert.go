package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"bibliobot/internal/bot"
	"bibliobot/internal/render"
)

// CommandFromInteraction decodes a slash command interaction. The second
// result is false for any other kind of interaction.
func CommandFromInteraction(i *discordgo.Interaction) (bot.Command, bool) {
	if i == nil || i.Type != discordgo.InteractionApplicationCommand {
		return bot.Command{}, false
	}

	data := i.ApplicationCommandData()
	cmd := bot.Command{
		Name:    data.Name,
		Options: make(bot.Options, len(data.Options)),
		User:    userName(i),
	}
	for _, opt := range data.Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionInteger:
			cmd.Options[opt.Name] = opt.IntValue()
		case discordgo.ApplicationCommandOptionString:
			cmd.Options[opt.Name] = opt.StringValue()
		default:
			cmd.Options[opt.Name] = opt.Value
		}
	}
	return cmd, true
}

func userName(i *discordgo.Interaction) string {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.Username
	case i.User != nil:
		return i.User.Username
	default:
		return ""
	}
}

// ToMessageEmbed converts a rendered embed to its Discord form.
func ToMessageEmbed(e render.Embed) *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	if e.ThumbnailURL != "" {
		me.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.ThumbnailURL}
	}
	if e.ImageURL != "" {
		me.Image = &discordgo.MessageEmbedImage{URL: e.ImageURL}
	}
	if e.Footer != "" {
		me.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	if !e.Timestamp.IsZero() {
		me.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}
	return me
}

func toMessageEmbeds(embeds []render.Embed) []*discordgo.MessageEmbed {
	out := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, e := range embeds {
		out = append(out, ToMessageEmbed(e))
	}
	return out
}
