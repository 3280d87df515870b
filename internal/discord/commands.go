// Package discord connects the command dispatcher to Discord: slash command
// definitions, interaction decoding and reply delivery.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"bibliobot/internal/bot"
	"bibliobot/internal/catalog"
)

// CommandRegistrar is the part of a Discord session that manages application commands.
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// RegisterCommands replaces the guild's slash commands with Commands().
func RegisterCommands(r CommandRegistrar, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	registered, err := r.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	return registered, nil
}

// Commands returns the slash command definitions of the bot.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        bot.CmdAddBook,
			Description: "Voeg een boek toe aan de verbondsbibliotheek",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(bot.OptTitle, "Naam van het boek", true),
				stringOption(bot.OptAuthor, "Auteur van het boek", true),
				statusOption("Status van het boek", true),
				stringOption(bot.OptOwner, "Eigenaar van het boek", true),
				stringOption(bot.OptLoanedTo, "Persoon aan wie het boek is uitgeleend", false),
				stringOption(bot.OptDescription, "Beschrijving van het boek", false),
				stringOption(bot.OptLanguage, "Taal van het boek", false),
				stringOption(bot.OptFrontCover, "Omslagafbeelding URL (voorzijde van het boek)", false),
				stringOption(bot.OptBackCover, "Omslagafbeelding URL (achterzijde van het boek)", false),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        bot.OptPageCount,
					Description: "Aantal bladzijden van het boek",
				},
				categoryOption(bot.OptCategory1, "Categorie 1 van het boek."),
				categoryOption(bot.OptCategory2, "Categorie 2 van het boek."),
				stringOption(bot.OptTheme, "Thema van het boek", false),
			},
		},
		{
			Name:        bot.CmdListCatalog,
			Description: "Toon de hele verbondsbibliotheek. Geef optioneel auteur, categorie en taal mee.",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(bot.OptAuthor, "Auteur van het boek", false),
				categoryOption(bot.OptCategory, "Filter op categorie"),
				stringOption(bot.OptLanguage, "Filter op taal", false),
			},
		},
		{
			Name:        bot.CmdSearchBook,
			Description: "Bekijk de details van een boek in de bibliotheek.",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(bot.OptTitle, "Naam van het boek", false),
				stringOption(bot.OptAuthor, "Auteur van het boek", false),
				statusOption("Status van het boek", false),
				stringOption(bot.OptOwner, "Eigenaar van het boek", false),
				stringOption(bot.OptLoanedTo, "Persoon aan wie het boek is uitgeleend", false),
				stringOption(bot.OptLanguage, "Taal van het boek", false),
				categoryOption(bot.OptCategory, "Categorie van het boek"),
			},
		},
		{
			Name:        bot.CmdUpdateStatus,
			Description: "Werk de beschikbaarheid van een boek bij in de verbondsbibliotheek.",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(bot.OptTitle, "Naam van het boek", true),
				statusOption("Nieuwe status van het boek", true),
				stringOption(bot.OptLoanedTo, "Naam van de persoon aan wie het boek is uitgeleend (alleen vereist voor status Uitgeleend)", false),
			},
		},
		{
			Name:        bot.CmdHelp,
			Description: "Toon een lijst van beschikbare commando's met uitleg over hun werking",
		},
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func statusOption(description string, required bool) *discordgo.ApplicationCommandOption {
	opt := stringOption(bot.OptStatus, description, required)
	for _, s := range catalog.Statuses {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: string(s), Value: string(s)})
	}
	return opt
}

func categoryOption(name, description string) *discordgo.ApplicationCommandOption {
	opt := stringOption(name, description, false)
	for _, c := range catalog.Categories {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: string(c), Value: string(c)})
	}
	return opt
}
