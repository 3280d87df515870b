package command

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibliobot/internal/bot"
	"bibliobot/internal/render"
)

func TestPrintResponse(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	printResponse(&buf, render.Response{
		Content: "Hier zijn de gevonden boeken:",
		Embeds: []render.Embed{{
			Title:        "Dune",
			Description:  "**Woestijnplaneet**\n\n",
			Fields:       []render.Field{{Name: "Auteur", Value: "Herbert"}},
			ThumbnailURL: "front.jpg",
			ImageURL:     "back.jpg",
			Footer:       "Verbondsbibliotheek",
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "Hier zijn de gevonden boeken:\n")
	assert.Contains(t, out, "Dune\n")
	assert.Contains(t, out, "Woestijnplaneet\n")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "Auteur: Herbert\n")
	assert.Contains(t, out, "Miniatuur: front.jpg\n")
	assert.Contains(t, out, "Omslag: back.jpg\n")
	assert.Contains(t, out, "Verbondsbibliotheek\n")
}

func TestCommandFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "add"}
	cmd.Flags().String(bot.OptTitle, "", "")
	cmd.Flags().String(bot.OptStatus, "Beschikbaar", "")
	cmd.Flags().String(bot.OptOwner, "", "")
	cmd.Flags().Int(bot.OptPageCount, 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--title", "Dune", "--page_count", "412"}))

	c, err := commandFromFlags(cmd, bot.CmdAddBook, bot.OptTitle, bot.OptStatus, bot.OptOwner, bot.OptPageCount, bot.OptTheme)

	require.NoError(t, err)
	assert.Equal(t, bot.CmdAddBook, c.Name)
	assert.Equal(t, "Dune", c.Options.String(bot.OptTitle))
	assert.Equal(t, "Beschikbaar", c.Options.String(bot.OptStatus))
	assert.NotContains(t, c.Options, bot.OptOwner)
	assert.NotContains(t, c.Options, bot.OptTheme)
	n, ok := c.Options.Int(bot.OptPageCount)
	assert.True(t, ok)
	assert.Equal(t, 412, n)
}

func TestCommandFromFlags_PageCountUnset(t *testing.T) {
	cmd := &cobra.Command{Use: "add"}
	cmd.Flags().Int(bot.OptPageCount, 0, "")
	require.NoError(t, cmd.Flags().Parse(nil))

	c, err := commandFromFlags(cmd, bot.CmdAddBook, bot.OptPageCount)

	require.NoError(t, err)
	_, ok := c.Options.Int(bot.OptPageCount)
	assert.False(t, ok)
}

func TestRootHasSubcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"deploy-commands", "list", "search", "add", "status", "auth"} {
		assert.Contains(t, names, want)
	}
}
