package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"bibliobot/internal/render"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgYellow)
	footerColor = color.New(color.FgHiBlack)
)

// printResponse writes a reply the way the bot would deliver it, primary message first
func printResponse(w io.Writer, resp render.Response) {
	if resp.Content != "" {
		fmt.Fprintln(w, resp.Content)
	}
	for _, e := range resp.Embeds {
		printEmbed(w, e)
	}
}

func printEmbed(w io.Writer, e render.Embed) {
	fmt.Fprintln(w, "─────────────────────────────────────────────────────────")
	if e.Title != "" {
		titleColor.Fprintln(w, e.Title)
	}
	if e.Description != "" {
		fmt.Fprintln(w, stripMarkdown(strings.TrimRight(e.Description, "\n")))
	}
	for _, f := range e.Fields {
		labelColor.Fprintf(w, "%s: ", f.Name)
		fmt.Fprintln(w, f.Value)
	}
	if e.ThumbnailURL != "" {
		fmt.Fprintf(w, "Miniatuur: %s\n", e.ThumbnailURL)
	}
	if e.ImageURL != "" {
		fmt.Fprintf(w, "Omslag: %s\n", e.ImageURL)
	}
	if e.Footer != "" {
		footerColor.Fprintln(w, e.Footer)
	}
}

// stripMarkdown drops the bold markers Discord renders
func stripMarkdown(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
