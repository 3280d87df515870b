package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bibliobot/internal/catalog"
	"bibliobot/internal/paginate"
)

const (
	catalogFooter = "Tip: Als een bepaald boek je interesseert, gebruik dan het search-book commando om meer details te verkrijgen."
	detailFooter  = "Verbondsbibliotheek"
)

// Formatter builds embeds for catalog listings and search results.
type Formatter struct {
	// ThumbnailURL decorates every catalog page. Empty means no thumbnail.
	ThumbnailURL string
	// PageLimit bounds a catalog page body. Zero means paginate.MaxBodyLength.
	PageLimit int
	// Now stamps detail embeds. Nil means time.Now.
	Now func() time.Time
}

func (f *Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// CatalogEntry is the compact list line of one book.
func CatalogEntry(b catalog.Book) string {
	return fmt.Sprintf("**%s**\n**Auteur**: %s\n**Beschikbaarheid**: %s\n\n",
		orDefault(b.Title, "Onbekend Boek"),
		orDefault(b.Author, "Onbekende Auteur"),
		orDefault(string(b.Status), "Onbekend"))
}

// CatalogPages renders books, in the given order, as numbered catalog pages.
func (f *Formatter) CatalogPages(books []catalog.Book) []Embed {
	entries := make([]string, 0, len(books))
	for _, b := range books {
		entries = append(entries, CatalogEntry(b))
	}

	pages := paginate.Paginate(entries, f.PageLimit)
	embeds := make([]Embed, 0, len(pages))
	for _, p := range pages {
		embeds = append(embeds, Embed{
			Title:        p.Title,
			Description:  p.Body,
			Color:        ColorDefault,
			ThumbnailURL: f.ThumbnailURL,
			Footer:       catalogFooter,
		})
	}
	return embeds
}

// BookDetail renders the full record of one book.
func (f *Formatter) BookDetail(b catalog.Book) Embed {
	status := orDefault(string(b.Status), "Onbekend")

	categories := "Geen"
	if len(b.Categories) > 0 {
		categories = strings.Join(b.CategoryNames(), ", ")
	}
	pages := "Onbekend"
	if b.PageCount > 0 {
		pages = strconv.Itoa(b.PageCount)
	}

	fields := []Field{
		{Name: "Auteur", Value: orDefault(b.Author, "Onbekend"), Inline: true},
		{Name: "Status", Value: status, Inline: true},
		{Name: "Eigenaar", Value: orDefault(b.Owner, "Onbekend"), Inline: true},
		{Name: "Taal", Value: orDefault(b.Language, "Onbekend"), Inline: true},
		{Name: "Categorie", Value: categories, Inline: true},
		{Name: "Thema", Value: orDefault(b.Theme, "Geen"), Inline: true},
		{Name: "Aantal bladzijden", Value: pages, Inline: true},
	}
	if b.Status != catalog.StatusAvailable {
		fields = append(fields, Field{Name: "Uitgeleend aan", Value: orDefault(b.LoanedTo, "Niemand"), Inline: true})
	}

	e := Embed{
		Title:       orDefault(b.Title, "Onbekend Boek"),
		Description: b.Description,
		Color:       ColorDefault,
		Fields:      fields,
		Footer:      detailFooter,
		Timestamp:   f.now(),
	}
	switch len(b.CoverImages) {
	case 0:
	case 1:
		e.ImageURL = b.CoverImages[0]
	default:
		e.ThumbnailURL = b.CoverImages[0]
		e.ImageURL = b.CoverImages[1]
	}
	return e
}

// BookDetails renders one detail embed per book, keeping order.
func (f *Formatter) BookDetails(books []catalog.Book) []Embed {
	embeds := make([]Embed, 0, len(books))
	for _, b := range books {
		embeds = append(embeds, f.BookDetail(b))
	}
	return embeds
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
