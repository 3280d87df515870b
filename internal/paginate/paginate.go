// Package paginate packs pre-formatted catalog entries into bounded display pages.
package paginate

import (
	"fmt"
	"unicode/utf8"
)

// MaxBodyLength is the per-message character ceiling of the chat transport.
const MaxBodyLength = 2000

// Page is one chunk of catalog text sent as a single message.
type Page struct {
	Number int
	Title  string
	Body   string
}

// TitleFor returns the display title of page n.
func TitleFor(n int) string {
	return fmt.Sprintf("Bibliotheek (Deel %d)", n)
}

// Paginate packs entries, in order, into pages whose body holds at most limit
// characters. A page is sealed only when the next entry would push it past the
// limit, so a body of exactly limit characters is allowed. Entries are never
// split: an entry longer than limit gets a page of its own.
func Paginate(entries []string, limit int) []Page {
	if limit <= 0 {
		limit = MaxBodyLength
	}

	var (
		pages  []Page
		body   []byte
		length int
	)
	seal := func() {
		n := len(pages) + 1
		pages = append(pages, Page{Number: n, Title: TitleFor(n), Body: string(body)})
		body = body[:0]
		length = 0
	}

	for _, entry := range entries {
		entryLen := utf8.RuneCountInString(entry)
		if length > 0 && length+entryLen > limit {
			seal()
		}
		body = append(body, entry...)
		length += entryLen
	}
	if len(body) > 0 {
		seal()
	}
	return pages
}
