// Package bot routes slash commands to the catalog service and turns the
// results into replies. It knows nothing about the chat transport.
package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Command names
const (
	CmdAddBook      = "add-book"
	CmdListCatalog  = "list-catalog"
	CmdSearchBook   = "search-book"
	CmdUpdateStatus = "update-status"
	CmdHelp         = "help"
)

// Option names
const (
	OptTitle       = "title"
	OptAuthor      = "author"
	OptStatus      = "status"
	OptOwner       = "owner"
	OptLoanedTo    = "loaned_to"
	OptDescription = "description"
	OptLanguage    = "language"
	OptFrontCover  = "front_cover"
	OptBackCover   = "back_cover"
	OptPageCount   = "page_count"
	OptCategory1   = "category1"
	OptCategory2   = "category2"
	OptTheme       = "theme"
	OptCategory    = "category"
)

// Options holds the values a user supplied for a command, by option name.
type Options map[string]any

// String returns the trimmed text value of name, or "" when it is absent.
func (o Options) String(name string) string {
	switch v := o[name].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Int returns the integer value of name. Absent values are 0, false.
func (o Options) Int(name string) (int, bool) {
	switch v := o[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Command is one invocation of a slash command.
type Command struct {
	Name    string
	Options Options
	User    string // display name of the invoking user, for logs
}
