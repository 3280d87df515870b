package catalog

import "strings"

// Status is the loan status of a book as stored in the catalog.
type Status string

const (
	StatusAvailable Status = "Beschikbaar"
	StatusLoaned    Status = "Uitgeleend"
)

// Statuses lists the recognized statuses in display order.
var Statuses = []Status{StatusAvailable, StatusLoaned}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusLoaned
}

// ParseStatus converts raw user input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Category is one of the fixed catalog tags.
type Category string

const (
	CategoryHistory    Category = "Geschiedenis"
	CategoryPhilosophy Category = "Wijsbegeerte"
	CategoryPolitics   Category = "Politiek"
	CategoryLiterature Category = "Literatuur"
	CategorySociology  Category = "Sociologie"
	CategoryBiology    Category = "Biologie"
	CategoryFiction    Category = "Fictie"
	CategoryPsychology Category = "Psychologie"
)

// Categories lists every recognized category in display order.
var Categories = []Category{
	CategoryHistory,
	CategoryPhilosophy,
	CategoryPolitics,
	CategoryLiterature,
	CategorySociology,
	CategoryBiology,
	CategoryFiction,
	CategoryPsychology,
}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	MaxCoverImages = 2
	MaxCategories  = 2
)

// Field names a catalog column in the record store.
type Field string

const (
	FieldTitle       Field = "Boek"
	FieldAuthor      Field = "Auteur"
	FieldStatus      Field = "Status"
	FieldOwner       Field = "Eigenaar"
	FieldLoanedTo    Field = "Uitgeleend aan"
	FieldDescription Field = "Beschrijving"
	FieldLanguage    Field = "Taal"
	FieldCovers      Field = "Omslag"
	FieldPageCount   Field = "Aantal bladzijden"
	FieldCategories  Field = "Categorie"
	FieldTheme       Field = "Thema"
)

// Book is one record of the lending catalog.
type Book struct {
	ID          string
	Title       string
	Author      string
	Status      Status
	Owner       string
	LoanedTo    string
	Description string
	Language    string
	CoverImages []string // front cover first, back cover second
	PageCount   int      // 0 when unknown
	Categories  []Category
	Theme       string
}

// FrontCover returns the first cover image, if any.
func (b Book) FrontCover() string {
	if len(b.CoverImages) > 0 {
		return b.CoverImages[0]
	}
	return ""
}

// BackCover returns the second cover image, if any.
func (b Book) BackCover() string {
	if len(b.CoverImages) > 1 {
		return b.CoverImages[1]
	}
	return ""
}

// CategoryNames returns the categories as plain strings.
func (b Book) CategoryNames() []string {
	names := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		names = append(names, string(c))
	}
	return names
}

// Patch is a partial update of a book. Only the status fields can change.
type Patch struct {
	Status   Status
	LoanedTo string // empty clears the field
}

// NewCovers builds the ordered cover list from optional front and back URLs.
func NewCovers(front, back string) []string {
	var covers []string
	if f := strings.TrimSpace(front); f != "" {
		covers = append(covers, f)
	}
	if b := strings.TrimSpace(back); b != "" {
		covers = append(covers, b)
	}
	return covers
}

// NewCategories builds the category set from optional raw values,
// dropping blanks and duplicates while keeping input order.
func NewCategories(raw ...string) []Category {
	var out []Category
	seen := make(map[Category]struct{}, len(raw))
	for _, r := range raw {
		c := Category(strings.TrimSpace(r))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
