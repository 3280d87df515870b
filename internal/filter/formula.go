// Package filter builds record store filter formulas from search criteria.
package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"bibliobot/internal/catalog"
)

// ErrUnknownCriterion is returned by Build for a criterion name it does not recognize.
var ErrUnknownCriterion = errors.New("unknown search criterion")

// Criteria maps criterion names to user supplied values. Blank values are ignored.
type Criteria map[string]string

const (
	Title     = "title"
	Author    = "author"
	Status    = "status"
	Owner     = "owner"
	LoanedTo  = "loaned_to"
	Language  = "language"
	Category  = "category"
	PageCount = "page_count"
)

// criterionOrder fixes the rendering order so identical criteria give identical formulas.
var criterionOrder = []string{Title, Author, Status, Owner, LoanedTo, Language, Category, PageCount}

var criterionFields = map[string]catalog.Field{
	Title:     catalog.FieldTitle,
	Author:    catalog.FieldAuthor,
	Status:    catalog.FieldStatus,
	Owner:     catalog.FieldOwner,
	LoanedTo:  catalog.FieldLoanedTo,
	Language:  catalog.FieldLanguage,
	Category:  catalog.FieldCategories,
	PageCount: catalog.FieldPageCount,
}

// Op is the comparison a condition performs.
type Op int

const (
	OpContains Op = iota // case-insensitive substring
	OpEquals             // case-insensitive equality
)

// Condition is a single predicate on one store field. Value is already lower-cased.
type Condition struct {
	Field      catalog.Field
	Op         Op
	Value      string
	MultiValue bool // field holds a list that is joined before comparing
}

// Formula is a conjunction of conditions. The zero value matches every record.
type Formula struct {
	Conditions []Condition
}

// MatchesAll reports whether the formula has no conditions.
func (f Formula) MatchesAll() bool {
	return len(f.Conditions) == 0
}

// String renders the formula in the Airtable formula language.
func (f Formula) String() string {
	if f.MatchesAll() {
		return "TRUE()"
	}
	parts := make([]string, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		parts = append(parts, c.String())
	}
	return "AND(" + strings.Join(parts, ", ") + ")"
}

func (c Condition) String() string {
	field := "{" + string(c.Field) + "}"
	if c.MultiValue {
		field = "ARRAYJOIN(" + field + ", ', ')"
	}
	switch c.Op {
	case OpEquals:
		return fmt.Sprintf("LOWER(%s) = %s", field, quote(c.Value))
	default:
		return fmt.Sprintf("SEARCH(%s, LOWER(%s)) > 0", quote(c.Value), field)
	}
}

// Build turns criteria into a formula of AND-combined substring conditions.
// Criteria named in exact are matched by case-insensitive equality instead.
func Build(criteria Criteria, exact ...string) (Formula, error) {
	for name := range criteria {
		if _, ok := criterionFields[name]; !ok {
			return Formula{}, fmt.Errorf("%w: %s", ErrUnknownCriterion, name)
		}
	}

	var f Formula
	for _, name := range criterionOrder {
		value := strings.TrimSpace(criteria[name])
		if value == "" {
			continue
		}
		op := OpContains
		if slices.Contains(exact, name) {
			op = OpEquals
		}
		f.Conditions = append(f.Conditions, Condition{
			Field:      criterionFields[name],
			Op:         op,
			Value:      strings.ToLower(value),
			MultiValue: name == Category,
		})
	}
	return f, nil
}

// TitleEquals matches the book whose title equals title, ignoring case.
func TitleEquals(title string) Formula {
	return Formula{Conditions: []Condition{{
		Field: catalog.FieldTitle,
		Op:    OpEquals,
		Value: strings.ToLower(strings.TrimSpace(title)),
	}}}
}

// HasAny reports whether at least one criterion carries a non-blank value.
func (c Criteria) HasAny() bool {
	for _, v := range c {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
