// Package sqlstore keeps the catalog in a SQL database through gorm. It serves
// as a self-hosted alternative to the Airtable base and as the local store of
// the operator CLI.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bibliobot/internal/catalog"
	"bibliobot/internal/filter"
	"bibliobot/internal/repository"
)

const categorySeparator = ", "

// bookRow is one catalog record. Categories are stored joined so substring
// matching behaves like it does on the Airtable multi-select column. The *Key
// columns hold the searchable values lower-cased in Go, since SQL LOWER only
// folds ASCII in SQLite and in Postgres under the C collation.
type bookRow struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"not null;uniqueIndex"`
	Author      string `gorm:"not null"`
	Status      string `gorm:"not null;index"`
	Owner       string `gorm:"not null"`
	LoanedTo    string
	Description string
	Language    string
	FrontCover  string
	BackCover   string
	PageCount   int
	Categories  string
	Theme       string

	TitleKey      string `gorm:"index"`
	AuthorKey     string
	StatusKey     string
	OwnerKey      string
	LoanedToKey   string
	LanguageKey   string
	CategoriesKey string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (bookRow) TableName() string {
	return "books"
}

// columns maps searchable catalog fields to already lower-cased expressions
var columns = map[catalog.Field]string{
	catalog.FieldTitle:      "title_key",
	catalog.FieldAuthor:     "author_key",
	catalog.FieldStatus:     "status_key",
	catalog.FieldOwner:      "owner_key",
	catalog.FieldLoanedTo:   "loaned_to_key",
	catalog.FieldLanguage:   "language_key",
	catalog.FieldPageCount:  "CAST(page_count AS TEXT)",
	catalog.FieldCategories: "categories_key",
}

type Store struct {
	db *gorm.DB
}

var _ repository.BookRepository = (*Store)(nil)

// New migrates the books table and returns a store on db.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&bookRow{}); err != nil {
		return nil, fmt.Errorf("migrate books: %w", err)
	}
	if err := backfillKeys(db); err != nil {
		return nil, fmt.Errorf("backfill search keys: %w", err)
	}
	return &Store{db: db}, nil
}

// backfillKeys fills the key columns of rows written before they existed.
// Titles are required, so an empty title key marks such a row.
func backfillKeys(db *gorm.DB) error {
	var rows []bookRow
	if err := db.Where("title_key = ? OR title_key IS NULL", "").Find(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		r.setKeys()
		if err := db.Model(&bookRow{}).Where("id = ?", r.ID).Updates(r.keys()).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Select(ctx context.Context, f filter.Formula) ([]catalog.Book, error) {
	q := s.db.WithContext(ctx).Model(&bookRow{})
	for _, c := range f.Conditions {
		col, ok := columns[c.Field]
		if !ok {
			return nil, &repository.RemoteError{Op: "select", Err: fmt.Errorf("field %q has no column", c.Field)}
		}
		switch c.Op {
		case filter.OpEquals:
			q = q.Where(fmt.Sprintf("%s = ?", col), c.Value)
		default:
			q = q.Where(fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, col), "%"+escapeLike(c.Value)+"%")
		}
	}

	var rows []bookRow
	if err := q.Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, &repository.RemoteError{Op: "select", Err: err}
	}

	books := make([]catalog.Book, 0, len(rows))
	for _, r := range rows {
		books = append(books, r.toBook())
	}
	return books, nil
}

func (s *Store) Create(ctx context.Context, b catalog.Book) (string, error) {
	row := rowFromBook(b)
	row.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", &repository.RemoteError{Op: "create", Err: err}
	}
	return row.ID, nil
}

func (s *Store) Update(ctx context.Context, id string, p catalog.Patch) (*catalog.Book, error) {
	result := s.db.WithContext(ctx).
		Model(&bookRow{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        string(p.Status),
			"status_key":    fold(string(p.Status)),
			"loaned_to":     p.LoanedTo,
			"loaned_to_key": fold(p.LoanedTo),
		})
	if result.Error != nil {
		return nil, &repository.RemoteError{Op: "update", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return nil, catalog.ErrNotFound
	}

	var row bookRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, &repository.RemoteError{Op: "update", Err: err}
	}
	book := row.toBook()
	return &book, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func (r bookRow) toBook() catalog.Book {
	b := catalog.Book{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		Status:      catalog.Status(r.Status),
		Owner:       r.Owner,
		LoanedTo:    r.LoanedTo,
		Description: r.Description,
		Language:    r.Language,
		CoverImages: catalog.NewCovers(r.FrontCover, r.BackCover),
		PageCount:   r.PageCount,
		Theme:       r.Theme,
	}
	if r.Categories != "" {
		b.Categories = catalog.NewCategories(strings.Split(r.Categories, categorySeparator)...)
	}
	return b
}

func fold(s string) string {
	return strings.ToLower(s)
}

func (r *bookRow) setKeys() {
	r.TitleKey = fold(r.Title)
	r.AuthorKey = fold(r.Author)
	r.StatusKey = fold(r.Status)
	r.OwnerKey = fold(r.Owner)
	r.LoanedToKey = fold(r.LoanedTo)
	r.LanguageKey = fold(r.Language)
	r.CategoriesKey = fold(r.Categories)
}

func (r bookRow) keys() map[string]interface{} {
	return map[string]interface{}{
		"title_key":      r.TitleKey,
		"author_key":     r.AuthorKey,
		"status_key":     r.StatusKey,
		"owner_key":      r.OwnerKey,
		"loaned_to_key":  r.LoanedToKey,
		"language_key":   r.LanguageKey,
		"categories_key": r.CategoriesKey,
	}
}

func rowFromBook(b catalog.Book) bookRow {
	r := bookRow{
		Title:       b.Title,
		Author:      b.Author,
		Status:      string(b.Status),
		Owner:       b.Owner,
		LoanedTo:    b.LoanedTo,
		Description: b.Description,
		Language:    b.Language,
		FrontCover:  b.FrontCover(),
		BackCover:   b.BackCover(),
		PageCount:   b.PageCount,
		Categories:  strings.Join(b.CategoryNames(), categorySeparator),
		Theme:       b.Theme,
	}
	r.setKeys()
	return r
}
