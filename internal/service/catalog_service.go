package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"bibliobot/internal/catalog"
	"bibliobot/internal/filter"
	"bibliobot/internal/repository"
)

// CatalogService runs the catalog commands against a record store.
type CatalogService interface {
	AddBook(ctx context.Context, b catalog.Book) (*catalog.Book, error)
	ListBooks(ctx context.Context, criteria filter.Criteria) ([]catalog.Book, error)
	SearchBooks(ctx context.Context, criteria filter.Criteria) ([]catalog.Book, error)
	UpdateStatus(ctx context.Context, title, status, loanedTo string) (*catalog.Book, error)
}

type catalogService struct {
	repo   repository.BookRepository
	logger *slog.Logger
}

func NewCatalogService(repo repository.BookRepository, logger *slog.Logger) CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogService{
		repo:   repo,
		logger: logger,
	}
}

func (s *catalogService) AddBook(ctx context.Context, b catalog.Book) (*catalog.Book, error) {
	b = normalize(b)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	// Check if the title is already taken
	existing, err := s.repo.Select(ctx, filter.TitleEquals(b.Title))
	if err != nil {
		return nil, fmt.Errorf("check duplicate title: %w", err)
	}
	if len(existing) > 0 {
		return nil, catalog.ErrDuplicateTitle
	}

	id, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	b.ID = id

	s.logger.Info("book_added",
		"book_id", id,
		"title", b.Title,
		"owner", b.Owner,
	)
	return &b, nil
}

// ListBooks filters on category and author by substring and on language by equality.
func (s *catalogService) ListBooks(ctx context.Context, criteria filter.Criteria) ([]catalog.Book, error) {
	books, err := s.selectBy(ctx, criteria, filter.Language)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("catalog_listed", "filters", criteria.HasAny(), "count", len(books))
	return books, nil
}

func (s *catalogService) SearchBooks(ctx context.Context, criteria filter.Criteria) ([]catalog.Book, error) {
	if !criteria.HasAny() {
		return nil, catalog.ErrNoCriteria
	}
	books, err := s.selectBy(ctx, criteria)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("catalog_searched", "count", len(books))
	return books, nil
}

func (s *catalogService) UpdateStatus(ctx context.Context, title, status, loanedTo string) (*catalog.Book, error) {
	next, err := catalog.CheckLoan(status, loanedTo)
	if err != nil {
		return nil, err
	}

	matches, err := s.repo.Select(ctx, filter.TitleEquals(title))
	if err != nil {
		return nil, fmt.Errorf("find book: %w", err)
	}
	if len(matches) == 0 {
		return nil, catalog.ErrNotFound
	}

	patch := catalog.Patch{Status: next}
	if next == catalog.StatusLoaned {
		patch.LoanedTo = strings.TrimSpace(loanedTo)
	}

	updated, err := s.repo.Update(ctx, matches[0].ID, patch)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book_status_updated",
		"book_id", matches[0].ID,
		"title", matches[0].Title,
		"status", next,
		"matches", len(matches),
	)
	return updated, nil
}

func (s *catalogService) selectBy(ctx context.Context, criteria filter.Criteria, exact ...string) ([]catalog.Book, error) {
	f, err := filter.Build(criteria, exact...)
	if err != nil {
		return nil, err
	}
	books, err := s.repo.Select(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	sortByTitle(books)
	return books, nil
}

// sortByTitle orders books alphabetically, ignoring case. Equal titles keep store order.
func sortByTitle(books []catalog.Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
	})
}

func normalize(b catalog.Book) catalog.Book {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.Status = catalog.Status(strings.TrimSpace(string(b.Status)))
	b.Owner = strings.TrimSpace(b.Owner)
	b.LoanedTo = strings.TrimSpace(b.LoanedTo)
	b.Description = strings.TrimSpace(b.Description)
	b.Language = strings.TrimSpace(b.Language)
	b.Theme = strings.TrimSpace(b.Theme)
	return b
}
