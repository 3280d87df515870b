package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bibliobot/internal/catalog"
	"bibliobot/internal/filter"
	"bibliobot/internal/repository"
)

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Select(ctx context.Context, f filter.Formula) ([]catalog.Book, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Book), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, b catalog.Book) (string, error) {
	args := m.Called(ctx, b)
	return args.String(0), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, id string, p catalog.Patch) (*catalog.Book, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

func newTestService() (*MockBookRepository, CatalogService) {
	repo := new(MockBookRepository)
	return repo, NewCatalogService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var ctx = context.Background()

func TestAddBook_Success(t *testing.T) {
	repo, svc := newTestService()
	in := catalog.Book{Title: " Dune ", Author: "Herbert", Status: catalog.StatusAvailable, Owner: "Piet"}
	stored := catalog.Book{Title: "Dune", Author: "Herbert", Status: catalog.StatusAvailable, Owner: "Piet"}

	repo.On("Select", ctx, filter.TitleEquals("Dune")).Return([]catalog.Book{}, nil)
	repo.On("Create", ctx, stored).Return("rec1", nil)

	book, err := svc.AddBook(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, "rec1", book.ID)
	assert.Equal(t, "Dune", book.Title)
	repo.AssertExpectations(t)
}

func TestAddBook_Duplicate(t *testing.T) {
	repo, svc := newTestService()
	repo.On("Select", ctx, filter.TitleEquals("Dune")).Return([]catalog.Book{{ID: "rec0", Title: "DUNE"}}, nil)

	_, err := svc.AddBook(ctx, catalog.Book{Title: "Dune", Author: "Herbert", Status: catalog.StatusAvailable, Owner: "Piet"})

	assert.ErrorIs(t, err, catalog.ErrDuplicateTitle)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddBook_InvalidNeverReachesStore(t *testing.T) {
	tests := []struct {
		name string
		book catalog.Book
		want error
	}{
		{"available with loanee", catalog.Book{Title: "a", Author: "b", Owner: "c", Status: catalog.StatusAvailable, LoanedTo: "Jan"}, catalog.ErrInvalidTransition},
		{"loaned without loanee", catalog.Book{Title: "a", Author: "b", Owner: "c", Status: catalog.StatusLoaned}, catalog.ErrMissingLoanee},
		{"unknown status", catalog.Book{Title: "a", Author: "b", Owner: "c", Status: "Kwijt"}, catalog.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := newTestService()
			_, err := svc.AddBook(ctx, tt.book)
			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "Select", mock.Anything, mock.Anything)
		})
	}
}

func TestAddBook_StoreRejectsOwner(t *testing.T) {
	repo, svc := newTestService()
	rejected := &repository.RemoteError{Op: "create", StatusCode: 422, Err: errors.New("INVALID_VALUE")}
	repo.On("Select", ctx, mock.Anything).Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return("", rejected)

	_, err := svc.AddBook(ctx, catalog.Book{Title: "Dune", Author: "Herbert", Status: catalog.StatusAvailable, Owner: "Onbekend"})

	assert.True(t, repository.IsUnprocessable(err))
}

func TestListBooks_SortedByTitle(t *testing.T) {
	repo, svc := newTestService()
	repo.On("Select", ctx, filter.Formula{}).Return([]catalog.Book{
		{Title: "zen"}, {Title: "Alpha"}, {Title: "beta"},
	}, nil)

	books, err := svc.ListBooks(ctx, filter.Criteria{filter.Category: "", filter.Language: ""})

	require.NoError(t, err)
	assert.Equal(t, "Alpha", books[0].Title)
	assert.Equal(t, "beta", books[1].Title)
	assert.Equal(t, "zen", books[2].Title)
}

func TestListBooks_WithFilters(t *testing.T) {
	repo, svc := newTestService()
	want, err := filter.Build(filter.Criteria{filter.Language: "Nederlands", filter.Author: "reve"}, filter.Language)
	require.NoError(t, err)
	repo.On("Select", ctx, want).Return([]catalog.Book{}, nil)

	books, err := svc.ListBooks(ctx, filter.Criteria{filter.Language: "Nederlands", filter.Author: "reve"})

	require.NoError(t, err)
	assert.Empty(t, books)
	repo.AssertExpectations(t)
	require.Len(t, want.Conditions, 2)
	assert.Equal(t, filter.OpContains, want.Conditions[0].Op)
	assert.Equal(t, filter.OpEquals, want.Conditions[1].Op)
}

func TestSearchBooks_NoCriteria(t *testing.T) {
	repo, svc := newTestService()

	_, err := svc.SearchBooks(ctx, filter.Criteria{filter.Title: "  "})

	assert.ErrorIs(t, err, catalog.ErrNoCriteria)
	repo.AssertNotCalled(t, "Select", mock.Anything, mock.Anything)
}

func TestSearchBooks_StoreFailure(t *testing.T) {
	repo, svc := newTestService()
	repo.On("Select", ctx, mock.Anything).Return(nil, &repository.RemoteError{Op: "select", StatusCode: 500, Err: errors.New("boom")})

	_, err := svc.SearchBooks(ctx, filter.Criteria{filter.Author: "Tolkien"})

	var re *repository.RemoteError
	assert.ErrorAs(t, err, &re)
}

func TestUpdateStatus_Loan(t *testing.T) {
	repo, svc := newTestService()
	repo.On("Select", ctx, filter.TitleEquals("Dune")).Return([]catalog.Book{{ID: "rec1", Title: "Dune"}, {ID: "rec2", Title: "dune"}}, nil)
	repo.On("Update", ctx, "rec1", catalog.Patch{Status: catalog.StatusLoaned, LoanedTo: "Jan"}).
		Return(&catalog.Book{ID: "rec1", Title: "Dune", Status: catalog.StatusLoaned, LoanedTo: "Jan"}, nil)

	book, err := svc.UpdateStatus(ctx, "Dune", "Uitgeleend", " Jan ")

	require.NoError(t, err)
	assert.Equal(t, "Jan", book.LoanedTo)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_ReturnClearsLoanee(t *testing.T) {
	repo, svc := newTestService()
	repo.On("Select", ctx, mock.Anything).Return([]catalog.Book{{ID: "rec1", Title: "Dune"}}, nil)
	repo.On("Update", ctx, "rec1", catalog.Patch{Status: catalog.StatusAvailable}).
		Return(&catalog.Book{ID: "rec1", Title: "Dune", Status: catalog.StatusAvailable}, nil)

	_, err := svc.UpdateStatus(ctx, "Dune", "Beschikbaar", "")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, svc := newTestService()
	repo.On("Select", ctx, mock.Anything).Return([]catalog.Book{}, nil)

	_, err := svc.UpdateStatus(ctx, "Onbestaand", "Beschikbaar", "")

	assert.ErrorIs(t, err, catalog.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_ValidationBeforeLookup(t *testing.T) {
	tests := []struct {
		status, loanee string
		want           error
	}{
		{"Beschikbaar", "Jan", catalog.ErrInvalidTransition},
		{"Uitgeleend", "", catalog.ErrMissingLoanee},
		{"Kwijt", "", catalog.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			repo, svc := newTestService()
			_, err := svc.UpdateStatus(ctx, "Dune", tt.status, tt.loanee)
			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "Select", mock.Anything, mock.Anything)
		})
	}
}
