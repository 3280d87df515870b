package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"bibliobot/internal/catalog"
	"bibliobot/internal/filter"
	"bibliobot/internal/render"
	"bibliobot/internal/repository"
	"bibliobot/internal/service"
)

// Dispatcher executes commands against the catalog service. Every reply it
// produces is meant for the invoking user only.
type Dispatcher struct {
	svc       service.CatalogService
	formatter *render.Formatter
	logger    *slog.Logger
}

func NewDispatcher(svc service.CatalogService, formatter *render.Formatter, logger *slog.Logger) *Dispatcher {
	if formatter == nil {
		formatter = &render.Formatter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		svc:       svc,
		formatter: formatter,
		logger:    logger,
	}
}

// Dispatch runs cmd and returns the reply. It never fails: errors become
// user facing messages and their detail goes to the log.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (resp render.Response) {
	logger := d.logger.With(
		"request_id", uuid.NewString(),
		"command", cmd.Name,
		"user", cmd.User,
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("command_panic", "panic", r)
			resp = render.Text(msgUnexpectedFailed)
		}
	}()

	logger.Info("command_received")

	switch cmd.Name {
	case CmdAddBook:
		return d.addBook(ctx, logger, cmd.Options)
	case CmdListCatalog:
		return d.listCatalog(ctx, logger, cmd.Options)
	case CmdSearchBook:
		return d.searchBook(ctx, logger, cmd.Options)
	case CmdUpdateStatus:
		return d.updateStatus(ctx, logger, cmd.Options)
	case CmdHelp:
		return render.Response{Embeds: []render.Embed{render.Help()}}
	default:
		logger.Warn("unknown_command")
		return render.Text(msgUnexpectedFailed)
	}
}

func (d *Dispatcher) addBook(ctx context.Context, logger *slog.Logger, opts Options) render.Response {
	book := catalog.Book{
		Title:       opts.String(OptTitle),
		Author:      opts.String(OptAuthor),
		Status:      catalog.Status(opts.String(OptStatus)),
		Owner:       opts.String(OptOwner),
		LoanedTo:    opts.String(OptLoanedTo),
		Description: opts.String(OptDescription),
		Language:    opts.String(OptLanguage),
		CoverImages: catalog.NewCovers(opts.String(OptFrontCover), opts.String(OptBackCover)),
		Categories:  catalog.NewCategories(opts.String(OptCategory1), opts.String(OptCategory2)),
		Theme:       opts.String(OptTheme),
	}
	if n, ok := opts.Int(OptPageCount); ok {
		book.PageCount = n
	}

	created, err := d.svc.AddBook(ctx, book)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrDuplicateTitle):
			return render.Text(msgDuplicate(book.Title))
		case repository.IsUnprocessable(err):
			logger.Warn("book_owner_rejected", "owner", book.Owner, "error", err)
			return render.Text(msgOwnerRejected(book.Owner))
		}
		if msg, ok := validationMessage(err, book.Status); ok {
			return render.Text(msg)
		}
		logger.Error("add_book_failed", "title", book.Title, "error", err)
		return render.Text(msgAddFailed)
	}
	return render.Text(msgAdded(created.Title))
}

func (d *Dispatcher) listCatalog(ctx context.Context, logger *slog.Logger, opts Options) render.Response {
	criteria := filter.Criteria{
		filter.Category: opts.String(OptCategory),
		filter.Language: opts.String(OptLanguage),
		filter.Author:   opts.String(OptAuthor),
	}

	books, err := d.svc.ListBooks(ctx, criteria)
	if err != nil {
		logger.Error("list_catalog_failed", "error", err)
		return render.Text(msgFetchFailed)
	}
	if len(books) == 0 {
		if criteria.HasAny() {
			return render.Text(msgNoResults)
		}
		return render.Text(msgLibraryEmpty)
	}

	pages := d.formatter.CatalogPages(books)
	logger.Info("catalog_listed", "books", len(books), "pages", len(pages))
	return render.Response{Embeds: pages}
}

func (d *Dispatcher) searchBook(ctx context.Context, logger *slog.Logger, opts Options) render.Response {
	criteria := filter.Criteria{
		filter.Title:    opts.String(OptTitle),
		filter.Author:   opts.String(OptAuthor),
		filter.Status:   opts.String(OptStatus),
		filter.Owner:    opts.String(OptOwner),
		filter.LoanedTo: opts.String(OptLoanedTo),
		filter.Language: opts.String(OptLanguage),
		filter.Category: opts.String(OptCategory),
	}

	books, err := d.svc.SearchBooks(ctx, criteria)
	switch {
	case errors.Is(err, catalog.ErrNoCriteria):
		return render.Text(msgNoCriteria)
	case err != nil:
		logger.Error("search_book_failed", "error", err)
		return render.Text(msgSearchFailed)
	case len(books) == 0:
		return render.Text(msgNoResults)
	}

	logger.Info("books_found", "books", len(books))
	return render.Response{Content: msgSearchHeader, Embeds: d.formatter.BookDetails(books)}
}

func (d *Dispatcher) updateStatus(ctx context.Context, logger *slog.Logger, opts Options) render.Response {
	title := opts.String(OptTitle)
	status := opts.String(OptStatus)

	updated, err := d.svc.UpdateStatus(ctx, title, status, opts.String(OptLoanedTo))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return render.Text(msgNotFound(title))
		}
		if msg, ok := validationMessage(err, catalog.Status(status)); ok {
			return render.Text(msg)
		}
		logger.Error("update_status_failed", "title", title, "error", err)
		return render.Text(msgUpdateFailed)
	}
	return render.Text(msgStatusUpdated(updated))
}

// validationMessage maps a rejected input to its user message.
func validationMessage(err error, status catalog.Status) (string, bool) {
	var v *catalog.ValidationError
	if !errors.As(err, &v) {
		return "", false
	}
	switch v {
	case catalog.ErrInvalidTransition:
		return msgInvalidLoan, true
	case catalog.ErrMissingLoanee:
		return msgMissingLoanee, true
	case catalog.ErrInvalidStatus:
		return msgInvalidStatus(string(status)), true
	case catalog.ErrNoCriteria:
		return msgNoCriteria, true
	case catalog.ErrTooManyCovers:
		return msgTooManyCovers, true
	case catalog.ErrTooManyCategories:
		return msgTooManyCategory, true
	}
	switch v.Code {
	case "missing_field":
		return msgMissingField(v.Value), true
	case "invalid_category":
		return msgInvalidCategory(v.Value), true
	}
	return v.Message, true
}
