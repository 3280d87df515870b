// Package airtable implements the catalog record store on the Airtable REST API.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"bibliobot/internal/catalog"
	"bibliobot/internal/filter"
	"bibliobot/internal/repository"
)

const (
	DefaultBaseURL = "https://api.airtable.com/v0"

	// Airtable allows 5 requests per second per base
	defaultRateLimit = 5
	rateBurst        = 5

	defaultTimeout = 30 * time.Second
)

// Options configures a Client.
type Options struct {
	BaseURL   string // defaults to DefaultBaseURL
	APIKey    string
	BaseID    string
	Table     string
	Timeout   time.Duration
	RateLimit float64 // requests per second, defaults to 5
	Logger    *slog.Logger
}

// Client handles record store requests with rate limiting. Failed requests are
// reported to the caller as they are, never retried.
type Client struct {
	baseURL     string
	apiKey      string
	baseID      string
	table       string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

var _ repository.BookRepository = (*Client)(nil)

// NewClient creates a new Airtable client for one table of one base
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		baseURL:     opts.BaseURL,
		apiKey:      opts.APIKey,
		baseID:      opts.BaseID,
		table:       opts.Table,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RateLimit), rateBurst),
		logger:      opts.Logger,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Select fetches every record matching f, following the offset cursor across pages
func (c *Client) Select(ctx context.Context, f filter.Formula) ([]catalog.Book, error) {
	var books []catalog.Book
	offset := ""
	for {
		params := url.Values{}
		if !f.MatchesAll() {
			params.Set("filterByFormula", f.String())
		}
		if offset != "" {
			params.Set("offset", offset)
		}

		var page listResponse
		if err := c.doRequest(ctx, http.MethodGet, c.tablePath(), params, nil, &page); err != nil {
			return nil, wrap("select", err)
		}
		for _, r := range page.Records {
			books = append(books, r.toBook())
		}
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}

	c.logger.Debug("airtable_select",
		"formula", f.String(),
		"records", len(books),
	)
	return books, nil
}

// Create adds a new record to the table
func (c *Client) Create(ctx context.Context, b catalog.Book) (string, error) {
	var created record
	body := createRequest{Fields: fieldsFromBook(b)}
	if err := c.doRequest(ctx, http.MethodPost, c.tablePath(), nil, body, &created); err != nil {
		return "", wrap("create", err)
	}
	c.logger.Info("airtable_record_created", "record_id", created.ID, "title", b.Title)
	return created.ID, nil
}

// Update patches the status columns of a record
func (c *Client) Update(ctx context.Context, id string, p catalog.Patch) (*catalog.Book, error) {
	var body updateRequest
	body.Fields.Status = string(p.Status)
	if p.LoanedTo != "" {
		loanee := p.LoanedTo
		body.Fields.LoanedTo = &loanee
	}

	var updated record
	if err := c.doRequest(ctx, http.MethodPatch, c.tablePath()+"/"+url.PathEscape(id), nil, body, &updated); err != nil {
		return nil, wrap("update", err)
	}
	c.logger.Info("airtable_record_updated", "record_id", id, "status", p.Status)
	book := updated.toBook()
	return &book, nil
}

func (c *Client) tablePath() string {
	return "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(c.table)
}

// statusError is an HTTP error answer of the API
type statusError struct {
	code int
	api  apiError
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.code, e.api.Error())
}

// doRequest performs one rate limited HTTP request and decodes the JSON answer into result
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, body, result interface{}) error {
	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode, api: parseError(respBody)}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func wrap(op string, err error) error {
	re := &repository.RemoteError{Op: op, Err: err}
	if se, ok := err.(*statusError); ok {
		re.StatusCode = se.code
	}
	return re
}
