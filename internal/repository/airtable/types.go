package airtable

import (
	"encoding/json"

	"bibliobot/internal/catalog"
)

// ============================================
// API RESPONSE STRUCTURES
// ============================================

// listResponse is one page of GET /{base}/{table}
type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type record struct {
	ID          string `json:"id"`
	CreatedTime string `json:"createdTime,omitempty"`
	Fields      fields `json:"fields"`
}

// fields mirrors the columns of the catalog table
type fields struct {
	Title       string       `json:"Boek,omitempty"`
	Author      string       `json:"Auteur,omitempty"`
	Status      string       `json:"Status,omitempty"`
	Owner       string       `json:"Eigenaar,omitempty"`
	LoanedTo    string       `json:"Uitgeleend aan,omitempty"`
	Description string       `json:"Beschrijving,omitempty"`
	Language    string       `json:"Taal,omitempty"`
	Covers      []attachment `json:"Omslag,omitempty"`
	PageCount   float64      `json:"Aantal bladzijden,omitempty"`
	Categories  stringList   `json:"Categorie,omitempty"`
	Theme       string       `json:"Thema,omitempty"`
}

type attachment struct {
	URL string `json:"url"`
}

// stringList accepts both a multi-select array and a single text value.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one != "" {
		*l = stringList{one}
	}
	return nil
}

// createRequest is the body of POST /{base}/{table}
type createRequest struct {
	Fields fields `json:"fields"`
}

// updateRequest is the body of PATCH /{base}/{table}/{id}. A nil LoanedTo
// is sent as null so the store clears the cell.
type updateRequest struct {
	Fields struct {
		Status   string  `json:"Status"`
		LoanedTo *string `json:"Uitgeleend aan"`
	} `json:"fields"`
}

// errorResponse covers both error shapes the API returns:
// {"error": {"type": "...", "message": "..."}} and {"error": "NOT_FOUND"}
type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (a apiError) Error() string {
	if a.Message == "" {
		return a.Type
	}
	return a.Type + ": " + a.Message
}

func parseError(body []byte) apiError {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Error) == 0 {
		return apiError{Type: "UNKNOWN", Message: string(body)}
	}
	var structured apiError
	if err := json.Unmarshal(resp.Error, &structured); err == nil {
		return structured
	}
	var code string
	if err := json.Unmarshal(resp.Error, &code); err == nil {
		return apiError{Type: code}
	}
	return apiError{Type: "UNKNOWN", Message: string(resp.Error)}
}

// ============================================
// CONVERSIONS
// ============================================

func (r record) toBook() catalog.Book {
	b := catalog.Book{
		ID:          r.ID,
		Title:       r.Fields.Title,
		Author:      r.Fields.Author,
		Status:      catalog.Status(r.Fields.Status),
		Owner:       r.Fields.Owner,
		LoanedTo:    r.Fields.LoanedTo,
		Description: r.Fields.Description,
		Language:    r.Fields.Language,
		PageCount:   int(r.Fields.PageCount),
		Theme:       r.Fields.Theme,
	}
	for _, a := range r.Fields.Covers {
		if a.URL != "" {
			b.CoverImages = append(b.CoverImages, a.URL)
		}
	}
	for _, c := range r.Fields.Categories {
		b.Categories = append(b.Categories, catalog.Category(c))
	}
	return b
}

func fieldsFromBook(b catalog.Book) fields {
	f := fields{
		Title:       b.Title,
		Author:      b.Author,
		Status:      string(b.Status),
		Owner:       b.Owner,
		LoanedTo:    b.LoanedTo,
		Description: b.Description,
		Language:    b.Language,
		PageCount:   float64(b.PageCount),
		Categories:  b.CategoryNames(),
		Theme:       b.Theme,
	}
	for _, url := range b.CoverImages {
		f.Covers = append(f.Covers, attachment{URL: url})
	}
	return f
}
