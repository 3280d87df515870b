package catalog

import "strings"

// CheckLoan checks a raw status value against loaned_to.
// Transition errors take precedence over an unknown status, so a request like
// "Uitgeleend" without a loanee is reported as a missing loanee.
func CheckLoan(rawStatus, loanedTo string) (Status, error) {
	status := Status(strings.TrimSpace(rawStatus))
	loanee := strings.TrimSpace(loanedTo)

	if status == StatusAvailable && loanee != "" {
		return "", ErrInvalidTransition
	}
	if status == StatusLoaned && loanee == "" {
		return "", ErrMissingLoanee
	}
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Validate checks a new book before it is created.
func (b Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return MissingFieldError("title")
	}
	if strings.TrimSpace(b.Author) == "" {
		return MissingFieldError("author")
	}
	if strings.TrimSpace(b.Owner) == "" {
		return MissingFieldError("owner")
	}
	if _, err := CheckLoan(string(b.Status), b.LoanedTo); err != nil {
		return err
	}
	if len(b.CoverImages) > MaxCoverImages {
		return ErrTooManyCovers
	}
	if len(b.Categories) > MaxCategories {
		return ErrTooManyCategories
	}
	for _, c := range b.Categories {
		if !c.Valid() {
			return InvalidCategoryError(c)
		}
	}
	return nil
}
