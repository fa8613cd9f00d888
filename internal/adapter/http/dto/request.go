package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/usecase"
)

const dateLayout = "2006-01-02"

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	NumberSuffix   string          `json:"number_suffix"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory"`
	NormalSide     string          `json:"normal_side"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Order          int             `json:"order"`
	Statement      string          `json:"statement"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		NumberSuffix:   r.NumberSuffix,
		Name:           r.Name,
		Description:    r.Description,
		Category:       domain.AccountCategory(r.Category),
		Subcategory:    r.Subcategory,
		NormalSide:     domain.NormalSide(r.NormalSide),
		InitialBalance: r.InitialBalance,
		Order:          r.Order,
		Statement:      r.Statement,
	}
}

// UpdateAccountRequest represents a partial account update. Absent
// fields are left untouched.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Subcategory *string `json:"subcategory"`
	Order       *int    `json:"order"`
	Statement   *string `json:"statement"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Name:        r.Name,
		Description: r.Description,
		Subcategory: r.Subcategory,
		Order:       r.Order,
		Statement:   r.Statement,
	}
}

// SubmitEntryRequest represents a journal entry submission. Lines may
// include untouched placeholder rows; they are dropped server-side.
type SubmitEntryRequest struct {
	EntryDate     string             `json:"entry_date"`
	Type          string             `json:"type"`
	AttachmentURL string             `json:"attachment_url"`
	Lines         []EntryLineRequest `json:"lines"`
}

// EntryLineRequest is one submitted journal row. Debit and credit are
// null when the cell was left empty.
type EntryLineRequest struct {
	AccountName string              `json:"account_name"`
	Debit       decimal.NullDecimal `json:"debit"`
	Credit      decimal.NullDecimal `json:"credit"`
	Description string              `json:"description"`
}

// ToUseCaseInput converts to use case input, parsing the entry date.
func (r *SubmitEntryRequest) ToUseCaseInput() (usecase.SubmitEntryInput, error) {
	var entryDate time.Time
	if r.EntryDate != "" {
		parsed, err := time.Parse(dateLayout, r.EntryDate)
		if err != nil {
			return usecase.SubmitEntryInput{}, fmt.Errorf("invalid entry_date %q, want YYYY-MM-DD", r.EntryDate)
		}
		entryDate = parsed
	}

	lines := make([]usecase.LineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = usecase.LineInput{
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}

	return usecase.SubmitEntryInput{
		EntryDate:     entryDate,
		Type:          domain.EntryType(r.Type),
		AttachmentURL: r.AttachmentURL,
		Lines:         lines,
	}, nil
}

// RejectEntryRequest carries the mandatory rejection reason.
type RejectEntryRequest struct {
	Reason string `json:"reason"`
}

// ParseDateRange reads start/end date strings into a report range.
func ParseDateRange(start, end string) (usecase.DateRange, error) {
	var rng usecase.DateRange

	if start != "" {
		parsed, err := time.Parse(dateLayout, start)
		if err != nil {
			return rng, fmt.Errorf("invalid start date %q, want YYYY-MM-DD", start)
		}
		rng.Start = parsed
	}

	if end != "" {
		parsed, err := time.Parse(dateLayout, end)
		if err != nil {
			return rng, fmt.Errorf("invalid end date %q, want YYYY-MM-DD", end)
		}
		// The range is inclusive of the whole end day.
		rng.End = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	return rng, nil
}
