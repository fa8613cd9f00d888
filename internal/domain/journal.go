package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusApproved EntryStatus = "approved"
	StatusRejected EntryStatus = "rejected"
)

// IsValid checks if the status is a known status.
func (s EntryStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// EntryType distinguishes regular entries from period-end adjustments.
type EntryType string

const (
	TypeRegular   EntryType = "regular"
	TypeAdjusting EntryType = "adjusting"
)

// IsValid checks if the entry type is known.
func (t EntryType) IsValid() bool {
	return t == TypeRegular || t == TypeAdjusting
}

// JournalEntry is a submitted set of balanced debit/credit movements.
type JournalEntry struct {
	ID             string
	CreatedBy      string
	EntryDate      time.Time
	Type           EntryType
	Status         EntryStatus
	RejectedReason string
	AttachmentURL  string
	ApprovedBy     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Lines          []LineItem
}

// IsFinalized reports whether the entry has left the pending state.
// Approved and rejected are both terminal.
func (e *JournalEntry) IsFinalized() bool {
	return e.Status != StatusPending
}

// LineItem is one debit-or-credit movement targeting a single account.
// EntryDate and Type are denormalized copies of the parent entry's
// values so that reports can range-filter line items directly.
type LineItem struct {
	ID            string
	EntryID       string
	AccountNumber string
	AccountName   string
	Debit         decimal.NullDecimal
	Credit        decimal.NullDecimal
	Description   string
	EntryDate     time.Time
	Type          EntryType
}

// IsBlank reports whether the line is an untouched placeholder row.
// Blank rows are dropped before validation and persistence.
func (l LineItem) IsBlank() bool {
	return strings.TrimSpace(l.AccountName) == "" && !l.Debit.Valid && !l.Credit.Valid
}

// DebitAmount returns the debit amount with null treated as zero.
func (l LineItem) DebitAmount() decimal.Decimal {
	if !l.Debit.Valid {
		return decimal.Zero
	}

	return l.Debit.Decimal
}

// CreditAmount returns the credit amount with null treated as zero.
func (l LineItem) CreditAmount() decimal.Decimal {
	if !l.Credit.Valid {
		return decimal.Zero
	}

	return l.Credit.Decimal
}

// LedgerLine pairs a posted line item with the account's running
// balance after the line is applied.
type LedgerLine struct {
	Line    LineItem
	Balance decimal.Decimal
}

// FilterBlankLines drops placeholder rows, keeping line order.
func FilterBlankLines(lines []LineItem) []LineItem {
	kept := make([]LineItem, 0, len(lines))
	for _, l := range lines {
		if !l.IsBlank() {
			kept = append(kept, l)
		}
	}

	return kept
}

// ValidateLines enforces the per-line and whole-entry invariants on a
// set of non-blank lines. Line indexes in errors refer to positions in
// the given slice.
func ValidateLines(lines []LineItem) error {
	if len(lines) == 0 {
		return &IncompleteLineError{Index: 0, Reason: "entry has no line items"}
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i, l := range lines {
		if strings.TrimSpace(l.AccountName) == "" {
			return &IncompleteLineError{Index: i, Reason: "account name is blank"}
		}

		if !l.Debit.Valid && !l.Credit.Valid {
			return &IncompleteLineError{Index: i, Reason: "line has neither a debit nor a credit amount"}
		}

		if l.Debit.Valid && l.Debit.Decimal.IsNegative() {
			return &IncompleteLineError{Index: i, Reason: "debit amount is negative"}
		}

		if l.Credit.Valid && l.Credit.Decimal.IsNegative() {
			return &IncompleteLineError{Index: i, Reason: "credit amount is negative"}
		}

		// A non-blank line must move money: a lone explicit zero is
		// not a placeholder, it is a malformed line.
		if !l.DebitAmount().IsPositive() && !l.CreditAmount().IsPositive() {
			return &IncompleteLineError{Index: i, Reason: "line amount must be positive"}
		}

		if l.Debit.Valid && l.Debit.Decimal.IsPositive() && l.Credit.Valid && l.Credit.Decimal.IsPositive() {
			return &IncompleteLineError{Index: i, Reason: "line has both a debit and a credit amount"}
		}

		if err := ValidateAmountPrecision(l.DebitAmount()); err != nil {
			return &IncompleteLineError{Index: i, Reason: "debit " + err.Error()}
		}

		if err := ValidateAmountPrecision(l.CreditAmount()); err != nil {
			return &IncompleteLineError{Index: i, Reason: "credit " + err.Error()}
		}

		totalDebit = totalDebit.Add(l.DebitAmount())
		totalCredit = totalCredit.Add(l.CreditAmount())
	}

	// Exact decimal equality at minor-unit precision, never a
	// floating-point tolerance.
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: debits %s, credits %s",
			ErrUnbalancedEntry, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}

	return nil
}
