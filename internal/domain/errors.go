package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrDuplicateAccountNumber = errors.New("account number already in use")
	ErrNonZeroBalance         = errors.New("account balance must be zero to archive")

	// Journal entry errors
	ErrEntryNotFound    = errors.New("journal entry not found")
	ErrAlreadyFinalized = errors.New("journal entry has already been approved or rejected")
	ErrUnbalancedEntry  = errors.New("journal entry debits do not equal credits")
	ErrUnknownAccount   = errors.New("line item references an unknown account")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// Authorization errors
	ErrForbidden = errors.New("insufficient role for this operation")
)

// IncompleteLineError identifies a malformed journal line by its
// position in the submitted entry.
type IncompleteLineError struct {
	Index  int
	Reason string
}

func (e *IncompleteLineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Index, e.Reason)
}

// Unwrap makes the error match ErrValidation via errors.Is.
func (e *IncompleteLineError) Unwrap() error {
	return ErrValidation
}

// PartialPostingError reports which account update failed while an
// entry was being posted. The surrounding transaction is rolled back,
// so no balance change is ever half-applied.
type PartialPostingError struct {
	AccountNumber string
	Err           error
}

func (e *PartialPostingError) Error() string {
	return fmt.Sprintf("posting failed on account %s: %v", e.AccountNumber, e.Err)
}

func (e *PartialPostingError) Unwrap() error {
	return e.Err
}
