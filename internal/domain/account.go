package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountCategory classifies an account in the chart of accounts.
type AccountCategory string

const (
	CategoryAssets      AccountCategory = "assets"
	CategoryLiabilities AccountCategory = "liabilities"
	CategoryEquity      AccountCategory = "equity"
	CategoryRevenue     AccountCategory = "revenue"
	CategoryExpenses    AccountCategory = "expenses"
)

// categoryPrefixes maps each category to the leading digit of its
// account numbers.
var categoryPrefixes = map[AccountCategory]string{
	CategoryAssets:      "1",
	CategoryLiabilities: "2",
	CategoryEquity:      "3",
	CategoryRevenue:     "4",
	CategoryExpenses:    "5",
}

// BalanceSheetCategories are the categories that appear on a balance
// sheet and carry an initial balance forward.
var BalanceSheetCategories = []AccountCategory{CategoryAssets, CategoryLiabilities, CategoryEquity}

// IncomeStatementCategories are the categories that appear on an
// income statement; their report balances seed at zero.
var IncomeStatementCategories = []AccountCategory{CategoryRevenue, CategoryExpenses}

// IsValid checks if the category is a known category.
func (c AccountCategory) IsValid() bool {
	_, ok := categoryPrefixes[c]
	return ok
}

// DefaultNormalSide returns the conventional normal side for the
// category. This is a convention only: the account's stored normal
// side is authoritative for all sign computation.
func (c AccountCategory) DefaultNormalSide() NormalSide {
	switch c {
	case CategoryAssets, CategoryExpenses:
		return SideDebit
	default:
		return SideCredit
	}
}

// OnBalanceSheet reports whether the category carries its initial
// balance forward into balance sheet style reports.
func (c AccountCategory) OnBalanceSheet() bool {
	return c == CategoryAssets || c == CategoryLiabilities || c == CategoryEquity
}

// NormalSide is the side on which increases to an account are recorded.
type NormalSide string

const (
	SideDebit  NormalSide = "debit"
	SideCredit NormalSide = "credit"
)

// IsValid checks if the normal side is debit or credit.
func (s NormalSide) IsValid() bool {
	return s == SideDebit || s == SideCredit
}

// BuildAccountNumber prepends the category prefix digit to a
// caller-supplied numeric suffix.
func BuildAccountNumber(category AccountCategory, suffix string) (string, error) {
	prefix, ok := categoryPrefixes[category]
	if !ok {
		return "", fmt.Errorf("%w: unknown account category %q", ErrValidation, category)
	}

	if suffix == "" {
		return "", fmt.Errorf("%w: account number suffix is required", ErrValidation)
	}

	for _, r := range suffix {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: account number suffix %q must be numeric", ErrValidation, suffix)
		}
	}

	return prefix + suffix, nil
}

// Account represents one account in the chart of accounts.
type Account struct {
	Number         string
	Name           string
	Description    string
	Category       AccountCategory
	Subcategory    string
	NormalSide     NormalSide
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	Archived       bool
	Order          int
	Statement      string
	CreatedBy      string
	LastModifiedBy string
	LastApprovedBy string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SignedDelta converts a debit/credit pair into the balance change for
// this account: positive when the movement lands on the account's
// normal side, negative otherwise. The stored normal side governs,
// never the category default.
func (a *Account) SignedDelta(debit, credit decimal.Decimal) decimal.Decimal {
	if a.NormalSide == SideDebit {
		return debit.Sub(credit)
	}

	return credit.Sub(debit)
}

// CanArchive checks if the account may be archived.
func (a *Account) CanArchive() error {
	if !a.Balance.IsZero() {
		return fmt.Errorf("%w: account %s has balance %s", ErrNonZeroBalance, a.Number, a.Balance.StringFixed(2))
	}

	return nil
}
