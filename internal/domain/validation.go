package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxDecimalPlaces     = 2
)

// ValidateAccountName validates an account display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: account name is required", ErrValidation)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: account name exceeds %d characters", ErrValidation, MaxAccountNameLength)
	}

	return nil
}

// ValidateAmountPrecision rejects amounts finer than minor-unit
// (cent) precision. Currency values are stored and compared exactly.
func ValidateAmountPrecision(amount decimal.Decimal) error {
	if amount.Exponent() < -MaxDecimalPlaces && !amount.Equal(amount.Round(MaxDecimalPlaces)) {
		return fmt.Errorf("amount %s has more than %d decimal places", amount, MaxDecimalPlaces)
	}

	return nil
}
