package postgres

import (
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

// anyArgs returns n pgxmock.AnyArg matchers; pgxmock requires the
// expectation's argument count to match the call even when the test
// does not care about the values.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func mustNullDecimal(t *testing.T, s string) decimal.NullDecimal {
	t.Helper()
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: mustDecimal(t, s), Valid: true}
}
