package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is one account's computed balance within a report.
type AccountBalance struct {
	Number  string
	Name    string
	Balance decimal.Decimal
}

// BalanceSheet lists asset, liability, and equity balances for an
// inclusive date range. Reports are derived values, recomputed per
// request and never persisted as primary records.
type BalanceSheet struct {
	Start            time.Time
	End              time.Time
	Assets           []AccountBalance
	Liabilities      []AccountBalance
	Equity           []AccountBalance
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
}

// IncomeStatement lists revenue and expense balances for a date range.
// Income statement accounts seed at zero; initial balances do not
// carry forward.
type IncomeStatement struct {
	Start         time.Time
	End           time.Time
	Revenue       []AccountBalance
	Expenses      []AccountBalance
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
}

// TrialBalanceRow is one account's ending balance routed to its normal
// side's column.
type TrialBalanceRow struct {
	Number     string
	Name       string
	NormalSide NormalSide
	Balance    decimal.Decimal
}

// TrialBalance lists every account's normal-side-signed balance. When
// all historical entries are fully posted, TotalDebit equals
// TotalCredit; this is a property of correct posting, not something
// the report construction enforces.
type TrialBalance struct {
	Start       time.Time
	End         time.Time
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Ratios are the dashboard's derived financial ratios. Each ratio is
// null (Valid=false) when its denominator is zero rather than a NaN or
// a division panic.
type Ratios struct {
	Start             time.Time
	End               time.Time
	GrossProfit       decimal.Decimal
	GrossProfitMargin decimal.NullDecimal
	CurrentRatio      decimal.NullDecimal
	DebtToEquity      decimal.NullDecimal
}

// ComputeRatios derives the dashboard ratios from a month-to-date
// income statement and balance sheet.
func ComputeRatios(is *IncomeStatement, bs *BalanceSheet) Ratios {
	r := Ratios{
		Start:       is.Start,
		End:         is.End,
		GrossProfit: is.TotalRevenue.Sub(is.TotalExpenses),
	}

	r.GrossProfitMargin = safeDivide(r.GrossProfit, is.TotalRevenue)
	r.CurrentRatio = safeDivide(bs.TotalAssets, bs.TotalLiabilities)
	r.DebtToEquity = safeDivide(bs.TotalLiabilities, bs.TotalEquity)

	return r
}

func safeDivide(numerator, denominator decimal.Decimal) decimal.NullDecimal {
	if denominator.IsZero() {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: numerator.DivRound(denominator, 4), Valid: true}
}

// AccumulateBalance computes one account's report balance: the seed
// plus the signed sum of the given line items that target the account.
func AccumulateBalance(account *Account, seed decimal.Decimal, lines []LineItem) decimal.Decimal {
	balance := seed
	for _, l := range lines {
		if l.AccountNumber != account.Number {
			continue
		}

		balance = balance.Add(account.SignedDelta(l.DebitAmount(), l.CreditAmount()))
	}

	return balance
}
