package usecase

import (
	"bytes"
	"encoding/csv"

	"github.com/ledgerlite/ledgerlite/internal/domain"
)

// CSV renderings of the reports, stored as downloadable artifacts.
// Amounts are written with two decimal places to match statement
// presentation.

func balanceSheetCSV(bs *domain.BalanceSheet) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	writeRow(w, "section", "account_number", "account_name", "balance")
	writeBalances(w, "assets", bs.Assets)
	writeRow(w, "assets", "", "Total Assets", bs.TotalAssets.StringFixed(2))
	writeBalances(w, "liabilities", bs.Liabilities)
	writeRow(w, "liabilities", "", "Total Liabilities", bs.TotalLiabilities.StringFixed(2))
	writeBalances(w, "equity", bs.Equity)
	writeRow(w, "equity", "", "Total Equity", bs.TotalEquity.StringFixed(2))

	w.Flush()

	return buf.Bytes()
}

func incomeStatementCSV(is *domain.IncomeStatement) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	writeRow(w, "section", "account_number", "account_name", "balance")
	writeBalances(w, "revenue", is.Revenue)
	writeRow(w, "revenue", "", "Total Revenue", is.TotalRevenue.StringFixed(2))
	writeBalances(w, "expenses", is.Expenses)
	writeRow(w, "expenses", "", "Total Expenses", is.TotalExpenses.StringFixed(2))
	writeRow(w, "", "", "Net Income", is.NetIncome.StringFixed(2))

	w.Flush()

	return buf.Bytes()
}

func trialBalanceCSV(tb *domain.TrialBalance) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	writeRow(w, "account_number", "account_name", "debit", "credit")

	for _, row := range tb.Rows {
		debit, credit := "", ""
		if row.NormalSide == domain.SideDebit {
			debit = row.Balance.StringFixed(2)
		} else {
			credit = row.Balance.StringFixed(2)
		}

		writeRow(w, row.Number, row.Name, debit, credit)
	}

	writeRow(w, "", "Totals", tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2))

	w.Flush()

	return buf.Bytes()
}

func writeBalances(w *csv.Writer, section string, balances []domain.AccountBalance) {
	for _, b := range balances {
		writeRow(w, section, b.Number, b.Name, b.Balance.StringFixed(2))
	}
}

func writeRow(w *csv.Writer, fields ...string) {
	_ = w.Write(fields)
}
