package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	Number         string          `json:"number"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory,omitempty"`
	NormalSide     string          `json:"normal_side"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Balance        decimal.Decimal `json:"balance"`
	Archived       bool            `json:"archived"`
	Order          int             `json:"order"`
	Statement      string          `json:"statement,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		Number:         a.Number,
		Name:           a.Name,
		Description:    a.Description,
		Category:       string(a.Category),
		Subcategory:    a.Subcategory,
		NormalSide:     string(a.NormalSide),
		InitialBalance: a.InitialBalance,
		Balance:        a.Balance,
		Archived:       a.Archived,
		Order:          a.Order,
		Statement:      a.Statement,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// LineItemResponse represents a journal line in API responses.
type LineItemResponse struct {
	ID            string              `json:"id"`
	AccountNumber string              `json:"account_number"`
	AccountName   string              `json:"account_name"`
	Debit         decimal.NullDecimal `json:"debit"`
	Credit        decimal.NullDecimal `json:"credit"`
	Description   string              `json:"description,omitempty"`
}

// JournalEntryResponse represents a journal entry in API responses.
type JournalEntryResponse struct {
	ID             string             `json:"id"`
	CreatedBy      string             `json:"created_by"`
	EntryDate      string             `json:"entry_date"`
	Type           string             `json:"type"`
	Status         string             `json:"status"`
	RejectedReason string             `json:"rejected_reason,omitempty"`
	AttachmentURL  string             `json:"attachment_url,omitempty"`
	ApprovedBy     string             `json:"approved_by,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Lines          []LineItemResponse `json:"lines"`
}

// EntryFromDomain converts a domain journal entry to a response.
func EntryFromDomain(e *domain.JournalEntry) *JournalEntryResponse {
	lines := make([]LineItemResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LineItemResponse{
			ID:            l.ID,
			AccountNumber: l.AccountNumber,
			AccountName:   l.AccountName,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Description:   l.Description,
		}
	}

	return &JournalEntryResponse{
		ID:             e.ID,
		CreatedBy:      e.CreatedBy,
		EntryDate:      e.EntryDate.Format(dateLayout),
		Type:           string(e.Type),
		Status:         string(e.Status),
		RejectedReason: e.RejectedReason,
		AttachmentURL:  e.AttachmentURL,
		ApprovedBy:     e.ApprovedBy,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		Lines:          lines,
	}
}

// EntriesFromDomain converts domain journal entries to responses.
func EntriesFromDomain(entries []*domain.JournalEntry) []*JournalEntryResponse {
	result := make([]*JournalEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps an entry listing.
type ListEntriesResponse struct {
	Entries []*JournalEntryResponse `json:"entries"`
	Total   int64                   `json:"total"`
}

// LedgerLineResponse is one posted line with the running balance after
// it was applied.
type LedgerLineResponse struct {
	Line    LineItemResponse `json:"line"`
	Date    string           `json:"date"`
	Balance decimal.Decimal  `json:"balance"`
}

// LedgerResponse is the per-account ledger view.
type LedgerResponse struct {
	Account *AccountResponse     `json:"account"`
	Lines   []LedgerLineResponse `json:"lines"`
}

// LedgerFromDomain converts an account and its ledger lines.
func LedgerFromDomain(account *domain.Account, lines []domain.LedgerLine) *LedgerResponse {
	out := make([]LedgerLineResponse, len(lines))
	for i, ll := range lines {
		out[i] = LedgerLineResponse{
			Line: LineItemResponse{
				ID:            ll.Line.ID,
				AccountNumber: ll.Line.AccountNumber,
				AccountName:   ll.Line.AccountName,
				Debit:         ll.Line.Debit,
				Credit:        ll.Line.Credit,
				Description:   ll.Line.Description,
			},
			Date:    ll.Line.EntryDate.Format(dateLayout),
			Balance: ll.Balance,
		}
	}

	return &LedgerResponse{
		Account: AccountFromDomain(account),
		Lines:   out,
	}
}

// AccountBalanceResponse is one account balance line in a report.
type AccountBalanceResponse struct {
	Number  string          `json:"number"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

func accountBalances(balances []domain.AccountBalance) []AccountBalanceResponse {
	result := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = AccountBalanceResponse{Number: b.Number, Name: b.Name, Balance: b.Balance}
	}
	return result
}

// BalanceSheetResponse represents a balance sheet report.
type BalanceSheetResponse struct {
	Start            string                   `json:"start"`
	End              string                   `json:"end"`
	Assets           []AccountBalanceResponse `json:"assets"`
	Liabilities      []AccountBalanceResponse `json:"liabilities"`
	Equity           []AccountBalanceResponse `json:"equity"`
	TotalAssets      decimal.Decimal          `json:"total_assets"`
	TotalLiabilities decimal.Decimal          `json:"total_liabilities"`
	TotalEquity      decimal.Decimal          `json:"total_equity"`
	DocumentURL      string                   `json:"document_url,omitempty"`
}

// BalanceSheetFromDomain converts a balance sheet to a response.
func BalanceSheetFromDomain(bs *domain.BalanceSheet, documentURL string) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		Start:            bs.Start.Format(dateLayout),
		End:              bs.End.Format(dateLayout),
		Assets:           accountBalances(bs.Assets),
		Liabilities:      accountBalances(bs.Liabilities),
		Equity:           accountBalances(bs.Equity),
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		TotalEquity:      bs.TotalEquity,
		DocumentURL:      documentURL,
	}
}

// IncomeStatementResponse represents an income statement report.
type IncomeStatementResponse struct {
	Start         string                   `json:"start"`
	End           string                   `json:"end"`
	Revenue       []AccountBalanceResponse `json:"revenue"`
	Expenses      []AccountBalanceResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal          `json:"total_revenue"`
	TotalExpenses decimal.Decimal          `json:"total_expenses"`
	NetIncome     decimal.Decimal          `json:"net_income"`
	DocumentURL   string                   `json:"document_url,omitempty"`
}

// IncomeStatementFromDomain converts an income statement to a response.
func IncomeStatementFromDomain(is *domain.IncomeStatement, documentURL string) *IncomeStatementResponse {
	return &IncomeStatementResponse{
		Start:         is.Start.Format(dateLayout),
		End:           is.End.Format(dateLayout),
		Revenue:       accountBalances(is.Revenue),
		Expenses:      accountBalances(is.Expenses),
		TotalRevenue:  is.TotalRevenue,
		TotalExpenses: is.TotalExpenses,
		NetIncome:     is.NetIncome,
		DocumentURL:   documentURL,
	}
}

// TrialBalanceRowResponse is one trial balance row with the balance in
// its normal side's column.
type TrialBalanceRowResponse struct {
	Number string              `json:"number"`
	Name   string              `json:"name"`
	Debit  decimal.NullDecimal `json:"debit"`
	Credit decimal.NullDecimal `json:"credit"`
}

// TrialBalanceResponse represents a trial balance report.
type TrialBalanceResponse struct {
	Start       string                    `json:"start"`
	End         string                    `json:"end"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"total_debit"`
	TotalCredit decimal.Decimal           `json:"total_credit"`
	DocumentURL string                    `json:"document_url,omitempty"`
}

// TrialBalanceFromDomain converts a trial balance to a response.
func TrialBalanceFromDomain(tb *domain.TrialBalance, documentURL string) *TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, row := range tb.Rows {
		r := TrialBalanceRowResponse{Number: row.Number, Name: row.Name}
		if row.NormalSide == domain.SideDebit {
			r.Debit = decimal.NullDecimal{Decimal: row.Balance, Valid: true}
		} else {
			r.Credit = decimal.NullDecimal{Decimal: row.Balance, Valid: true}
		}
		rows[i] = r
	}

	return &TrialBalanceResponse{
		Start:       tb.Start.Format(dateLayout),
		End:         tb.End.Format(dateLayout),
		Rows:        rows,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
		DocumentURL: documentURL,
	}
}

// RatiosResponse represents the dashboard ratios. Ratios with a zero
// denominator serialize as null.
type RatiosResponse struct {
	Start             string              `json:"start"`
	End               string              `json:"end"`
	GrossProfit       decimal.Decimal     `json:"gross_profit"`
	GrossProfitMargin decimal.NullDecimal `json:"gross_profit_margin"`
	CurrentRatio      decimal.NullDecimal `json:"current_ratio"`
	DebtToEquity      decimal.NullDecimal `json:"debt_to_equity"`
}

// RatiosFromDomain converts ratios to a response.
func RatiosFromDomain(r *domain.Ratios) *RatiosResponse {
	return &RatiosResponse{
		Start:             r.Start.Format(dateLayout),
		End:               r.End.Format(dateLayout),
		GrossProfit:       r.GrossProfit,
		GrossProfitMargin: r.GrossProfitMargin,
		CurrentRatio:      r.CurrentRatio,
		DebtToEquity:      r.DebtToEquity,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
