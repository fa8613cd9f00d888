package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildAccountNumber(t *testing.T) {
	tests := []struct {
		name     string
		category AccountCategory
		suffix   string
		want     string
		wantErr  bool
	}{
		{name: "assets prefix 1", category: CategoryAssets, suffix: "000", want: "1000"},
		{name: "liabilities prefix 2", category: CategoryLiabilities, suffix: "000", want: "2000"},
		{name: "equity prefix 3", category: CategoryEquity, suffix: "100", want: "3100"},
		{name: "revenue prefix 4", category: CategoryRevenue, suffix: "200", want: "4200"},
		{name: "expenses prefix 5", category: CategoryExpenses, suffix: "300", want: "5300"},
		{name: "unknown category", category: "crypto", suffix: "000", wantErr: true},
		{name: "empty suffix", category: CategoryAssets, suffix: "", wantErr: true},
		{name: "non-numeric suffix", category: CategoryAssets, suffix: "12a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildAccountNumber(tt.category, tt.suffix)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got number %q", got)
				}
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSignedDelta(t *testing.T) {
	debitNormal := &Account{Number: "1000", NormalSide: SideDebit}
	creditNormal := &Account{Number: "2000", NormalSide: SideCredit}

	tests := []struct {
		name    string
		account *Account
		debit   string
		credit  string
		want    string
	}{
		{name: "debit on debit-normal increases", account: debitNormal, debit: "500.00", credit: "0", want: "500"},
		{name: "credit on debit-normal decreases", account: debitNormal, debit: "0", credit: "200.00", want: "-200"},
		{name: "credit on credit-normal increases", account: creditNormal, debit: "0", credit: "500.00", want: "500"},
		{name: "debit on credit-normal decreases", account: creditNormal, debit: "300.00", credit: "0", want: "-300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, _ := decimal.NewFromString(tt.debit)
			credit, _ := decimal.NewFromString(tt.credit)
			want, _ := decimal.NewFromString(tt.want)

			got := tt.account.SignedDelta(debit, credit)
			if !got.Equal(want) {
				t.Errorf("expected delta %s, got %s", want, got)
			}
		})
	}
}

func TestDefaultNormalSide(t *testing.T) {
	if CategoryAssets.DefaultNormalSide() != SideDebit {
		t.Errorf("assets should default debit-normal")
	}
	if CategoryExpenses.DefaultNormalSide() != SideDebit {
		t.Errorf("expenses should default debit-normal")
	}
	if CategoryLiabilities.DefaultNormalSide() != SideCredit {
		t.Errorf("liabilities should default credit-normal")
	}
	if CategoryEquity.DefaultNormalSide() != SideCredit {
		t.Errorf("equity should default credit-normal")
	}
	if CategoryRevenue.DefaultNormalSide() != SideCredit {
		t.Errorf("revenue should default credit-normal")
	}
}

func TestCanArchive(t *testing.T) {
	zero := &Account{Number: "1000", Balance: decimal.Zero}
	if err := zero.CanArchive(); err != nil {
		t.Errorf("zero-balance account should be archivable, got %v", err)
	}

	nonZero := &Account{Number: "1000", Balance: decimal.NewFromInt(10)}
	err := nonZero.CanArchive()
	if !errors.Is(err, ErrNonZeroBalance) {
		t.Errorf("expected ErrNonZeroBalance, got %v", err)
	}

	negative := &Account{Number: "2000", Balance: decimal.NewFromInt(-5)}
	if err := negative.CanArchive(); !errors.Is(err, ErrNonZeroBalance) {
		t.Errorf("expected ErrNonZeroBalance for negative balance, got %v", err)
	}
}
