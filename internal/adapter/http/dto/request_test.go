package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlite/ledgerlite/internal/domain"
)

func TestSubmitEntryRequest_ToUseCaseInput(t *testing.T) {
	req := &SubmitEntryRequest{
		EntryDate: "2026-03-15",
		Type:      "adjusting",
		Lines: []EntryLineRequest{
			{AccountName: "Cash", Debit: decimal.NewNullDecimal(decimal.NewFromInt(100))},
			{AccountName: "Revenue", Credit: decimal.NewNullDecimal(decimal.NewFromInt(100))},
		},
	}

	got, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Type != domain.TypeAdjusting {
		t.Fatalf("expected adjusting type, got %s", got.Type)
	}
	if !got.EntryDate.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected parsed entry date, got %v", got.EntryDate)
	}
	if len(got.Lines) != 2 || got.Lines[1].AccountName != "Revenue" {
		t.Fatalf("expected lines to carry over, got %+v", got.Lines)
	}
	if got.Lines[1].Debit.Valid {
		t.Fatal("expected empty debit cell to stay null")
	}
}

func TestSubmitEntryRequest_ToUseCaseInput_BadDate(t *testing.T) {
	req := &SubmitEntryRequest{EntryDate: "15/03/2026"}

	if _, err := req.ToUseCaseInput(); err == nil {
		t.Fatal("expected error for malformed entry date")
	}
}

func TestSubmitEntryRequest_NullAmountsFromJSON(t *testing.T) {
	payload := `{
		"entry_date": "2026-03-15",
		"lines": [
			{"account_name": "Cash", "debit": "250.00", "credit": null},
			{"account_name": "", "debit": null, "credit": null}
		]
	}`

	var req SubmitEntryRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}

	if !req.Lines[0].Debit.Valid || req.Lines[0].Debit.Decimal.String() != "250" {
		t.Fatalf("expected debit 250, got %+v", req.Lines[0].Debit)
	}
	if req.Lines[0].Credit.Valid {
		t.Fatal("expected null credit to decode as invalid")
	}
	if req.Lines[1].Debit.Valid || req.Lines[1].Credit.Valid {
		t.Fatal("expected placeholder row to decode with null amounts")
	}
}

func TestParseDateRange(t *testing.T) {
	rng, err := ParseDateRange("2026-01-01", "2026-03-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rng.Start.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected start at midnight, got %v", rng.Start)
	}

	// The end day is included in full.
	endOfDay := time.Date(2026, 3, 31, 23, 59, 59, 999999999, time.UTC)
	if !rng.End.Equal(endOfDay) {
		t.Fatalf("expected end of day, got %v", rng.End)
	}
}

func TestParseDateRange_Invalid(t *testing.T) {
	if _, err := ParseDateRange("not-a-date", "2026-03-31"); err == nil {
		t.Fatal("expected error for malformed start date")
	}
	if _, err := ParseDateRange("2026-01-01", "31/03/2026"); err == nil {
		t.Fatal("expected error for malformed end date")
	}
}
