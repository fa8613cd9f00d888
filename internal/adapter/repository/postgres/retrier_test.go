package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func testRetrier() *Retrier {
	r := NewRetrier(zerolog.Nop())
	r.maxRetries = 2
	r.initialInterval = 1 * time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	r.maxElapsedTime = 10 * time.Millisecond
	return r
}

func TestRetrierRetriesOnDeadlock(t *testing.T) {
	r := testRetrier()

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return &pgconn.PgError{Code: pgErrDeadlock}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	r := testRetrier()
	attempts := 0
	permanentErr := errors.New("permanent")

	err := r.Retry(context.Background(), func() error {
		attempts++
		return permanentErr
	})

	if !errors.Is(err, permanentErr) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestIsRetryableError(t *testing.T) {
	if !isRetryableError(&pgconn.PgError{Code: pgErrDeadlock}) {
		t.Fatalf("expected deadlock error to be retryable")
	}
	if !isRetryableError(&pgconn.PgError{Code: pgErrSerializationFailure}) {
		t.Fatalf("expected serialization failure to be retryable")
	}
	if isRetryableError(errors.New("other")) {
		t.Fatalf("expected generic error to be non-retryable")
	}
}

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1300", "-42.50", "0.01", "1234567.89"} {
		d := mustDecimal(t, s)
		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Fatalf("round trip changed %s to %s", d, got)
		}
	}
}

func TestNullDecimalNumericRoundTrip(t *testing.T) {
	null := numericToNullDecimal(nullDecimalToNumeric(mustNullDecimal(t, "")))
	if null.Valid {
		t.Fatalf("expected null to stay null")
	}

	set := numericToNullDecimal(nullDecimalToNumeric(mustNullDecimal(t, "500.00")))
	if !set.Valid || !set.Decimal.Equal(mustDecimal(t, "500.00")) {
		t.Fatalf("expected 500.00, got %+v", set)
	}
}
