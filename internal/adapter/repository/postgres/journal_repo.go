package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerlite/ledgerlite/internal/domain"
	"github.com/ledgerlite/ledgerlite/internal/usecase"
)

const entryColumns = `id, created_by, entry_date, type, status, rejected_reason,
	attachment_url, approved_by, created_at, updated_at`

const lineColumns = `id, entry_id, account_number, account_name, debit, credit,
	description, entry_date, type`

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	pool db
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

// CreateEntry persists the entry and its line items atomically.
func (r *JournalRepository) CreateEntry(ctx context.Context, entry *domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID,
		entry.CreatedBy,
		timeToPgTimestamptz(entry.EntryDate),
		string(entry.Type),
		string(entry.Status),
		entry.RejectedReason,
		entry.AttachmentURL,
		entry.ApprovedBy,
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return err
	}

	for _, line := range entry.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO journal_line_items (`+lineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			line.ID,
			line.EntryID,
			line.AccountNumber,
			line.AccountName,
			nullDecimalToNumeric(line.Debit),
			nullDecimalToNumeric(line.Credit),
			line.Description,
			timeToPgTimestamptz(line.EntryDate),
			string(line.Type),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetEntry retrieves an entry with its line items.
func (r *JournalRepository) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return getEntry(ctx, r.pool, id, "")
}

// GetEntryForUpdate retrieves an entry with a FOR UPDATE lock inside
// the caller's transaction.
func (r *JournalRepository) GetEntryForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.JournalEntry, error) {
	return getEntry(ctx, tx.(*Tx).PgxTx(), id, " FOR UPDATE")
}

func getEntry(ctx context.Context, q querier, id, lock string) (*domain.JournalEntry, error) {
	row := q.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM journal_entries WHERE id = $1`+lock, id)

	entry, err := scanEntry(row)
	if err != nil {
		return nil, err
	}

	lines, err := queryLines(ctx, q, `
		SELECT `+lineColumns+` FROM journal_line_items
		WHERE entry_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, err
	}

	entry.Lines = lines

	return entry, nil
}

// MarkApproved flips a pending entry to approved inside the caller's
// transaction.
func (r *JournalRepository) MarkApproved(ctx context.Context, tx usecase.Transaction, id, approvedBy string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $2, approved_by = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		id, string(domain.StatusApproved), approvedBy,
		timeToPgTimestamptz(updatedAt), string(domain.StatusPending))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// MarkRejected flips a pending entry to rejected with a reason. The
// update is conditional on the pending status; when it matches no row,
// the entry either does not exist or lost a race to another reviewer,
// and the two are told apart by a status re-read.
func (r *JournalRepository) MarkRejected(ctx context.Context, id, reason string, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE journal_entries
		SET status = $2, rejected_reason = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		id, string(domain.StatusRejected), reason,
		timeToPgTimestamptz(updatedAt), string(domain.StatusPending))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		var status string
		err := r.pool.QueryRow(ctx, `
			SELECT status FROM journal_entries WHERE id = $1`, id).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEntryNotFound
		}
		if err != nil {
			return err
		}

		return fmt.Errorf("%w: entry %s is %s", domain.ErrAlreadyFinalized, id, status)
	}

	return nil
}

// ListByStatus lists entries in a status, newest first, lines loaded
// in one extra query.
func (r *JournalRepository) ListByStatus(ctx context.Context, status domain.EntryStatus, limit, offset int) ([]*domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM journal_entries
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.JournalEntry
	byID := make(map[string]*domain.JournalEntry)

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
		byID[entry.ID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return entries, nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}

	lines, err := queryLines(ctx, r.pool, `
		SELECT `+lineColumns+` FROM journal_line_items
		WHERE entry_id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if entry, ok := byID[line.EntryID]; ok {
			entry.Lines = append(entry.Lines, line)
		}
	}

	return entries, nil
}

// FindApprovedLineItemsInRange returns approved line items dated within
// [start, end]. An empty accountNumbers slice means all accounts.
func (r *JournalRepository) FindApprovedLineItemsInRange(ctx context.Context, start, end time.Time, accountNumbers []string) ([]domain.LineItem, error) {
	query := `
		SELECT li.id, li.entry_id, li.account_number, li.account_name, li.debit, li.credit,
		       li.description, li.entry_date, li.type
		FROM journal_line_items li
		JOIN journal_entries e ON e.id = li.entry_id
		WHERE e.status = $1 AND li.entry_date >= $2 AND li.entry_date <= $3`
	args := []any{string(domain.StatusApproved), timeToPgTimestamptz(start), timeToPgTimestamptz(end)}

	if len(accountNumbers) > 0 {
		query += ` AND li.account_number = ANY($4)`
		args = append(args, accountNumbers)
	}

	query += ` ORDER BY li.entry_date, li.id`

	return queryLines(ctx, r.pool, query, args...)
}

// FindApprovedLineItemsByAccount returns an account's approved line
// items in posting order for the ledger view.
func (r *JournalRepository) FindApprovedLineItemsByAccount(ctx context.Context, accountNumber string) ([]domain.LineItem, error) {
	return queryLines(ctx, r.pool, `
		SELECT li.id, li.entry_id, li.account_number, li.account_name, li.debit, li.credit,
		       li.description, li.entry_date, li.type
		FROM journal_line_items li
		JOIN journal_entries e ON e.id = li.entry_id
		WHERE e.status = $1 AND li.account_number = $2
		ORDER BY li.entry_date, li.id`,
		string(domain.StatusApproved), accountNumber)
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		e                    domain.JournalEntry
		entryType, status    string
		entryDate            pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&e.ID, &e.CreatedBy, &entryDate, &entryType, &status, &e.RejectedReason,
		&e.AttachmentURL, &e.ApprovedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	e.EntryDate = entryDate.Time
	e.Type = domain.EntryType(entryType)
	e.Status = domain.EntryStatus(status)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

func queryLines(ctx context.Context, q querier, query string, args ...any) ([]domain.LineItem, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.LineItem
	for rows.Next() {
		var (
			l             domain.LineItem
			lineType      string
			debit, credit pgtype.Numeric
			entryDate     pgtype.Timestamptz
		)

		err := rows.Scan(
			&l.ID, &l.EntryID, &l.AccountNumber, &l.AccountName, &debit, &credit,
			&l.Description, &entryDate, &lineType,
		)
		if err != nil {
			return nil, err
		}

		l.Debit = numericToNullDecimal(debit)
		l.Credit = numericToNullDecimal(credit)
		l.EntryDate = entryDate.Time
		l.Type = domain.EntryType(lineType)

		lines = append(lines, l)
	}

	return lines, rows.Err()
}
