package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type EntryRepo struct {
	db *sql.DB
}

func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

const entryColumns = `id, kind, amount, category, date, notes, tags, created_at`

func (r *EntryRepo) Insert(ctx context.Context, e *Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entries (id, kind, amount, category, date, notes, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Kind, e.Amount, e.Category, e.Date, e.Notes, encodeStringList(e.Tags), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("entry insert: %w", err)
	}
	return nil
}

func (r *EntryRepo) Update(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE entries
		SET kind = ?, amount = ?, category = ?, date = ?, notes = ?, tags = ?
		WHERE id = ?
	`, e.Kind, e.Amount, e.Category, e.Date, e.Notes, encodeStringList(e.Tags), e.ID)
	if err != nil {
		return fmt.Errorf("entry update: %w", err)
	}
	return nil
}

// Delete removes an entry; an absent id is a silent no-op.
func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("entry delete: %w", err)
	}
	return nil
}

func (r *EntryRepo) Get(ctx context.Context, id string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	return scanEntryRow(row)
}

// ListAll returns entries most-recent-first.
func (r *EntryRepo) ListAll(ctx context.Context) ([]Entry, error) {
	return r.list(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY date DESC, created_at DESC`)
}

// ListSince returns entries dated at or after the given instant,
// most-recent-first.
func (r *EntryRepo) ListSince(ctx context.Context, since time.Time) ([]Entry, error) {
	return r.list(ctx, `SELECT `+entryColumns+` FROM entries WHERE date >= ? ORDER BY date DESC, created_at DESC`, since)
}

func (r *EntryRepo) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("entry count: %w", err)
	}
	return n, nil
}

// CountLoggedBetween counts entries recorded with from <= created_at < to,
// independent of the date they carry. Backdated entries still count toward
// the day they were logged on.
func (r *EntryRepo) CountLoggedBetween(ctx context.Context, from, to time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE created_at >= ? AND created_at < ?`, from, to)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("entry count logged between: %w", err)
	}
	return n, nil
}

// CountBetween counts entries with from <= date < to.
func (r *EntryRepo) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE date >= ? AND date < ?`, from, to)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("entry count between: %w", err)
	}
	return n, nil
}

func (r *EntryRepo) list(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("entry list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entry list rows: %w", err)
	}
	return out, nil
}

func scanEntryRow(row scanner) (*Entry, error) {
	var (
		e       Entry
		tagsRaw sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Kind, &e.Amount, &e.Category, &e.Date, &e.Notes, &tagsRaw, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("entry scan: %w", err)
	}
	e.Tags = decodeStringList(tagsRaw)
	return &e, nil
}
