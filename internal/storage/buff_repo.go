package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type BuffRepo struct {
	db *sql.DB
}

func NewBuffRepo(db *sql.DB) *BuffRepo {
	return &BuffRepo{db: db}
}

func (r *BuffRepo) Insert(ctx context.Context, b *Buff) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO buffs (id, name, value_per_month, source, start_date, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.Name, b.ValuePerMonth, b.Source, b.StartDate, boolToInt(b.Active))
	if err != nil {
		return fmt.Errorf("buff insert: %w", err)
	}
	return nil
}

func (r *BuffRepo) Get(ctx context.Context, id string) (*Buff, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, value_per_month, source, start_date, active
		FROM buffs WHERE id = ?
	`, id)

	var (
		b      Buff
		active int
	)
	if err := row.Scan(&b.ID, &b.Name, &b.ValuePerMonth, &b.Source, &b.StartDate, &active); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("buff get: %w", err)
	}
	b.Active = active != 0
	return &b, nil
}

// SetActive toggles a buff in or out of the aggregate totals. History is kept
// either way.
func (r *BuffRepo) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE buffs SET active = ? WHERE id = ?`, boolToInt(active), id); err != nil {
		return fmt.Errorf("buff set active: %w", err)
	}
	return nil
}

func (r *BuffRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM buffs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("buff delete: %w", err)
	}
	return nil
}

func (r *BuffRepo) ListAll(ctx context.Context) ([]Buff, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, value_per_month, source, start_date, active
		FROM buffs
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("buff list: %w", err)
	}
	defer rows.Close()

	var out []Buff
	for rows.Next() {
		var (
			b      Buff
			active int
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.ValuePerMonth, &b.Source, &b.StartDate, &active); err != nil {
			return nil, fmt.Errorf("buff scan: %w", err)
		}
		b.Active = active != 0
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("buff list rows: %w", err)
	}
	return out, nil
}

// SumActive totals value_per_month over active buffs; a current snapshot,
// never windowed.
func (r *BuffRepo) SumActive(ctx context.Context) (float64, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(value_per_month), 0) FROM buffs WHERE active = 1`)
	var sum float64
	if err := row.Scan(&sum); err != nil {
		return 0, fmt.Errorf("buff sum active: %w", err)
	}
	return sum, nil
}
