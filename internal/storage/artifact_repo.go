package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ArtifactRepo struct {
	db *sql.DB
}

func NewArtifactRepo(db *sql.DB) *ArtifactRepo {
	return &ArtifactRepo{db: db}
}

func (r *ArtifactRepo) Insert(ctx context.Context, a *Artifact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, name, value, description, acquired_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.Value, a.Description, a.AcquiredAt)
	if err != nil {
		return fmt.Errorf("artifact insert: %w", err)
	}
	return nil
}

func (r *ArtifactRepo) Update(ctx context.Context, a *Artifact) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE artifacts SET name = ?, value = ?, description = ?, acquired_at = ? WHERE id = ?
	`, a.Name, a.Value, a.Description, a.AcquiredAt, a.ID)
	if err != nil {
		return fmt.Errorf("artifact update: %w", err)
	}
	return nil
}

func (r *ArtifactRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("artifact delete: %w", err)
	}
	return nil
}

// ListAll returns artifacts most-recently-acquired first.
func (r *ArtifactRepo) ListAll(ctx context.Context) ([]Artifact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, value, description, acquired_at
		FROM artifacts
		ORDER BY acquired_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("artifact list: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.Name, &a.Value, &a.Description, &a.AcquiredAt); err != nil {
			return nil, fmt.Errorf("artifact scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("artifact list rows: %w", err)
	}
	return out, nil
}

// SumValue totals all artifact values; never time-windowed.
func (r *ArtifactRepo) SumValue(ctx context.Context) (float64, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(value), 0) FROM artifacts`)
	var sum float64
	if err := row.Scan(&sum); err != nil {
		return 0, fmt.Errorf("artifact sum: %w", err)
	}
	return sum, nil
}
