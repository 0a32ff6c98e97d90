package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ReflectionRepo is append-only; there is no update or delete path.
type ReflectionRepo struct {
	db *sql.DB
}

func NewReflectionRepo(db *sql.DB) *ReflectionRepo {
	return &ReflectionRepo{db: db}
}

func (r *ReflectionRepo) Insert(ctx context.Context, ref *Reflection) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reflections (id, name, event, reflection, insight, date, stats)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, ref.ID, ref.Name, ref.Event, ref.Reflection, ref.Insight, ref.Date, encodeStringList(ref.Stats))
	if err != nil {
		return fmt.Errorf("reflection insert: %w", err)
	}
	return nil
}

func (r *ReflectionRepo) ListAll(ctx context.Context) ([]Reflection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, event, reflection, insight, date, stats
		FROM reflections
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("reflection list: %w", err)
	}
	defer rows.Close()

	var out []Reflection
	for rows.Next() {
		var (
			ref      Reflection
			statsRaw sql.NullString
		)
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Event, &ref.Reflection, &ref.Insight, &ref.Date, &statsRaw); err != nil {
			return nil, fmt.Errorf("reflection scan: %w", err)
		}
		ref.Stats = decodeStringList(statsRaw)
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reflection list rows: %w", err)
	}
	return out, nil
}
