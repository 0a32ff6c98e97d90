package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type QuestRepo struct {
	db *sql.DB
}

func NewQuestRepo(db *sql.DB) *QuestRepo {
	return &QuestRepo{db: db}
}

type QuestInsert struct {
	Title       string
	Description string
	Kind        string
	XPReward    int
	Stats       []string
	Tags        []string
	Difficulty  *string
}

const questColumns = `id, title, description, kind, xp_reward, completed,
	completed_date, last_completed_date, streak, stats, tags, difficulty, created_at`

func (r *QuestRepo) Insert(ctx context.Context, in QuestInsert) (int64, error) {
	return r.insertOn(ctx, r.db, in)
}

// InsertTx is Insert running on an open transaction.
func (r *QuestRepo) InsertTx(ctx context.Context, tx *sql.Tx, in QuestInsert) (int64, error) {
	return r.insertOn(ctx, tx, in)
}

func (r *QuestRepo) insertOn(ctx context.Context, ex execer, in QuestInsert) (int64, error) {
	res, err := ex.ExecContext(ctx, `
		INSERT INTO quests (title, description, kind, xp_reward, stats, tags, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Title, in.Description, in.Kind, in.XPReward, encodeStringList(in.Stats), encodeStringList(in.Tags), in.Difficulty)
	if err != nil {
		return 0, fmt.Errorf("quest insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quest last insert id: %w", err)
	}
	return id, nil
}

func (r *QuestRepo) Get(ctx context.Context, id int64) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+questColumns+` FROM quests WHERE id = ?`, id)
	return scanQuestRow(row)
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	return r.list(ctx, `SELECT `+questColumns+` FROM quests ORDER BY id ASC`)
}

func (r *QuestRepo) ListByKind(ctx context.Context, kind string) ([]Quest, error) {
	return r.list(ctx, `SELECT `+questColumns+` FROM quests WHERE kind = ? ORDER BY id ASC`, kind)
}

func (r *QuestRepo) list(ctx context.Context, query string, args ...any) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuestRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest list rows: %w", err)
	}
	return out, nil
}

// UpdateCompletion writes the full completion state of one quest.
func (r *QuestRepo) UpdateCompletion(ctx context.Context, q *Quest) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests
		SET completed = ?, completed_date = ?, last_completed_date = ?, streak = ?
		WHERE id = ?
	`, boolToInt(q.Completed), q.CompletedDate, q.LastCompletedDate, q.Streak, q.ID)
	if err != nil {
		return fmt.Errorf("quest update completion: %w", err)
	}
	return nil
}

// SetCompleted flips only the completed flag; absent ids are a no-op.
func (r *QuestRepo) SetCompleted(ctx context.Context, id int64, completed bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE quests SET completed = ? WHERE id = ?`, boolToInt(completed), id)
	if err != nil {
		return fmt.Errorf("quest set completed: %w", err)
	}
	return nil
}

// StampLastCompleted marks a set of quests with the given day and breaks
// their streaks. Used to keep the missed-quest check idempotent within a day.
func (r *QuestRepo) StampLastCompleted(ctx context.Context, ids []int64, day string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, day)
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE quests SET last_completed_date = ?, streak = 0 WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("quest stamp last completed: %w", err)
	}
	return nil
}

func (r *QuestRepo) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quests`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("quest count: %w", err)
	}
	return n, nil
}

func (r *QuestRepo) DeleteAll(ctx context.Context) error {
	return r.deleteAllOn(ctx, r.db)
}

// DeleteAllTx is DeleteAll running on an open transaction.
func (r *QuestRepo) DeleteAllTx(ctx context.Context, tx *sql.Tx) error {
	return r.deleteAllOn(ctx, tx)
}

func (r *QuestRepo) deleteAllOn(ctx context.Context, ex execer) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM quests`); err != nil {
		return fmt.Errorf("quest delete all: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestRow(row scanner) (*Quest, error) {
	var (
		q          Quest
		completed  int
		statsRaw   sql.NullString
		tagsRaw    sql.NullString
		difficulty sql.NullString
		createdAt  time.Time
	)

	if err := row.Scan(
		&q.ID, &q.Title, &q.Description, &q.Kind, &q.XPReward, &completed,
		&q.CompletedDate, &q.LastCompletedDate, &q.Streak, &statsRaw, &tagsRaw, &difficulty, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest scan: %w", err)
	}

	q.Completed = completed != 0
	q.Stats = decodeStringList(statsRaw)
	q.Tags = decodeStringList(tagsRaw)
	if difficulty.Valid && difficulty.String != "" {
		v := difficulty.String
		q.Difficulty = &v
	}
	q.CreatedAt = createdAt
	return &q, nil
}
