package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS player (
			key TEXT PRIMARY KEY,
			level INTEGER DEFAULT 1,
			xp_total INTEGER DEFAULT 0,
			xp_next INTEGER DEFAULT 100,
			stats TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL,
			xp_reward INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,

			completed_date TEXT NOT NULL DEFAULT '',
			last_completed_date TEXT NOT NULL DEFAULT '',
			streak INTEGER NOT NULL DEFAULT 0,

			stats TEXT,
			tags TEXT,
			difficulty TEXT,

			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			amount REAL NOT NULL DEFAULT 0,
			category TEXT NOT NULL,
			date DATETIME NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			tags TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			value REAL NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			acquired_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS buffs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			value_per_month REAL NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT '',
			start_date DATETIME NOT NULL,
			active INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS reflections (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			event TEXT NOT NULL DEFAULT '',
			reflection TEXT NOT NULL DEFAULT '',
			insight TEXT NOT NULL DEFAULT '',
			date DATETIME NOT NULL,
			stats TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_kind ON quests(kind);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_kind_date ON entries(kind, date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the initial schema (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE entries ADD COLUMN tags TEXT;`,
		`ALTER TABLE player ADD COLUMN xp_next INTEGER DEFAULT 100;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
