// Package storage persists the learned classification mapping in SQLite,
// the durable alternative to the flat classification file.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type ClassificationRepository struct {
	db *sql.DB
}

func NewClassificationRepository(dbPath string) (*ClassificationRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &ClassificationRepository{db: db}, nil
}

func (r *ClassificationRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Upsert records or overwrites the category for one expense name.
func (r *ClassificationRepository) Upsert(ctx context.Context, name, category string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO classifications (name, category, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP`,
		name, category)
	if err != nil {
		return fmt.Errorf("upsert classification %q: %w", name, err)
	}
	return nil
}

// UpsertAll writes a batch of learned pairs in one transaction.
func (r *ClassificationRepository) UpsertAll(ctx context.Context, learned map[string]string) error {
	if len(learned) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO classifications (name, category, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for name, category := range learned {
		if _, err := stmt.ExecContext(ctx, name, category); err != nil {
			return fmt.Errorf("upsert %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upserts: %w", err)
	}

	slog.InfoContext(ctx, "Classifications saved to SQLite", "count", len(learned))
	return nil
}

// Load returns the full name→category mapping.
func (r *ClassificationRepository) Load(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, category FROM classifications`)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name, category string
		if err := rows.Scan(&name, &category); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		out[name] = category
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classifications: %w", err)
	}
	return out, nil
}

// Get looks up one name.
func (r *ClassificationRepository) Get(ctx context.Context, name string) (string, bool, error) {
	var category string
	err := r.db.QueryRowContext(ctx,
		`SELECT category FROM classifications WHERE name = ?`, name).Scan(&category)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get classification %q: %w", name, err)
	}
	return category, true, nil
}
