package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go driver, CGO-free, compatible with CGO_ENABLED=0
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS translations (
        id          TEXT PRIMARY KEY,
        query       TEXT NOT NULL,
        provider    TEXT NOT NULL,
        sql_text    TEXT NOT NULL,
        created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
        duration_ms INTEGER,
        status      TEXT NOT NULL,
        error       TEXT NOT NULL DEFAULT ''
    );
    CREATE INDEX IF NOT EXISTS idx_translations_created ON translations(created_at);
    CREATE INDEX IF NOT EXISTS idx_translations_provider ON translations(provider);
    `
	_, err := db.Exec(schema)
	return err
}

func (r *SQLiteRepository) SaveTranslation(ctx context.Context, record *TranslationRecord) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO translations (id, query, provider, sql_text, created_at, duration_ms, status, error)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, record.ID, record.Query, record.Provider, record.SQL,
		record.CreatedAt, record.DurationMs, record.Status, record.Error)
	return err
}

func (r *SQLiteRepository) GetTranslation(ctx context.Context, id string) (*TranslationRecord, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, query, provider, sql_text, created_at, duration_ms, status, error
        FROM translations WHERE id = ?
    `, id)
	return scanTranslation(row)
}

func (r *SQLiteRepository) ListRecentTranslations(ctx context.Context, limit int) ([]*TranslationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, query, provider, sql_text, created_at, duration_ms, status, error
        FROM translations
        ORDER BY created_at DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*TranslationRecord
	for rows.Next() {
		record, err := scanTranslation(rows)
		if err != nil {
			slog.Warn("scan translation failed", "error", err)
			continue
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTranslation(row scannable) (*TranslationRecord, error) {
	record := &TranslationRecord{}
	err := row.Scan(&record.ID, &record.Query, &record.Provider, &record.SQL,
		&record.CreatedAt, &record.DurationMs, &record.Status, &record.Error)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}
