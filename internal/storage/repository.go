package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"accounting/internal/core"
	"accounting/internal/sources"

	_ "modernc.org/sqlite"
)

// ImportRow is a parsed ledger record ready to be stored.
type ImportRow struct {
	UserID    string
	Tx        core.Transaction
	SourceRef string
}

// SQLiteRepository stores imported ledger records and serves them back as a
// record source.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

var _ sources.RecordSource = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
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

	return &SQLiteRepository{db: db, path: dbPath}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Name implements sources.RecordSource
func (r *SQLiteRepository) Name() string {
	return "sqlite:" + r.path
}

// ReadRecords implements sources.RecordSource. Rows come back in insertion
// order so the ledger keeps source order.
func (r *SQLiteRepository) ReadRecords(ctx context.Context) ([]core.RawRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, amount FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.RawRecord
	for rows.Next() {
		var (
			id                   int64
			userID, date, amount string
		)
		if err := rows.Scan(&id, &userID, &date, &amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, core.RawRecord{
			Ref:    "sqlite:" + strconv.FormatInt(id, 10),
			Fields: []string{userID, date, amount},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// InsertBatch stores rows in a single SQL transaction.
func (r *SQLiteRepository) InsertBatch(ctx context.Context, batch []ImportRow) error {
	if len(batch) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (user_id, date, amount, source_ref) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range batch {
		if _, err := stmt.ExecContext(ctx, row.UserID, row.Tx.Date, row.Tx.Amount.String(), row.SourceRef); err != nil {
			return fmt.Errorf("insert transaction %s: %w", row.SourceRef, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.DebugContext(ctx, "Transactions saved to SQLite", "count", len(batch))
	return nil
}

// Count returns the number of stored records.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
