package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/AmarBego/GitTop/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite
// database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// WAL for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReplaceRecords swaps the cached records for one account with the
// result of a fresh fetch. A fetch is authoritative for its account, so
// records missing from it are removed.
func (s *SQLiteStore) ReplaceRecords(
	ctx context.Context,
	account string,
	records []model.NotificationRecord,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM notifications WHERE account = ?", account,
	); err != nil {
		return fmt.Errorf("clearing records for %s: %w", account, err)
	}

	const query = `
		INSERT OR REPLACE INTO notifications (
			id, account, repo_full_name, subject_type, reason,
			title, unread, updated_at, url, latest_comment_url, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	fetchedAt := time.Now().UTC()
	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			r.ID, r.Account, r.RepoFullName, string(r.SubjectType), string(r.Reason),
			r.Title, boolToInt(r.Unread), r.UpdatedAt.UTC(),
			r.URL, r.LatestCommentURL, fetchedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// GetRecords retrieves cached records matching the filter, newest first.
func (s *SQLiteStore) GetRecords(
	ctx context.Context,
	filter RecordFilter,
) ([]model.NotificationRecord, error) {
	var conditions []string
	var args []interface{}

	if filter.Account != nil {
		conditions = append(conditions, "account = ?")
		args = append(args, *filter.Account)
	}
	if filter.Repo != nil {
		conditions = append(conditions, "repo_full_name = ?")
		args = append(args, *filter.Repo)
	}
	if filter.SubjectType != nil {
		conditions = append(conditions, "subject_type = ?")
		args = append(args, string(*filter.SubjectType))
	}
	if filter.UnreadOnly {
		conditions = append(conditions, "unread = 1")
	}

	query := `SELECT id, account, repo_full_name, subject_type, reason,
		title, unread, updated_at, url, latest_comment_url
		FROM notifications`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY updated_at DESC, id ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []model.NotificationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// MarkRead flips one cached record to read.
func (s *SQLiteStore) MarkRead(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET unread = 0 WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("marking record %s as read: %w", id, err)
	}
	return nil
}

// DeleteRecord drops one cached record.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	return nil
}

// LoadSeen returns the persisted seen-timestamp map.
func (s *SQLiteStore) LoadSeen(ctx context.Context) (map[string]time.Time, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT id, updated_at FROM seen_timestamps")
	if err != nil {
		return nil, fmt.Errorf("querying seen timestamps: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]time.Time)
	for rows.Next() {
		var (
			id        string
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning seen timestamp row: %w", err)
		}
		seen[id] = updatedAt
	}

	return seen, rows.Err()
}

// SaveSeen replaces the persisted seen-timestamp map.
func (s *SQLiteStore) SaveSeen(ctx context.Context, seen map[string]time.Time) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM seen_timestamps"); err != nil {
		return fmt.Errorf("clearing seen timestamps: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx,
		"INSERT INTO seen_timestamps (id, updated_at) VALUES (?, ?)",
	)
	if err != nil {
		return fmt.Errorf("preparing seen insert: %w", err)
	}
	defer stmt.Close()

	for id, ts := range seen {
		if _, err := stmt.ExecContext(ctx, id, ts.UTC()); err != nil {
			return fmt.Errorf("inserting seen timestamp %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// scanRecord scans a record row from a sqlx.Rows result set.
func scanRecord(rows *sqlx.Rows) (model.NotificationRecord, error) {
	var (
		rec         model.NotificationRecord
		subjectType string
		reason      string
		unread      int
		updatedAt   time.Time
	)

	err := rows.Scan(
		&rec.ID, &rec.Account, &rec.RepoFullName, &subjectType, &reason,
		&rec.Title, &unread, &updatedAt, &rec.URL, &rec.LatestCommentURL,
	)
	if err != nil {
		return model.NotificationRecord{}, fmt.Errorf("scanning record row: %w", err)
	}

	rec.SubjectType = model.SubjectType(subjectType)
	rec.Reason = model.Reason(reason)
	rec.Unread = unread != 0
	rec.UpdatedAt = updatedAt

	return rec, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
