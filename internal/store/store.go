// Package store persists the local notification cache and the
// seen-timestamp map in SQLite, so the list renders instantly on start
// and alert deduplication survives a restart.
package store

import (
	"context"
	"time"

	"github.com/AmarBego/GitTop/internal/model"
)

// RecordFilter controls filtering and pagination for cached record
// queries.
type RecordFilter struct {
	Account     *string
	Repo        *string
	SubjectType *model.SubjectType
	UnreadOnly  bool
	Limit       int
	Offset      int
}

// Store defines the persistence interface for cached notification
// records and seen timestamps.
type Store interface {
	// ReplaceRecords swaps the cached records for one account with the
	// result of a fresh fetch.
	ReplaceRecords(ctx context.Context, account string, records []model.NotificationRecord) error

	// GetRecords retrieves cached records matching the filter, newest
	// first.
	GetRecords(ctx context.Context, filter RecordFilter) ([]model.NotificationRecord, error)

	// MarkRead flips one cached record to read.
	MarkRead(ctx context.Context, id string) error

	// DeleteRecord drops one cached record (done / muted threads).
	DeleteRecord(ctx context.Context, id string) error

	// LoadSeen returns the persisted seen-timestamp map.
	LoadSeen(ctx context.Context) (map[string]time.Time, error)

	// SaveSeen replaces the persisted seen-timestamp map.
	SaveSeen(ctx context.Context, seen map[string]time.Time) error

	Close() error
}
