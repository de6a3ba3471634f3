package store

// migration is a single versioned schema change. Migrations run in
// order inside NewSQLiteStore; version tracking lives in schema_version.
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS notifications (
				id                 TEXT PRIMARY KEY,
				account            TEXT NOT NULL,
				repo_full_name     TEXT NOT NULL,
				subject_type       TEXT NOT NULL,
				reason             TEXT NOT NULL,
				title              TEXT NOT NULL DEFAULT '',
				unread             INTEGER NOT NULL DEFAULT 1,
				updated_at         TIMESTAMP NOT NULL,
				url                TEXT NOT NULL DEFAULT '',
				latest_comment_url TEXT NOT NULL DEFAULT '',
				fetched_at         TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_notifications_account
				ON notifications(account);
			CREATE INDEX IF NOT EXISTS idx_notifications_updated_at
				ON notifications(updated_at);

			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
	{
		version: 2,
		sql: `
			CREATE TABLE IF NOT EXISTS seen_timestamps (
				id         TEXT PRIMARY KEY,
				updated_at TIMESTAMP NOT NULL
			);

			INSERT INTO schema_version (version) VALUES (2);
		`,
	},
}
