package pipeline

import "github.com/AmarBego/GitTop/internal/model"

// Tracker retains Important, unread notifications surfaced by any
// previously-active account so they keep appearing after the user
// switches accounts. It is owned by the session context, not by any
// per-account state, precisely because it must outlive a switch.
type Tracker struct {
	entries []model.ProcessedNotification
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update replaces the stored entries for account in full. Stale entries
// for the same account must not survive a refresh where they no longer
// qualify, so there is no incremental merge.
func (t *Tracker) Update(account string, important []model.ProcessedNotification) {
	kept := t.entries[:0]
	for _, p := range t.entries {
		if p.Record.Account != account {
			kept = append(kept, p)
		}
	}
	t.entries = append(kept, important...)
}

// Snapshot returns a copy of all tracked entries, for hand-off when the
// active account changes.
func (t *Tracker) Snapshot() []model.ProcessedNotification {
	out := make([]model.ProcessedNotification, len(t.entries))
	copy(out, t.entries)
	return out
}

// Restore replaces the tracker contents with a prior snapshot.
func (t *Tracker) Restore(snapshot []model.ProcessedNotification) {
	t.entries = make([]model.ProcessedNotification, len(snapshot))
	copy(t.entries, snapshot)
}

// OtherAccounts returns tracked unread entries belonging to accounts
// other than current.
func (t *Tracker) OtherAccounts(current string) []model.ProcessedNotification {
	var out []model.ProcessedNotification
	for _, p := range t.entries {
		if p.Record.Account != current && p.Record.Unread {
			out = append(out, p)
		}
	}
	return out
}
