package alert

import (
	"time"

	"github.com/AmarBego/GitTop/internal/model"
)

// maxSeenEntries bounds the seen map; beyond it, entries whose id is no
// longer in the current fetch are pruned.
const maxSeenEntries = 500

// SeenMap tracks record id → last-modified timestamp for alert
// deduplication. It detects both brand-new records and updates to
// records that already alerted once.
type SeenMap map[string]time.Time

// Commit records the just-fetched set's ids and timestamps, then prunes
// stale entries once the map exceeds its size bound. Callers invoke this
// only after alert delivery was attempted, so a delivery failure never
// silently marks records as seen.
func (s SeenMap) Commit(records []model.NotificationRecord) {
	for _, r := range records {
		s[r.ID] = r.UpdatedAt
	}

	if len(s) <= maxSeenEntries {
		return
	}

	current := make(map[string]bool, len(records))
	for _, r := range records {
		current[r.ID] = true
	}
	for id := range s {
		if !current[id] {
			delete(s, id)
		}
	}
}

// isNew reports whether a record should alert: its id is absent, or
// present with a different timestamp.
func (s SeenMap) isNew(rec model.NotificationRecord) bool {
	prev, ok := s[rec.ID]
	return !ok || !prev.Equal(rec.UpdatedAt)
}
