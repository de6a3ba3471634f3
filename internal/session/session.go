// Package session owns the per-run state of the notification screen:
// the rule-set snapshot, filter settings, cross-account priority
// tracker, seen-timestamp map, and the current grouping. Everything here
// runs on the single event loop that consumes poller results; the
// session itself performs no I/O.
package session

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AmarBego/GitTop/internal/alert"
	"github.com/AmarBego/GitTop/internal/model"
	"github.com/AmarBego/GitTop/internal/pipeline"
	"github.com/AmarBego/GitTop/internal/rules"
)

// Session is the top-level screen context. The tracker lives here, not
// in any per-account state, because it must outlive an account switch.
type Session struct {
	account string
	rules   model.RuleSet
	filters pipeline.Filters
	tracker *pipeline.Tracker
	seen    alert.SeenMap
	log     *logrus.Logger

	allRecords []model.NotificationRecord
	result     pipeline.Result
}

// New creates a session for the given active account and rule snapshot.
func New(account string, rs model.RuleSet, log *logrus.Logger) *Session {
	return &Session{
		account: account,
		rules:   rs,
		tracker: pipeline.NewTracker(),
		seen:    alert.SeenMap{},
		log:     log,
	}
}

// Account returns the active account name.
func (s *Session) Account() string {
	return s.account
}

// Filters returns the current filter settings.
func (s *Session) Filters() pipeline.Filters {
	return s.filters
}

// Result returns the output of the most recent pipeline run.
func (s *Session) Result() pipeline.Result {
	return s.result
}

// Groups returns the current display grouping.
func (s *Session) Groups() []pipeline.Group {
	return s.result.Groups
}

// HandleFetch ingests a fresh record list for the active account. It
// evaluates the raw list once, computes the desktop-alert batch against
// the seen map, stores the records, and regroups.
//
// The returned messages are what the platform notifier should deliver.
// Seen state is NOT updated here: call CommitSeen after delivery was
// attempted, so a delivery failure never marks records as seen.
func (s *Session) HandleFetch(records []model.NotificationRecord, now time.Time) []alert.Message {
	// Alert decisions use the unfiltered evaluation; a repo filter must
	// not suppress desktop alerts for the rest of the inbox.
	processed := rules.ProcessAll(records, s.rules, now)
	batch := alert.Build(processed, s.seen)

	s.allRecords = records
	s.rebuild(now)

	if batch.Empty() {
		return nil
	}
	s.log.WithFields(logrus.Fields{
		"account":  s.account,
		"priority": len(batch.Priority),
		"regular":  len(batch.Regular),
	}).Debug("desktop alert batch ready")

	return alert.Compose(batch)
}

// CommitSeen records the fetched set in the seen map. Call it after the
// alerts from HandleFetch were handed to the notifier.
func (s *Session) CommitSeen(records []model.NotificationRecord) {
	s.seen.Commit(records)
}

// Seen exposes the seen map for persistence across restarts.
func (s *Session) Seen() alert.SeenMap {
	return s.seen
}

// RestoreSeen replaces the seen map, typically from the local cache at
// session start.
func (s *Session) RestoreSeen(seen map[string]time.Time) {
	s.seen = alert.SeenMap{}
	for id, ts := range seen {
		s.seen[id] = ts
	}
}

// SetRules publishes a new rule-set snapshot and re-runs the pipeline.
// A single rule edit can flip the verdict of any number of records, so
// there is no incremental patching.
func (s *Session) SetRules(rs model.RuleSet, now time.Time) {
	s.rules = rs
	s.rebuild(now)
}

// SetShowAll toggles between unread-only and everything, then regroups.
func (s *Session) SetShowAll(all bool, now time.Time) {
	s.filters.ShowAll = all
	s.rebuild(now)
}

// SelectType filters the list to one subject type (nil clears) and
// clears any repository filter, then regroups.
func (s *Session) SelectType(t *model.SubjectType, now time.Time) {
	s.filters.SelectedType = t
	s.filters.SelectedRepo = nil
	s.rebuild(now)
}

// SelectRepo filters the list to one repository (nil clears) and clears
// any type filter, then regroups.
func (s *Session) SelectRepo(repo *string, now time.Time) {
	s.filters.SelectedRepo = repo
	s.filters.SelectedType = nil
	s.rebuild(now)
}

// MarkRead flips one record to read in the session's working copy and
// regroups. The upstream mark-as-read call is the caller's concern.
func (s *Session) MarkRead(id string, now time.Time) {
	for i := range s.allRecords {
		if s.allRecords[i].ID == id {
			s.allRecords[i].Unread = false
			s.rebuild(now)
			return
		}
	}
}

// Remove drops one record from the session's working copy (done or
// muted thread) and regroups.
func (s *Session) Remove(id string, now time.Time) {
	for i := range s.allRecords {
		if s.allRecords[i].ID == id {
			s.allRecords = append(s.allRecords[:i], s.allRecords[i+1:]...)
			s.rebuild(now)
			return
		}
	}
}

// CollapseAll collapses every group, e.g. when switching view modes.
func (s *Session) CollapseAll() {
	for i := range s.result.Groups {
		s.result.Groups[i].IsExpanded = false
	}
}

// ToggleGroup flips one group's expansion state by index.
func (s *Session) ToggleGroup(index int) {
	if index >= 0 && index < len(s.result.Groups) {
		s.result.Groups[index].IsExpanded = !s.result.Groups[index].IsExpanded
	}
}

// TrackerSnapshot returns the cross-account priority entries, for
// hand-off when the active account changes.
func (s *Session) TrackerSnapshot() []model.ProcessedNotification {
	return s.tracker.Snapshot()
}

// SwitchAccount changes the active account while preserving the
// cross-account priority tracker and the seen map. The record list is
// cleared until the new account's first fetch arrives.
func (s *Session) SwitchAccount(account string, now time.Time) {
	if account == s.account {
		return
	}
	s.account = account
	s.allRecords = nil
	s.rebuild(now)
}

// Rebuild re-runs the pipeline over the current record list, e.g. after
// the caller mutated records it handed to HandleFetch.
func (s *Session) Rebuild(now time.Time) {
	s.rebuild(now)
}

func (s *Session) rebuild(now time.Time) {
	s.result = pipeline.Process(
		s.allRecords, s.rules, &s.filters,
		s.account, s.tracker, s.result.Groups, now,
	)
}
