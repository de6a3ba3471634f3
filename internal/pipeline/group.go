package pipeline

import (
	"sort"
	"time"

	"github.com/AmarBego/GitTop/internal/model"
)

// Group titles. Titles are unique within one pipeline run; expansion
// state is matched back by title after a regroup.
const (
	GroupPriority  = "Priority"
	GroupToday     = "Today"
	GroupYesterday = "Yesterday"
	GroupThisWeek  = "This Week"
	GroupEarlier   = "Earlier"
)

// Group is one display bucket of processed notifications.
type Group struct {
	Title         string
	Notifications []model.ProcessedNotification

	// IsPriority marks the pinned Important bucket.
	IsPriority bool

	// IsExpanded is UI state that survives a regroup via title matching.
	IsExpanded bool
}

// GroupProcessed buckets processed notifications for display. When
// showPriority is set, Important records are pinned in a dedicated first
// group; the rest are bucketed by time since their last update. Empty
// buckets are omitted.
func GroupProcessed(processed []model.ProcessedNotification, showPriority bool, now time.Time) []Group {
	var groups []Group

	remaining := processed
	if showPriority {
		var important, rest []model.ProcessedNotification
		for _, p := range processed {
			if p.Action == model.ActionImportant {
				important = append(important, p)
			} else {
				rest = append(rest, p)
			}
		}
		if len(important) > 0 {
			sortGroup(important)
			groups = append(groups, Group{
				Title:         GroupPriority,
				Notifications: important,
				IsPriority:    true,
				IsExpanded:    true,
			})
		}
		remaining = rest
	}

	buckets := map[string][]model.ProcessedNotification{}
	for _, p := range remaining {
		title := bucketTitle(p.Record.UpdatedAt, now)
		buckets[title] = append(buckets[title], p)
	}

	for _, title := range []string{GroupToday, GroupYesterday, GroupThisWeek, GroupEarlier} {
		items := buckets[title]
		if len(items) == 0 {
			continue
		}
		sortGroup(items)
		groups = append(groups, Group{
			Title:         title,
			Notifications: items,
			IsExpanded:    true,
		})
	}

	return groups
}

// bucketTitle picks the time bucket for a record updated at t.
func bucketTitle(t, now time.Time) string {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return GroupToday
	}

	yesterday := now.AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if ty == yy && tm == ym && td == yd {
		return GroupYesterday
	}

	if now.Sub(t) <= 7*24*time.Hour {
		return GroupThisWeek
	}
	return GroupEarlier
}

// sortGroup orders records by effective priority (highest first), then
// recency, then id so identical inputs always group identically.
func sortGroup(items []model.ProcessedNotification) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		if !items[i].Record.UpdatedAt.Equal(items[j].Record.UpdatedAt) {
			return items[i].Record.UpdatedAt.After(items[j].Record.UpdatedAt)
		}
		return items[i].Record.ID < items[j].Record.ID
	})
}

// CarryExpansion copies expand/collapse state from a previous grouping
// onto a fresh one, matched by group title.
func CarryExpansion(previous, fresh []Group) {
	if len(previous) == 0 {
		return
	}
	expanded := make(map[string]bool, len(previous))
	for _, g := range previous {
		expanded[g.Title] = g.IsExpanded
	}
	for i := range fresh {
		if was, ok := expanded[fresh[i].Title]; ok {
			fresh[i].IsExpanded = was
		}
	}
}
