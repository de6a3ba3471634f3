// Package pipeline turns raw fetched notification records into the
// filtered, rule-evaluated, time-bucketed groups the display layer
// consumes. Running it twice on identical inputs yields identical
// output; the UI relies on that to recompute a view after a filter
// toggle without re-fetching.
package pipeline

import (
	"time"

	"github.com/AmarBego/GitTop/internal/model"
	"github.com/AmarBego/GitTop/internal/rules"
)

// Result is the full output of one pipeline run. It is the only state
// the display layer may read; groupings are never re-derived elsewhere.
type Result struct {
	// Processed holds the current account's records after filtering and
	// rule evaluation, Hide verdicts removed.
	Processed []model.ProcessedNotification

	// Groups is the final displayed bucketing, cross-account priority
	// merged in when applicable.
	Groups []Group

	// TypeCounts and RepoCounts are the sidebar facet tallies.
	TypeCounts []TypeCount
	RepoCounts []RepoCount
}

// Process runs the full pipeline over a fetched record list.
//
// filters is mutated in place when a selected facet no longer matches
// anything. tracker is updated with the account's Important unread
// records from the pre-filter evaluation, then consulted to merge other
// accounts' priority items into the displayed set (unread mode only).
// previousGroups carries expand/collapse state across the regroup.
func Process(
	all []model.NotificationRecord,
	rs model.RuleSet,
	filters *Filters,
	currentAccount string,
	tracker *Tracker,
	previousGroups []Group,
	now time.Time,
) Result {
	typeCounts, repoCounts := facetCounts(all, *filters)
	resetStaleFilters(filters, typeCounts, repoCounts)

	filtered := filters.Apply(all)
	processed := rules.ProcessAll(filtered, rs, now)

	// The tracker sees the pre-filter evaluation so Important records
	// stay tracked even while a type or repo filter hides them.
	tracker.Update(currentAccount, importantUnread(all, rs, currentAccount, now))

	// Merging priority items from other accounts only happens in
	// unread mode; in show-all mode it would defeat "read everything"
	// semantics.
	displayed := processed
	if !filters.ShowAll {
		displayed = mergeOtherAccounts(processed, tracker.OtherAccounts(currentAccount))
	}

	groups := GroupProcessed(displayed, !filters.ShowAll, now)
	CarryExpansion(previousGroups, groups)

	return Result{
		Processed:  processed,
		Groups:     groups,
		TypeCounts: typeCounts,
		RepoCounts: repoCounts,
	}
}

// importantUnread evaluates account's records without user filters and
// keeps those resolving to Important that are still unread.
func importantUnread(
	all []model.NotificationRecord,
	rs model.RuleSet,
	account string,
	now time.Time,
) []model.ProcessedNotification {
	var out []model.ProcessedNotification
	for _, rec := range all {
		if rec.Account != account || !rec.Unread {
			continue
		}
		action, priority := rules.Evaluate(rec, rs, now)
		if action != model.ActionImportant {
			continue
		}
		out = append(out, model.ProcessedNotification{
			Record:   rec,
			Action:   action,
			Priority: priority,
		})
	}
	return out
}

// mergeOtherAccounts appends other accounts' tracked priority records,
// de-duplicated by record id.
func mergeOtherAccounts(
	processed, others []model.ProcessedNotification,
) []model.ProcessedNotification {
	if len(others) == 0 {
		return processed
	}

	seen := make(map[string]bool, len(processed))
	for _, p := range processed {
		seen[p.Record.ID] = true
	}

	combined := make([]model.ProcessedNotification, len(processed), len(processed)+len(others))
	copy(combined, processed)
	for _, p := range others {
		if !seen[p.Record.ID] {
			combined = append(combined, p)
			seen[p.Record.ID] = true
		}
	}
	return combined
}
