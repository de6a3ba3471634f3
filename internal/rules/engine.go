// Package rules evaluates notification records against the layered rule
// set: per-account schedules, per-organization priorities, and per-reason
// type rules, resolved into a single (action, priority) verdict.
package rules

import (
	"strings"
	"time"

	"github.com/AmarBego/GitTop/internal/model"
)

// contribution is one matching rule's vote during resolution.
type contribution struct {
	action   model.Action
	priority int
}

// Evaluate resolves one record against the rule set at the given time.
//
// Resolution order:
//  1. Important wins unconditionally, even over a higher-priority Hide.
//  2. Otherwise the highest numeric priority wins.
//  3. On a tie, the more restrictive action wins (Hide > Silent > Show).
//  4. With no matching rule the default is Show at priority 0.
//
// Evaluate is a pure function of its inputs: no side effects, identical
// results for identical inputs.
func Evaluate(rec model.NotificationRecord, rs model.RuleSet, now time.Time) (model.Action, int) {
	if !rs.Enabled {
		return model.ActionShow, 0
	}

	var contribs []contribution

	// Account rule: its only contribution is a synthetic Hide when the
	// record arrives outside the schedule and the rule says suppress.
	if r, ok := matchAccountRule(rs, rec.Account); ok {
		if !withinSchedule(r, now) && r.OutsideBehavior == model.OutsideSuppress {
			contribs = append(contribs, contribution{action: model.ActionHide, priority: 0})
		}
	}

	for _, r := range rs.OrgRules {
		if r.Enabled && r.Org == rec.Org() {
			contribs = append(contribs, contribution{action: r.Action, priority: r.Priority})
		}
	}

	for _, r := range rs.TypeRules {
		if !r.Enabled || r.Reason != rec.Reason {
			continue
		}
		if r.Account != "" && !strings.EqualFold(r.Account, rec.Account) {
			continue
		}
		contribs = append(contribs, contribution{action: r.Action, priority: r.Priority})
	}

	return resolve(contribs)
}

// resolve folds rule contributions into the final verdict.
func resolve(contribs []contribution) (model.Action, int) {
	var (
		important         bool
		importantPriority int
		haveWinner        bool
		winner            contribution
	)

	for _, c := range contribs {
		if c.action == model.ActionImportant {
			if !important || c.priority > importantPriority {
				importantPriority = c.priority
			}
			important = true
			continue
		}
		if !haveWinner {
			winner, haveWinner = c, true
			continue
		}
		if c.priority > winner.priority {
			winner = c
		} else if c.priority == winner.priority &&
			c.action.Restrictiveness() > winner.action.Restrictiveness() {
			winner = c
		}
	}

	if important {
		return model.ActionImportant, importantPriority
	}
	if !haveWinner {
		return model.ActionShow, 0
	}
	return winner.action, winner.priority
}

// matchAccountRule finds the enabled account rule for an account.
// Account names compare case-insensitively.
func matchAccountRule(rs model.RuleSet, account string) (model.AccountRule, bool) {
	for _, r := range rs.AccountRules {
		if r.Enabled && strings.EqualFold(r.Account, account) {
			return r, true
		}
	}
	return model.AccountRule{}, false
}

// withinSchedule reports whether now falls inside the rule's active days
// and time window. A malformed time string leaves the window
// unconstrained rather than failing, so one bad rule can never hide an
// account's notifications by accident.
func withinSchedule(r model.AccountRule, now time.Time) bool {
	if !r.ActiveOn(now.Weekday()) {
		return false
	}

	start, okStart := parseClock(r.StartTime)
	end, okEnd := parseClock(r.EndTime)
	if !okStart || !okEnd {
		return true
	}

	minutes := now.Hour()*60 + now.Minute()
	if start <= end {
		return minutes >= start && minutes <= end
	}
	// Window wraps past midnight, e.g. 22:00–06:00.
	return minutes >= start || minutes <= end
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// ProcessAll evaluates every record and returns the processed list with
// Hide verdicts removed. Order of the surviving records follows the
// input order.
func ProcessAll(records []model.NotificationRecord, rs model.RuleSet, now time.Time) []model.ProcessedNotification {
	processed := make([]model.ProcessedNotification, 0, len(records))
	for _, rec := range records {
		action, priority := Evaluate(rec, rs, now)
		if action == model.ActionHide {
			continue
		}
		processed = append(processed, model.ProcessedNotification{
			Record:   rec,
			Action:   action,
			Priority: priority,
		})
	}
	return processed
}
