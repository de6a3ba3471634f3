package rules

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmarBego/GitTop/internal/model"
)

// The mutation helpers below edit a rule set in the settings owner; the
// owner publishes a fresh snapshot to the pipeline after every edit and
// triggers a full re-run, since a single rule change can flip the
// verdict of any number of records.

func foldAccount(account string) string {
	return strings.ToLower(account)
}

// EnsureAccountRules synthesizes a default rule for every signed-in
// account that has none yet. Account names match case-insensitively, so
// duplicates are never created. Reports whether the set changed.
func EnsureAccountRules(rs *model.RuleSet, accounts []string) bool {
	changed := false
	for _, account := range accounts {
		exists := false
		for _, r := range rs.AccountRules {
			if strings.EqualFold(r.Account, account) {
				exists = true
				break
			}
		}
		if !exists {
			rs.AccountRules = append(rs.AccountRules, model.NewAccountRule(account))
			changed = true
		}
	}
	return changed
}

// SetEnabled flips the master switch.
func SetEnabled(rs *model.RuleSet, enabled bool) {
	rs.Enabled = enabled
}

// ToggleAccountRule sets the enabled flag of one account rule by id.
func ToggleAccountRule(rs *model.RuleSet, id string, enabled bool) bool {
	for i := range rs.AccountRules {
		if rs.AccountRules[i].ID == id {
			rs.AccountRules[i].Enabled = enabled
			return true
		}
	}
	return false
}

// ToggleAccountDay adds or removes a weekday from an account rule's
// active-day set.
func ToggleAccountDay(rs *model.RuleSet, id string, day time.Weekday) bool {
	for i := range rs.AccountRules {
		if rs.AccountRules[i].ID != id {
			continue
		}
		r := &rs.AccountRules[i]
		for j, d := range r.ActiveDays {
			if d == day {
				r.ActiveDays = append(r.ActiveDays[:j], r.ActiveDays[j+1:]...)
				return true
			}
		}
		r.ActiveDays = append(r.ActiveDays, day)
		return true
	}
	return false
}

// SetAccountWindow sets an account rule's daily time window from "HH:MM"
// strings. A value that fails to parse clears that bound rather than
// erroring, matching the engine's treatment of malformed fields.
func SetAccountWindow(rs *model.RuleSet, id, start, end string) bool {
	for i := range rs.AccountRules {
		if rs.AccountRules[i].ID != id {
			continue
		}
		if _, ok := parseClock(start); !ok {
			start = ""
		}
		if _, ok := parseClock(end); !ok {
			end = ""
		}
		rs.AccountRules[i].StartTime = start
		rs.AccountRules[i].EndTime = end
		return true
	}
	return false
}

// SetAccountOutsideBehavior updates what happens outside the schedule.
func SetAccountOutsideBehavior(rs *model.RuleSet, id string, behavior model.OutsideBehavior) bool {
	for i := range rs.AccountRules {
		if rs.AccountRules[i].ID == id {
			rs.AccountRules[i].OutsideBehavior = behavior
			return true
		}
	}
	return false
}

// AddOrgRule appends a new org rule and returns its id.
func AddOrgRule(rs *model.RuleSet, org string, action model.Action, priority int) string {
	r := model.NewOrgRule(org, action, priority)
	rs.OrgRules = append(rs.OrgRules, r)
	return r.ID
}

// ToggleOrgRule sets the enabled flag of one org rule by id.
func ToggleOrgRule(rs *model.RuleSet, id string, enabled bool) bool {
	for i := range rs.OrgRules {
		if rs.OrgRules[i].ID == id {
			rs.OrgRules[i].Enabled = enabled
			return true
		}
	}
	return false
}

// DeleteOrgRule removes an org rule by id.
func DeleteOrgRule(rs *model.RuleSet, id string) bool {
	for i := range rs.OrgRules {
		if rs.OrgRules[i].ID == id {
			rs.OrgRules = append(rs.OrgRules[:i], rs.OrgRules[i+1:]...)
			return true
		}
	}
	return false
}

// DuplicateOrgRule copies an org rule under a fresh id and returns it.
func DuplicateOrgRule(rs *model.RuleSet, id string) (string, bool) {
	for _, r := range rs.OrgRules {
		if r.ID == id {
			dup := r
			dup.ID = uuid.New().String()
			rs.OrgRules = append(rs.OrgRules, dup)
			return dup.ID, true
		}
	}
	return "", false
}

// AddTypeRule appends a new type rule and returns its id. An empty
// account makes the rule global.
func AddTypeRule(rs *model.RuleSet, reason model.Reason, account string, action model.Action, priority int) string {
	r := model.NewTypeRule(reason, account, action, priority)
	rs.TypeRules = append(rs.TypeRules, r)
	return r.ID
}

// ToggleTypeRule sets the enabled flag of one type rule by id.
func ToggleTypeRule(rs *model.RuleSet, id string, enabled bool) bool {
	for i := range rs.TypeRules {
		if rs.TypeRules[i].ID == id {
			rs.TypeRules[i].Enabled = enabled
			return true
		}
	}
	return false
}

// DeleteTypeRule removes a type rule by id.
func DeleteTypeRule(rs *model.RuleSet, id string) bool {
	for i := range rs.TypeRules {
		if rs.TypeRules[i].ID == id {
			rs.TypeRules = append(rs.TypeRules[:i], rs.TypeRules[i+1:]...)
			return true
		}
	}
	return false
}

// DuplicateTypeRule copies a type rule under a fresh id and returns it.
func DuplicateTypeRule(rs *model.RuleSet, id string) (string, bool) {
	for _, r := range rs.TypeRules {
		if r.ID == id {
			dup := r
			dup.ID = uuid.New().String()
			rs.TypeRules = append(rs.TypeRules, dup)
			return dup.ID, true
		}
	}
	return "", false
}
