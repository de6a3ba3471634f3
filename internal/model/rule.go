package model

import (
	"time"

	"github.com/google/uuid"
)

// Action is the resolved verdict for a notification.
//
// Notifications are shown by default; rules exist only to restrict,
// silence, hide, or elevate them.
type Action string

const (
	// ActionShow keeps the notification visible and lets it trigger a
	// desktop alert. This is the default when no rule matches.
	ActionShow Action = "show"

	// ActionSilent keeps the notification visible in the list but never
	// triggers a desktop alert for it.
	ActionSilent Action = "silent"

	// ActionHide removes the notification entirely: not listed, no alert.
	ActionHide Action = "hide"

	// ActionImportant pins the notification, keeps it visible across all
	// accounts, and always triggers a desktop alert. Important bypasses
	// schedules, Hide, and Silent from every other rule.
	ActionImportant Action = "important"
)

// Label returns the display name for an action.
func (a Action) Label() string {
	switch a {
	case ActionShow:
		return "Show"
	case ActionSilent:
		return "Silent"
	case ActionHide:
		return "Hide"
	case ActionImportant:
		return "Important"
	default:
		return string(a)
	}
}

// Restrictiveness ranks actions for priority tie-breaking:
// Hide > Silent > Show. Important never reaches the tie-break.
func (a Action) Restrictiveness() int {
	switch a {
	case ActionHide:
		return 3
	case ActionSilent:
		return 2
	case ActionShow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether a is one of the four known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionShow, ActionSilent, ActionHide, ActionImportant:
		return true
	}
	return false
}

// OutsideBehavior controls what an account rule does to notifications
// that arrive outside its active schedule.
type OutsideBehavior string

const (
	// OutsideSuppress hides notifications outside the schedule window.
	OutsideSuppress OutsideBehavior = "suppress"

	// OutsideAllowAnyway lets notifications through unchanged; org and
	// type rules still apply normally.
	OutsideAllowAnyway OutsideBehavior = "allow_anyway"
)

// AllDays is the full weekday set used for new account rules.
var AllDays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// AccountRule gates an account's notifications by weekday and
// time-of-day. One rule exists per known account, keyed by account name
// (case-insensitive); a default rule is synthesized on first sight.
type AccountRule struct {
	ID      string `mapstructure:"id" yaml:"id" json:"id"`
	Account string `mapstructure:"account" yaml:"account" json:"account"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// ActiveDays holds the weekdays the account is active on.
	ActiveDays []time.Weekday `mapstructure:"active_days" yaml:"active_days" json:"active_days"`

	// StartTime and EndTime bound the daily active window in "HH:MM"
	// form. Both must be set for the window to constrain; a value that
	// fails to parse is treated as unset.
	StartTime string `mapstructure:"start_time" yaml:"start_time" json:"start_time"`
	EndTime   string `mapstructure:"end_time" yaml:"end_time" json:"end_time"`

	// OutsideBehavior decides what happens outside the schedule.
	OutsideBehavior OutsideBehavior `mapstructure:"outside_behavior" yaml:"outside_behavior" json:"outside_behavior"`
}

// NewAccountRule returns the default rule for an account: enabled, active
// every day, no time window, allow-anyway outside schedule.
func NewAccountRule(account string) AccountRule {
	return AccountRule{
		ID:              uuid.New().String(),
		Account:         account,
		Enabled:         true,
		ActiveDays:      append([]time.Weekday(nil), AllDays...),
		OutsideBehavior: OutsideAllowAnyway,
	}
}

// ActiveOn reports whether day is in the rule's active-day set.
func (r AccountRule) ActiveOn(day time.Weekday) bool {
	for _, d := range r.ActiveDays {
		if d == day {
			return true
		}
	}
	return false
}

// OrgRule applies an action and priority to every notification from one
// organization (the repository owner prefix).
type OrgRule struct {
	ID      string `mapstructure:"id" yaml:"id" json:"id"`
	Org     string `mapstructure:"org" yaml:"org" json:"org"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Action  Action `mapstructure:"action" yaml:"action" json:"action"`

	// Priority ranks this rule against others; conventionally −100..100
	// but not clamped here.
	Priority int `mapstructure:"priority" yaml:"priority" json:"priority"`
}

// NewOrgRule creates an enabled org rule with a fresh id.
func NewOrgRule(org string, action Action, priority int) OrgRule {
	return OrgRule{
		ID:       uuid.New().String(),
		Org:      org,
		Enabled:  true,
		Action:   action,
		Priority: priority,
	}
}

// TypeRule applies an action and priority to one notification reason,
// either globally or scoped to a single account.
type TypeRule struct {
	ID      string `mapstructure:"id" yaml:"id" json:"id"`
	Reason  Reason `mapstructure:"reason" yaml:"reason" json:"reason"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Account scopes the rule to one account; empty means global.
	Account string `mapstructure:"account" yaml:"account" json:"account"`

	Action   Action `mapstructure:"action" yaml:"action" json:"action"`
	Priority int    `mapstructure:"priority" yaml:"priority" json:"priority"`
}

// NewTypeRule creates an enabled type rule with a fresh id. An empty
// account makes the rule global.
func NewTypeRule(reason Reason, account string, action Action, priority int) TypeRule {
	return TypeRule{
		ID:       uuid.New().String(),
		Reason:   reason,
		Enabled:  true,
		Account:  account,
		Action:   action,
		Priority: priority,
	}
}

// RuleSet is the full layered rule configuration, persisted as a single
// document. Evaluation takes a snapshot by value; mutation happens in the
// settings owner, which publishes a new snapshot after each edit.
type RuleSet struct {
	// Enabled is the master switch; when false no rule constrains
	// anything and every notification resolves to Show.
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	AccountRules []AccountRule `mapstructure:"account_rules" yaml:"account_rules" json:"account_rules"`
	OrgRules     []OrgRule     `mapstructure:"org_rules" yaml:"org_rules" json:"org_rules"`
	TypeRules    []TypeRule    `mapstructure:"type_rules" yaml:"type_rules" json:"type_rules"`
}

// DefaultRuleSet returns an enabled rule set with no rules, which leaves
// every notification at the Show default.
func DefaultRuleSet() RuleSet {
	return RuleSet{Enabled: true}
}

// DisabledRuleSet is the fallback when the persisted document cannot be
// parsed: empty and disabled, so the application keeps "show everything"
// semantics instead of failing.
func DisabledRuleSet() RuleSet {
	return RuleSet{Enabled: false}
}
