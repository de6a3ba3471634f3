package rules

import (
	"fmt"
	"sort"
	"time"

	"github.com/AmarBego/GitTop/internal/model"
)

// MatchedRule is one rule that applied to a simulated notification,
// reported by Explain for the settings test lab.
type MatchedRule struct {
	// Kind is "account", "org", or "type".
	Kind string

	// Name is a human-readable identifier for the rule.
	Name string

	Action   model.Action
	Priority int

	// Winning marks the rule whose verdict became the final action.
	Winning bool
}

// Decision is the full trace for one simulated evaluation.
type Decision struct {
	Action   model.Action
	Priority int
	Matched  []MatchedRule
}

// Explain runs the engine against a simulated record and reports which
// rules matched and which one won, so users can see why a notification
// would be shown, silenced, hidden, or elevated.
func Explain(rec model.NotificationRecord, rs model.RuleSet, now time.Time) Decision {
	action, priority := Evaluate(rec, rs, now)
	d := Decision{Action: action, Priority: priority}

	if !rs.Enabled {
		return d
	}

	if r, ok := matchAccountRule(rs, rec.Account); ok {
		if !withinSchedule(r, now) && r.OutsideBehavior == model.OutsideSuppress {
			d.Matched = append(d.Matched, MatchedRule{
				Kind:     "account",
				Name:     fmt.Sprintf("%s (outside schedule)", r.Account),
				Action:   model.ActionHide,
				Priority: 0,
			})
		}
	}

	for _, r := range rs.OrgRules {
		if r.Enabled && r.Org == rec.Org() {
			d.Matched = append(d.Matched, MatchedRule{
				Kind:     "org",
				Name:     r.Org,
				Action:   r.Action,
				Priority: r.Priority,
			})
		}
	}

	for _, r := range rs.TypeRules {
		if !r.Enabled || r.Reason != rec.Reason {
			continue
		}
		if r.Account != "" && foldAccount(r.Account) != foldAccount(rec.Account) {
			continue
		}
		name := r.Reason.Label()
		if r.Account != "" {
			name = fmt.Sprintf("%s (%s)", name, r.Account)
		}
		d.Matched = append(d.Matched, MatchedRule{
			Kind:     "type",
			Name:     name,
			Action:   r.Action,
			Priority: r.Priority,
		})
	}

	markWinner(&d)
	return d
}

// markWinner flags the matched rule whose contribution produced the
// final verdict, mirroring the engine's resolution order.
func markWinner(d *Decision) {
	if len(d.Matched) == 0 {
		return
	}

	best := -1
	for i, m := range d.Matched {
		if d.Action == model.ActionImportant {
			if m.Action != model.ActionImportant {
				continue
			}
			if best < 0 || m.Priority > d.Matched[best].Priority {
				best = i
			}
			continue
		}
		if m.Action == model.ActionImportant {
			continue
		}
		if best < 0 ||
			m.Priority > d.Matched[best].Priority ||
			(m.Priority == d.Matched[best].Priority &&
				m.Action.Restrictiveness() > d.Matched[best].Action.Restrictiveness()) {
			best = i
		}
	}

	if best >= 0 {
		d.Matched[best].Winning = true
	}
}

// HighImpactRules lists enabled rules with far-reaching effects,
// Important and Hide verdicts first, for the settings overview. The
// returned names follow the same format Explain uses.
func HighImpactRules(rs model.RuleSet) []MatchedRule {
	var out []MatchedRule

	for _, r := range rs.OrgRules {
		if r.Enabled && (r.Action == model.ActionImportant || r.Action == model.ActionHide) {
			out = append(out, MatchedRule{
				Kind: "org", Name: r.Org, Action: r.Action, Priority: r.Priority,
			})
		}
	}
	for _, r := range rs.TypeRules {
		if r.Enabled && (r.Action == model.ActionImportant || r.Action == model.ActionHide) {
			name := r.Reason.Label()
			if r.Account != "" {
				name = fmt.Sprintf("%s (%s)", name, r.Account)
			}
			out = append(out, MatchedRule{
				Kind: "type", Name: name, Action: r.Action, Priority: r.Priority,
			})
		}
	}
	for _, r := range rs.AccountRules {
		if r.Enabled && r.OutsideBehavior == model.OutsideSuppress {
			out = append(out, MatchedRule{
				Kind:   "account",
				Name:   fmt.Sprintf("%s (suppress outside schedule)", r.Account),
				Action: model.ActionHide,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action == model.ActionImportant
		}
		return out[i].Priority > out[j].Priority
	})

	return out
}
