package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarBego/GitTop/internal/model"
)

func TestExplainMarksWinner(t *testing.T) {
	rs := model.DefaultRuleSet()
	rs.OrgRules = []model.OrgRule{model.NewOrgRule("acme", model.ActionShow, 50)}
	rs.TypeRules = []model.TypeRule{
		model.NewTypeRule(model.ReasonMention, "", model.ActionSilent, 80),
	}

	d := Explain(record("alice", "acme/widgets", model.ReasonMention), rs, weekdayNoon)

	assert.Equal(t, model.ActionSilent, d.Action)
	assert.Equal(t, 80, d.Priority)
	require.Len(t, d.Matched, 2)

	winners := 0
	for _, m := range d.Matched {
		if m.Winning {
			winners++
			assert.Equal(t, "type", m.Kind)
			assert.Equal(t, model.ActionSilent, m.Action)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestExplainImportantWinnerIgnoresPriority(t *testing.T) {
	rs := model.DefaultRuleSet()
	rs.OrgRules = []model.OrgRule{model.NewOrgRule("acme", model.ActionHide, 100)}
	rs.TypeRules = []model.TypeRule{
		model.NewTypeRule(model.ReasonMention, "", model.ActionImportant, -50),
	}

	d := Explain(record("alice", "acme/widgets", model.ReasonMention), rs, weekdayNoon)

	assert.Equal(t, model.ActionImportant, d.Action)
	require.Len(t, d.Matched, 2)
	for _, m := range d.Matched {
		assert.Equal(t, m.Action == model.ActionImportant, m.Winning)
	}
}

func TestExplainIncludesScheduleSuppression(t *testing.T) {
	rs := model.DefaultRuleSet()
	rs.AccountRules = []model.AccountRule{weekdayRule("alice", model.OutsideSuppress)}

	d := Explain(record("alice", "acme/widgets", model.ReasonComment), rs, weekendNoon)

	assert.Equal(t, model.ActionHide, d.Action)
	require.Len(t, d.Matched, 1)
	assert.Equal(t, "account", d.Matched[0].Kind)
	assert.True(t, d.Matched[0].Winning)
}

func TestExplainNoMatches(t *testing.T) {
	d := Explain(record("alice", "acme/widgets", model.ReasonComment),
		model.DefaultRuleSet(), weekdayNoon)

	assert.Equal(t, model.ActionShow, d.Action)
	assert.Equal(t, 0, d.Priority)
	assert.Empty(t, d.Matched)
}

func TestHighImpactRulesOrdering(t *testing.T) {
	rs := model.DefaultRuleSet()
	rs.OrgRules = []model.OrgRule{
		model.NewOrgRule("noisy", model.ActionHide, 20),
		model.NewOrgRule("quiet", model.ActionSilent, 90),
	}
	rs.TypeRules = []model.TypeRule{
		model.NewTypeRule(model.ReasonMention, "", model.ActionImportant, 5),
		model.NewTypeRule(model.ReasonCIActivity, "alice", model.ActionHide, 60),
	}
	suppress := model.NewAccountRule("bob")
	suppress.OutsideBehavior = model.OutsideSuppress
	rs.AccountRules = []model.AccountRule{suppress}

	out := HighImpactRules(rs)

	// Silent org rule is not high impact; the rest sort Important first,
	// then by priority descending.
	require.Len(t, out, 4)
	assert.Equal(t, model.ActionImportant, out[0].Action)
	assert.Equal(t, 60, out[1].Priority)
	assert.Equal(t, "noisy", out[2].Name)
	assert.Equal(t, "account", out[3].Kind)
}

func TestHighImpactRulesSkipsDisabled(t *testing.T) {
	rs := model.DefaultRuleSet()
	hide := model.NewOrgRule("noisy", model.ActionHide, 10)
	hide.Enabled = false
	rs.OrgRules = []model.OrgRule{hide}

	assert.Empty(t, HighImpactRules(rs))
}
