package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarBego/GitTop/internal/model"
)

func importantRules() model.RuleSet {
	rs := model.DefaultRuleSet()
	rs.TypeRules = []model.TypeRule{
		model.NewTypeRule(model.ReasonMention, "", model.ActionImportant, 50),
	}
	return rs
}

func TestProcessDropsHiddenRecords(t *testing.T) {
	rs := model.DefaultRuleSet()
	rs.OrgRules = []model.OrgRule{model.NewOrgRule("noisy", model.ActionHide, 0)}

	records := []model.NotificationRecord{
		rec("1", "alice", "acme/widgets", model.SubjectIssue, true),
		rec("2", "alice", "noisy/spam", model.SubjectIssue, true),
	}

	var f Filters
	result := Process(records, rs, &f, "alice", NewTracker(), nil, baseTime)

	require.Len(t, result.Processed, 1)
	assert.Equal(t, "1", result.Processed[0].Record.ID)

	// Facet counts see the raw list; hiding is a display verdict.
	require.Len(t, result.RepoCounts, 2)
}

func TestProcessIsIdempotent(t *testing.T) {
	rs := importantRules()
	records := []model.NotificationRecord{
		rec("1", "alice", "acme/widgets", model.SubjectIssue, true),
		rec("2", "alice", "acme/gears", model.SubjectPullRequest, true),
	}
	records[1].Reason = model.ReasonMention

	var f Filters
	tracker := NewTracker()
	first := Process(records, rs, &f, "alice", tracker, nil, baseTime)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Process(records, rs, &f, "alice", tracker, nil, baseTime))
	}
}

func TestProcessMergesOtherAccountPriority(t *testing.T) {
	rs := importantRules()
	tracker := NewTracker()

	// Bob's fetch tracks his Important mention.
	bobRecords := []model.NotificationRecord{
		rec("b1", "bob", "acme/widgets", model.SubjectIssue, true),
	}
	bobRecords[0].Reason = model.ReasonMention
	var f Filters
	Process(bobRecords, rs, &f, "bob", tracker, nil, baseTime)

	// After switching to alice, bob's record still shows in unread mode.
	aliceRecords := []model.NotificationRecord{
		rec("a1", "alice", "acme/gears", model.SubjectIssue, true),
	}
	result := Process(aliceRecords, rs, &f, "alice", tracker, nil, baseTime)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, GroupPriority, result.Groups[0].Title)
	require.Len(t, result.Groups[0].Notifications, 1)
	assert.Equal(t, "b1", result.Groups[0].Notifications[0].Record.ID)

	// Processed holds only the current account's records.
	require.Len(t, result.Processed, 1)
	assert.Equal(t, "a1", result.Processed[0].Record.ID)
}

func TestProcessNoMergeInShowAllMode(t *testing.T) {
	rs := importantRules()
	tracker := NewTracker()

	bobRecords := []model.NotificationRecord{
		rec("b1", "bob", "acme/widgets", model.SubjectIssue, true),
	}
	bobRecords[0].Reason = model.ReasonMention
	var f Filters
	Process(bobRecords, rs, &f, "bob", tracker, nil, baseTime)

	aliceRecords := []model.NotificationRecord{
		rec("a1", "alice", "acme/gears", model.SubjectIssue, true),
	}
	showAll := Filters{ShowAll: true}
	result := Process(aliceRecords, rs, &showAll, "alice", tracker, nil, baseTime)

	for _, g := range result.Groups {
		assert.NotEqual(t, GroupPriority, g.Title)
		for _, p := range g.Notifications {
			assert.Equal(t, "alice", p.Record.Account)
		}
	}
}

func TestProcessMergeDeduplicatesByID(t *testing.T) {
	rs := importantRules()
	tracker := NewTracker()

	// The same record id was tracked for bob and now appears in alice's
	// own fetch; it must show once.
	shared := rec("shared", "bob", "acme/widgets", model.SubjectIssue, true)
	shared.Reason = model.ReasonMention
	var f Filters
	Process([]model.NotificationRecord{shared}, rs, &f, "bob", tracker, nil, baseTime)

	aliceCopy := shared
	aliceCopy.Account = "alice"
	result := Process([]model.NotificationRecord{aliceCopy}, rs, &f, "alice", tracker, nil, baseTime)

	total := 0
	for _, g := range result.Groups {
		total += len(g.Notifications)
	}
	assert.Equal(t, 1, total)
}

func TestProcessTrackerSeesPreFilterEvaluation(t *testing.T) {
	rs := importantRules()
	tracker := NewTracker()

	records := []model.NotificationRecord{
		rec("a1", "alice", "acme/widgets", model.SubjectIssue, true),
		rec("a2", "alice", "acme/gears", model.SubjectIssue, true),
	}
	records[0].Reason = model.ReasonMention

	// A repo filter that excludes the Important record must not untrack it.
	other := "acme/gears"
	f := Filters{SelectedRepo: &other}
	result := Process(records, rs, &f, "alice", tracker, nil, baseTime)

	require.Len(t, result.Processed, 1)
	assert.Equal(t, "a2", result.Processed[0].Record.ID)

	others := tracker.OtherAccounts("bob")
	require.Len(t, others, 1)
	assert.Equal(t, "a1", others[0].Record.ID)
}

func TestProcessClearsStaleFilter(t *testing.T) {
	rs := model.DefaultRuleSet()
	records := []model.NotificationRecord{
		rec("1", "alice", "acme/widgets", model.SubjectIssue, true),
	}

	gone := "acme/removed"
	f := Filters{SelectedRepo: &gone}
	result := Process(records, rs, &f, "alice", NewTracker(), nil, baseTime)

	assert.Nil(t, f.SelectedRepo)
	assert.Len(t, result.Processed, 1)
}
