package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarBego/GitTop/internal/model"
)

func tracked(id, account string, unread bool) model.ProcessedNotification {
	r := rec(id, account, "acme/widgets", model.SubjectIssue, unread)
	return model.ProcessedNotification{
		Record: r, Action: model.ActionImportant, Priority: 50,
	}
}

func TestTrackerUpdateReplacesAccountEntries(t *testing.T) {
	tr := NewTracker()

	tr.Update("alice", []model.ProcessedNotification{
		tracked("a1", "alice", true),
		tracked("a2", "alice", true),
	})
	tr.Update("bob", []model.ProcessedNotification{tracked("b1", "bob", true)})
	assert.Len(t, tr.Snapshot(), 3)

	// A refresh where a2 no longer qualifies drops it; bob is untouched.
	tr.Update("alice", []model.ProcessedNotification{tracked("a1", "alice", true)})

	snap := tr.Snapshot()
	require.Len(t, snap, 2)
	ids := []string{snap[0].Record.ID, snap[1].Record.ID}
	assert.ElementsMatch(t, []string{"b1", "a1"}, ids)
}

func TestTrackerUpdateEmptyClearsAccount(t *testing.T) {
	tr := NewTracker()
	tr.Update("alice", []model.ProcessedNotification{tracked("a1", "alice", true)})

	tr.Update("alice", nil)

	assert.Empty(t, tr.Snapshot())
}

func TestTrackerOtherAccounts(t *testing.T) {
	tr := NewTracker()
	tr.Update("alice", []model.ProcessedNotification{tracked("a1", "alice", true)})
	tr.Update("bob", []model.ProcessedNotification{
		tracked("b1", "bob", true),
		tracked("b2", "bob", false),
	})

	others := tr.OtherAccounts("alice")

	// Only unread entries from accounts other than the current one.
	require.Len(t, others, 1)
	assert.Equal(t, "b1", others[0].Record.ID)
}

func TestTrackerSnapshotRestore(t *testing.T) {
	tr := NewTracker()
	tr.Update("alice", []model.ProcessedNotification{tracked("a1", "alice", true)})

	snap := tr.Snapshot()

	fresh := NewTracker()
	fresh.Restore(snap)
	assert.Equal(t, snap, fresh.Snapshot())

	// The snapshot is a copy; later updates do not leak into it.
	tr.Update("alice", nil)
	require.Len(t, snap, 1)
	assert.Equal(t, "a1", snap[0].Record.ID)
}
