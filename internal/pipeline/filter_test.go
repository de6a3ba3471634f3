package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarBego/GitTop/internal/model"
)

var baseTime = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func rec(id, account, repo string, subject model.SubjectType, unread bool) model.NotificationRecord {
	return model.NotificationRecord{
		ID:           id,
		Account:      account,
		RepoFullName: repo,
		SubjectType:  subject,
		Reason:       model.ReasonComment,
		Title:        "notification " + id,
		Unread:       unread,
		UpdatedAt:    baseTime,
	}
}

func TestApplyUnreadOnly(t *testing.T) {
	records := []model.NotificationRecord{
		rec("1", "alice", "acme/widgets", model.SubjectIssue, true),
		rec("2", "alice", "acme/widgets", model.SubjectIssue, false),
	}

	var f Filters
	assert.Len(t, f.Apply(records), 1)

	f.ShowAll = true
	assert.Len(t, f.Apply(records), 2)
}

func TestApplyTypeAndRepoFilters(t *testing.T) {
	records := []model.NotificationRecord{
		rec("1", "alice", "acme/widgets", model.SubjectIssue, true),
		rec("2", "alice", "acme/gears", model.SubjectPullRequest, true),
		rec("3", "alice", "acme/widgets", model.SubjectPullRequest, true),
	}

	pr := model.SubjectPullRequest
	f := Filters{SelectedType: &pr}
	out := f.Apply(records)
	require.Len(t, out, 2)
	assert.Equal(t, "2", out[0].ID)

	repo := "acme/widgets"
	f = Filters{SelectedRepo: &repo}
	out = f.Apply(records)
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
}

func TestCountOrderingIsDeterministic(t *testing.T) {
	records := []model.NotificationRecord{
		rec("1", "alice", "acme/widgets", model.SubjectIssue, true),
		rec("2", "alice", "acme/gears", model.SubjectPullRequest, true),
		rec("3", "alice", "acme/widgets", model.SubjectPullRequest, true),
		rec("4", "alice", "acme/gears", model.SubjectIssue, true),
	}

	types := CountByType(records)
	require.Len(t, types, 2)
	// Equal counts: alphabetical.
	assert.Equal(t, model.SubjectIssue, types[0].Type)
	assert.Equal(t, model.SubjectPullRequest, types[1].Type)

	repos := CountByRepo(records)
	require.Len(t, repos, 2)
	assert.Equal(t, "acme/gears", repos[0].Repo)

	for i := 0; i < 5; i++ {
		assert.Equal(t, types, CountByType(records))
		assert.Equal(t, repos, CountByRepo(records))
	}
}

func TestFacetCountsAreComplementary(t *testing.T) {
	records := []model.NotificationRecord{
		rec("1", "alice", "acme/widgets", model.SubjectIssue, true),
		rec("2", "alice", "acme/widgets", model.SubjectPullRequest, true),
		rec("3", "alice", "acme/gears", model.SubjectIssue, true),
	}

	repo := "acme/widgets"
	issue := model.SubjectIssue
	f := Filters{SelectedRepo: &repo, SelectedType: &issue}

	types, repos := facetCounts(records, f)

	// Type counts come from the repo-filtered set only.
	require.Len(t, types, 2)
	for _, tc := range types {
		assert.Equal(t, 1, tc.Count)
	}

	// Repo counts come from the type-filtered set only.
	require.Len(t, repos, 2)
	for _, rc := range repos {
		assert.Equal(t, 1, rc.Count)
	}
}

func TestResetStaleFilters(t *testing.T) {
	records := []model.NotificationRecord{
		rec("1", "alice", "acme/widgets", model.SubjectIssue, true),
	}

	release := model.SubjectRelease
	gone := "acme/removed"
	f := Filters{SelectedType: &release, SelectedRepo: &gone}

	types, repos := facetCounts(records, f)
	resetStaleFilters(&f, types, repos)

	assert.Nil(t, f.SelectedType)
	assert.Nil(t, f.SelectedRepo)

	// A filter that still matches survives.
	issue := model.SubjectIssue
	f = Filters{SelectedType: &issue}
	types, repos = facetCounts(records, f)
	resetStaleFilters(&f, types, repos)
	require.NotNil(t, f.SelectedType)
	assert.Equal(t, model.SubjectIssue, *f.SelectedType)
}
