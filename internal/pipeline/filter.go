package pipeline

import (
	"sort"

	"github.com/AmarBego/GitTop/internal/model"
)

// Filters holds the user-selected list filters. The zero value shows
// unread records across all types and repositories.
type Filters struct {
	// ShowAll includes read records; when false the list is unread-only.
	ShowAll bool

	// SelectedType restricts the list to one subject type; nil means all.
	SelectedType *model.SubjectType

	// SelectedRepo restricts the list to one repository full name;
	// nil means all.
	SelectedRepo *string
}

// TypeCount is one entry of the subject-type facet for the sidebar.
type TypeCount struct {
	Type  model.SubjectType
	Count int
}

// RepoCount is one entry of the repository facet for the sidebar.
type RepoCount struct {
	Repo  string
	Count int
}

// Apply returns the records surviving the active filters.
func (f Filters) Apply(records []model.NotificationRecord) []model.NotificationRecord {
	out := make([]model.NotificationRecord, 0, len(records))
	for _, r := range records {
		if !f.ShowAll && !r.Unread {
			continue
		}
		if f.SelectedType != nil && r.SubjectType != *f.SelectedType {
			continue
		}
		if f.SelectedRepo != nil && r.RepoFullName != *f.SelectedRepo {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CountByType tallies records per subject type, highest count first and
// alphabetical on ties so repeated runs produce identical output.
func CountByType(records []model.NotificationRecord) []TypeCount {
	tally := make(map[model.SubjectType]int)
	for _, r := range records {
		tally[r.SubjectType]++
	}

	out := make([]TypeCount, 0, len(tally))
	for t, c := range tally {
		out = append(out, TypeCount{Type: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// CountByRepo tallies records per repository, highest count first and
// alphabetical on ties.
func CountByRepo(records []model.NotificationRecord) []RepoCount {
	tally := make(map[string]int)
	for _, r := range records {
		tally[r.RepoFullName]++
	}

	out := make([]RepoCount, 0, len(tally))
	for repo, c := range tally {
		out = append(out, RepoCount{Repo: repo, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Repo < out[j].Repo
	})
	return out
}

// facetCounts computes the sidebar counts, each against the
// complementary filter: type counts come from the repo-filtered set and
// repo counts from the type-filtered set, so each facet answers "what
// would I see if I changed this filter".
func facetCounts(records []model.NotificationRecord, f Filters) ([]TypeCount, []RepoCount) {
	forTypes := records
	if f.SelectedRepo != nil {
		forTypes = filterRepo(records, *f.SelectedRepo)
	}

	forRepos := records
	if f.SelectedType != nil {
		forRepos = filterType(records, *f.SelectedType)
	}

	return CountByType(forTypes), CountByRepo(forRepos)
}

func filterRepo(records []model.NotificationRecord, repo string) []model.NotificationRecord {
	out := make([]model.NotificationRecord, 0, len(records))
	for _, r := range records {
		if r.RepoFullName == repo {
			out = append(out, r)
		}
	}
	return out
}

func filterType(records []model.NotificationRecord, t model.SubjectType) []model.NotificationRecord {
	out := make([]model.NotificationRecord, 0, len(records))
	for _, r := range records {
		if r.SubjectType == t {
			out = append(out, r)
		}
	}
	return out
}

// resetStaleFilters clears a selected type or repo whose facet count
// dropped to zero, so the UI never silently shows a filter with no
// matching results.
func resetStaleFilters(f *Filters, types []TypeCount, repos []RepoCount) {
	if f.SelectedType != nil {
		valid := false
		for _, tc := range types {
			if tc.Type == *f.SelectedType && tc.Count > 0 {
				valid = true
				break
			}
		}
		if !valid {
			f.SelectedType = nil
		}
	}

	if f.SelectedRepo != nil {
		valid := false
		for _, rc := range repos {
			if rc.Repo == *f.SelectedRepo && rc.Count > 0 {
				valid = true
				break
			}
		}
		if !valid {
			f.SelectedRepo = nil
		}
	}
}
