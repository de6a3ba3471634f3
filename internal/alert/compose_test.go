package alert

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarBego/GitTop/internal/model"
)

func TestComposeEmptyBatch(t *testing.T) {
	assert.Nil(t, Compose(Batch{}))
}

func TestComposePriorityMessages(t *testing.T) {
	p := processed("1", model.ActionImportant, fetchTime)
	p.Record.Reason = model.ReasonMention
	p.Record.Title = "Fix the flaky test"
	p.Record.URL = "https://api.github.com/repos/acme/widgets/issues/42"

	msgs := Compose(Batch{Priority: []model.ProcessedNotification{p}})

	require.Len(t, msgs, 1)
	assert.Equal(t, "Important: acme/widgets - Issue", msgs[0].Title)
	assert.Equal(t, "Fix the flaky test\nMentioned", msgs[0].Body)
	assert.Equal(t, "https://github.com/acme/widgets/issues/42", msgs[0].URL)
}

func TestComposeSingleRegular(t *testing.T) {
	p := processed("1", model.ActionShow, fetchTime)
	p.Record.Title = "Release v2.0"

	msgs := Compose(Batch{Regular: []model.ProcessedNotification{p}})

	require.Len(t, msgs, 1)
	assert.Equal(t, "acme/widgets - Issue", msgs[0].Title)
	assert.Contains(t, msgs[0].Body, "Release v2.0")
}

func TestComposeRegularSummary(t *testing.T) {
	var regular []model.ProcessedNotification
	for i := 1; i <= 5; i++ {
		p := processed(fmt.Sprintf("%d", i), model.ActionShow, fetchTime)
		p.Record.Title = fmt.Sprintf("Thread %d", i)
		regular = append(regular, p)
	}

	msgs := Compose(Batch{Regular: regular})

	require.Len(t, msgs, 1)
	assert.Equal(t, "5 new GitHub notifications", msgs[0].Title)
	assert.Equal(t,
		"• Thread 1\n• Thread 2\n• Thread 3\n...and 2 more",
		msgs[0].Body)
	assert.Empty(t, msgs[0].URL)
}

func TestComposeSummaryWithoutOverflow(t *testing.T) {
	var regular []model.ProcessedNotification
	for i := 1; i <= 2; i++ {
		p := processed(fmt.Sprintf("%d", i), model.ActionShow, fetchTime)
		p.Record.Title = fmt.Sprintf("Thread %d", i)
		regular = append(regular, p)
	}

	msgs := Compose(Batch{Regular: regular})

	require.Len(t, msgs, 1)
	assert.Equal(t, "2 new GitHub notifications", msgs[0].Title)
	assert.NotContains(t, msgs[0].Body, "more")
}

func TestComposePriorityAndRegularTogether(t *testing.T) {
	b := Batch{
		Priority: []model.ProcessedNotification{
			processed("1", model.ActionImportant, fetchTime),
			processed("2", model.ActionImportant, fetchTime),
		},
		Regular: []model.ProcessedNotification{
			processed("3", model.ActionShow, fetchTime),
		},
	}

	msgs := Compose(b)

	// Each priority record gets its own message; regulars share one.
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0].Title, "Important")
	assert.Contains(t, msgs[1].Title, "Important")
	assert.NotContains(t, msgs[2].Title, "Important")
}

func TestWebURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{
			"https://api.github.com/repos/acme/widgets/pulls/7",
			"https://github.com/acme/widgets/pull/7",
		},
		{
			"https://api.github.com/repos/acme/widgets/issues/42",
			"https://github.com/acme/widgets/issues/42",
		},
		{
			"https://api.github.com/repos/acme/widgets/commits/abc123",
			"https://github.com/acme/widgets/commit/abc123",
		},
		{"https://example.com/unrelated", "https://example.com/unrelated"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WebURL(tt.in))
	}
}
