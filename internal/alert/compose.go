package alert

import (
	"fmt"
	"strings"
)

// summaryTitleCap is how many record titles a batched summary names
// before collapsing the rest into an "and N more" suffix.
const summaryTitleCap = 3

// Message is one desktop alert ready for the platform notifier: a
// title, a body, and an optional click-through URL.
type Message struct {
	Title string
	Body  string
	URL   string
}

// Compose renders a batch into the alert messages to deliver: one
// message per priority record, then either a single message or a
// summarized one for the regular set.
func Compose(b Batch) []Message {
	if b.Empty() {
		return nil
	}

	msgs := make([]Message, 0, len(b.Priority)+1)

	for _, p := range b.Priority {
		rec := p.Record
		msgs = append(msgs, Message{
			Title: fmt.Sprintf("Important: %s - %s", rec.RepoFullName, rec.SubjectType.Label()),
			Body:  fmt.Sprintf("%s\n%s", rec.Title, rec.Reason.Label()),
			URL:   WebURL(rec.URL),
		})
	}

	switch len(b.Regular) {
	case 0:
	case 1:
		rec := b.Regular[0].Record
		msgs = append(msgs, Message{
			Title: fmt.Sprintf("%s - %s", rec.RepoFullName, rec.SubjectType.Label()),
			Body:  fmt.Sprintf("%s\n%s", rec.Title, rec.Reason.Label()),
			URL:   WebURL(rec.URL),
		})
	default:
		lines := make([]string, 0, summaryTitleCap)
		for _, p := range b.Regular[:min(len(b.Regular), summaryTitleCap)] {
			lines = append(lines, "• "+p.Record.Title)
		}
		body := strings.Join(lines, "\n")
		if extra := len(b.Regular) - summaryTitleCap; extra > 0 {
			body = fmt.Sprintf("%s\n...and %d more", body, extra)
		}
		msgs = append(msgs, Message{
			Title: fmt.Sprintf("%d new GitHub notifications", len(b.Regular)),
			Body:  body,
		})
	}

	return msgs
}

// WebURL rewrites an API subject URL into the address a browser can
// open. Unknown shapes pass through unchanged.
func WebURL(apiURL string) string {
	if apiURL == "" {
		return ""
	}
	url := strings.Replace(apiURL, "api.github.com/repos/", "github.com/", 1)
	url = strings.Replace(url, "/pulls/", "/pull/", 1)
	url = strings.Replace(url, "/commits/", "/commit/", 1)
	return url
}
