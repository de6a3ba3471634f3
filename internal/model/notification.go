package model

import (
	"strings"
	"time"
)

// SubjectType identifies what kind of item a notification points at.
type SubjectType string

const (
	SubjectIssue         SubjectType = "Issue"
	SubjectPullRequest   SubjectType = "PullRequest"
	SubjectRelease       SubjectType = "Release"
	SubjectDiscussion    SubjectType = "Discussion"
	SubjectCheckSuite    SubjectType = "CheckSuite"
	SubjectCommit        SubjectType = "Commit"
	SubjectSecurityAlert SubjectType = "RepositoryVulnerabilityAlert"
	SubjectUnknown       SubjectType = "Unknown"
)

// Label returns the display name for a subject type.
func (s SubjectType) Label() string {
	switch s {
	case SubjectIssue:
		return "Issue"
	case SubjectPullRequest:
		return "Pull Request"
	case SubjectRelease:
		return "Release"
	case SubjectDiscussion:
		return "Discussion"
	case SubjectCheckSuite:
		return "Check Suite"
	case SubjectCommit:
		return "Commit"
	case SubjectSecurityAlert:
		return "Security Alert"
	default:
		return "Unknown"
	}
}

// Reason is the upstream reason code attached to a notification.
type Reason string

const (
	ReasonMention         Reason = "mention"
	ReasonReviewRequested Reason = "review_requested"
	ReasonAssign          Reason = "assign"
	ReasonComment         Reason = "comment"
	ReasonCIActivity      Reason = "ci_activity"
	ReasonAuthor          Reason = "author"
	ReasonTeamMention     Reason = "team_mention"
	ReasonStateChange     Reason = "state_change"
	ReasonSubscribed      Reason = "subscribed"
	ReasonSecurityAlert   Reason = "security_alert"
)

// Reasons lists every reason code a type rule can target, in the order
// the settings surface presents them.
var Reasons = []Reason{
	ReasonMention,
	ReasonReviewRequested,
	ReasonAssign,
	ReasonComment,
	ReasonCIActivity,
	ReasonAuthor,
	ReasonTeamMention,
	ReasonStateChange,
	ReasonSubscribed,
	ReasonSecurityAlert,
}

// Label returns the display name for a reason code.
func (r Reason) Label() string {
	switch r {
	case ReasonMention:
		return "Mentioned"
	case ReasonReviewRequested:
		return "Review Requested"
	case ReasonAssign:
		return "Assigned"
	case ReasonComment:
		return "Commented"
	case ReasonCIActivity:
		return "CI Activity"
	case ReasonAuthor:
		return "Author"
	case ReasonTeamMention:
		return "Team Mentioned"
	case ReasonStateChange:
		return "State Changed"
	case ReasonSubscribed:
		return "Subscribed"
	case ReasonSecurityAlert:
		return "Security Alert"
	default:
		return strings.ReplaceAll(string(r), "_", " ")
	}
}

// NotificationRecord is one upstream notification item as fetched from the
// API client. Records are immutable once fetched; a new fetch produces a
// new list.
type NotificationRecord struct {
	// ID is the stable upstream identifier for the notification thread.
	ID string `json:"id" db:"id"`

	// Account is the signed-in account this record was fetched for.
	Account string `json:"account" db:"account"`

	// RepoFullName is the "owner/name" repository identifier.
	RepoFullName string `json:"repo_full_name" db:"repo_full_name"`

	// SubjectType identifies the kind of item the notification refers to.
	SubjectType SubjectType `json:"subject_type" db:"subject_type"`

	// Reason is the upstream reason code for why the user was notified.
	Reason Reason `json:"reason" db:"reason"`

	// Title is the subject title shown in lists and alerts.
	Title string `json:"title" db:"title"`

	// Unread indicates whether the thread is still unread upstream.
	Unread bool `json:"unread" db:"unread"`

	// UpdatedAt is the upstream last-modified timestamp; it drives
	// grouping and desktop-alert deduplication.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// URL is the API URL of the subject, if the upstream provided one.
	URL string `json:"url,omitempty" db:"url"`

	// LatestCommentURL points at the newest comment, when present.
	LatestCommentURL string `json:"latest_comment_url,omitempty" db:"latest_comment_url"`
}

// Org returns the organization (or user) portion of the repository full
// name, the prefix before the first "/". Org rules match against this.
func (n NotificationRecord) Org() string {
	if i := strings.IndexByte(n.RepoFullName, '/'); i >= 0 {
		return n.RepoFullName[:i]
	}
	return n.RepoFullName
}

// ProcessedNotification pairs a record with its resolved action and
// effective priority. Produced fresh on every pipeline run, never mutated.
type ProcessedNotification struct {
	Record   NotificationRecord `json:"record"`
	Action   Action             `json:"action"`
	Priority int                `json:"priority"`
}
