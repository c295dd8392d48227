// Package jobs holds the canonical posting record, its persistence
// contract, and the read-time ranking used for listing.
package jobs

import (
	"encoding/json"
	"time"
)

// Source identifies where a posting was ingested from.
type Source string

const (
	SourceCareerNetwork   Source = "career-network"
	SourceJobBoard        Source = "job-board"
	SourceRemoteFeed      Source = "remote-feed"
	SourceExternalCapture Source = "external-capture"
)

// Statuses a record moves through. Only explicit user action (or the
// should-apply transition of a full analysis) changes them.
const (
	StatusNew          = "new"
	StatusInterested   = "interested"
	StatusApplied      = "applied"
	StatusInterviewing = "interviewing"
	StatusPassed       = "passed"
	StatusRejected     = "rejected"
)

// Field caps. Overflow is truncated, never rejected.
const (
	MaxTitleLen       = 200
	MaxCompanyLen     = 100
	MaxLocationLen    = 100
	MaxRawTextLen     = 1000
	MaxFeedRawTextLen = 2000
	MaxDescriptionLen = 5000
)

// MinTitleLen is the shortest title a parser will emit.
const MinTitleLen = 3

// JobRecord is the persisted unit, keyed by its content-derived ID.
// WeightedScore is filled at read time only and never stored.
type JobRecord struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Company            string          `json:"company"`
	Location           string          `json:"location"`
	URL                string          `json:"url"`
	Source             Source          `json:"source"`
	RawText            string          `json:"rawText"`
	Description        string          `json:"description,omitempty"`
	Status             string          `json:"status"`
	BaselineScore      int             `json:"baselineScore"`
	QualificationScore int             `json:"qualificationScore"`
	Analysis           json.RawMessage `json:"analysis,omitempty"`
	CoverLetter        string          `json:"coverLetter,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	IsFiltered         bool            `json:"isFiltered"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	PostedAt           time.Time       `json:"postedAt"`

	WeightedScore float64 `json:"weightedScore,omitempty"`
}

// Candidate is a parsed posting before identity assignment. URL may or may
// not be canonical yet; the orchestrator normalizes it before keying.
type Candidate struct {
	Title       string
	Company     string
	Location    string
	URL         string
	Source      Source
	RawText     string
	Description string
	PostedAt    time.Time
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInterested, StatusApplied, StatusInterviewing, StatusPassed, StatusRejected:
		return true
	}
	return false
}

// Truncate caps s at n runes. Slicing runes, not bytes, keeps multi-byte
// characters intact at the boundary.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Clamp applies the per-field caps in place.
func (c *Candidate) Clamp() {
	rawCap := MaxRawTextLen
	if c.Source == SourceRemoteFeed || c.Source == SourceExternalCapture {
		rawCap = MaxFeedRawTextLen
	}
	c.Title = Truncate(c.Title, MaxTitleLen)
	c.Company = Truncate(c.Company, MaxCompanyLen)
	c.Location = Truncate(c.Location, MaxLocationLen)
	c.RawText = Truncate(c.RawText, rawCap)
	c.Description = Truncate(c.Description, MaxDescriptionLen)
}
