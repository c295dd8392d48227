package jobs

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRuneSafe(t *testing.T) {
	long := strings.Repeat("a", 250)
	got := Truncate(long, MaxTitleLen)
	if len(got) != 200 {
		t.Fatalf("expected exactly 200 characters, got %d", len(got))
	}

	// Multi-byte characters must not be split at the boundary.
	wide := strings.Repeat("é", 250)
	got = Truncate(wide, MaxTitleLen)
	if utf8.RuneCountInString(got) != 200 {
		t.Fatalf("expected 200 runes, got %d", utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation corrupted a multi-byte boundary")
	}

	short := "short title"
	if Truncate(short, MaxTitleLen) != short {
		t.Fatalf("short input should be unchanged")
	}
}

func TestCandidateClamp(t *testing.T) {
	c := Candidate{
		Title:    strings.Repeat("t", 300),
		Company:  strings.Repeat("c", 150),
		Location: strings.Repeat("l", 150),
		RawText:  strings.Repeat("r", 3000),
		Source:   SourceCareerNetwork,
	}
	c.Clamp()
	if len(c.Title) != MaxTitleLen || len(c.Company) != MaxCompanyLen || len(c.Location) != MaxLocationLen {
		t.Fatalf("field caps not applied: title=%d company=%d location=%d", len(c.Title), len(c.Company), len(c.Location))
	}
	if len(c.RawText) != MaxRawTextLen {
		t.Fatalf("email-source raw text should cap at %d, got %d", MaxRawTextLen, len(c.RawText))
	}

	feed := Candidate{RawText: strings.Repeat("r", 3000), Source: SourceRemoteFeed}
	feed.Clamp()
	if len(feed.RawText) != MaxFeedRawTextLen {
		t.Fatalf("feed raw text should cap at %d, got %d", MaxFeedRawTextLen, len(feed.RawText))
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusNew, StatusInterested, StatusApplied, StatusInterviewing, StatusPassed, StatusRejected} {
		if !ValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if ValidStatus("archived") {
		t.Fatalf("unexpected status accepted")
	}
}
