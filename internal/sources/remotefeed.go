package sources

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"hiretrack-backend/internal/canonical"
	"hiretrack-backend/internal/jobs"
)

// DefaultLookback bounds how far back feed items are accepted.
const DefaultLookback = 7 * 24 * time.Hour

// RemoteFeedParser extracts postings from remote-work RSS feeds. Feed item
// titles follow the "Company: Title" convention; everything after the first
// colon is the job title.
type RemoteFeedParser struct {
	// Lookback overrides DefaultLookback when positive.
	Lookback time.Duration
}

// Source returns the source tag for this parser.
func (RemoteFeedParser) Source() jobs.Source { return jobs.SourceRemoteFeed }

// Parse extracts candidates from one RSS feed document. Items older than the
// lookback window are skipped; items without a parseable publish date are
// kept and stamped with the observation time.
func (p RemoteFeedParser) Parse(doc Document) ([]jobs.Candidate, error) {
	feed, err := gofeed.NewParser().ParseString(doc.Body)
	if err != nil {
		return nil, err
	}

	lookback := p.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	cutoff := doc.Observed.Add(-lookback)

	var out []jobs.Candidate
	seen := make(map[string]struct{})

	for _, item := range feed.Items {
		postedAt := doc.Observed
		if item.PublishedParsed != nil {
			if item.PublishedParsed.Before(cutoff) {
				continue
			}
			postedAt = *item.PublishedParsed
		}

		url := canonical.NormalizeURL(item.Link)
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}

		company, title := splitFeedTitle(item.Title)
		if !usableTitle(title) {
			continue
		}

		c := jobs.Candidate{
			Title:    title,
			Company:  company,
			Location: "Remote",
			URL:      url,
			Source:   jobs.SourceRemoteFeed,
			RawText:  stripMarkup(item.Description),
			PostedAt: postedAt,
		}
		c.Clamp()
		out = append(out, c)
	}

	return out, nil
}

// splitFeedTitle splits "Company: Title" on the first colon. Without a colon
// the whole string is the title and the company is unknown.
func splitFeedTitle(s string) (company, title string) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ":"); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return "", s
}

var _ Parser = RemoteFeedParser{}
