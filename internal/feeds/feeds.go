// Package feeds is the feed transport capability: it fetches the
// configured remote-work RSS feeds and hands the raw XML to the feed
// parser.
package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"hiretrack-backend/internal/shared/telemetry"
	"hiretrack-backend/internal/sources"
)

const (
	fetchTimeout = 10 * time.Second
	userAgent    = "HireTrack/1.0"
)

// DefaultURLs are the remote-programming feeds scanned out of the box.
var DefaultURLs = []string{
	"https://weworkremotely.com/categories/remote-programming-jobs.rss",
	"https://weworkremotely.com/categories/remote-devops-sysadmin-jobs.rss",
	"https://weworkremotely.com/categories/remote-full-stack-programming-jobs.rss",
}

// Fetcher downloads each configured feed. A failing feed is logged and
// skipped; the remaining feeds still contribute documents.
type Fetcher struct {
	URLs       []string
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewFetcher constructs a Fetcher over the given feed URLs.
func NewFetcher(urls []string) *Fetcher {
	return &Fetcher{
		URLs:       urls,
		HTTPClient: &http.Client{Timeout: fetchTimeout},
		Now:        time.Now,
	}
}

// Fetch returns one document per reachable feed.
func (f *Fetcher) Fetch(ctx context.Context) ([]sources.Document, error) {
	var docs []sources.Document
	for _, feedURL := range f.URLs {
		body, err := f.fetchOne(ctx, feedURL)
		if err != nil {
			telemetry.Error("feeds.fetch_failed", map[string]any{
				"url":   feedURL,
				"error": err.Error(),
			})
			continue
		}
		docs = append(docs, sources.Document{Body: body, Observed: f.Now().UTC()})
	}
	return docs, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, feedURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("feed status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
