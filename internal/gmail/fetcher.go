package gmail

import (
	"context"
	"time"

	"hiretrack-backend/internal/shared/telemetry"
	"hiretrack-backend/internal/sources"
)

// DefaultLookback bounds how far back the mailbox queries reach.
const DefaultLookback = 7 * 24 * time.Hour

// Fetcher runs a set of mailbox queries scoped to a lookback window. One
// failing query is logged and skipped so a single bad sender filter cannot
// starve the rest of the scan.
type Fetcher struct {
	Client   *Client
	Queries  []string
	Lookback time.Duration
	Now      func() time.Time
}

// NewFetcher constructs a Fetcher over the given queries.
func NewFetcher(client *Client, queries []string, lookback time.Duration) *Fetcher {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Fetcher{Client: client, Queries: queries, Lookback: lookback, Now: time.Now}
}

// Fetch returns the documents for every query in the window.
func (f *Fetcher) Fetch(ctx context.Context) ([]sources.Document, error) {
	after := f.Now().UTC().Add(-f.Lookback).Format("2006/01/02")
	var docs []sources.Document
	for _, query := range f.Queries {
		scoped := query + " after:" + after
		found, err := f.Client.Search(ctx, scoped)
		if err != nil {
			telemetry.Error("gmail.query_failed", map[string]any{
				"query": query,
				"error": err.Error(),
			})
			continue
		}
		docs = append(docs, found...)
	}
	return docs, nil
}
