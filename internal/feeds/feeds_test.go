package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchReturnsDocuments(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `<rss version="2.0"><channel><title>Jobs</title></channel></rss>`)
	}))
	defer srv.Close()

	f := NewFetcher([]string{srv.URL})
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	f.Now = func() time.Time { return now }

	docs, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if gotUA != "HireTrack/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
	if !docs[0].Observed.Equal(now) {
		t.Errorf("observed = %v", docs[0].Observed)
	}
}

func TestFetchSkipsFailingFeed(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<rss version="2.0"><channel><title>Jobs</title></channel></rss>`)
	}))
	defer good.Close()

	f := NewFetcher([]string{bad.URL, good.URL})

	docs, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
}
