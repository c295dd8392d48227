// Package canonical derives stable identities for job postings: a canonical
// URL with tracking noise removed, and a short content-addressed key.
package canonical

import (
	"net/url"
	"strings"
)

// trackingParams are referrer/session/campaign keys stripped from any query
// string that survives board-specific canonicalization.
var trackingParams = map[string]struct{}{
	"trackingId":   {},
	"refId":        {},
	"lipi":         {},
	"midToken":     {},
	"midSig":       {},
	"trk":          {},
	"trkEmail":     {},
	"eid":          {},
	"otpToken":     {},
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"ref":          {},
	"source":       {},
}

// NormalizeURL collapses a posting URL to its canonical form. Known board
// hosts are reduced to scheme + host + posting ID; everything else keeps its
// path and non-tracking query parameters in their original order. The
// function is total and idempotent: unparseable or empty input comes back
// unchanged.
func NormalizeURL(raw string) string {
	if raw == "" {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	host := strings.ToLower(parsed.Hostname())

	if strings.HasSuffix(host, "linkedin.com") {
		if id := linkedinJobID(parsed); id != "" {
			return "https://www.linkedin.com/jobs/view/" + id
		}
	} else if strings.HasSuffix(host, "indeed.com") {
		if id := indeedJobID(parsed); id != "" {
			return "https://www.indeed.com/viewjob?jk=" + id
		}
	}

	if parsed.RawQuery == "" {
		return raw
	}

	kept := stripTracking(parsed.RawQuery)
	parsed.RawQuery = kept
	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String()
}

func linkedinJobID(u *url.URL) string {
	if idx := strings.Index(u.Path, "/jobs/view/"); idx >= 0 {
		rest := u.Path[idx+len("/jobs/view/"):]
		if cut := strings.IndexAny(rest, "/?"); cut >= 0 {
			rest = rest[:cut]
		}
		return rest
	}
	return u.Query().Get("currentJobId")
}

func indeedJobID(u *url.URL) string {
	q := u.Query()
	if jk := q.Get("jk"); jk != "" {
		return jk
	}
	return q.Get("vjk")
}

// stripTracking filters the raw query, preserving the relative order of the
// surviving parameters (url.Values would re-sort them).
func stripTracking(rawQuery string) string {
	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if eq := strings.Index(pair, "="); eq >= 0 {
			key = pair[:eq]
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if _, tracked := trackingParams[key]; tracked {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}
