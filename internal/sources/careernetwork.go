package sources

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hiretrack-backend/internal/canonical"
	"hiretrack-backend/internal/jobs"
)

var careerNetworkLinkPattern = regexp.MustCompile(`linkedin\.com.*jobs`)

// CareerNetworkParser extracts postings from career-network alert email
// digests. Each posting is an anchor into the network's jobs pages; the
// surrounding table cell carries "title · company · location" as flattened
// text.
type CareerNetworkParser struct{}

// Source returns the source tag for this parser.
func (CareerNetworkParser) Source() jobs.Source { return jobs.SourceCareerNetwork }

// Parse extracts candidates from one digest email body.
func (p CareerNetworkParser) Parse(doc Document) ([]jobs.Candidate, error) {
	root, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Body))
	if err != nil {
		return nil, err
	}

	var out []jobs.Candidate
	seen := make(map[string]struct{})

	root.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !careerNetworkLinkPattern.MatchString(href) {
			return
		}
		url := canonical.NormalizeURL(href)
		if url == "" {
			return
		}
		if _, dup := seen[url]; dup {
			return
		}
		seen[url] = struct{}{}

		title := strings.TrimSpace(link.Find("h2, h3, strong, span").First().Text())
		if title == "" {
			title = joinedText(link, " ")
		}
		if !usableTitle(title) {
			return
		}

		company, location := "", ""
		rawText := title
		parent := link.Closest("td, div, tr")
		if parent.Length() > 0 {
			rawText = joinedText(parent, " ")
			parts := strings.Split(rawText, "·")
			if len(parts) > 1 {
				company = strings.TrimSpace(parts[1])
			}
			if len(parts) > 2 {
				location = strings.TrimSpace(parts[2])
			}
		}

		c := jobs.Candidate{
			Title:    title,
			Company:  company,
			Location: location,
			URL:      url,
			Source:   jobs.SourceCareerNetwork,
			RawText:  rawText,
			PostedAt: doc.Observed,
		}
		c.Clamp()
		out = append(out, c)
	})

	return out, nil
}

var _ Parser = CareerNetworkParser{}
