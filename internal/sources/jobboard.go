package sources

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hiretrack-backend/internal/canonical"
	"hiretrack-backend/internal/jobs"
)

var jobBoardLinkPattern = regexp.MustCompile(`indeed\.com.*(jk=|vjk=)`)

// JobBoardParser extracts postings from job-board alert email digests.
// Posting anchors carry the board's view-job key; company and location sit
// on the lines after the title inside the same table cell.
type JobBoardParser struct{}

// Source returns the source tag for this parser.
func (JobBoardParser) Source() jobs.Source { return jobs.SourceJobBoard }

// Parse extracts candidates from one digest email body.
func (p JobBoardParser) Parse(doc Document) ([]jobs.Candidate, error) {
	root, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Body))
	if err != nil {
		return nil, err
	}

	var out []jobs.Candidate
	seen := make(map[string]struct{})

	root.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !jobBoardLinkPattern.MatchString(href) {
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

		title := joinedText(link, " ")
		if !usableTitle(title) {
			return
		}

		company, location := "", ""
		rawText := title
		parent := link.Closest("td, div, tr")
		if parent.Length() > 0 {
			rawText = joinedText(parent, " ")
			lines := textNodes(parent)
			if len(lines) > 1 {
				company = lines[1]
			}
			if len(lines) > 2 {
				location = lines[2]
			}
		}

		c := jobs.Candidate{
			Title:    title,
			Company:  company,
			Location: location,
			URL:      url,
			Source:   jobs.SourceJobBoard,
			RawText:  rawText,
			PostedAt: doc.Observed,
		}
		c.Clamp()
		out = append(out, c)
	})

	return out, nil
}

var _ Parser = JobBoardParser{}
