package socialinsight

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// KeywordEntry is one monitored keyword on the listing page
type KeywordEntry struct {
	ID   string
	Name string
}

// ParseKeywordListing scans rendered listing HTML for keyword anchors.
// Every anchor whose href points into /keywords/ yields one entry, in
// document order; Name is the anchor's trimmed text.
func ParseKeywordListing(html string) ([]KeywordEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var entries []KeywordEntry
	doc.Find("a").Each(func(i int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !strings.Contains(href, "/keywords/") {
			return
		}
		id := KeywordIDFromHref(href)
		if id == "" {
			return
		}
		entries = append(entries, KeywordEntry{
			ID:   id,
			Name: strings.TrimSpace(sel.Text()),
		})
	})

	return entries, nil
}
