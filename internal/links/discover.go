package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Discover extracts the distinct absolute URLs of all anchors whose href
// contains pattern, resolved against baseURL. Each distinct URL appears at
// most once in the result, in first-seen document order. An empty result is
// valid: a single-page category has no pagination links.
func Discover(doc *goquery.Document, pattern, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}

	urls := make([]string, 0)
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || !strings.Contains(href, pattern) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			// Broken hrefs show up in the wild; ignore them
			return
		}

		abs := base.ResolveReference(ref).String()
		if seen[abs] {
			return
		}
		seen[abs] = true
		urls = append(urls, abs)
	})

	return urls, nil
}
