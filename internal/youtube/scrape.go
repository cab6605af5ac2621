package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	reWatchID  = regexp.MustCompile(`watch\?v=([A-Za-z0-9_-]{11})`)
	reShortsID = regexp.MustCompile(`/shorts/([A-Za-z0-9_-]{11})`)
)

// ScrapeLinks fetches an arbitrary page (channel, playlist, or search
// result) and returns canonical watch URLs for every video id found on
// it, in first-seen order. Anchor hrefs are walked through the parsed
// HTML tree; a raw sweep over the document catches ids that only appear
// inside embedded script data.
func (c *Client) ScrapeLinks(ctx context.Context, pageURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	page := string(body)

	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	// Anchor hrefs first: these are the cleanest source of ids and come
	// out in markup order. Hrefs may be relative or absolute, so the id
	// patterns are matched against the href itself.
	doc, err := html.Parse(strings.NewReader(page))
	if err == nil {
		walkAnchors(doc, func(href string) {
			if m := reWatchID.FindStringSubmatch(href); m != nil {
				add(m[1])
			}
			if m := reShortsID.FindStringSubmatch(href); m != nil {
				add(m[1])
			}
		})
	}

	// Raw sweep for ids embedded in script payloads rather than markup.
	for _, m := range reWatchID.FindAllStringSubmatch(page, -1) {
		add(m[1])
	}
	for _, m := range reShortsID.FindAllStringSubmatch(page, -1) {
		add(m[1])
	}

	links := make([]string, 0, len(ids))
	for _, id := range ids {
		links = append(links, "https://www.youtube.com/watch?v="+id)
	}
	return links, nil
}

func walkAnchors(n *html.Node, visit func(href string)) {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, a := range n.Attr {
			if a.Key == "href" {
				visit(a.Val)
				break
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkAnchors(c, visit)
	}
}
