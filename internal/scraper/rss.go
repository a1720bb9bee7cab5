package scraper

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
)

var reHTMLTags = regexp.MustCompile(`<[^>]*>`)

// fetchFeed retrieves and parses an RSS/Atom feed.
func (c *Client) fetchFeed(ctx context.Context, feedURL string, extra map[string]string) (*gofeed.Feed, error) {
	data, err := c.get(ctx, feedURL, extra)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}
	return feed, nil
}

// itemDescription returns an item's plain-text body, preferring the richer
// content element over the description.
func itemDescription(item *gofeed.Item) string {
	raw := item.Content
	if raw == "" {
		raw = item.Description
	}
	if raw == "" {
		return ""
	}
	return clean(html.UnescapeString(reHTMLTags.ReplaceAllString(raw, " ")))
}

// itemExtension digs a single value out of a namespaced feed extension,
// e.g. Indeed's source:company / source:city elements.
func itemExtension(item *gofeed.Item, space, name string) string {
	ext, ok := item.Extensions[space]
	if !ok {
		return ""
	}
	values, ok := ext[name]
	if !ok || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}
