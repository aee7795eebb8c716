package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LJTian/NewsLens/internal/logging"
	"github.com/mmcdole/gofeed"
)

const (
	rssTimeout  = 15 * time.Second
	rssMaxItems = 50
	userAgent   = "NewsLensBot/1.0"
)

// RSSFetcher 拉取一个 RSS/Atom 源
type RSSFetcher struct {
	name string
	url  string
}

func NewRSSFetcher(name, url string) *RSSFetcher {
	return &RSSFetcher{name: name, url: url}
}

func (f *RSSFetcher) Name() string {
	return f.name
}

func (f *RSSFetcher) Fetch() ([]NewsItem, error) {
	logging.Debug("fetch rss", "feed", f.name, "url", f.url)

	ctx, cancel := context.WithTimeout(context.Background(), rssTimeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	feed, err := parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss %s: parse: %w", f.name, err)
	}

	// 来源标签优先用源自身的标题，便于和可信来源列表匹配
	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = f.name
	}

	items := feed.Items
	if len(items) > rssMaxItems {
		items = items[:rssMaxItems]
	}

	now := time.Now()
	out := make([]NewsItem, 0, len(items))
	for _, it := range items {
		if it == nil || strings.TrimSpace(it.Title) == "" {
			continue
		}

		published := now
		switch {
		case it.PublishedParsed != nil:
			published = *it.PublishedParsed
		case it.UpdatedParsed != nil:
			published = *it.UpdatedParsed
		}

		desc := it.Content
		if strings.TrimSpace(desc) == "" {
			desc = it.Description
		}

		raw := map[string]any{"feed": f.name}
		if it.GUID != "" {
			raw["guid"] = it.GUID
		}
		if len(it.Categories) > 0 {
			raw["categories"] = it.Categories
		}

		out = append(out, NewsItem{
			Title:       strings.TrimSpace(it.Title),
			URL:         it.Link,
			Source:      source,
			Description: desc,
			PublishedAt: published,
			RawData:     raw,
		})
	}

	return out, nil
}
