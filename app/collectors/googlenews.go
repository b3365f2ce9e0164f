package collectors

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/mention-comb/app/monitor"
)

const googleNewsRSSBase = "https://news.google.com/rss/search"

// GoogleNewsCollector fetches the Google News RSS search feed for each
// search term. Requires no credentials, so it backs up the NewsAPI
// collector and widens outlet coverage.
type GoogleNewsCollector struct {
	httpClient *http.Client
	userAgent  string
	parser     *gofeed.Parser
}

func NewGoogleNewsCollector(httpClient *http.Client, userAgent string) *GoogleNewsCollector {
	return &GoogleNewsCollector{
		httpClient: httpClient,
		userAgent:  userAgent,
		parser:     gofeed.NewParser(),
	}
}

func (c *GoogleNewsCollector) Name() string {
	return "google_news"
}

func (c *GoogleNewsCollector) Enabled(topic *monitor.TopicConfig) bool {
	return topic.Sources.GoogleNews
}

func (c *GoogleNewsCollector) Collect(ctx context.Context, topic *monitor.TopicConfig) ([]monitor.NormalizedItem, monitor.SourceStats, error) {
	var items []monitor.NormalizedItem
	var stats monitor.SourceStats

	seenThisRun := make(map[string]bool)

	for _, term := range topic.SearchTerms {
		feed, err := c.fetchFeed(ctx, topic, term)
		if err != nil {
			return items, stats, fmt.Errorf("Google News query %q: %w", term, err)
		}

		for _, entry := range feed.Items {
			stats.Raw++

			link := entry.Link
			if link == "" || !monitor.IsValidURL(link) {
				stats.Invalid++
				continue
			}
			if seenThisRun[link] {
				continue
			}
			seenThisRun[link] = true

			if isBlockedDomain(link) {
				stats.Blocked++
				continue
			}

			if entry.PublishedParsed == nil {
				slog.Warn("Google News entry missing date", "url", link)
				stats.DateFiltered++
				continue
			}
			published := entry.PublishedParsed.UTC()
			if !monitor.IsAfterSinceDate(published, topic.Settings.SinceDate) {
				stats.DateFiltered++
				continue
			}

			source := ""
			if entry.Custom != nil {
				source = entry.Custom["source"]
			}
			if source == "" && feed.Title != "" {
				source = feed.Title
			}

			items = append(items, monitor.NormalizedItem{
				Platform:    monitor.PlatformNews,
				Profile:     orNA(source),
				ProfileLink: "N/A",
				Followers:   "N/A",
				PostURL:     link,
				Topic:       topic.Topic,
				Title:       orNA(entry.Title),
				BodyText:    entry.Description,
				Summary:     monitor.BuildSummary(entry.Title, entry.Description),
				Tone:        monitor.ClassifySentiment(entry.Title, entry.Description),
				Views:       "0",
				Likes:       "0",
				Comments:    "0",
				Shares:      "0",
				EngTotal:    "0",
				Verified:    "N/A",
				DatePosted:  monitor.FormatDateMMDDYYYY(published),
				PublishedAt: published,
			})
		}
	}

	slog.Debug("Google News collection finished", "raw", stats.Raw,
		"blocked", stats.Blocked, "date_filtered", stats.DateFiltered,
		"normalized", len(items))

	return items, stats, nil
}

func (c *GoogleNewsCollector) fetchFeed(ctx context.Context, topic *monitor.TopicConfig, query string) (*gofeed.Feed, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")

	data, err := fetchJSON(ctx, c.httpClient, c.userAgent,
		googleNewsRSSBase+"?"+params.Encode(), map[string]string{
			"Accept": "application/rss+xml",
		}, timeoutFor(topic))
	if err != nil {
		return nil, err
	}

	feed, err := c.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return feed, nil
}
