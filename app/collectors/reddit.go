package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lysyi3m/mention-comb/app/monitor"
)

const (
	redditSearchURL = "https://www.reddit.com/search.json"
	redditPageLimit = 100
)

// RedditCollector fetches posts from Reddit's public search endpoint.
type RedditCollector struct {
	httpClient *http.Client
	userAgent  string
}

func NewRedditCollector(httpClient *http.Client, userAgent string) *RedditCollector {
	return &RedditCollector{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (c *RedditCollector) Name() string {
	return "reddit"
}

func (c *RedditCollector) Enabled(topic *monitor.TopicConfig) bool {
	return topic.Sources.Reddit
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Permalink   string  `json:"permalink"`
	URL         string  `json:"url"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

func (c *RedditCollector) Collect(ctx context.Context, topic *monitor.TopicConfig) ([]monitor.NormalizedItem, monitor.SourceStats, error) {
	var items []monitor.NormalizedItem
	var stats monitor.SourceStats

	seenThisRun := make(map[string]bool)

	for _, term := range topic.SearchTerms {
		listing, err := c.search(ctx, topic, term)
		if err != nil {
			return items, stats, fmt.Errorf("Reddit query %q: %w", term, err)
		}

		for _, child := range listing.Data.Children {
			stats.Raw++

			post := child.Data
			postURL := "https://www.reddit.com" + post.Permalink
			if post.Permalink == "" || !monitor.IsValidURL(postURL) {
				stats.Invalid++
				continue
			}
			if seenThisRun[postURL] {
				continue
			}
			seenThisRun[postURL] = true

			item, ok := c.normalize(post, postURL, topic)
			if !ok {
				stats.DateFiltered++
				continue
			}
			items = append(items, item)
		}
	}

	slog.Debug("Reddit collection finished", "raw", stats.Raw,
		"date_filtered", stats.DateFiltered, "normalized", len(items))

	return items, stats, nil
}

func (c *RedditCollector) search(ctx context.Context, topic *monitor.TopicConfig, query string) (*redditListing, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "new")
	params.Set("limit", strconv.Itoa(redditPageLimit))
	params.Set("type", "link")

	data, err := fetchJSON(ctx, c.httpClient, c.userAgent,
		redditSearchURL+"?"+params.Encode(), nil, timeoutFor(topic))
	if err != nil {
		return nil, err
	}

	var listing redditListing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit response: %w", err)
	}

	return &listing, nil
}

func (c *RedditCollector) normalize(post redditPost, postURL string, topic *monitor.TopicConfig) (monitor.NormalizedItem, bool) {
	if post.CreatedUTC == 0 {
		slog.Warn("Reddit post missing date", "url", postURL)
		return monitor.NormalizedItem{}, false
	}

	published, err := monitor.ParseRedditDate(strconv.FormatFloat(post.CreatedUTC, 'f', -1, 64))
	if err != nil {
		return monitor.NormalizedItem{}, false
	}
	if !monitor.IsAfterSinceDate(published, topic.Settings.SinceDate) {
		return monitor.NormalizedItem{}, false
	}

	profile := "N/A"
	profileLink := "N/A"
	if post.Author != "" && post.Author != "[deleted]" {
		profile = "u/" + post.Author
		profileLink = "https://www.reddit.com/user/" + post.Author
	}

	likes := strconv.Itoa(post.Score)
	comments := strconv.Itoa(post.NumComments)
	engTotal := strconv.Itoa(post.Score + post.NumComments)

	body := post.Selftext
	if body == "" {
		body = post.Title
	}

	return monitor.NormalizedItem{
		Platform:    monitor.PlatformReddit,
		Profile:     profile,
		ProfileLink: profileLink,
		Followers:   "N/A",
		PostURL:     postURL,
		Topic:       topic.Topic,
		Title:       orNA(post.Title),
		BodyText:    post.Selftext,
		Summary:     monitor.BuildSummary(post.Title, body),
		Tone:        monitor.ClassifySentiment(post.Title, post.Selftext),
		Views:       "0",
		Likes:       likes,
		Comments:    comments,
		Shares:      "0",
		EngTotal:    engTotal,
		Verified:    "N/A",
		DatePosted:  monitor.FormatDateMMDDYYYY(published),
		PublishedAt: published,
	}, true
}
