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
	newsAPIBaseURL  = "https://newsapi.org/v2"
	newsAPIPageSize = 100
	newsAPIMaxPages = 3
)

// NewsCollector fetches articles from NewsAPI's /everything endpoint for
// each of the topic's search terms.
type NewsCollector struct {
	httpClient *http.Client
	apiKey     string
	userAgent  string
	extractor  *monitor.ContentExtractor
}

func NewNewsCollector(httpClient *http.Client, apiKey, userAgent string) *NewsCollector {
	return &NewsCollector{
		httpClient: httpClient,
		apiKey:     apiKey,
		userAgent:  userAgent,
		extractor:  monitor.NewContentExtractor(),
	}
}

func (c *NewsCollector) Name() string {
	return "news"
}

func (c *NewsCollector) Enabled(topic *monitor.TopicConfig) bool {
	return topic.Sources.News && c.apiKey != ""
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

func (c *NewsCollector) Collect(ctx context.Context, topic *monitor.TopicConfig) ([]monitor.NormalizedItem, monitor.SourceStats, error) {
	var items []monitor.NormalizedItem
	var stats monitor.SourceStats

	// Per-run raw-URL set: the same article routinely matches several
	// search terms on the same page of results.
	seenThisRun := make(map[string]bool)

	for _, term := range topic.SearchTerms {
		for page := 1; page <= newsAPIMaxPages; page++ {
			resp, err := c.fetchPage(ctx, topic, term, page)
			if err != nil {
				return items, stats, fmt.Errorf("NewsAPI query %q page %d: %w", term, page, err)
			}

			for _, article := range resp.Articles {
				stats.Raw++

				if article.URL == "" || !monitor.IsValidURL(article.URL) {
					stats.Invalid++
					continue
				}
				if seenThisRun[article.URL] {
					continue
				}
				seenThisRun[article.URL] = true

				if isBlockedDomain(article.URL) {
					stats.Blocked++
					continue
				}

				item, ok := c.normalize(ctx, article, topic)
				if !ok {
					stats.DateFiltered++
					continue
				}
				items = append(items, item)
			}

			if page*newsAPIPageSize >= resp.TotalResults {
				break
			}
		}
	}

	slog.Debug("News collection finished", "raw", stats.Raw,
		"blocked", stats.Blocked, "date_filtered", stats.DateFiltered,
		"normalized", len(items))

	return items, stats, nil
}

func (c *NewsCollector) fetchPage(ctx context.Context, topic *monitor.TopicConfig, query string, page int) (*newsAPIResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if topic.Settings.SinceDate != "" {
		params.Set("from", topic.Settings.SinceDate)
	}
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(newsAPIPageSize))
	params.Set("apiKey", c.apiKey)

	data, err := fetchJSON(ctx, c.httpClient, c.userAgent,
		newsAPIBaseURL+"/everything?"+params.Encode(), nil, timeoutFor(topic))
	if err != nil {
		return nil, err
	}

	var resp newsAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode NewsAPI response: %w", err)
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("NewsAPI error: %s %s", resp.Code, resp.Message)
	}

	return &resp, nil
}

func (c *NewsCollector) normalize(ctx context.Context, article newsAPIArticle, topic *monitor.TopicConfig) (monitor.NormalizedItem, bool) {
	published, err := monitor.ParseISOTimestamp(article.PublishedAt)
	if err != nil {
		slog.Warn("News article missing or invalid date", "url", article.URL)
		return monitor.NormalizedItem{}, false
	}
	if !monitor.IsAfterSinceDate(published, topic.Settings.SinceDate) {
		return monitor.NormalizedItem{}, false
	}

	description := article.Description
	if description == "" {
		description = c.extractDescription(ctx, article.URL, topic)
	}

	return monitor.NormalizedItem{
		Platform:    monitor.PlatformNews,
		Profile:     orNA(article.Source.Name),
		ProfileLink: "N/A",
		Followers:   "N/A",
		PostURL:     article.URL,
		Topic:       topic.Topic,
		Title:       orNA(article.Title),
		BodyText:    description,
		Summary:     monitor.BuildSummary(article.Title, description),
		Tone:        monitor.ClassifySentiment(article.Title, description),
		Views:       "0",
		Likes:       "0",
		Comments:    "0",
		Shares:      "0",
		EngTotal:    "0",
		Verified:    "N/A",
		DatePosted:  monitor.FormatDateMMDDYYYY(published),
		PublishedAt: published,
	}, true
}

// extractDescription fetches the article page and pulls readable text
// when the API record has no description. Best effort; an empty string
// on any failure.
func (c *NewsCollector) extractDescription(ctx context.Context, articleURL string, topic *monitor.TopicConfig) string {
	data, err := fetchJSON(ctx, c.httpClient, c.userAgent, articleURL, map[string]string{
		"Accept": "text/html",
	}, timeoutFor(topic))
	if err != nil {
		slog.Debug("Content extraction fetch failed", "url", articleURL, "error", err)
		return ""
	}

	text, err := c.extractor.Run(data)
	if err != nil {
		slog.Debug("Content extraction failed", "url", articleURL, "error", err)
		return ""
	}

	return monitor.TruncateText(text, 400)
}
