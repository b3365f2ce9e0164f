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
	xSearchURL      = "https://api.twitter.com/2/tweets/search/recent"
	xMaxResults     = 100
	xTitleMaxLength = 160
)

// XCollector fetches recent tweets via the X API v2 recent search
// endpoint, with author expansion for handle and follower data.
type XCollector struct {
	httpClient  *http.Client
	bearerToken string
	userAgent   string
}

func NewXCollector(httpClient *http.Client, bearerToken, userAgent string) *XCollector {
	return &XCollector{
		httpClient:  httpClient,
		bearerToken: bearerToken,
		userAgent:   userAgent,
	}
}

func (c *XCollector) Name() string {
	return "x"
}

func (c *XCollector) Enabled(topic *monitor.TopicConfig) bool {
	return topic.Sources.X && c.bearerToken != ""
}

type xSearchResponse struct {
	Data     []xTweet `json:"data"`
	Includes struct {
		Users []xUser `json:"users"`
	} `json:"includes"`
}

type xTweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics struct {
		LikeCount       int `json:"like_count"`
		ReplyCount      int `json:"reply_count"`
		RetweetCount    int `json:"retweet_count"`
		QuoteCount      int `json:"quote_count"`
		ImpressionCount int `json:"impression_count"`
	} `json:"public_metrics"`
}

type xUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Verified      bool   `json:"verified"`
	PublicMetrics struct {
		FollowersCount int `json:"followers_count"`
	} `json:"public_metrics"`
}

func (c *XCollector) Collect(ctx context.Context, topic *monitor.TopicConfig) ([]monitor.NormalizedItem, monitor.SourceStats, error) {
	var items []monitor.NormalizedItem
	var stats monitor.SourceStats

	seenThisRun := make(map[string]bool)

	for _, term := range topic.SearchTerms {
		resp, err := c.search(ctx, topic, term)
		if err != nil {
			return items, stats, fmt.Errorf("X query %q: %w", term, err)
		}

		users := make(map[string]xUser, len(resp.Includes.Users))
		for _, user := range resp.Includes.Users {
			users[user.ID] = user
		}

		for _, tweet := range resp.Data {
			stats.Raw++

			if tweet.ID == "" {
				stats.Invalid++
				continue
			}
			if seenThisRun[tweet.ID] {
				continue
			}
			seenThisRun[tweet.ID] = true

			item, ok := c.normalize(tweet, users[tweet.AuthorID], topic)
			if !ok {
				stats.DateFiltered++
				continue
			}
			items = append(items, item)
		}
	}

	slog.Debug("X collection finished", "raw", stats.Raw,
		"date_filtered", stats.DateFiltered, "normalized", len(items))

	return items, stats, nil
}

func (c *XCollector) search(ctx context.Context, topic *monitor.TopicConfig, query string) (*xSearchResponse, error) {
	params := url.Values{}
	params.Set("query", query+" -is:retweet lang:en")
	params.Set("max_results", strconv.Itoa(xMaxResults))
	params.Set("tweet.fields", "created_at,public_metrics,author_id")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username,verified,public_metrics")

	data, err := fetchJSON(ctx, c.httpClient, c.userAgent,
		xSearchURL+"?"+params.Encode(), map[string]string{
			"Authorization": "Bearer " + c.bearerToken,
		}, timeoutFor(topic))
	if err != nil {
		return nil, err
	}

	var resp xSearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode X response: %w", err)
	}

	return &resp, nil
}

func (c *XCollector) normalize(tweet xTweet, user xUser, topic *monitor.TopicConfig) (monitor.NormalizedItem, bool) {
	published, err := monitor.ParseISOTimestamp(tweet.CreatedAt)
	if err != nil {
		slog.Warn("Tweet missing or invalid date", "id", tweet.ID)
		return monitor.NormalizedItem{}, false
	}
	if !monitor.IsAfterSinceDate(published, topic.Settings.SinceDate) {
		return monitor.NormalizedItem{}, false
	}

	profile := "N/A"
	profileLink := "N/A"
	if user.Username != "" {
		profile = "@" + user.Username
		profileLink = "https://x.com/" + user.Username
	}

	followers := "N/A"
	if user.Username != "" {
		followers = strconv.Itoa(user.PublicMetrics.FollowersCount)
	}

	verified := "N"
	if user.Verified {
		verified = "Y"
	}

	title := tweet.Text
	if len(title) > xTitleMaxLength {
		title = monitor.TruncateText(title, xTitleMaxLength)
	}

	shares := tweet.PublicMetrics.RetweetCount + tweet.PublicMetrics.QuoteCount
	engTotal, _ := monitor.EngagementTotal(
		strconv.Itoa(tweet.PublicMetrics.LikeCount),
		strconv.Itoa(tweet.PublicMetrics.ReplyCount),
		strconv.Itoa(shares))

	views := "0"
	if tweet.PublicMetrics.ImpressionCount > 0 {
		views = strconv.Itoa(tweet.PublicMetrics.ImpressionCount)
	}

	return monitor.NormalizedItem{
		Platform:    monitor.PlatformX,
		Profile:     profile,
		ProfileLink: profileLink,
		Followers:   followers,
		PostURL:     "https://twitter.com/i/web/status/" + tweet.ID,
		Topic:       topic.Topic,
		Title:       orNA(title),
		BodyText:    tweet.Text,
		Summary:     monitor.BuildSummary("", tweet.Text),
		Tone:        monitor.ClassifySentiment(tweet.Text, ""),
		Views:       views,
		Likes:       strconv.Itoa(tweet.PublicMetrics.LikeCount),
		Comments:    strconv.Itoa(tweet.PublicMetrics.ReplyCount),
		Shares:      strconv.Itoa(shares),
		EngTotal:    strconv.FormatInt(engTotal, 10),
		Verified:    verified,
		DatePosted:  monitor.FormatDateMMDDYYYY(published),
		PublishedAt: published,
	}, true
}
