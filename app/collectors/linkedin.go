package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/lysyi3m/mention-comb/app/monitor"
)

const googleCSEURL = "https://www.googleapis.com/customsearch/v1"

var (
	linkedinPostsPattern  = regexp.MustCompile(`(?i)linkedin\.com/posts/([^-]+)-`)
	linkedinSuffixPattern = regexp.MustCompile(`(?i)\s*\|\s*LinkedIn\s*$`)
)

// LinkedInCollector finds public LinkedIn posts through the Google
// Custom Search API; LinkedIn has no usable public search API.
type LinkedInCollector struct {
	httpClient *http.Client
	apiKey     string
	cseID      string
	userAgent  string
}

func NewLinkedInCollector(httpClient *http.Client, apiKey, cseID, userAgent string) *LinkedInCollector {
	return &LinkedInCollector{
		httpClient: httpClient,
		apiKey:     apiKey,
		cseID:      cseID,
		userAgent:  userAgent,
	}
}

func (c *LinkedInCollector) Name() string {
	return "linkedin"
}

func (c *LinkedInCollector) Enabled(topic *monitor.TopicConfig) bool {
	return topic.Sources.LinkedIn && c.apiKey != "" && c.cseID != ""
}

type cseResponse struct {
	Items []cseItem `json:"items"`
}

type cseItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

func (c *LinkedInCollector) Collect(ctx context.Context, topic *monitor.TopicConfig) ([]monitor.NormalizedItem, monitor.SourceStats, error) {
	var items []monitor.NormalizedItem
	var stats monitor.SourceStats

	seenThisRun := make(map[string]bool)
	now := time.Now().UTC()

	for _, term := range topic.SearchTerms {
		resp, err := c.search(ctx, topic, term)
		if err != nil {
			return items, stats, fmt.Errorf("LinkedIn query %q: %w", term, err)
		}

		for _, result := range resp.Items {
			stats.Raw++

			if result.Link == "" || !monitor.IsValidURL(result.Link) {
				stats.Invalid++
				continue
			}
			if !strings.Contains(strings.ToLower(result.Link), "linkedin.com") {
				stats.Invalid++
				continue
			}
			if seenThisRun[result.Link] {
				continue
			}
			seenThisRun[result.Link] = true

			title := cleanLinkedInTitle(result.Title)
			profileLink := extractLinkedInProfile(result.Link)
			profile := "N/A"
			if profileLink != "N/A" {
				profile = profileFromLink(profileLink)
			}

			// Google search results carry no reliable publish date;
			// the discovery date stands in and the dedupe ledger keeps
			// re-discoveries from re-inserting.
			items = append(items, monitor.NormalizedItem{
				Platform:    monitor.PlatformLinkedIn,
				Profile:     profile,
				ProfileLink: profileLink,
				Followers:   "N/A",
				PostURL:     result.Link,
				Topic:       topic.Topic,
				Title:       orNA(title),
				BodyText:    result.Snippet,
				Summary:     monitor.BuildSummary(title, result.Snippet),
				Tone:        monitor.ClassifySentiment(title, result.Snippet),
				Views:       "0",
				Likes:       "0",
				Comments:    "0",
				Shares:      "0",
				EngTotal:    "0",
				Verified:    "N/A",
				DatePosted:  monitor.FormatDateMMDDYYYY(now),
				PublishedAt: now,
			})
		}
	}

	slog.Debug("LinkedIn collection finished", "raw", stats.Raw,
		"normalized", len(items))

	return items, stats, nil
}

func (c *LinkedInCollector) search(ctx context.Context, topic *monitor.TopicConfig, query string) (*cseResponse, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cseID)
	params.Set("q", query+" site:linkedin.com/posts")
	params.Set("num", "10")

	data, err := fetchJSON(ctx, c.httpClient, c.userAgent,
		googleCSEURL+"?"+params.Encode(), nil, timeoutFor(topic))
	if err != nil {
		return nil, err
	}

	var resp cseResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode Custom Search response: %w", err)
	}

	return &resp, nil
}

// extractLinkedInProfile derives a profile URL from a post URL when the
// post follows the /posts/<username>-activity-<id> pattern.
func extractLinkedInProfile(link string) string {
	match := linkedinPostsPattern.FindStringSubmatch(link)
	if match == nil {
		return "N/A"
	}
	return "https://www.linkedin.com/in/" + match[1] + "/"
}

// cleanLinkedInTitle strips the " | LinkedIn" suffix Google appends.
func cleanLinkedInTitle(title string) string {
	cleaned := strings.TrimSpace(linkedinSuffixPattern.ReplaceAllString(title, ""))
	if cleaned == "" {
		return "N/A"
	}
	return cleaned
}

func profileFromLink(profileLink string) string {
	trimmed := strings.TrimSuffix(profileLink, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx != -1 {
		return trimmed[idx+1:]
	}
	return "N/A"
}
