package collectors

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lysyi3m/mention-comb/app/monitor"
)

// Collector fetches one upstream source and returns normalized items
// plus its raw/filtered counters. A collector failure is reported to the
// caller, which logs it and continues with the remaining sources.
type Collector interface {
	Name() string
	Enabled(topic *monitor.TopicConfig) bool
	Collect(ctx context.Context, topic *monitor.TopicConfig) ([]monitor.NormalizedItem, monitor.SourceStats, error)
}

// Aggregator domains that rewrap articles and flood search results.
// Items linking to these are dropped and counted as blocked.
var blockedDomains = []string{
	"biztoc.com",
}

func isBlockedDomain(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Host)
	for _, blocked := range blockedDomains {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return true
		}
	}
	return false
}

// fetchJSON performs a GET with the per-topic timeout and returns the
// response body. Non-200 statuses are errors.
func fetchJSON(ctx context.Context, client *http.Client, userAgent, rawURL string, headers map[string]string, timeout time.Duration) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func timeoutFor(topic *monitor.TopicConfig) time.Duration {
	if topic.Settings.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(topic.Settings.Timeout) * time.Second
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
