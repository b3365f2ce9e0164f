package monitor

import (
	"net/url"
	"strings"
)

// Hosts whose query strings carry meaning (video IDs, post IDs). For
// these only known tracking parameters are stripped; every other host is
// treated as news/aggregator traffic and loses its query entirely.
var socialHosts = []string{
	"youtube.com",
	"youtu.be",
	"twitter.com",
	"x.com",
	"facebook.com",
	"linkedin.com",
	"instagram.com",
	"reddit.com",
	"tiktok.com",
}

var trackingParams = map[string]bool{
	"fbclid":   true,
	"gclid":    true,
	"ref":      true,
	"source":   true,
	"campaign": true,
	"medium":   true,
	"_ga":      true,
	"mc_cid":   true,
	"mc_eid":   true,
}

// IsValidURL reports whether the URL parses with an http/https scheme
// and a non-empty host. Checked before canonicalization is attempted.
func IsValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}

	return parsed.Host != ""
}

// Canonicalize maps a raw URL to the normalized identity string used as
// the dedupe key. Two URLs differing only by tracking parameters,
// trailing slash, scheme, or host case canonicalize identically.
// Pure and deterministic; ok is false when the URL cannot be keyed.
func Canonicalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme == "http" {
		scheme = "https"
	}
	if scheme != "https" {
		return "", false
	}

	host := strings.ToLower(parsed.Host)

	path := parsed.Path
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}

	query := ""
	if isSocialHost(host) {
		query = stripTrackingParams(parsed.Query())
	}

	canonical := scheme + "://" + host + path
	if query != "" {
		canonical += "?" + query
	}

	return canonical, true
}

func isSocialHost(host string) bool {
	for _, social := range socialHosts {
		if host == social || strings.HasSuffix(host, "."+social) {
			return true
		}
	}
	return false
}

// stripTrackingParams removes known tracking parameters and re-encodes
// the rest with stable key order.
func stripTrackingParams(values url.Values) string {
	filtered := url.Values{}
	for key, vals := range values {
		lower := strings.ToLower(key)
		if trackingParams[lower] || strings.HasPrefix(lower, "utm_") {
			continue
		}
		for _, v := range vals {
			filtered.Add(key, v)
		}
	}
	// Encode sorts by key, so re-encoding is deterministic.
	return filtered.Encode()
}
