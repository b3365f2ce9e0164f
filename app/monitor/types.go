package monitor

import (
	"time"
)

// Platform identifies where a piece of content was published. Dedupe
// scoping differs by platform: News is matched by canonical URL alone,
// social platforms by canonical URL + profile.
type Platform string

const (
	PlatformNews     Platform = "News"
	PlatformReddit   Platform = "Reddit"
	PlatformX        Platform = "X"
	PlatformLinkedIn Platform = "LinkedIn-Google"
)

// IsBroadcast reports whether dedupe for this platform ignores the
// posting profile. The same canonical article from the same outlet is
// never re-inserted regardless of which search query surfaced it.
func (p Platform) IsBroadcast() bool {
	return p == PlatformNews
}

// Classification is the three-way relevance verdict over an item's text.
type Classification string

const (
	OnTopic    Classification = "on_topic"
	Borderline Classification = "borderline"
	OffTopic   Classification = "off_topic"
)

// NormalizedItem is one piece of content from any source, already mapped
// to the common shape used by the sheet schema.
type NormalizedItem struct {
	Platform    Platform
	Profile     string // username, handle, or source name; may be empty
	ProfileLink string
	Followers   string
	PostURL     string // original, possibly tracking-decorated URL
	Topic       string
	Title       string
	BodyText    string // aggregated selftext/description, classifier input
	Summary     string
	Tone        string
	Category    string // set to "Repost" by the processor
	Views       string
	Likes       string
	Comments    string
	Shares      string
	EngTotal    string
	Verified    string
	Notes       string
	DatePosted  string // MM/DD/YYYY in US/Eastern
	PublishedAt time.Time
}

// SeenEntry is one persisted dedupe record. Uniqueness key is
// (CanonicalURL, Platform, Profile); entries are append-only.
type SeenEntry struct {
	CanonicalURL  string
	Platform      Platform
	Profile       string
	PostURL       string
	FirstSeenDate string
}

// SeenStore is the persistence boundary of the processor. Implemented by
// database.SeenRepository; tests use an in-memory double.
type SeenStore interface {
	// HasSeenCanonical reports whether the (canonical, platform, profile)
	// key exists, returning the originally recorded post URL when it does.
	// For broadcast platforms the profile is ignored.
	HasSeenCanonical(canonicalURL string, platform Platform, profile string) (bool, string, error)

	// HasSeenByPlatform reports whether the canonical URL has ever been
	// seen on the platform under any profile. This is the repost signal.
	HasSeenByPlatform(canonicalURL string, platform Platform) (bool, error)

	// MarkSeen inserts an entry. Duplicate inserts of the same key are
	// silently ignored.
	MarkSeen(entry SeenEntry) error

	// MarkSeenURLs records raw URLs in the legacy single-field set.
	MarkSeenURLs(urls []string) error
}

// SourceStats are collector-side counters, reported per source before
// the dedupe pass runs.
type SourceStats struct {
	Raw          int
	DateFiltered int
	Blocked      int
	Invalid      int
}

// BatchStats summarizes one processor run for the notifier and the run
// history table.
type BatchStats struct {
	Raw                int
	RawBySource        map[string]int
	InvalidURL         int
	Duplicates         int
	Reposts            int
	Borderline         int
	OffTopic           int
	Accepted           int
	AcceptedByPlatform map[Platform]int
}

// Discarded returns the total count rejected by topic classification.
func (s *BatchStats) Discarded() int {
	return s.Borderline + s.OffTopic
}
