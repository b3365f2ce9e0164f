package database

import (
	"database/sql"
	"fmt"

	"github.com/lysyi3m/mention-comb/app/monitor"
)

var _ SeenRepository = (*SeenItemRepository)(nil)

// SeenItemRepository handles the dedupe ledger: the canonical
// (canonical_url, platform, profile) table and the legacy raw-URL set.
type SeenItemRepository struct {
	db *DB
}

func NewSeenItemRepository(db *DB) *SeenItemRepository {
	return &SeenItemRepository{db: db}
}

// HasSeenCanonical checks the canonical table for a platform-scoped
// match. For broadcast platforms (News) the profile is ignored: the same
// canonical article from the same outlet is never re-inserted regardless
// of which query surfaced it. Empty inputs are benign and report unseen.
func (r *SeenItemRepository) HasSeenCanonical(canonicalURL string, platform monitor.Platform, profile string) (bool, string, error) {
	if canonicalURL == "" || platform == "" {
		return false, "", nil
	}

	var postURL string
	var err error

	if platform.IsBroadcast() {
		err = r.db.QueryRow(`
			SELECT post_url FROM seen_items
			WHERE canonical_url = ? AND platform = ?
			LIMIT 1
		`, canonicalURL, string(platform)).Scan(&postURL)
	} else {
		err = r.db.QueryRow(`
			SELECT post_url FROM seen_items
			WHERE canonical_url = ? AND platform = ? AND profile = ?
			LIMIT 1
		`, canonicalURL, string(platform), profile).Scan(&postURL)
	}

	if err == sql.ErrNoRows {
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("failed to check canonical URL: %w", err)
	}

	return true, postURL, nil
}

// HasSeenByPlatform reports whether the canonical URL has ever appeared
// on the platform under any profile. This is the repost signal.
func (r *SeenItemRepository) HasSeenByPlatform(canonicalURL string, platform monitor.Platform) (bool, error) {
	if canonicalURL == "" || platform == "" {
		return false, nil
	}

	var one int
	err := r.db.QueryRow(`
		SELECT 1 FROM seen_items
		WHERE canonical_url = ? AND platform = ?
		LIMIT 1
	`, canonicalURL, string(platform)).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check canonical URL by platform: %w", err)
	}

	return true, nil
}

// MarkSeen inserts an entry into the canonical table. INSERT OR IGNORE:
// a duplicate key from a retried or racing run is silently a no-op, so
// the uniqueness constraint never crashes a writer. Entries with an
// empty canonical URL, platform, or post URL are skipped.
func (r *SeenItemRepository) MarkSeen(entry monitor.SeenEntry) error {
	if entry.CanonicalURL == "" || entry.Platform == "" || entry.PostURL == "" {
		return nil
	}

	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO seen_items
		(canonical_url, platform, profile, post_url, first_seen_date)
		VALUES (?, ?, ?, ?, ?)
	`, entry.CanonicalURL, string(entry.Platform), entry.Profile,
		entry.PostURL, entry.FirstSeenDate)

	if err != nil {
		return fmt.Errorf("failed to mark seen: %w", err)
	}

	return nil
}

// HasSeenURL checks the legacy raw-URL set by exact equality. Not the
// primary anti-duplicate signal; kept for pre-canonicalization call
// sites and may under-detect relative to the canonical table.
func (r *SeenItemRepository) HasSeenURL(rawURL string) (bool, error) {
	if rawURL == "" {
		return false, nil
	}

	var one int
	err := r.db.QueryRow("SELECT 1 FROM seen_urls WHERE url = ?", rawURL).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check seen URL: %w", err)
	}

	return true, nil
}

// MarkSeenURLs records raw URLs in the legacy set, skipping empties.
func (r *SeenItemRepository) MarkSeenURLs(urls []string) error {
	filtered := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			filtered = append(filtered, u)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO seen_urls (url) VALUES (?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, u := range filtered {
		if _, err := stmt.Exec(u); err != nil {
			return fmt.Errorf("failed to mark seen URL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seen URLs: %w", err)
	}

	return nil
}

// GetSeenCount returns the number of unique raw URLs in the legacy set.
func (r *SeenItemRepository) GetSeenCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM seen_urls").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get seen count: %w", err)
	}
	return count, nil
}

// GetSeenItemCount returns the number of canonical ledger entries.
func (r *SeenItemRepository) GetSeenItemCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM seen_items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get seen item count: %w", err)
	}
	return count, nil
}
