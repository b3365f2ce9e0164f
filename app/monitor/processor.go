package monitor

import (
	"fmt"
	"log/slog"
	"time"
)

// CommitToken records one accepted item's dedupe tuple. Tokens are
// handed back by ComputeAcceptedBatch and must only be passed to Commit
// after the downstream append has durably succeeded; the store is never
// mutated for items that were computed but not emitted.
type CommitToken struct {
	CanonicalURL string
	Platform     Platform
	Profile      string
	PostURL      string
}

// SourceBatch is one collector's output for a run.
type SourceBatch struct {
	Source string
	Items  []NormalizedItem
}

// Processor ties the canonicalizer, seen store, and classifier together
// over one run's batches. The dedupe pass is read-then-conditionally-
// accept and must not run concurrently for the same store; runs are
// serialized by the scheduler.
type Processor struct {
	store      SeenStore
	classifier *Classifier
}

func NewProcessor(store SeenStore, classifier *Classifier) *Processor {
	return &Processor{
		store:      store,
		classifier: classifier,
	}
}

// ComputeAcceptedBatch runs the dedupe and classification pipeline over
// all batches and returns the accepted items, their commit tokens, and
// run statistics. The store is only read here; Commit performs the
// writes. A store read failure aborts the run before any mutation.
func (p *Processor) ComputeAcceptedBatch(batches []SourceBatch) ([]NormalizedItem, []CommitToken, *BatchStats, error) {
	stats := &BatchStats{
		RawBySource:        make(map[string]int),
		AcceptedByPlatform: make(map[Platform]int),
	}

	// Keys already accepted within this run. The store is not updated
	// until Commit, so intra-run duplicates and reposts are tracked here.
	runKeys := make(map[string]bool)
	runPlatforms := make(map[string]bool)

	var survivors []NormalizedItem
	var tokens []CommitToken

	for _, batch := range batches {
		stats.Raw += len(batch.Items)
		stats.RawBySource[batch.Source] += len(batch.Items)

		for _, item := range batch.Items {
			if item.PostURL == "" {
				stats.InvalidURL++
				continue
			}

			canonical, ok := Canonicalize(item.PostURL)
			if !ok {
				slog.Debug("Item rejected, URL failed canonicalization",
					"source", batch.Source, "url", item.PostURL)
				stats.InvalidURL++
				continue
			}

			keep, repost, err := p.checkDuplicate(canonical, item, runKeys, runPlatforms)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("dedupe check failed: %w", err)
			}
			if !keep {
				stats.Duplicates++
				continue
			}
			if repost {
				item.Category = "Repost"
				item.Notes = "Repost of canonical URL: " + canonical
				stats.Reposts++
			}

			runKeys[dedupeKey(canonical, item.Platform, item.Profile)] = true
			runPlatforms[platformKey(canonical, item.Platform)] = true

			survivors = append(survivors, item)
			tokens = append(tokens, CommitToken{
				CanonicalURL: canonical,
				Platform:     item.Platform,
				Profile:      item.Profile,
				PostURL:      item.PostURL,
			})
		}
	}

	// Classification runs over the surviving set; only on-topic items
	// are retained, and a dropped item's token is dropped with it.
	var accepted []NormalizedItem
	var acceptedTokens []CommitToken

	for i, item := range survivors {
		switch p.classifier.Classify(item) {
		case OnTopic:
			accepted = append(accepted, item)
			acceptedTokens = append(acceptedTokens, tokens[i])
			stats.AcceptedByPlatform[item.Platform]++
		case Borderline:
			stats.Borderline++
		default:
			stats.OffTopic++
		}
	}

	stats.Accepted = len(accepted)

	return accepted, acceptedTokens, stats, nil
}

// Commit marks every token's tuple as seen, plus the legacy raw-URL set.
// Called only after the sheet append has succeeded. Inserts are
// idempotent, so a retried or racing commit cannot fail on conflicts.
func (p *Processor) Commit(tokens []CommitToken) error {
	if len(tokens) == 0 {
		return nil
	}

	firstSeen := time.Now().UTC().Format("2006-01-02")
	rawURLs := make([]string, 0, len(tokens))

	for _, token := range tokens {
		err := p.store.MarkSeen(SeenEntry{
			CanonicalURL:  token.CanonicalURL,
			Platform:      token.Platform,
			Profile:       token.Profile,
			PostURL:       token.PostURL,
			FirstSeenDate: firstSeen,
		})
		if err != nil {
			return fmt.Errorf("failed to mark seen %s: %w", token.CanonicalURL, err)
		}
		rawURLs = append(rawURLs, token.PostURL)
	}

	if err := p.store.MarkSeenURLs(rawURLs); err != nil {
		return fmt.Errorf("failed to mark legacy seen URLs: %w", err)
	}

	return nil
}

// checkDuplicate applies the platform-scoped dedupe rules. keep=false
// means the item is an exact duplicate; repost=true means the canonical
// URL was already seen on the platform under a different profile.
func (p *Processor) checkDuplicate(canonical string, item NormalizedItem,
	runKeys, runPlatforms map[string]bool) (keep bool, repost bool, err error) {

	if item.Platform.IsBroadcast() {
		// Broadcast content: any prior sighting on the platform is a
		// duplicate regardless of profile.
		seen, err := p.store.HasSeenByPlatform(canonical, item.Platform)
		if err != nil {
			return false, false, err
		}
		if seen || runPlatforms[platformKey(canonical, item.Platform)] {
			return false, false, nil
		}
		return true, false, nil
	}

	seen, _, err := p.store.HasSeenCanonical(canonical, item.Platform, item.Profile)
	if err != nil {
		return false, false, err
	}
	if seen || runKeys[dedupeKey(canonical, item.Platform, item.Profile)] {
		return false, false, nil
	}

	seenOnPlatform, err := p.store.HasSeenByPlatform(canonical, item.Platform)
	if err != nil {
		return false, false, err
	}
	if seenOnPlatform || runPlatforms[platformKey(canonical, item.Platform)] {
		// Same link, different profile: a distinct event, tagged not dropped.
		return true, true, nil
	}

	return true, false, nil
}

func dedupeKey(canonical string, platform Platform, profile string) string {
	return canonical + "\x00" + string(platform) + "\x00" + profile
}

func platformKey(canonical string, platform Platform) string {
	return canonical + "\x00" + string(platform)
}
