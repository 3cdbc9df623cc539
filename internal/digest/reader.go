package digest

import (
	"context"
	"fmt"
	"sort"

	"yfetch/internal/core"
	"yfetch/internal/logger"
	"yfetch/internal/store"
)

// CompletedLister reads a user's completed summary records joined with
// their posts; satisfied by *store.Store.
type CompletedLister interface {
	ListCompleted(ctx context.Context, userID string) ([]store.SummaryRow, error)
}

// Reader loads the persisted digest for a user, keeping only the latest
// completed summary per post.
type Reader struct {
	records CompletedLister
}

// NewReader creates a Reader over the given record source.
func NewReader(records CompletedLister) *Reader {
	return &Reader{records: records}
}

// Load returns the user's digest grouped by the category stored on each
// record. Records are deduplicated per post id with an explicit
// latest-timestamp comparison rather than trusting store ordering.
// On a store failure, Load logs, returns an empty map, and reports the
// error so the presentation layer can surface a notification; the digest
// itself degrades to "no digests yet".
func (r *Reader) Load(ctx context.Context, userID string) (map[core.Category][]core.DigestEntry, error) {
	grouped := make(map[core.Category][]core.DigestEntry)

	rows, err := r.records.ListCompleted(ctx, userID)
	if err != nil {
		logger.Error("Failed to load summaries", err, "user_id", userID)
		return grouped, fmt.Errorf("failed to load summaries: %w", err)
	}

	// Keep only the latest record per post, comparing timestamps
	// explicitly: the store orders newest-first, but the contract does
	// not depend on that.
	latest := make(map[string]store.SummaryRow)
	for _, row := range rows {
		existing, ok := latest[row.Record.PostID]
		if !ok || row.Record.CreatedAt > existing.Record.CreatedAt {
			latest[row.Record.PostID] = row
		}
	}

	for _, row := range latest {
		category := row.Record.Category
		grouped[category] = append(grouped[category], core.DigestEntry{
			Title:     row.PostTitle,
			Summary:   row.Record.Content,
			CreatedAt: row.Record.CreatedAt,
			Source:    sourceLabel(row),
			URL:       row.URL,
		})
	}

	// Newest first within each category, deterministically.
	for _, entries := range grouped {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].CreatedAt != entries[j].CreatedAt {
				return entries[i].CreatedAt > entries[j].CreatedAt
			}
			return entries[i].Title < entries[j].Title
		})
	}

	return grouped, nil
}

func sourceLabel(row store.SummaryRow) string {
	post := core.Post{Subreddit: row.Subreddit, Source: row.Source}
	return post.SourceLabel()
}
