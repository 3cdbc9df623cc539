package digest

import (
	"context"
	"errors"
	"testing"

	"yfetch/internal/core"
	"yfetch/internal/store"
)

// stubLister implements CompletedLister for testing
type stubLister struct {
	rows []store.SummaryRow
	err  error
}

func (s *stubLister) ListCompleted(ctx context.Context, userID string) ([]store.SummaryRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func row(postID string, createdAt int64, content string, category core.Category) store.SummaryRow {
	return store.SummaryRow{
		Record: core.CompletionRecord{
			ID:        postID + "-" + content,
			UserID:    "user-1",
			PostID:    postID,
			Content:   content,
			Category:  category,
			Status:    core.StatusCompleted,
			CreatedAt: createdAt,
		},
		PostTitle: "Title " + postID,
		Subreddit: "programming",
		Source:    "reddit",
		URL:       "https://reddit.com/" + postID,
	}
}

func TestLoadKeepsOnlyLatestPerPost(t *testing.T) {
	lister := &stubLister{rows: []store.SummaryRow{
		row("post-1", 300, "newest", core.CategoryTechnology),
		row("post-1", 100, "oldest", core.CategoryTechnology),
		row("post-1", 200, "middle", core.CategoryTechnology),
	}}
	reader := NewReader(lister)

	digest, err := reader.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	entries := digest[core.CategoryTechnology]
	if len(entries) != 1 {
		t.Fatalf("got %d entries for post-1, want 1", len(entries))
	}
	if entries[0].Summary != "newest" {
		t.Errorf("Summary = %q, want %q (max creation timestamp wins)", entries[0].Summary, "newest")
	}
}

// The latest record must win regardless of the order the store returned
// rows in.
func TestLoadDeduplicationIgnoresStoreOrdering(t *testing.T) {
	orderings := [][]store.SummaryRow{
		{
			row("post-1", 100, "oldest", core.CategoryTechnology),
			row("post-1", 300, "newest", core.CategoryTechnology),
		},
		{
			row("post-1", 300, "newest", core.CategoryTechnology),
			row("post-1", 100, "oldest", core.CategoryTechnology),
		},
	}

	for i, rows := range orderings {
		reader := NewReader(&stubLister{rows: rows})
		digest, err := reader.Load(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("ordering %d: Load() error = %v", i, err)
		}
		entries := digest[core.CategoryTechnology]
		if len(entries) != 1 || entries[0].Summary != "newest" {
			t.Errorf("ordering %d: entries = %+v, want single entry %q", i, entries, "newest")
		}
	}
}

func TestLoadRegroupsByStoredCategory(t *testing.T) {
	// The category on the record wins even when recomputing from the post
	// would disagree; categorization may have changed since the record
	// was written.
	r := row("post-1", 100, "a summary", core.CategoryScience)
	reader := NewReader(&stubLister{rows: []store.SummaryRow{r}})

	digest, err := reader.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(digest[core.CategoryScience]) != 1 {
		t.Errorf("entry not grouped under stored category: %+v", digest)
	}
	if len(digest[core.CategoryTechnology]) != 0 {
		t.Errorf("entry regrouped by recomputed category: %+v", digest)
	}
}

func TestLoadOrdersEntriesNewestFirst(t *testing.T) {
	lister := &stubLister{rows: []store.SummaryRow{
		row("post-1", 100, "older entry", core.CategoryTechnology),
		row("post-2", 200, "newer entry", core.CategoryTechnology),
	}}
	reader := NewReader(lister)

	digest, err := reader.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	entries := digest[core.CategoryTechnology]
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Summary != "newer entry" || entries[1].Summary != "older entry" {
		t.Errorf("entries out of order: %+v", entries)
	}
}

func TestLoadStoreErrorDegradesToEmptyDigest(t *testing.T) {
	storeErr := errors.New("connection refused")
	reader := NewReader(&stubLister{err: storeErr})

	digest, err := reader.Load(context.Background(), "user-1")
	if !errors.Is(err, storeErr) {
		t.Fatalf("Load() error = %v, want wrapped %v", err, storeErr)
	}
	if digest == nil {
		t.Fatal("Load() digest = nil, want empty map")
	}
	if len(digest) != 0 {
		t.Errorf("Load() digest has %d categories on failure, want 0", len(digest))
	}
}

func TestLoadJoinedPresentationFields(t *testing.T) {
	reader := NewReader(&stubLister{rows: []store.SummaryRow{
		row("post-1", 100, "a summary", core.CategoryTechnology),
	}})

	digest, err := reader.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	entry := digest[core.CategoryTechnology][0]
	if entry.Title != "Title post-1" {
		t.Errorf("Title = %q, want %q", entry.Title, "Title post-1")
	}
	if entry.Source != "r/programming" {
		t.Errorf("Source = %q, want %q", entry.Source, "r/programming")
	}
	if entry.URL != "https://reddit.com/post-1" {
		t.Errorf("URL = %q, want %q", entry.URL, "https://reddit.com/post-1")
	}
	if entry.CreatedAt != 100 {
		t.Errorf("CreatedAt = %d, want 100", entry.CreatedAt)
	}
}
