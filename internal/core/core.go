package core

import "time"

// Category is one of the fixed topical labels assigned to a post.
type Category string

const (
	CategoryTechnology    Category = "Technology & Programming"
	CategoryInvesting     Category = "Investing & Crypto"
	CategoryScience       Category = "Science & Education"
	CategoryEntertainment Category = "Entertainment & Gaming"
	CategoryOther         Category = "Other"
)

// RecordStatus is the outcome of a single summary-generation attempt.
type RecordStatus string

const (
	StatusCompleted RecordStatus = "completed"
	StatusFailed    RecordStatus = "failed"
)

// Post represents a normalized post pulled from a social source.
type Post struct {
	ID        string         `json:"id"`         // Unique identifier for the post
	Title     string         `json:"title"`      // Post title (first text line for tweets)
	Content   string         `json:"content"`    // Post body, may be empty for link posts
	Subreddit string         `json:"subreddit"`  // Subreddit or source community label
	Author    string         `json:"author"`     // Post author
	URL       string         `json:"url"`        // Link to the original post
	Source    string         `json:"source"`     // Source of the post (e.g., "reddit", "twitter")
	CreatedAt time.Time      `json:"created_at"` // Timestamp when the post was created upstream
	Metadata  map[string]any `json:"metadata"`   // Source-specific metadata (vote counts, metrics)
}

// CompletionRecord represents one summary-generation attempt, success or
// failure. Records are insert-only; newer records supersede older ones for
// the same post at read time.
type CompletionRecord struct {
	ID        string       `json:"id"`         // Unique identifier for the record
	UserID    string       `json:"user_id"`    // Owning user
	PostID    string       `json:"post_id"`    // Post the summary was generated for
	Content   string       `json:"content"`    // Generated summary text, empty on failure
	Category  Category     `json:"category"`   // Category assigned to the post at generation time
	Status    RecordStatus `json:"status"`     // completed or failed
	CreatedAt int64        `json:"created_at"` // Unix milliseconds, assigned at insert time
}

// PostSummary is one summarized post inside an assembled digest batch.
type PostSummary struct {
	Title   string `json:"title"`   // Post title
	Summary string `json:"summary"` // Generated summary text
	Source  string `json:"source"`  // Display label for the source (e.g., "r/programming")
	URL     string `json:"url"`     // Link to the original post
}

// CategoryDigest groups the summaries generated for one category in a batch.
type CategoryDigest struct {
	Name  Category      `json:"name"`  // Category label
	Posts []PostSummary `json:"posts"` // Summaries in input post order
}

// DigestEntry is one deduplicated, presentation-ready summary loaded from
// persisted completion records.
type DigestEntry struct {
	Title     string `json:"title"`      // Post title
	Summary   string `json:"summary"`    // Latest completed summary for the post
	CreatedAt int64  `json:"created_at"` // Record creation time, Unix milliseconds
	Source    string `json:"source"`     // Source display label
	URL       string `json:"url"`        // Link to the original post
}

// SourceLabel returns the display label for a post's origin, matching the
// labels stored alongside completion records ("r/<subreddit>" for Reddit,
// the raw source name otherwise).
func (p Post) SourceLabel() string {
	if p.Subreddit != "" {
		return "r/" + p.Subreddit
	}
	return p.Source
}
