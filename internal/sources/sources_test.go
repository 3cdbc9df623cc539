package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const redditListingJSON = `{
  "data": {
    "children": [
      {"data": {
        "id": "abc123",
        "title": "New javascript framework",
        "selftext": "It renders everything twice",
        "subreddit": "programming",
        "author": "dev123",
        "permalink": "/r/programming/comments/abc123/new_javascript_framework/",
        "created_utc": 1735689600,
        "score": 321,
        "num_comments": 45
      }},
      {"data": {
        "id": "def456",
        "title": "Link post",
        "selftext": "",
        "subreddit": "programming",
        "author": "lurker",
        "permalink": "/r/programming/comments/def456/link_post/",
        "created_utc": 1735693200,
        "score": 10,
        "num_comments": 2
      }}
    ]
  }
}`

func TestFetchSubreddit(t *testing.T) {
	var gotPath, gotUA, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(redditListingJSON))
	}))
	defer server.Close()

	reddit := NewReddit(server.URL, "yfetch-test/1.0")
	posts, err := reddit.FetchSubreddit(context.Background(), "programming", 25)
	if err != nil {
		t.Fatalf("FetchSubreddit() error = %v", err)
	}

	if gotPath != "/r/programming/new.json" {
		t.Errorf("path = %q, want /r/programming/new.json", gotPath)
	}
	if gotUA != "yfetch-test/1.0" {
		t.Errorf("User-Agent = %q, want yfetch-test/1.0", gotUA)
	}
	if gotLimit != "25" {
		t.Errorf("limit param = %q, want 25", gotLimit)
	}

	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	p := posts[0]
	if p.ID != "abc123" {
		t.Errorf("ID = %q, want abc123", p.ID)
	}
	if p.Title != "New javascript framework" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Content != "It renders everything twice" {
		t.Errorf("Content = %q", p.Content)
	}
	if p.Subreddit != "programming" {
		t.Errorf("Subreddit = %q", p.Subreddit)
	}
	if p.URL != "https://www.reddit.com/r/programming/comments/abc123/new_javascript_framework/" {
		t.Errorf("URL = %q", p.URL)
	}
	if p.Source != "reddit" {
		t.Errorf("Source = %q, want reddit", p.Source)
	}
	if p.Metadata["score"] != 321 {
		t.Errorf("score = %v, want 321", p.Metadata["score"])
	}
	if p.CreatedAt.Unix() != 1735689600 {
		t.Errorf("CreatedAt = %v", p.CreatedAt)
	}
}

func TestFetchSubredditUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	reddit := NewReddit(server.URL, "yfetch-test/1.0")
	if _, err := reddit.FetchSubreddit(context.Background(), "programming", 5); err == nil {
		t.Error("FetchSubreddit() error = nil, want upstream error")
	}
}

const twitterBookmarksJSON = `{
  "data": [
    {
      "id": "175001",
      "text": "Threads on bitcoin rallies\nLong thread below",
      "author_id": "99",
      "created_at": "2025-01-01T10:00:00Z",
      "public_metrics": {"retweet_count": 5, "reply_count": 1, "like_count": 20, "quote_count": 0}
    }
  ]
}`

func TestFetchBookmarks(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(twitterBookmarksJSON))
	}))
	defer server.Close()

	twitter := NewTwitter(server.URL, "token-123")
	posts, err := twitter.FetchBookmarks(context.Background())
	if err != nil {
		t.Fatalf("FetchBookmarks() error = %v", err)
	}

	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want Bearer token-123", gotAuth)
	}
	if gotPath != "/2/bookmarks" {
		t.Errorf("path = %q, want /2/bookmarks", gotPath)
	}

	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}
	p := posts[0]
	if p.Title != "Threads on bitcoin rallies" {
		t.Errorf("Title = %q, want first line of tweet", p.Title)
	}
	if p.Content != "Threads on bitcoin rallies\nLong thread below" {
		t.Errorf("Content = %q", p.Content)
	}
	if p.URL != "https://twitter.com/user/status/175001" {
		t.Errorf("URL = %q", p.URL)
	}
	if p.Source != "twitter" {
		t.Errorf("Source = %q, want twitter", p.Source)
	}
	if p.Metadata["like_count"] != 20 {
		t.Errorf("like_count = %v, want 20", p.Metadata["like_count"])
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"single line", "single line"},
		{"first\nsecond", "first"},
		{"\n  \nactual content\nmore", "actual content"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FirstLine(tt.in); got != tt.want {
			t.Errorf("FirstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
