// Package sources holds the ingestion adapters that pull posts from
// social APIs and normalize them into core.Post values.
package sources

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"yfetch/internal/apiclient"
	"yfetch/internal/core"
)

// Reddit fetches recent posts from subreddit listings.
type Reddit struct {
	api *apiclient.Client
}

// NewReddit creates a Reddit adapter. baseURL is normally
// https://www.reddit.com; the User-Agent header is required by Reddit's
// API guidelines.
func NewReddit(baseURL, userAgent string) *Reddit {
	return &Reddit{
		api: apiclient.New(baseURL, map[string]string{"User-Agent": userAgent}),
	}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// FetchSubreddit returns up to limit recent posts from one subreddit,
// normalized into the common post format.
func (r *Reddit) FetchSubreddit(ctx context.Context, subreddit string, limit int) ([]core.Post, error) {
	if limit <= 0 {
		limit = 25
	}

	var listing redditListing
	path := fmt.Sprintf("/r/%s/new.json", subreddit)
	params := map[string]string{"limit": strconv.Itoa(limit)}
	if err := r.api.Get(ctx, path, params, &listing); err != nil {
		return nil, fmt.Errorf("failed to fetch r/%s: %w", subreddit, err)
	}

	posts := make([]core.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		rp := child.Data
		posts = append(posts, core.Post{
			ID:        rp.ID,
			Title:     rp.Title,
			Content:   rp.SelfText,
			Subreddit: rp.Subreddit,
			Author:    rp.Author,
			URL:       "https://www.reddit.com" + rp.Permalink,
			Source:    "reddit",
			CreatedAt: time.Unix(int64(rp.CreatedUTC), 0).UTC(),
			Metadata: map[string]any{
				"score":        rp.Score,
				"num_comments": rp.NumComments,
			},
		})
	}
	return posts, nil
}

// FirstLine returns the first non-empty line of text, used as a title for
// sources that have none.
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
