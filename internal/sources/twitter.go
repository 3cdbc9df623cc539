package sources

import (
	"context"
	"fmt"
	"time"

	"yfetch/internal/apiclient"
	"yfetch/internal/core"
)

// Twitter fetches a user's bookmarked tweets.
type Twitter struct {
	api *apiclient.Client
}

// NewTwitter creates a Twitter adapter using the given OAuth access
// token. baseURL is normally https://api.twitter.com.
func NewTwitter(baseURL, accessToken string) *Twitter {
	return &Twitter{
		api: apiclient.New(baseURL, map[string]string{
			"Authorization": "Bearer " + accessToken,
		}),
	}
}

type twitterBookmarks struct {
	Data []tweet `json:"data"`
}

type tweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics struct {
		RetweetCount int `json:"retweet_count"`
		ReplyCount   int `json:"reply_count"`
		LikeCount    int `json:"like_count"`
		QuoteCount   int `json:"quote_count"`
	} `json:"public_metrics"`
}

// FetchBookmarks returns the caller's bookmarked tweets transformed to
// the common post format: the first line of the tweet text becomes the
// title, the full text the content.
func (t *Twitter) FetchBookmarks(ctx context.Context) ([]core.Post, error) {
	var bookmarks twitterBookmarks
	params := map[string]string{
		"tweet.fields": "created_at,public_metrics,author_id",
	}
	if err := t.api.Get(ctx, "/2/bookmarks", params, &bookmarks); err != nil {
		return nil, fmt.Errorf("failed to fetch Twitter bookmarks: %w", err)
	}

	posts := make([]core.Post, 0, len(bookmarks.Data))
	for _, tw := range bookmarks.Data {
		createdAt, err := time.Parse(time.RFC3339, tw.CreatedAt)
		if err != nil {
			createdAt = time.Time{}
		}
		posts = append(posts, core.Post{
			ID:        tw.ID,
			Title:     FirstLine(tw.Text),
			Content:   tw.Text,
			Author:    tw.AuthorID,
			URL:       "https://twitter.com/user/status/" + tw.ID,
			Source:    "twitter",
			CreatedAt: createdAt,
			Metadata: map[string]any{
				"retweet_count": tw.PublicMetrics.RetweetCount,
				"reply_count":   tw.PublicMetrics.ReplyCount,
				"like_count":    tw.PublicMetrics.LikeCount,
				"quote_count":   tw.PublicMetrics.QuoteCount,
			},
		})
	}
	return posts, nil
}
