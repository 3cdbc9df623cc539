package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"yfetch/internal/config"
	"yfetch/internal/core"
	"yfetch/internal/logger"
	"yfetch/internal/notify"
	"yfetch/internal/sources"
	"yfetch/internal/store"
)

// NewFetchCmd creates the fetch command with its per-source subcommands.
func NewFetchCmd() *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Pull recent posts from a source into the local store",
	}
	fetchCmd.AddCommand(newFetchRedditCmd())
	fetchCmd.AddCommand(newFetchTwitterCmd())
	return fetchCmd
}

func newFetchRedditCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "reddit [subreddits...]",
		Short: "Fetch recent posts from subreddits (defaults to configured list)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			subreddits := args
			if len(subreddits) == 0 {
				subreddits = cfg.Sources.Reddit.Subreddits
			}
			if len(subreddits) == 0 {
				return fmt.Errorf("no subreddits given and sources.reddit.subreddits is empty")
			}

			st, err := store.NewStore(cfg.App.DataDir)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			reddit := sources.NewReddit(cfg.Sources.Reddit.BaseURL, cfg.Sources.Reddit.UserAgent)
			total := 0
			for _, subreddit := range subreddits {
				posts, err := reddit.FetchSubreddit(cmd.Context(), subreddit, limit)
				if err != nil {
					fmt.Println(notify.Message(err))
					return err
				}
				saved, err := savePosts(cmd, st, posts)
				if err != nil {
					return err
				}
				total += saved
			}
			fmt.Printf("Fetched %d posts from %d subreddit(s)\n", total, len(subreddits))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 25, "maximum posts per subreddit")
	return cmd
}

func newFetchTwitterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "twitter",
		Short: "Fetch your bookmarked tweets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if cfg.Auth.AccessToken == "" {
				return fmt.Errorf("auth.access_token is required to fetch Twitter bookmarks")
			}

			st, err := store.NewStore(cfg.App.DataDir)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			twitter := sources.NewTwitter(cfg.Sources.Twitter.BaseURL, cfg.Auth.AccessToken)
			posts, err := twitter.FetchBookmarks(cmd.Context())
			if err != nil {
				fmt.Println(notify.Message(err))
				return err
			}
			saved, err := savePosts(cmd, st, posts)
			if err != nil {
				return err
			}
			fmt.Printf("Fetched %d bookmarked tweets\n", saved)
			return nil
		},
	}
}

func savePosts(cmd *cobra.Command, st *store.Store, posts []core.Post) (int, error) {
	saved := 0
	for _, post := range posts {
		if err := st.SavePost(cmd.Context(), post); err != nil {
			logger.Error("Failed to save post", err, "post_id", post.ID)
			fmt.Println(notify.MsgDatabase)
			return saved, err
		}
		saved++
	}
	return saved, nil
}
