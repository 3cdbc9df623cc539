package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"yfetch/internal/apiclient"
	"yfetch/internal/auth"
	"yfetch/internal/config"
	"yfetch/internal/digest"
	"yfetch/internal/llm"
	"yfetch/internal/notify"
	"yfetch/internal/retry"
	"yfetch/internal/store"
)

// NewDigestCmd creates the digest command.
func NewDigestCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Generate AI summaries for fetched posts, grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			st, err := store.NewStore(cfg.App.DataDir)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			posts, err := st.ListPosts(cmd.Context(), limit)
			if err != nil {
				fmt.Println(notify.MsgDatabase)
				return err
			}
			if len(posts) == 0 {
				fmt.Println("No posts fetched yet. Run 'yfetch fetch' first.")
				return nil
			}

			api := apiclient.New(cfg.Perplexity.BaseURL, map[string]string{
				"apikey":        cfg.Perplexity.APIKey,
				"Authorization": "Bearer " + cfg.Perplexity.APIKey,
				"Accept":        "application/json",
			})
			client := llm.NewClient(api, auth.Static{UserID: cfg.Auth.UserID}, llm.Config{
				Model:   cfg.Perplexity.Model,
				OwnerID: cfg.Auth.UserID,
				Records: st,
				Retry: retry.Options{
					MaxAttempts: cfg.Perplexity.MaxRetries,
					BaseDelay:   cfg.Perplexity.RetryDelay,
				},
			})
			assembler := digest.NewAssembler(client, llm.SummaryOptions{
				MaxWords: cfg.Digest.MaxWords,
				Style:    cfg.Digest.Style,
			}, cfg.Digest.MaxConcurrent)

			digests, err := assembler.Generate(cmd.Context(), posts)
			if err != nil {
				fmt.Println(notify.Message(err))
				return err
			}

			for _, categoryDigest := range digests {
				fmt.Printf("\n## %s\n\n", categoryDigest.Name)
				for _, post := range categoryDigest.Posts {
					fmt.Printf("### %s (%s)\n", post.Title, post.Source)
					if post.Summary != "" {
						fmt.Println(post.Summary)
					} else {
						fmt.Println("(no content to summarize)")
					}
					fmt.Println(post.URL)
					fmt.Println()
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 25, "maximum number of stored posts to summarize")
	return cmd
}
