package handlers

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"yfetch/internal/categorization"
	"yfetch/internal/config"
	"yfetch/internal/core"
	"yfetch/internal/digest"
	"yfetch/internal/notify"
	"yfetch/internal/store"
	"yfetch/internal/tui"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	var useTUI bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Read the deduplicated digest, grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			st, err := store.NewStore(cfg.App.DataDir)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			grouped, err := digest.NewReader(st).Load(cmd.Context(), cfg.Auth.UserID)
			if err != nil {
				// Degrade to an empty digest rather than aborting.
				fmt.Println(notify.MsgLoadDigest)
				grouped = map[core.Category][]core.DigestEntry{}
			}

			total := 0
			for _, entries := range grouped {
				total += len(entries)
			}
			if total == 0 {
				fmt.Println(notify.MsgNoDigests)
				return nil
			}

			if useTUI {
				return tui.Start(grouped)
			}

			for _, category := range categorization.Categories() {
				entries := grouped[category]
				if len(entries) == 0 {
					continue
				}
				fmt.Printf("\n## %s\n\n", category)
				for _, entry := range entries {
					fmt.Printf("### %s (%s)\n", entry.Title, entry.Source)
					fmt.Println(entry.Summary)
					created := time.UnixMilli(entry.CreatedAt).Format("Jan 2, 2006 3:04 PM")
					fmt.Printf("Created on %s · %s\n\n", created, entry.URL)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&useTUI, "tui", false, "browse the digest in an interactive tabbed view")
	return cmd
}
