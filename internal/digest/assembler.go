// Package digest assembles category-grouped summaries for a batch of
// posts and reads back the deduplicated digest from persisted completion
// records.
package digest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"yfetch/internal/categorization"
	"yfetch/internal/core"
	"yfetch/internal/llm"
)

// DefaultMaxConcurrent bounds the summary fan-out when no limit is
// configured.
const DefaultMaxConcurrent = 4

// SummaryGenerator produces one summary per post; satisfied by
// *llm.Client.
type SummaryGenerator interface {
	GenerateSummary(ctx context.Context, post core.Post, options llm.SummaryOptions) (string, error)
}

// Assembler turns a batch of posts into category-grouped summaries.
type Assembler struct {
	generator     SummaryGenerator
	options       llm.SummaryOptions
	maxConcurrent int
}

// NewAssembler creates an Assembler. maxConcurrent bounds how many
// summary calls run at once across the whole batch; values below 1 fall
// back to DefaultMaxConcurrent.
func NewAssembler(generator SummaryGenerator, options llm.SummaryOptions, maxConcurrent int) *Assembler {
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Assembler{
		generator:     generator,
		options:       options,
		maxConcurrent: maxConcurrent,
	}
}

// Generate groups posts by category (preserving first-seen category
// order), generates a summary for every post with a bounded concurrent
// fan-out, and correlates results back to input order by index. The group
// does not cancel siblings on failure: every dispatched call settles (and
// persists its completion record) before Wait returns. If any call fails,
// the first error is returned and no partial digest is produced; records
// already written remain readable through the Reader.
func (a *Assembler) Generate(ctx context.Context, posts []core.Post) ([]core.CategoryDigest, error) {
	var order []core.Category
	grouped := make(map[core.Category][]core.Post)
	for _, post := range posts {
		category := categorization.Categorize(post)
		if _, seen := grouped[category]; !seen {
			order = append(order, category)
		}
		grouped[category] = append(grouped[category], post)
	}

	summaries := make(map[core.Category][]string, len(order))
	for _, category := range order {
		summaries[category] = make([]string, len(grouped[category]))
	}

	var group errgroup.Group
	group.SetLimit(a.maxConcurrent)
	for _, category := range order {
		for i, post := range grouped[category] {
			i, post := i, post
			results := summaries[category]
			group.Go(func() error {
				summary, err := a.generator.GenerateSummary(ctx, post, a.options)
				if err != nil {
					return err
				}
				results[i] = summary
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	digests := make([]core.CategoryDigest, 0, len(order))
	for _, category := range order {
		entries := make([]core.PostSummary, 0, len(grouped[category]))
		for i, post := range grouped[category] {
			entries = append(entries, core.PostSummary{
				Title:   post.Title,
				Summary: summaries[category][i],
				Source:  post.SourceLabel(),
				URL:     post.URL,
			})
		}
		digests = append(digests, core.CategoryDigest{Name: category, Posts: entries})
	}
	return digests, nil
}
