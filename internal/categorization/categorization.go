// Package categorization assigns posts to a fixed set of topical
// categories using keyword matching over the post's subreddit, title, and
// content.
package categorization

import (
	"strings"

	"yfetch/internal/core"
)

// categoryKeywords pairs a category with the keywords that select it. The
// slice order is the tie-break rule: the first category with a matching
// keyword wins, so reordering entries changes the classification of posts
// that match keywords in more than one category.
type categoryKeywords struct {
	category core.Category
	keywords []string
}

var categoryTable = []categoryKeywords{
	{core.CategoryTechnology, []string{
		"programming", "webdev", "javascript", "typescript", "react", "node",
		"technology", "coding", "developer", "software", "tech",
	}},
	{core.CategoryInvesting, []string{
		"bitcoin", "cryptocurrency", "investing", "stocks", "wallstreetbets",
		"finance", "crypto", "trading",
	}},
	{core.CategoryScience, []string{
		"science", "space", "physics", "biology", "chemistry", "education",
		"learning", "research", "study",
	}},
	{core.CategoryEntertainment, []string{
		"gaming", "games", "pcgaming", "nintendo", "playstation", "xbox",
		"entertainment", "movies", "television",
	}},
}

// Categorize assigns a category to a post. It is pure and deterministic:
// the first category in table order with any keyword contained in the
// lowercased subreddit, title, or content wins, and posts matching no
// keyword fall back to Other.
func Categorize(post core.Post) core.Category {
	subreddit := strings.ToLower(post.Subreddit)
	title := strings.ToLower(post.Title)
	content := strings.ToLower(post.Content)

	for _, entry := range categoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(subreddit, keyword) ||
				strings.Contains(title, keyword) ||
				strings.Contains(content, keyword) {
				return entry.category
			}
		}
	}

	return core.CategoryOther
}

// Categories returns the category labels in table order, with Other last.
func Categories() []core.Category {
	out := make([]core.Category, 0, len(categoryTable)+1)
	for _, entry := range categoryTable {
		out = append(out, entry.category)
	}
	return append(out, core.CategoryOther)
}
