package categorization

import (
	"testing"

	"yfetch/internal/core"
)

func TestCategorizeBySubreddit(t *testing.T) {
	tests := []struct {
		name     string
		post     core.Post
		expected core.Category
	}{
		{
			name:     "programming subreddit",
			post:     core.Post{Subreddit: "programming", Title: "A post"},
			expected: core.CategoryTechnology,
		},
		{
			name:     "wallstreetbets subreddit",
			post:     core.Post{Subreddit: "wallstreetbets", Title: "YOLO"},
			expected: core.CategoryInvesting,
		},
		{
			name:     "space subreddit",
			post:     core.Post{Subreddit: "space", Title: "Launch day"},
			expected: core.CategoryScience,
		},
		{
			name:     "pcgaming subreddit",
			post:     core.Post{Subreddit: "pcgaming", Title: "New GPU"},
			expected: core.CategoryEntertainment,
		},
		{
			name:     "keyword in title only",
			post:     core.Post{Subreddit: "AskAnything", Title: "Best javascript tricks"},
			expected: core.CategoryTechnology,
		},
		{
			name:     "keyword in content only",
			post:     core.Post{Subreddit: "AskAnything", Title: "Question", Content: "thoughts on bitcoin?"},
			expected: core.CategoryInvesting,
		},
		{
			name:     "case insensitive",
			post:     core.Post{Subreddit: "PlayStation", Title: "PS6 rumors"},
			expected: core.CategoryEntertainment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.post); got != tt.expected {
				t.Errorf("Categorize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCategorizeNoMatchReturnsOther(t *testing.T) {
	post := core.Post{
		Subreddit: "aww",
		Title:     "Look at this cat",
		Content:   "So fluffy",
	}
	if got := Categorize(post); got != core.CategoryOther {
		t.Errorf("Categorize() = %q, want %q", got, core.CategoryOther)
	}
}

func TestCategorizeEmptyPostReturnsOther(t *testing.T) {
	if got := Categorize(core.Post{}); got != core.CategoryOther {
		t.Errorf("Categorize() = %q, want %q", got, core.CategoryOther)
	}
}

// A post matching keywords in two categories must resolve to the one that
// appears first in the table, regardless of which keyword occurs first in
// the text.
func TestCategorizeTableOrderBreaksTies(t *testing.T) {
	post := core.Post{
		Subreddit: "random",
		Title:     "bitcoin rally explained",
		Content:   "written in javascript",
	}
	if got := Categorize(post); got != core.CategoryTechnology {
		t.Errorf("Categorize() = %q, want %q (table order tie-break)", got, core.CategoryTechnology)
	}

	// Same keywords, swapped placement; result must not change.
	swapped := core.Post{
		Subreddit: "random",
		Title:     "javascript framework",
		Content:   "funded with bitcoin",
	}
	if got := Categorize(swapped); got != core.CategoryTechnology {
		t.Errorf("Categorize() = %q, want %q (table order tie-break)", got, core.CategoryTechnology)
	}
}

func TestCategoriesOrderingStable(t *testing.T) {
	want := []core.Category{
		core.CategoryTechnology,
		core.CategoryInvesting,
		core.CategoryScience,
		core.CategoryEntertainment,
		core.CategoryOther,
	}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("Categories() returned %d labels, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
