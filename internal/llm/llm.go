// Package llm generates post summaries through the Perplexity
// chat-completions endpoint (reached via the edge proxy) and persists one
// completion record per generation attempt.
package llm

import (
	"context"
	"errors"
	"fmt"

	"yfetch/internal/auth"
	"yfetch/internal/categorization"
	"yfetch/internal/core"
	"yfetch/internal/logger"
	"yfetch/internal/retry"
)

const (
	// DefaultModel is the default Perplexity model used for summarization.
	DefaultModel = "llama-3.1-sonar-large-128k-online"

	// summarizePath is the edge-proxy route for chat completions.
	summarizePath = "/perplexity"

	systemPrompt = "You are an AI assistant specializing in summarizing content. " +
		"Your task is to provide clear, informative summaries that capture the " +
		"key points and main ideas of the content."

	// promptTemplate is the summarization instruction. Arguments: title,
	// content, source label, max words, style.
	promptTemplate = `Please provide a clear and informative summary of the following content:

Title: %s
Content: %s
Source: %s

Guidelines:
- Aim for a %d-word %s summary
- Focus on key points and main ideas
- Maintain original context and meaning
- Use clear, concise language

Please provide the summary in a single paragraph.`
)

// ErrEmptyCompletion is returned when the vendor response carries no
// completion text.
var ErrEmptyCompletion = errors.New("no output received from Perplexity API")

// SummaryOptions controls prompt construction.
type SummaryOptions struct {
	MaxWords int    // target summary length in words; defaults to 200
	Style    string // "concise" or "detailed"; defaults to "concise"
}

// ChatMessage is one message in a chat-completions payload.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for the summarization endpoint.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatChoice is one completion choice in the response.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatResponse is the subset of the chat-completions response this client
// reads.
type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

// ChatAPI is the transport the client calls; satisfied by
// *apiclient.Client.
type ChatAPI interface {
	Post(ctx context.Context, path string, body any, out any) error
}

// RecordWriter persists completion records; satisfied by *store.Store.
type RecordWriter interface {
	InsertRecord(ctx context.Context, record core.CompletionRecord) (core.CompletionRecord, error)
}

// Config holds client configuration.
type Config struct {
	Model   string        // defaults to DefaultModel
	OwnerID string        // optional owning user for record attribution
	Records RecordWriter  // required when OwnerID is set
	Retry   retry.Options // retry schedule for the API call
}

// Client generates summaries for posts.
type Client struct {
	api     ChatAPI
	authp   auth.Provider
	model   string
	ownerID string
	records RecordWriter
	retry   retry.Options
}

// NewClient creates a summary-generation client.
func NewClient(api ChatAPI, authp auth.Provider, cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:     api,
		authp:   authp,
		model:   model,
		ownerID: cfg.OwnerID,
		records: cfg.Records,
		retry:   cfg.Retry,
	}
}

// BuildPrompt produces the deterministic summarization instruction for a
// post. When the post has no content, the title stands in for it. Callers
// must reject posts with neither title nor content before calling.
func BuildPrompt(post core.Post, options SummaryOptions) string {
	maxWords := options.MaxWords
	if maxWords <= 0 {
		maxWords = 200
	}
	style := options.Style
	if style == "" {
		style = "concise"
	}
	content := post.Content
	if content == "" {
		content = post.Title
	}
	return fmt.Sprintf(promptTemplate, post.Title, content, post.SourceLabel(), maxWords, style)
}

// GenerateSummary builds a prompt for the post, calls the summarization
// endpoint with retry, and returns the completion text. An empty post
// (no title and no content) returns ("", nil) without any API call or
// record write. On every path past the authentication check, if an owning
// user is configured, exactly one completion record is inserted capturing
// the attempt's outcome; errors from the API call are re-raised to the
// caller after the record is written.
func (c *Client) GenerateSummary(ctx context.Context, post core.Post, options SummaryOptions) (summary string, err error) {
	if post.Title == "" && post.Content == "" {
		logger.Warn("No content to summarize", "post_id", post.ID)
		return "", nil
	}

	if _, authErr := c.authp.CurrentUser(ctx); authErr != nil {
		return "", fmt.Errorf("cannot summarize post %s: %w", post.ID, authErr)
	}

	// The record write is the release action of this scope: it runs on
	// success and on every error past this point.
	if c.ownerID != "" && c.records != nil {
		defer func() {
			c.logCompletion(ctx, post, summary)
		}()
	}

	prompt := BuildPrompt(post, options)
	request := ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	response, err := retry.Do(ctx, c.retry, func(ctx context.Context) (ChatResponse, error) {
		var out ChatResponse
		if err := c.api.Post(ctx, summarizePath, request, &out); err != nil {
			return ChatResponse{}, err
		}
		return out, nil
	})
	if err != nil {
		logger.Error("Perplexity API error", err, "post_id", post.ID)
		return "", err
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		logger.Error("Empty completion in API response", nil, "post_id", post.ID)
		return "", ErrEmptyCompletion
	}

	return response.Choices[0].Message.Content, nil
}

// logCompletion inserts the completion record for one generation attempt.
// Store failures are logged and never override the generation outcome.
func (c *Client) logCompletion(ctx context.Context, post core.Post, completion string) {
	// The write must happen even when the surrounding call was canceled.
	ctx = context.WithoutCancel(ctx)

	status := core.StatusCompleted
	if completion == "" {
		status = core.StatusFailed
	}
	record := core.CompletionRecord{
		UserID:   c.ownerID,
		PostID:   post.ID,
		Content:  completion,
		Category: categorization.Categorize(post),
		Status:   status,
	}
	if _, err := c.records.InsertRecord(ctx, record); err != nil {
		logger.Error("Failed to log completion record", err, "post_id", post.ID)
	}
}
