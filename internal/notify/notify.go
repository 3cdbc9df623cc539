// Package notify maps pipeline errors to user-visible notification text.
// Core packages return tagged errors and never touch presentation; the
// CLI and TUI call into this package at the edge.
package notify

import (
	"errors"
	"net"

	"yfetch/internal/apiclient"
)

// User-facing notification messages. Internal error detail is never
// exposed; network problems get a distinguishable hint.
const (
	MsgNetwork    = "Network error. Please check your connection."
	MsgDatabase   = "Database operation failed. Please try again."
	MsgGeneric    = "An unexpected error occurred. Please try again."
	MsgLoadDigest = "Failed to load summaries"
	MsgNoDigests  = "No digests yet. Enable AI summaries for your posts to get started!"
)

// Message returns the notification text for an error, or "" for nil.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return MsgNetwork
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return MsgNetwork
	}

	return MsgGeneric
}
