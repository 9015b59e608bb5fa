// Package llm wraps the chat-completion API behind a small interface so the
// AI handlers can be tested with a fake.
package llm

import (
	"context"

	"speedlist-backend/internal/prompts"
)

// Request is one chat-completion call: a system prompt, the fixed few-shot
// exchanges, and the user's message (text plus optional image data URLs).
type Request struct {
	System  string
	FewShot []prompts.Message
	Text    string
	Images  []string
}

// ChatCompleter sends a request and returns the model's raw text, which is
// expected (but not trusted) to be a single JSON object.
type ChatCompleter interface {
	Complete(ctx context.Context, req Request) (string, error)
}
