package domain

import "context"

// CompletionRequest describes one completion call to the model backend.
type CompletionRequest struct {
	SystemPrompt string
	Prompt       string
	Model        string
	MaxTokens    int
	Temperature  float32
}

// CompletionBackend generates the AI reply for an admitted message.
type CompletionBackend interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
