package generator

import "context"

// TextModel abstracts the generation endpoint so providers can be swapped or mocked.
type TextModel interface {
	// Name identifies the model serving requests, for logging and Result.ModelID.
	Name() string
	// Complete issues one text-completion request with prompt as the full
	// context. No history, no multi-turn state.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings carries provider configuration for the concrete implementations.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Project  string
	Location string
}
