package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"auto_research_doc_publisher/brief"
)

// ErrGenerationFailed wraps any failure of the generation endpoint.
var ErrGenerationFailed = errors.New("generation failed")

// Result is the outcome of one model call. Never mutated after creation.
type Result struct {
	Text    string
	Elapsed time.Duration
	ModelID string
}

// Client issues exactly one request per Generate call. Retry policy, if any,
// belongs to the caller; a retried attempt is a new billable call.
type Client struct {
	model  TextModel
	logger zerolog.Logger
}

func NewClient(model TextModel, logger zerolog.Logger) (*Client, error) {
	if model == nil {
		return nil, errors.New("text model is required")
	}
	return &Client{model: model, logger: logger}, nil
}

// Generate composes the brief into a single instruction and runs it.
// Elapsed time covers the network call only, not composition.
func (c *Client) Generate(ctx context.Context, b brief.Brief) (Result, error) {
	prompt := Compose(b)
	c.logger.Info().Str("model", c.model.Name()).Int("prompt_chars", len(prompt)).Msg("sending composed prompt")

	start := time.Now()
	text, err := c.model.Complete(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, fmt.Errorf("%w: model returned empty text", ErrGenerationFailed)
	}

	c.logger.Info().Dur("elapsed", elapsed).Int("chars", len(text)).Msg("model response received")
	return Result{Text: text, Elapsed: elapsed, ModelID: c.model.Name()}, nil
}
