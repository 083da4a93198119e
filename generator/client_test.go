package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto_research_doc_publisher/brief"
)

var testBrief = brief.Brief{
	Persona:      "Analyst",
	Goals:        []string{"summarize"},
	Instructions: []string{"read input"},
	Constraints:  []string{"max 500 words"},
	OutputFormat: "# Title\n...",
}

func TestComposeFixedOrder(t *testing.T) {
	prompt := Compose(testBrief)

	sections := []string{
		"**Persona:**",
		"**Primary Goals:**",
		"**Detailed Instructions:**",
		"**Constraints:**",
		"**Output Format:**",
	}
	last := -1
	for _, s := range sections {
		i := strings.Index(prompt, s)
		require.GreaterOrEqual(t, i, 0, "missing section %s", s)
		assert.Greater(t, i, last, "section %s out of order", s)
		last = i
	}

	assert.Contains(t, prompt, "Analyst")
	assert.Contains(t, prompt, "- summarize")
	assert.Contains(t, prompt, "- read input")
	assert.Contains(t, prompt, "- max 500 words")
	assert.True(t, strings.HasSuffix(prompt, "# Title\n..."))

	// composition is deterministic
	assert.Equal(t, prompt, Compose(testBrief))
}

func TestGenerateSingleRequest(t *testing.T) {
	m := &Mock{Response: "# Report\nBody text"}
	c, err := NewClient(m, zerolog.Nop())
	require.NoError(t, err)

	res, err := c.Generate(context.Background(), testBrief)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Calls)
	assert.Equal(t, "# Report\nBody text", res.Text)
	assert.Equal(t, "mock", res.ModelID)
	assert.GreaterOrEqual(t, res.Elapsed, time.Duration(0))
}

func TestGenerateEndpointError(t *testing.T) {
	m := &Mock{Err: errors.New("deadline exceeded")}
	c, err := NewClient(m, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), testBrief)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "deadline exceeded")
	assert.Equal(t, 1, m.Calls, "no retry on failure")
}

func TestGenerateEmptyResponse(t *testing.T) {
	m := &Mock{Response: "   \n"}
	c, err := NewClient(m, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), testBrief)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestNewClientRequiresModel(t *testing.T) {
	_, err := NewClient(nil, zerolog.Nop())
	assert.Error(t, err)
}
