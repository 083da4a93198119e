package generator

import (
	"context"
	"strings"
)

// Mock is a canned TextModel for local runs and tests; it never touches the
// network.
type Mock struct {
	Response string
	Err      error
	Calls    int
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Complete(_ context.Context, prompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	var sb strings.Builder
	sb.WriteString("# Generated Sample\n\n")
	sb.WriteString("Echo of the composed instruction:\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
