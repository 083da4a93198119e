package generator

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"auto_research_doc_publisher/googleauth"
)

// Gemini implements TextModel on the Google GenAI SDK.
type Gemini struct {
	model  string
	client *genai.Client
}

// NewGemini builds a client for the Gemini API backend when an API key is
// configured, falling back to the Vertex backend with the run's service
// account credential.
func NewGemini(ctx context.Context, cfg Settings, cred *googleauth.Credential) (*Gemini, error) {
	if cfg.Model == "" {
		return nil, errors.New("gemini model id is required")
	}

	var cc genai.ClientConfig
	switch {
	case cfg.APIKey != "":
		cc = genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI}
	case cred != nil:
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			CredentialsJSON: cred.JSON(),
			Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
		})
		if err != nil {
			return nil, fmt.Errorf("gemini credentials: %w", err)
		}
		project := cfg.Project
		if project == "" {
			project = cred.ProjectID
		}
		cc = genai.ClientConfig{
			Backend:     genai.BackendVertexAI,
			Project:     project,
			Location:    cfg.Location,
			Credentials: creds,
		}
	default:
		return nil, errors.New("gemini requires an api key or a service account credential")
	}

	client, err := genai.NewClient(ctx, &cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{model: cfg.Model, client: client}, nil
}

func (g *Gemini) Name() string { return g.model }

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
