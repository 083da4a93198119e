package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process-wide configuration, constructed once in main and
// passed down explicitly. No component reads the environment itself.
type Config struct {
	Provider string `envconfig:"LLM_PROVIDER" default:"gemini"`
	Model    string `envconfig:"GEMINI_API_MODEL"`

	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	CredentialsPath string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	CredentialsJSON string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS_JSON"`
	Project         string `envconfig:"GOOGLE_CLOUD_PROJECT"`
	Location        string `envconfig:"GOOGLE_CLOUD_LOCATION" default:"us-central1"`

	DriveID  string `envconfig:"SHARED_DRIVE_ID"`
	FolderID string `envconfig:"DRIVE_FOLDER_ID"`

	OutputDir string `envconfig:"OUTPUT_DIR" default:"output"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	GenerationTimeout time.Duration `envconfig:"GENERATION_TIMEOUT"`
	NoProgress        bool          `envconfig:"NO_PROGRESS"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.Model == "" && cfg.Provider != "mock" {
		return nil, errors.New("model id is not set (GEMINI_API_MODEL)")
	}
	if cfg.FolderID == "" {
		return nil, errors.New("destination folder is not set (DRIVE_FOLDER_ID)")
	}
	return &cfg, nil
}
