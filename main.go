package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"auto_research_doc_publisher/archive"
	"auto_research_doc_publisher/brief"
	"auto_research_doc_publisher/config"
	"auto_research_doc_publisher/generator"
	"auto_research_doc_publisher/googleauth"
	"auto_research_doc_publisher/pipeline"
	"auto_research_doc_publisher/progress"
	"auto_research_doc_publisher/publisher"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	briefPath := flag.String("prompt", "prompt.json", "path to the research brief")
	keyPath := flag.String("key", "", "path to the service account key (overrides GOOGLE_APPLICATION_CREDENTIALS)")
	modelID := flag.String("model", "", "model id (overrides GEMINI_API_MODEL)")
	outDir := flag.String("out", "", "local archive directory (overrides OUTPUT_DIR)")
	check := flag.Bool("check", false, "verify credentials and destination, then exit")
	noProgress := flag.Bool("no-progress", false, "disable the elapsed-time indicator")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return pipeline.Failed.ExitCode()
	}
	if *modelID != "" {
		cfg.Model = *modelID
	}
	if *keyPath != "" {
		cfg.CredentialsPath = *keyPath
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	logger := newLogger(cfg.LogLevel).With().Str("run_id", uuid.NewString()).Logger()
	ctx := context.Background()

	cred, err := googleauth.Resolve([]byte(cfg.CredentialsJSON), cfg.CredentialsPath)
	if err != nil {
		logger.Error().Err(err).Msg("authentication failed")
		return pipeline.Failed.ExitCode()
	}
	logger.Info().Str("service_account", cred.Email).Str("project", cred.ProjectID).Msg("credential resolved")

	target := publisher.Target{DriveID: cfg.DriveID, FolderID: cfg.FolderID}
	if *check {
		return runCheck(ctx, cfg, cred, target, logger)
	}

	b, err := brief.Load(*briefPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *briefPath).Msg("could not load brief")
		return pipeline.Failed.ExitCode()
	}

	model, err := buildModel(ctx, cfg, cred)
	if err != nil {
		logger.Error().Err(err).Msg("model configuration failed")
		return pipeline.Failed.ExitCode()
	}
	gen, err := generator.NewClient(model, logger.With().Str("component", "generator").Logger())
	if err != nil {
		logger.Error().Err(err).Msg("generator setup failed")
		return pipeline.Failed.ExitCode()
	}
	pub, err := publisher.New(ctx, cred, target, logger.With().Str("component", "publisher").Logger())
	if err != nil {
		logger.Error().Err(err).Msg("document store setup failed")
		return pipeline.Failed.ExitCode()
	}
	arch := archive.New(cfg.OutputDir, logger.With().Str("component", "archive").Logger())

	var reporter *progress.Reporter
	if !*noProgress && !cfg.NoProgress {
		reporter = progress.New(os.Stderr, time.Second)
	}

	driver := &pipeline.Driver{
		Generator:       gen,
		Archiver:        arch,
		Publisher:       pub,
		Reporter:        reporter,
		Logger:          logger,
		GenerateTimeout: cfg.GenerationTimeout,
	}

	report := driver.Run(ctx, b)
	switch report.Outcome {
	case pipeline.Succeeded:
		logger.Info().Str("status", report.Outcome.String()).Msg("pipeline finished")
	case pipeline.PartiallySucceeded:
		logger.Warn().Err(report.Err).Str("status", report.Outcome.String()).
			Str("archive", report.ArchivePath).Msg("pipeline finished")
	default:
		logger.Error().Err(report.Err).Str("status", report.Outcome.String()).Msg("pipeline finished")
	}
	return report.Outcome.ExitCode()
}

// buildModel mirrors the provider switch in config: gemini by default, an
// OpenAI-compatible gateway, or the offline mock.
func buildModel(ctx context.Context, cfg *config.Config, cred *googleauth.Credential) (generator.TextModel, error) {
	settings := generator.Settings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		Project:  cfg.Project,
		Location: cfg.Location,
	}
	switch cfg.Provider {
	case "", "gemini":
		settings.APIKey = cfg.GeminiAPIKey
		return generator.NewGemini(ctx, settings, cred)
	case "openai":
		settings.APIKey = cfg.OpenAIAPIKey
		settings.BaseURL = cfg.OpenAIBaseURL
		return generator.NewOpenAI(settings)
	case "mock":
		return &generator.Mock{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}

// runCheck verifies the environment without spending a generation call.
func runCheck(ctx context.Context, cfg *config.Config, cred *googleauth.Credential, target publisher.Target, logger zerolog.Logger) int {
	logger.Info().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("configured model")

	pub, err := publisher.New(ctx, cred, target, logger)
	if err != nil {
		logger.Error().Err(err).Msg("document store setup failed")
		return pipeline.Failed.ExitCode()
	}
	if err := pub.CheckDestination(ctx); err != nil {
		logger.Error().Err(err).Msg("destination check failed")
		return pipeline.Failed.ExitCode()
	}
	logger.Info().Str("folder", target.FolderID).Msg("destination folder verified")
	return 0
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
