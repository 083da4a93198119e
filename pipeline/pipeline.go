package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"auto_research_doc_publisher/brief"
	"auto_research_doc_publisher/generator"
	"auto_research_doc_publisher/progress"
	"auto_research_doc_publisher/publisher"
)

// Outcome classifies how a run ended.
type Outcome int

const (
	Succeeded Outcome = iota
	// PartiallySucceeded means content was generated and archived locally
	// but not published remotely.
	PartiallySucceeded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case PartiallySucceeded:
		return "partially succeeded"
	default:
		return "failed"
	}
}

// ExitCode maps an outcome to the process exit status: 0 for success, 2 for
// partial success, 1 for failure.
func (o Outcome) ExitCode() int {
	switch o {
	case Succeeded:
		return 0
	case PartiallySucceeded:
		return 2
	default:
		return 1
	}
}

// Report is the terminal state of one run.
type Report struct {
	Outcome     Outcome
	ArchivePath string
	Published   *publisher.Ref
	Err         error
}

// Generator, Archiver and Publisher are the component seams the driver
// sequences. Production wiring lives in main.
type Generator interface {
	Generate(ctx context.Context, b brief.Brief) (generator.Result, error)
}

type Archiver interface {
	Archive(result generator.Result, title string) (string, error)
}

type Publisher interface {
	Publish(ctx context.Context, result generator.Result, title string) (*publisher.Ref, error)
}

// Driver runs one generate → archive → publish flow per invocation. No
// retries: a failed attempt surfaces as-is.
type Driver struct {
	Generator Generator
	Archiver  Archiver
	Publisher Publisher

	// Reporter is optional; nil disables the in-flight indicator.
	Reporter *progress.Reporter
	Logger   zerolog.Logger

	// GenerateTimeout, when positive, bounds only the generation call.
	GenerateTimeout time.Duration

	// Now is a seam for tests; defaults to time.Now.
	Now func() time.Time
}

// Run executes the flow. Archiving always happens before any publish
// attempt; a publish failure after a successful archive downgrades the run
// to PartiallySucceeded instead of failing it.
func (d *Driver) Run(ctx context.Context, b brief.Brief) Report {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	title := Title(b, now())
	d.Logger.Info().Str("title", title).Msg("run started")

	genCtx := ctx
	if d.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, d.GenerateTimeout)
		defer cancel()
	}

	d.Reporter.Start()
	result, err := d.Generator.Generate(genCtx, b)
	d.Reporter.Stop()
	if err != nil {
		d.Logger.Error().Err(err).Msg("generation failed")
		return Report{Outcome: Failed, Err: err}
	}

	path, err := d.Archiver.Archive(result, title)
	if err != nil {
		d.Logger.Error().Err(err).Msg("could not preserve local copy")
		return Report{Outcome: Failed, Err: err}
	}

	ref, err := d.Publisher.Publish(ctx, result, title)
	if err != nil {
		d.Logger.Warn().Err(err).Str("archive", path).Msg("publish failed, local copy retained")
		return Report{Outcome: PartiallySucceeded, ArchivePath: path, Err: err}
	}

	d.Logger.Info().Str("url", ref.URL).Str("archive", path).Msg("run complete")
	return Report{Outcome: Succeeded, ArchivePath: path, Published: ref}
}

// Title names the run's artifacts from the brief subject and the run date.
func Title(b brief.Brief, at time.Time) string {
	return fmt.Sprintf("%s Research Report %s", b.Subject(), at.Format("2006-01-02"))
}
