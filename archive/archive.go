package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"auto_research_doc_publisher/generator"
)

// ErrWriteFailed wraps filesystem-level failures. It is fatal to a run:
// content that cannot be preserved locally cannot claim partial success.
var ErrWriteFailed = errors.New("local write failed")

// Archiver keeps a markdown snapshot of every generation attempt. It runs
// before publishing so the content survives an unreachable remote.
type Archiver struct {
	dir    string
	logger zerolog.Logger
}

func New(dir string, logger zerolog.Logger) *Archiver {
	return &Archiver{dir: dir, logger: logger}
}

// Archive writes result.Text under a new file named from title. Existing
// files are never touched; a rerun with the same title gets a numeric
// suffix.
func (a *Archiver) Archive(result generator.Result, title string) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	f, path, err := a.create(Slug(title))
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(result.Text); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	a.logger.Info().Str("path", path).Msg("archived local copy")
	return path, nil
}

// create opens the first unused path for slug with O_EXCL so concurrent or
// repeated runs can never clobber a prior snapshot.
func (a *Archiver) create(slug string) (*os.File, string, error) {
	for i := 1; ; i++ {
		name := slug + ".md"
		if i > 1 {
			name = fmt.Sprintf("%s-%d.md", slug, i)
		}
		path := filepath.Join(a.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}
}

// Slug lowers a title into a safe file-name fragment.
func Slug(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			sb.WriteByte('-')
		}
	}
	out := sb.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	out = strings.Trim(out, "-")
	if out == "" {
		out = "untitled"
	}
	return out
}
