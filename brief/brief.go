package brief

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrNotFound means the brief file does not resolve on disk.
	ErrNotFound = errors.New("brief not found")
	// ErrMalformed means the brief parsed but is missing required content.
	ErrMalformed = errors.New("malformed brief")
)

// Brief is the structured research brief driving one generation run.
// All fields are required; free text is passed through verbatim.
type Brief struct {
	Persona      string   `json:"persona"`
	Goals        []string `json:"goals"`
	Instructions []string `json:"instructions"`
	Constraints  []string `json:"constraints"`
	OutputFormat string   `json:"output_format"`
}

// Load reads a brief from disk and checks the required fields. It does no
// semantic interpretation of the content.
func Load(path string) (Brief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Brief{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Brief{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var b Brief
	if err := json.Unmarshal(data, &b); err != nil {
		return Brief{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := b.validate(); err != nil {
		return Brief{}, err
	}
	return b, nil
}

func (b Brief) validate() error {
	if strings.TrimSpace(b.Persona) == "" {
		return fmt.Errorf("%w: persona is required", ErrMalformed)
	}
	if strings.TrimSpace(b.OutputFormat) == "" {
		return fmt.Errorf("%w: output_format is required", ErrMalformed)
	}
	for _, f := range []struct {
		name  string
		items []string
	}{
		{"goals", b.Goals},
		{"instructions", b.Instructions},
		{"constraints", b.Constraints},
	} {
		if len(f.items) == 0 {
			return fmt.Errorf("%w: %s is required", ErrMalformed, f.name)
		}
		for _, it := range f.items {
			if strings.TrimSpace(it) == "" {
				return fmt.Errorf("%w: %s contains an empty entry", ErrMalformed, f.name)
			}
		}
	}
	return nil
}

// Subject derives a short fragment from the persona for naming artifacts.
// It takes the persona up to the first punctuation, capped at eight words.
func (b Brief) Subject() string {
	s := strings.TrimSpace(b.Persona)
	if i := strings.IndexAny(s, ".,;:("); i > 0 {
		s = s[:i]
	}
	words := strings.Fields(s)
	if len(words) > 8 {
		words = words[:8]
	}
	return strings.Join(words, " ")
}
