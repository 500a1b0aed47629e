// ABOUTME: Site content model (title, headline, tagline, bio, monogram settings) loaded from YAML.
// ABOUTME: The embedded site.yaml is the default; an on-disk file replaces it. Invalid content fails at load.
package site

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/allardvh/avh/datefmt"
	"github.com/allardvh/avh/monogram"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultContent []byte

// ErrInvalidSite is wrapped by every content validation failure.
var ErrInvalidSite = errors.New("invalid site content")

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("site content: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSite
}

// Monogram holds the home page logomark settings.
type Monogram struct {
	// Size and Title are pointers so absent keys take the renderer defaults
	// while explicit values (size 0, title "") are honoured.
	Size      *float64 `yaml:"size"`
	Title     *string  `yaml:"title"`
	ClassName string   `yaml:"class"`
}

// Site is the content rendered by the layout and home page.
type Site struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Lang        string   `yaml:"lang"`
	Headline    string   `yaml:"headline"`
	Tagline     string   `yaml:"tagline"`
	Bio         string   `yaml:"bio"`
	Updated     string   `yaml:"updated"`
	Monogram    Monogram `yaml:"monogram"`
}

// Default returns the embedded site content.
func Default() (*Site, error) {
	return Parse(defaultContent)
}

// Load reads content from path, or the embedded default when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site content: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates YAML content. Unknown keys are rejected.
func Parse(data []byte) (*Site, error) {
	var s Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Field: "document", Reason: "empty"}
		}
		return nil, fmt.Errorf("decoding site content: %w", err)
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Site) normalize() error {
	s.Title = strings.TrimSpace(s.Title)
	s.Headline = strings.TrimSpace(s.Headline)
	s.Lang = strings.TrimSpace(s.Lang)
	s.Updated = strings.TrimSpace(s.Updated)

	if s.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if s.Headline == "" {
		s.Headline = s.Title
	}
	if s.Lang == "" {
		s.Lang = "en"
	}
	if err := s.MonogramConfig().Validate(); err != nil {
		return &ValidationError{Field: "monogram.size", Reason: err.Error()}
	}
	if s.Updated != "" {
		if _, err := datefmt.Parse(s.Updated, time.UTC); err != nil {
			return &ValidationError{Field: "updated", Reason: err.Error()}
		}
	}
	return nil
}

// MonogramConfig converts the settings to a renderer config.
func (s *Site) MonogramConfig() monogram.Config {
	opts := []monogram.Option{monogram.WithClassName(s.Monogram.ClassName)}
	if s.Monogram.Size != nil {
		opts = append(opts, monogram.WithSize(*s.Monogram.Size))
	}
	if s.Monogram.Title != nil {
		opts = append(opts, monogram.WithTitle(*s.Monogram.Title))
	}
	return monogram.New(opts...)
}

// BioHTML renders the markdown bio. Raw HTML in the source is omitted by goldmark's defaults.
func (s *Site) BioHTML() (template.HTML, error) {
	if strings.TrimSpace(s.Bio) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(s.Bio), &buf); err != nil {
		return "", fmt.Errorf("rendering bio: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// UpdatedDisplay formats the updated date in loc, or "" when unset.
func (s *Site) UpdatedDisplay(loc *time.Location) (string, error) {
	if s.Updated == "" {
		return "", nil
	}
	return datefmt.FormatDisplayDate(s.Updated, loc)
}
