// ABOUTME: Static site export: renders every route in-process and writes the files plus manifest.json.
// ABOUTME: Each build gets a ULID; the manifest records file hashes and the build date in display form.
package export

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/allardvh/avh/datefmt"
	"github.com/allardvh/avh/render"
	"github.com/allardvh/avh/web"
	"github.com/oklog/ulid/v2"
)

// ManifestName is written alongside the exported files.
const ManifestName = "manifest.json"

// ErrNoOutputDir is returned when Options.OutDir is empty.
var ErrNoOutputDir = errors.New("output directory must not be empty")

// RouteRenderer renders a route target to a page. *web.Server implements it.
type RouteRenderer interface {
	RenderRoute(ctx context.Context, target string) (render.Page, error)
}

// UnexpectedStatusError reports a route that rendered with the wrong status.
type UnexpectedStatusError struct {
	Route string
	Want  int
	Got   int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("route %s rendered status %d, want %d", e.Route, e.Got, e.Want)
}

// Options configures a build.
type Options struct {
	OutDir string
	// Location is the zone for the manifest's display date. Nil means UTC.
	Location *time.Location
	// Now and Entropy default to time.Now and crypto/rand.
	Now     func() time.Time
	Entropy io.Reader
}

// File describes one exported file.
type File struct {
	Path        string `json:"path"`
	Route       string `json:"route"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	SHA256      string `json:"sha256"`
}

// Manifest summarises a build.
type Manifest struct {
	BuildID      string `json:"build_id"`
	BuiltAt      string `json:"built_at"`
	BuiltDisplay string `json:"built_display"`
	Files        []File `json:"files"`
}

// target maps a route to its output path and expected status.
type target struct {
	route  string
	path   string
	status int
}

func targets() ([]target, error) {
	list := []target{
		{route: web.RouteHome, path: "index.html", status: http.StatusOK},
		{route: web.RouteNotFound, path: "404.html", status: http.StatusNotFound},
		{route: web.RouteMonogram, path: "monogram.svg", status: http.StatusOK},
		{route: web.RouteFavicon, path: "favicon.svg", status: http.StatusOK},
	}
	static, err := web.StaticFiles()
	if err != nil {
		return nil, err
	}
	for _, name := range static {
		list = append(list, target{
			route:  web.StaticPrefix + name,
			path:   filepath.Join("static", filepath.FromSlash(name)),
			status: http.StatusOK,
		})
	}
	return list, nil
}

// Build renders every route with r and writes the result under opts.OutDir.
func Build(ctx context.Context, r RouteRenderer, opts Options) (*Manifest, error) {
	if opts.OutDir == "" {
		return nil, ErrNoOutputDir
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Entropy == nil {
		opts.Entropy = rand.Reader
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	builtAt := opts.Now()
	id, err := ulid.New(ulid.Timestamp(builtAt), opts.Entropy)
	if err != nil {
		return nil, fmt.Errorf("generating build id: %w", err)
	}

	list, err := targets()
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		BuildID:      id.String(),
		BuiltAt:      builtAt.UTC().Format(time.RFC3339),
		BuiltDisplay: datefmt.Format(builtAt, opts.Location),
		Files:        make([]File, 0, len(list)),
	}

	for _, t := range list {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := r.RenderRoute(ctx, t.route)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", t.route, err)
		}
		if page.Status != t.status {
			return nil, &UnexpectedStatusError{Route: t.route, Want: t.status, Got: page.Status}
		}
		if err := writeFile(filepath.Join(opts.OutDir, t.path), page.Body); err != nil {
			return nil, err
		}
		sum := sha256.Sum256(page.Body)
		manifest.Files = append(manifest.Files, File{
			Path:        filepath.ToSlash(t.path),
			Route:       t.route,
			ContentType: page.ContentType,
			Size:        len(page.Body),
			SHA256:      hex.EncodeToString(sum[:]),
		})
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := writeFile(filepath.Join(opts.OutDir, ManifestName), append(data, '\n')); err != nil {
		return nil, err
	}
	return manifest, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
