// ABOUTME: Tests for static export: written files, manifest contents, build ids, and failure modes.
// ABOUTME: Runs against a real web.Server rendering in-process into a temp directory.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/allardvh/avh/render"
	"github.com/allardvh/avh/web"
	"github.com/oklog/ulid/v2"
)

var fixedNow = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

func newServer(t *testing.T) *web.Server {
	t.Helper()
	srv, err := web.NewServer(web.ServerConfig{})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func testOptions(dir string) Options {
	return Options{
		OutDir:  dir,
		Now:     func() time.Time { return fixedNow },
		Entropy: bytes.NewReader(bytes.Repeat([]byte{7}, 32)),
	}
}

func TestBuildWritesFiles(t *testing.T) {
	dir := t.TempDir()
	manifest, err := Build(context.Background(), newServer(t), testOptions(dir))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for _, name := range []string{"index.html", "404.html", "monogram.svg", "favicon.svg", "static/css/site.css", ManifestName} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), `aria-label="AVH monogram"`) {
		t.Error("expected exported home page to contain the monogram")
	}

	if !strings.Contains(string(index), `href="/favicon.svg"`) {
		t.Error("expected exported home page to link the exported favicon")
	}
	favicon, err := os.ReadFile(filepath.Join(dir, "favicon.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(favicon), `role="presentation" width="32" height="32"`) {
		t.Errorf("expected decorative 32px favicon, got %q", favicon)
	}

	if len(manifest.Files) != 5 {
		t.Errorf("expected 5 files in manifest, got %d", len(manifest.Files))
	}
}

func TestBuildManifest(t *testing.T) {
	dir := t.TempDir()
	if _, err := Build(context.Background(), newServer(t), testOptions(dir)); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("failed to decode manifest: %v", err)
	}

	id, err := ulid.Parse(m.BuildID)
	if err != nil {
		t.Fatalf("expected build id to be a ULID, got %q: %v", m.BuildID, err)
	}
	if id.Time() != ulid.Timestamp(fixedNow) {
		t.Errorf("expected build id timestamp to match build time")
	}
	if m.BuiltAt != "2024-01-15T12:00:00Z" {
		t.Errorf("unexpected built_at %q", m.BuiltAt)
	}
	if m.BuiltDisplay != "Mon, 15 Jan 2024" {
		t.Errorf("unexpected built_display %q", m.BuiltDisplay)
	}

	for _, f := range m.Files {
		if len(f.SHA256) != 64 {
			t.Errorf("%s: expected hex sha256, got %q", f.Path, f.SHA256)
		}
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f.Path)))
		if err != nil {
			t.Errorf("%s: %v", f.Path, err)
			continue
		}
		if int(info.Size()) != f.Size {
			t.Errorf("%s: manifest size %d, file size %d", f.Path, f.Size, info.Size())
		}
	}
}

func TestBuildDisplayDateUsesLocation(t *testing.T) {
	opts := testOptions(t.TempDir())
	opts.Location = time.FixedZone("UTC-13", -13*60*60)
	m, err := Build(context.Background(), newServer(t), opts)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if m.BuiltDisplay != "Sun, 14 Jan 2024" {
		t.Errorf("unexpected built_display %q", m.BuiltDisplay)
	}
}

func TestBuildRequiresOutputDir(t *testing.T) {
	if _, err := Build(context.Background(), newServer(t), Options{}); !errors.Is(err, ErrNoOutputDir) {
		t.Fatalf("expected ErrNoOutputDir, got %v", err)
	}
}

type statusRenderer struct {
	status int
}

func (s statusRenderer) RenderRoute(ctx context.Context, target string) (render.Page, error) {
	return render.Page{Status: s.status, ContentType: "text/plain", Body: []byte(target)}, nil
}

func TestBuildRejectsUnexpectedStatus(t *testing.T) {
	_, err := Build(context.Background(), statusRenderer{status: http.StatusInternalServerError}, testOptions(t.TempDir()))
	var statusErr *UnexpectedStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *UnexpectedStatusError, got %v", err)
	}
	if statusErr.Route != web.RouteHome || statusErr.Got != http.StatusInternalServerError {
		t.Errorf("unexpected error details: %+v", statusErr)
	}
}

func TestBuildHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, newServer(t), testOptions(t.TempDir())); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
