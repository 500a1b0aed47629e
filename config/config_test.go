// ABOUTME: Tests for AVH_* environment parsing and conversion into the web server config.
// ABOUTME: Uses t.Setenv so each case sees an isolated environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	_ "time/tzdata"
)

var envKeys = []string{"AVH_HTTP_ADDR", "AVH_CONTENT_FILE", "AVH_TIMEZONE", "AVH_REVALIDATE", "AVH_OUT_DIR"}

// clearEnv unsets every AVH_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Env{
		Addr:     "127.0.0.1:3000",
		Timezone: "UTC",
		OutDir:   "dist",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AVH_HTTP_ADDR", ":8080")
	t.Setenv("AVH_CONTENT_FILE", "/srv/site.yaml")
	t.Setenv("AVH_TIMEZONE", "Europe/Amsterdam")
	t.Setenv("AVH_REVALIDATE", "5m")
	t.Setenv("AVH_OUT_DIR", "public")

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Env{
		Addr:        ":8080",
		ContentFile: "/srv/site.yaml",
		Timezone:    "Europe/Amsterdam",
		Revalidate:  5 * time.Minute,
		OutDir:      "public",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("AVH_REVALIDATE", "soon")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLocation(t *testing.T) {
	loc, err := Env{Timezone: "America/New_York"}.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Errorf("expected America/New_York, got %s", loc)
	}

	loc, err = Env{}.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc != time.Local {
		t.Errorf("expected time.Local for empty zone, got %s", loc)
	}

	if _, err := (Env{Timezone: "Mars/Olympus_Mons"}).Location(); err == nil {
		t.Error("expected error for unknown zone")
	}
}

func TestServerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte("title: Test Site\ntagline: Hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Env{
		Addr:        ":9000",
		ContentFile: path,
		Timezone:    "UTC",
		Revalidate:  time.Minute,
	}.ServerConfig()
	if err != nil {
		t.Fatalf("server config: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %q", cfg.Addr)
	}
	if cfg.Site.Title != "Test Site" || cfg.Site.Tagline != "Hello" {
		t.Errorf("expected site content from file, got %+v", cfg.Site)
	}
	if cfg.Location != time.UTC {
		t.Errorf("expected UTC, got %v", cfg.Location)
	}
	if cfg.Revalidate != time.Minute {
		t.Errorf("expected 1m revalidate, got %s", cfg.Revalidate)
	}
}

func TestServerConfigDefaultSite(t *testing.T) {
	cfg, err := Env{Timezone: "UTC"}.ServerConfig()
	if err != nil {
		t.Fatalf("server config: %v", err)
	}
	if cfg.Site.Title != "Allard van Helbergen" {
		t.Errorf("expected embedded site content, got %q", cfg.Site.Title)
	}
}

func TestServerConfigErrors(t *testing.T) {
	cases := map[string]Env{
		"negative revalidate": {Timezone: "UTC", Revalidate: -time.Second},
		"unknown zone":        {Timezone: "Nowhere/Special"},
		"missing content":     {Timezone: "UTC", ContentFile: filepath.Join(t.TempDir(), "missing.yaml")},
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := e.ServerConfig(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
