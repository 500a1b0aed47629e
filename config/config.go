// ABOUTME: Environment configuration for the avh site, read from AVH_* variables with caarlos0/env.
// ABOUTME: Converts the raw values into the server's config: display zone, site content, revalidation.
package config

import (
	"fmt"
	"time"

	"github.com/allardvh/avh/datefmt"
	"github.com/allardvh/avh/site"
	"github.com/allardvh/avh/web"
	"github.com/caarlos0/env/v11"
)

// Env holds the AVH_* environment settings. Command-line flags override them.
type Env struct {
	Addr        string        `env:"AVH_HTTP_ADDR" envDefault:"127.0.0.1:3000"`
	ContentFile string        `env:"AVH_CONTENT_FILE"`
	Timezone    string        `env:"AVH_TIMEZONE" envDefault:"UTC"`
	Revalidate  time.Duration `env:"AVH_REVALIDATE" envDefault:"0s"`
	OutDir      string        `env:"AVH_OUT_DIR" envDefault:"dist"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Env from the process environment.
func Load() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Location resolves Timezone. An empty value or "Local" is the host zone.
func (e Env) Location() (*time.Location, error) {
	loc, err := datefmt.LoadLocation(e.Timezone)
	if err != nil {
		return nil, fmt.Errorf("AVH_TIMEZONE: %w", err)
	}
	return loc, nil
}

// Site loads ContentFile, or the embedded content when it is unset.
func (e Env) Site() (*site.Site, error) {
	return site.Load(e.ContentFile)
}

// ServerConfig builds the web server configuration.
func (e Env) ServerConfig() (web.ServerConfig, error) {
	if e.Revalidate < 0 {
		return web.ServerConfig{}, fmt.Errorf("AVH_REVALIDATE must not be negative, got %s", e.Revalidate)
	}
	loc, err := e.Location()
	if err != nil {
		return web.ServerConfig{}, err
	}
	s, err := e.Site()
	if err != nil {
		return web.ServerConfig{}, err
	}
	return web.ServerConfig{
		Addr:       e.Addr,
		Site:       s,
		Location:   loc,
		Revalidate: e.Revalidate,
	}, nil
}
