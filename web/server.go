// ABOUTME: Site HTTP server: home page, 404 page, monogram SVG endpoint, health, and embedded CSS behind chi.
// ABOUTME: Pages are force-static: rendered once into a page cache and re-rendered only after Revalidate.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/allardvh/avh/monogram"
	"github.com/allardvh/avh/render"
	"github.com/allardvh/avh/site"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route paths.
const (
	RouteHome     = "/"
	RouteNotFound = "/404"
	RouteMonogram = "/monogram.svg"
	RouteFavicon  = "/favicon.svg"
	RouteHealth   = "/health"
	StaticPrefix  = "/static/"
)

const defaultAddr = "127.0.0.1:3000"

// Server is the site HTTP server.
type Server struct {
	site      *site.Site
	templates *TemplateEngine
	pages     *render.PageCache
	location  *time.Location
	router    chi.Router
	addr      string
}

// ServerConfig holds the configuration for the site server.
type ServerConfig struct {
	Addr string     // listen address (default: "127.0.0.1:3000")
	Site *site.Site // content (default: embedded site.yaml)
	// Location is the zone display dates are rendered in. Nil means UTC so
	// pages do not change with the host's zone.
	Location *time.Location
	// Revalidate re-renders cached pages older than this. Zero never does.
	Revalidate time.Duration
}

// NewServer creates a Server and renders every page once so template or
// content errors surface at startup rather than on the first request.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Revalidate < 0 {
		return nil, fmt.Errorf("revalidate must not be negative, got %s", cfg.Revalidate)
	}
	if cfg.Site == nil {
		s, err := site.Default()
		if err != nil {
			return nil, fmt.Errorf("loading default site content: %w", err)
		}
		cfg.Site = s
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	s := &Server{
		site:      cfg.Site,
		templates: tmpl,
		location:  cfg.Location,
		addr:      cfg.Addr,
	}
	s.pages = render.NewPageCache(s.renderPage, cfg.Revalidate)
	if err := s.pages.Warm(context.Background(), RouteHome, RouteNotFound); err != nil {
		return nil, fmt.Errorf("rendering pages: %w", err)
	}

	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(webRequestLogger)
	r.Use(middleware.Recoverer)

	r.Get(RouteHome, s.handleHome)
	r.Get(RouteHealth, s.handleHealth)
	r.Get(RouteMonogram, s.handleMonogram)
	r.Get(RouteFavicon, s.handleFavicon)

	staticFS, err := fs.Sub(StaticFS, "static")
	if err != nil {
		log.Printf("WARNING: failed to create static sub-FS: %v", err)
	} else {
		r.Handle(StaticPrefix+"*", http.StripPrefix(StaticPrefix, http.FileServer(http.FS(staticFS))))
	}

	r.NotFound(s.handleNotFound)
	return r
}

// renderPage renders a page route for the page cache.
func (s *Server) renderPage(ctx context.Context, route string) (render.Page, error) {
	var (
		name   string
		title  string
		status int
		cfg    = s.site.MonogramConfig()
	)
	switch route {
	case RouteHome:
		name, title, status = pageHome, s.site.Title, http.StatusOK
	case RouteNotFound:
		name, title, status = pageNotFound, "Page not found | "+s.site.Title, http.StatusNotFound
		cfg = monogram.New(monogram.WithSize(monogram.DefaultSize), monogram.WithTitle(""))
	default:
		return render.Page{}, fmt.Errorf("no page for route %q", route)
	}

	mark, err := monogram.HTML(ctx, cfg)
	if err != nil {
		return render.Page{}, fmt.Errorf("rendering monogram: %w", err)
	}
	bio, err := s.site.BioHTML()
	if err != nil {
		return render.Page{}, err
	}
	updated, err := s.site.UpdatedDisplay(s.location)
	if err != nil {
		return render.Page{}, fmt.Errorf("formatting updated date: %w", err)
	}

	data := PageData{
		Title:    title,
		Site:     s.site,
		Monogram: mark,
		Bio:      bio,
		Updated:  updated,
	}

	var buf bytes.Buffer
	if err := s.templates.RenderTo(&buf, name, data); err != nil {
		return render.Page{}, fmt.Errorf("rendering %s: %w", name, err)
	}
	return render.Page{
		Status:      status,
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}

// handleHome serves the cached home page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, RouteHome)
}

// handleNotFound serves the cached 404 page for any unmatched route.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, RouteNotFound)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, route string) {
	page, err := s.pages.Get(r.Context(), route)
	if err != nil {
		log.Printf("error rendering page route=%s err=%v", route, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", page.ContentType)
	w.WriteHeader(page.Status)
	w.Write(page.Body)
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
