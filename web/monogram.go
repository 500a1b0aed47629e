// ABOUTME: Serves the monogram as a standalone SVG, configured by size, title, class, and inherit query params.
// ABOUTME: Invalid parameters get a 400 with the reason; defaults apply only to absent params.
package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/allardvh/avh/monogram"
)

// Query parameters accepted by the monogram endpoint.
const (
	paramSize    = "size"
	paramTitle   = "title"
	paramClass   = "class"
	paramInherit = "inherit"
)

// faviconConfig is the decorative tab icon; the page title already names the site.
var faviconConfig = monogram.New(monogram.WithSize(32), monogram.WithTitle(""))

// handleFavicon serves the fixed favicon so it survives static export, where
// query parameters on /monogram.svg are ignored.
func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	svg, err := monogram.Render(faviconConfig)
	if err != nil {
		log.Printf("error rendering favicon err=%v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeSVG(w, svg)
}

// handleMonogram renders the monogram for the request's query parameters.
func (s *Server) handleMonogram(w http.ResponseWriter, r *http.Request) {
	cfg, err := monogramConfigFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	svg, err := monogram.Render(cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, monogram.ErrInvalidArgument) {
			status = http.StatusBadRequest
		} else {
			log.Printf("error rendering monogram err=%v", err)
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeSVG(w, svg)
}

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}

// monogramConfigFromQuery maps query parameters onto the default config. A
// present-but-empty title selects the decorative rendering.
func monogramConfigFromQuery(q url.Values) (monogram.Config, error) {
	var opts []monogram.Option

	if q.Has(paramSize) {
		size, err := strconv.ParseFloat(q.Get(paramSize), 64)
		if err != nil {
			return monogram.Config{}, fmt.Errorf("invalid %s %q: %w", paramSize, q.Get(paramSize), monogram.ErrInvalidArgument)
		}
		opts = append(opts, monogram.WithSize(size))
	}
	if q.Has(paramTitle) {
		opts = append(opts, monogram.WithTitle(q.Get(paramTitle)))
	}
	if q.Has(paramClass) {
		opts = append(opts, monogram.WithClassName(q.Get(paramClass)))
	}
	if q.Has(paramInherit) {
		inherit, err := strconv.ParseBool(q.Get(paramInherit))
		if err != nil {
			return monogram.Config{}, fmt.Errorf("invalid %s %q: %w", paramInherit, q.Get(paramInherit), monogram.ErrInvalidArgument)
		}
		opts = append(opts, monogram.WithInheritColor(inherit))
	}

	return monogram.New(opts...), nil
}
