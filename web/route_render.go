// ABOUTME: Renders routes in-process through the full router for static export.
// ABOUTME: Captures status, content type, and body in memory without opening a listener.
package web

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/allardvh/avh/render"
)

// bufferedResponse is a minimal in-memory http.ResponseWriter.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// RenderRoute serves a GET for target (path plus optional query) and returns
// the captured response.
func (s *Server) RenderRoute(ctx context.Context, target string) (render.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return render.Page{}, fmt.Errorf("building request for %s: %w", target, err)
	}
	req.RemoteAddr = "export"

	resp := &bufferedResponse{header: make(http.Header)}
	s.ServeHTTP(resp, req)

	status := resp.status
	if status == 0 {
		status = http.StatusOK
	}
	return render.Page{
		Status:      status,
		ContentType: resp.header.Get("Content-Type"),
		Body:        resp.body.Bytes(),
	}, nil
}

// StaticFiles lists the embedded asset paths relative to the static root,
// e.g. "css/site.css".
func StaticFiles() ([]string, error) {
	root, err := fs.Sub(StaticFS, "static")
	if err != nil {
		return nil, err
	}
	var files []string
	err = fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing static files: %w", err)
	}
	return files, nil
}
