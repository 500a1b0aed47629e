// ABOUTME: HTTP request-id and logging middleware in the log.Printf key=value style.
// ABOUTME: Each line carries the request id and chi's matched route so cached pages and 404s are distinguishable.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestIDFromContext returns the id assigned by the requestID middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestID reuses a well-formed incoming X-Request-Id or assigns a new uuid.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestRecord wraps the response for one request and collects what the
// request log line reports.
type requestRecord struct {
	http.ResponseWriter
	id     string
	start  time.Time
	status int
	bytes  int
}

func (rec *requestRecord) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *requestRecord) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(p)
	rec.bytes += n
	return n, err
}

// route is chi's matched pattern, or "-" for requests served by NotFound.
func route(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "-"
}

// logLine formats the completed request as key=value fields.
func (rec *requestRecord) logLine(r *http.Request) string {
	status := rec.status
	if status == 0 {
		status = http.StatusOK
	}
	return fmt.Sprintf("web request id=%s method=%s route=%s path=%s status=%d bytes=%d duration=%s remote=%s",
		rec.id,
		r.Method,
		route(r),
		r.URL.Path,
		status,
		rec.bytes,
		time.Since(rec.start).Round(time.Microsecond),
		r.RemoteAddr,
	)
}

// webRequestLogger logs one line per request after it completes.
func webRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &requestRecord{
			ResponseWriter: w,
			id:             RequestIDFromContext(r.Context()),
			start:          time.Now(),
		}
		next.ServeHTTP(rec, r)
		log.Print(rec.logLine(r))
	})
}
