// ABOUTME: Tests for the request-id and request logging middleware.
// ABOUTME: Captures the standard logger's output to check the key=value line.
package web

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebRequestLoggerLine(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(saved) })

	h := requestID(webRequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/pot", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	line := buf.String()
	id := rec.Header().Get(RequestIDHeader)
	wants := []string{
		"web request id=" + id,
		"method=GET",
		"route=-",
		"path=/pot",
		"status=418",
		"bytes=15",
	}
	for _, want := range wants {
		if !strings.Contains(line, want) {
			t.Errorf("expected log line to contain %q, got %q", want, line)
		}
	}
}

func TestRequestRecordDefaultsTo200(t *testing.T) {
	rec := &requestRecord{ResponseWriter: httptest.NewRecorder(), id: "abc"}
	rec.Write([]byte("ok"))
	if rec.status != http.StatusOK {
		t.Errorf("expected implicit 200, got %d", rec.status)
	}
	if rec.bytes != 2 {
		t.Errorf("expected 2 bytes, got %d", rec.bytes)
	}

	line := rec.logLine(httptest.NewRequest(http.MethodHead, "/x", nil))
	if !strings.Contains(line, "id=abc method=HEAD route=- path=/x status=200 bytes=2") {
		t.Errorf("unexpected log line %q", line)
	}
}

func TestRequestRecordKeepsFirstStatus(t *testing.T) {
	rec := &requestRecord{ResponseWriter: httptest.NewRecorder()}
	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusOK)
	if rec.status != http.StatusNotFound {
		t.Errorf("expected first status to stick, got %d", rec.status)
	}
}

func TestServerLogsMatchedRoute(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(saved) })

	srv := newTestServer(t)
	rec := get(t, srv, "/monogram.svg?size=48")

	line := buf.String()
	wants := []string{
		"web request id=" + rec.Header().Get(RequestIDHeader),
		"route=/monogram.svg",
		"path=/monogram.svg",
		"status=200",
	}
	for _, want := range wants {
		if !strings.Contains(line, want) {
			t.Errorf("expected log line to contain %q, got %q", want, line)
		}
	}
}
