package log

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLoggerInjectsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, nil)})

	var inner *Logger
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = FromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if inner == nil {
		t.Fatal("no logger in request context")
	}
	if inner.Component() != ComponentHTTP {
		t.Fatalf("component = %q, want %q", inner.Component(), ComponentHTTP)
	}
	out := buf.String()
	if !strings.Contains(out, "HTTP request completed") {
		t.Fatalf("request line missing: %s", out)
	}
	if !strings.Contains(out, "201") {
		t.Fatalf("status missing: %s", out)
	}
}

func TestFromContextFallsBack(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Fatal("nil fallback logger")
	}
	if logger.Component() != ComponentApp {
		t.Fatalf("component = %q, want %q", logger.Component(), ComponentApp)
	}
}
