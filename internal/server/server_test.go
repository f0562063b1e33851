package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/internal/render"
	"github.com/goliatone/go-docsite/internal/routes"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

func newTestTable(t *testing.T) *routes.Table {
	t.Helper()

	return newTableFrom(t, fstest.MapFS{
		"index.md":       {Data: []byte("---\ntitle: Home\n---\n# Home")},
		"guide/index.md": {Data: []byte("# Guide")},
		"guide/setup.md": {Data: []byte("# Setup")},
	})
}

func newTableFrom(t *testing.T, fsys fstest.MapFS) *routes.Table {
	t.Helper()

	svc := markdown.NewService(fsys, markdown.Config{WrapMain: true}, nil, nil)
	sources, _, err := svc.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	renderer, err := render.New(render.Config{SiteTitle: "Docs"})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	registrar := routes.NewRegistrar(svc, renderer, nil, routes.Config{}, nil)
	if err := registrar.RegisterAll(context.Background(), sources); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	return registrar.Table()
}

func TestHandler(t *testing.T) {
	table := newTestTable(t)
	handler := NewHandler(table, "/healthz", nil)

	home, _ := table.Lookup("/")
	guide, _ := table.Lookup("/guide")

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"root", http.MethodGet, "/", http.StatusOK, string(home.Page)},
		{"nested index", http.MethodGet, "/guide", http.StatusOK, string(guide.Page)},
		{"trailing slash", http.MethodGet, "/guide/", http.StatusOK, string(guide.Page)},
		{"head", http.MethodHead, "/guide/setup", http.StatusOK, ""},
		{"missing", http.MethodGet, "/nope", http.StatusNotFound, ""},
		{"double slash", http.MethodGet, "/guide//", http.StatusNotFound, ""},
		{"post", http.MethodPost, "/", http.StatusMethodNotAllowed, ""},
		{"health", http.MethodGet, "/healthz", http.StatusOK, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Fatalf("unexpected body %q", rec.Body.String())
			}
		})
	}
}

func TestHandler_DocumentRouteWinsOverHealthPath(t *testing.T) {
	table := newTableFrom(t, fstest.MapFS{
		"index.md":   {Data: []byte("# Home")},
		"healthz.md": {Data: []byte("# Health doc")},
	})
	doc, ok := table.Lookup("/healthz")
	if !ok {
		t.Fatal("expected /healthz route")
	}

	logger := &recordingLogger{}
	handler := NewHandler(table, "/healthz", logger)
	if len(logger.warnings) != 1 || logger.warnings[0] != "server.health.shadowed" {
		t.Fatalf("expected shadowed health warning, got %v", logger.warnings)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != string(doc.Page) {
		t.Fatalf("expected document page, got %q", rec.Body.String())
	}
}

func TestHandler_MethodNotAllowedAllowHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(newTestTable(t), "", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

	if rec.Header().Get("Allow") != "GET, HEAD" {
		t.Fatalf("expected Allow header, got %q", rec.Header().Get("Allow"))
	}
}

func TestHandler_HealthDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(newTestTable(t), "", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with health disabled, got %d", rec.Code)
	}
}

func TestHandler_NilTable(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(nil, "", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestServerServe_GracefulShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := New(Config{ShutdownTimeout: time.Second}, NewHandler(newTestTable(t), "/healthz", nil), nil)

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, listener)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("unexpected health body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Trace(string, ...any) {}
func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}
func (l *recordingLogger) Fatal(string, ...any) {}

func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return l
}
