package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

// plainLogger does not implement FieldsLogger.
type plainLogger struct{}

func (p *plainLogger) Trace(string, ...any)                          {}
func (p *plainLogger) Debug(string, ...any)                          {}
func (p *plainLogger) Info(string, ...any)                           {}
func (p *plainLogger) Warn(string, ...any)                           {}
func (p *plainLogger) Error(string, ...any)                          {}
func (p *plainLogger) Fatal(string, ...any)                          {}
func (p *plainLogger) WithContext(context.Context) interfaces.Logger { return p }

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "docsite.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, routesModule)

	if len(provider.requested) != 1 || provider.requested[0] != routesModule {
		t.Fatalf("expected module %s, got %v", routesModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0][fieldModule]; got != routesModule {
		t.Fatalf("expected module field %s, got %v", routesModule, got)
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "  ")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0][fieldModule] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0][fieldModule])
	}
}

func TestModuleLoggerProviderReturningNil(t *testing.T) {
	provider := &stubProvider{}
	logger := ModuleLogger(provider, walkerModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger when provider returns nil, got %T", logger)
	}
}

func TestNamedModuleLoggers(t *testing.T) {
	cases := []struct {
		name   string
		get    func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{"root", RootLogger, rootModule},
		{"walker", WalkerLogger, walkerModule},
		{"routes", RoutesLogger, routesModule},
		{"server", ServerLogger, serverModule},
		{"generator", GeneratorLogger, generatorModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.get(provider)
			if len(provider.requested) != 1 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s request, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithSourceContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	WithSourceContext(rec, " guide/setup.md ", "/guide/setup")
	WithSourceContext(rec, "", "")

	if len(rec.fields) != 1 {
		t.Fatalf("expected a single WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldSourcePath] != "guide/setup.md" {
		t.Fatalf("unexpected source path: %v", rec.fields[0][fieldSourcePath])
	}
	if rec.fields[0][fieldRoutePath] != "/guide/setup" {
		t.Fatalf("unexpected route path: %v", rec.fields[0][fieldRoutePath])
	}
}

func TestWithFieldsCopiesInputAndIgnoresPlainLoggers(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"k": "v"}
	WithFields(rec, fields)
	fields["k"] = "changed"
	if rec.fields[0]["k"] != "v" {
		t.Fatalf("expected fields to be copied, got %v", rec.fields[0]["k"])
	}

	plain := &plainLogger{}
	if got := WithFields(plain, map[string]any{"k": "v"}); got != interfaces.Logger(plain) {
		t.Fatalf("expected plain logger to be returned unchanged")
	}
}
