package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

const (
	rootModule      = "docsite"
	walkerModule    = "docsite.walker"
	routesModule    = "docsite.routes"
	serverModule    = "docsite.server"
	generatorModule = "docsite.generator"
)

const (
	fieldSourcePath = "source_path"
	fieldRoutePath  = "route_path"
	fieldModule     = "module"
)

// ModuleLogger returns a logger scoped to module. A nil provider, or one that
// returns nil, yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if strings.TrimSpace(module) == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		fieldModule: module,
	})
}

// RootLogger returns the top level docsite logger.
func RootLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

// WalkerLogger returns the logger used during content discovery.
func WalkerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, walkerModule)
}

// RoutesLogger returns the logger used while registering routes.
func RoutesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, routesModule)
}

// ServerLogger returns the logger used by the HTTP layer.
func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

// GeneratorLogger returns the logger used by static exports.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// WithSourceContext tags logger with the document source path and the route
// path it maps to. Empty values are left out.
func WithSourceContext(logger interfaces.Logger, sourcePath, routePath string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(sourcePath); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if routePath != "" {
		fields[fieldRoutePath] = routePath
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
