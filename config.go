package docsite

import (
	"io/fs"

	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Config aliases the runtime configuration.
type Config = runtimeconfig.Config

// ContentConfig, RoutesConfig and the other sections alias their runtime
// counterparts.
type (
	ContentConfig  = runtimeconfig.ContentConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	RoutesConfig   = runtimeconfig.RoutesConfig
	RenderConfig   = runtimeconfig.RenderConfig
	ServerConfig   = runtimeconfig.ServerConfig
	ExportConfig   = runtimeconfig.ExportConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// Route conflict policies.
const (
	ConflictLast  = runtimeconfig.ConflictLast
	ConflictFirst = runtimeconfig.ConflictFirst
	ConflictError = runtimeconfig.ConflictError
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// Option customises a Module.
type Option = di.Option

// WithLoggerProvider replaces the go-logger backed provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithContentFS reads documents from fsys instead of content.dir.
func WithContentFS(fsys fs.FS) Option {
	return di.WithContentFS(fsys)
}

// WithParser replaces the Markdown converter.
func WithParser(parser interfaces.MarkdownParser) Option {
	return di.WithParser(parser)
}

// WithRenderer replaces the page layout renderer.
func WithRenderer(renderer interfaces.PageRenderer) Option {
	return di.WithRenderer(renderer)
}
