package docsite

import (
	"context"
	"net/http"

	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/internal/routes"
)

// Table exports the route table built from the content directory.
type Table = routes.Table

// Route exports a single registered document.
type Route = routes.Route

// Collision exports a record of two documents sharing a route path.
type Collision = routes.Collision

// Source exports a discovered document.
type Source = markdown.Source

// ExportOptions exports the static export options.
type ExportOptions = generator.BuildOptions

// ExportResult exports the static export summary.
type ExportResult = generator.BuildResult

// Module is the top level façade: it builds the route table and serves or
// exports it.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg. The configuration is validated first.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.container.Config
}

// Build walks the content directory and registers one route per document.
// Documents are processed one at a time in walk order; the returned table is
// never modified afterwards.
func (m *Module) Build(ctx context.Context) (*Table, error) {
	logger := m.container.Logger()

	svc, err := m.container.MarkdownService()
	if err != nil {
		logger.Error("docsite.build.failed", "error", err)
		return nil, err
	}

	sources, stats, err := svc.Discover(ctx)
	if err != nil {
		logger.Error("docsite.build.failed", "error", err)
		return nil, err
	}
	logger.Debug("docsite.discover", "documents", len(sources), "dirs", stats.Dirs, "skipped", len(stats.Skipped))

	registrar := m.container.NewRegistrar(svc)
	if err := registrar.RegisterAll(ctx, sources); err != nil {
		logger.Error("docsite.build.failed", "error", err)
		return nil, err
	}

	table := registrar.Table()
	logger.Info("docsite.build.complete", "routes", table.Len(), "collisions", len(table.Collisions()))
	return table, nil
}

// Handler returns the HTTP handler for table.
func (m *Module) Handler(table *Table) http.Handler {
	return m.container.Handler(table)
}

// Serve builds the table and serves it until ctx is cancelled.
func (m *Module) Serve(ctx context.Context) error {
	table, err := m.Build(ctx)
	if err != nil {
		return err
	}
	return m.container.Server(m.Handler(table)).Run(ctx)
}

// Export builds the table and writes it to export.dir.
func (m *Module) Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	table, err := m.Build(ctx)
	if err != nil {
		return nil, err
	}
	return m.container.Generator().Build(ctx, table, opts)
}

// Preview renders the single document at path, relative to the content
// directory, exactly as Build would.
func (m *Module) Preview(ctx context.Context, path string) (*Route, error) {
	svc, err := m.container.MarkdownService()
	if err != nil {
		return nil, err
	}
	return m.container.NewRegistrar(svc).Register(ctx, svc.SourceFor(path))
}
