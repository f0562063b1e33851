package routes

import (
	"context"
	"strings"

	"github.com/goliatone/go-docsite/internal/identity"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// DocumentLoader reads and converts one source.
type DocumentLoader interface {
	Load(ctx context.Context, src markdown.Source) (*markdown.Document, error)
}

// Config controls how sources become routes.
type Config struct {
	IndexName string
	// Conflict is one of ConflictLast, ConflictFirst or ConflictError.
	Conflict string
}

// Registrar turns sources into routes on a table.
type Registrar struct {
	cfg      Config
	loader   DocumentLoader
	renderer interfaces.PageRenderer
	table    *Table
	logger   interfaces.Logger
}

// NewRegistrar returns a registrar adding to table. A nil table starts empty.
func NewRegistrar(loader DocumentLoader, renderer interfaces.PageRenderer, table *Table, cfg Config, logger interfaces.Logger) *Registrar {
	if table == nil {
		table = NewTable()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	if strings.TrimSpace(cfg.IndexName) == "" {
		cfg.IndexName = DefaultIndexName
	}
	if strings.TrimSpace(cfg.Conflict) == "" {
		cfg.Conflict = ConflictLast
	}
	return &Registrar{
		cfg:      cfg,
		loader:   loader,
		renderer: renderer,
		table:    table,
		logger:   logger,
	}
}

// Table returns the table routes are added to.
func (r *Registrar) Table() *Table {
	return r.table
}

// Register loads src, renders its page once and adds the route. Under the
// first policy a losing route is returned but not served.
func (r *Registrar) Register(ctx context.Context, src markdown.Source) (*Route, error) {
	path := JoinPath(src.BasePath, RouteName(src.Name, r.cfg.IndexName))
	logger := logging.WithSourceContext(r.logger, src.Path, path)

	doc, err := r.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	opts := interfaces.PageOptions{
		Title:         doc.FrontMatter.Title(),
		TitleTemplate: doc.FrontMatter.TitleTemplate(),
		Path:          path,
	}
	if description, ok := doc.FrontMatter.Get("description"); ok {
		opts.Meta = map[string]string{"description": description}
	}

	page, err := r.renderer.Render(ctx, doc.BodyHTML, opts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, renderError(err, src.Path)
	}

	sum := checksum(page)
	route := &Route{
		ID:          identity.RouteUUID(path),
		Path:        path,
		Source:      src,
		Title:       opts.Title,
		FrontMatter: doc.FrontMatter,
		Page:        page,
		Checksum:    sum,
		Handler:     newPageHandler(page, sum),
	}

	collision, err := r.table.add(route, r.cfg.Conflict)
	if err != nil {
		logger.Error("routes.conflict", "error", err)
		return nil, err
	}
	if collision != nil {
		logger.Warn("routes.collision", "kept", collision.Kept, "dropped", collision.Dropped)
	}
	logger.Debug("routes.register", "title", route.Title, "bytes", len(page))
	return route, nil
}

// RegisterAll registers sources one at a time in order, stopping at the
// first error.
func (r *Registrar) RegisterAll(ctx context.Context, sources []markdown.Source) error {
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.Register(ctx, src); err != nil {
			return err
		}
	}
	r.logger.Info("routes.registered", "routes", r.table.Len(), "collisions", len(r.table.collisions))
	return nil
}
