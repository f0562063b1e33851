package di

import (
	"io/fs"
	"net/http"
	"sync"

	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/logging/gologger"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/internal/render"
	"github.com/goliatone/go-docsite/internal/routes"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/internal/server"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Container wires module dependencies from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	contentFS      fs.FS
	parser         interfaces.MarkdownParser
	renderer       interfaces.PageRenderer

	markdownOnce sync.Once
	markdownSvc  *markdown.Service
	markdownErr  error
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the go-logger backed provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithContentFS reads documents from fsys instead of content.dir.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.contentFS = fsys
		}
	}
}

// WithParser overrides the goldmark converter.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithRenderer overrides the html/template layout renderer.
func WithRenderer(renderer interfaces.PageRenderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// NewContainer validates cfg and builds the default collaborators for
// anything not supplied through opts.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(c.parseOptions())
	}
	if c.renderer == nil {
		renderer, err := render.New(render.Config{
			SiteTitle: cfg.Render.SiteTitle,
			Lang:      cfg.Render.Lang,
			Layout:    cfg.Render.Layout,
		})
		if err != nil {
			return nil, err
		}
		c.renderer = renderer
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) parseOptions() interfaces.ParseOptions {
	md := c.Config.Markdown
	return interfaces.ParseOptions{
		Extensions: md.Extensions,
		HardWraps:  md.HardWraps,
		SafeMode:   md.SafeMode,
		Sanitize:   md.Sanitize,
	}
}

// LoggerProvider returns the configured provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the root module logger.
func (c *Container) Logger() interfaces.Logger {
	return logging.RootLogger(c.loggerProvider)
}

// Parser returns the hypertext converter.
func (c *Container) Parser() interfaces.MarkdownParser {
	return c.parser
}

// Renderer returns the page renderer.
func (c *Container) Renderer() interfaces.PageRenderer {
	return c.renderer
}

// MarkdownService returns the document service, opening content.dir on
// first use unless a filesystem was supplied.
func (c *Container) MarkdownService() (*markdown.Service, error) {
	c.markdownOnce.Do(func() {
		cfg := markdown.Config{
			Extensions:      c.Config.Content.Extensions,
			Slugify:         c.Config.Content.Slugify,
			FrontMatterMode: c.Config.FrontMatterMode(),
			Parser:          c.parseOptions(),
			WrapMain:        c.Config.Markdown.WrapMain,
		}
		logger := logging.WalkerLogger(c.loggerProvider)
		if c.contentFS != nil {
			c.markdownSvc = markdown.NewService(c.contentFS, cfg, c.parser, logger)
			return
		}
		c.markdownSvc, c.markdownErr = markdown.NewDirService(c.Config.Content.Dir, cfg, c.parser, logger)
	})
	return c.markdownSvc, c.markdownErr
}

// NewRegistrar returns a registrar filling a fresh table.
func (c *Container) NewRegistrar(loader routes.DocumentLoader) *routes.Registrar {
	return routes.NewRegistrar(loader, c.renderer, routes.NewTable(), routes.Config{
		IndexName: c.Config.Content.IndexName,
		Conflict:  c.Config.ConflictPolicy(),
	}, logging.RoutesLogger(c.loggerProvider))
}

// Handler returns the HTTP handler serving table.
func (c *Container) Handler(table *routes.Table) http.Handler {
	return server.NewHandler(table, c.Config.Server.HealthPath, logging.ServerLogger(c.loggerProvider))
}

// Server returns a server running handler with the configured timeouts.
func (c *Container) Server(handler http.Handler) *server.Server {
	cfg := c.Config.Server
	return server.New(server.Config{
		Address:         cfg.Address,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, handler, logging.ServerLogger(c.loggerProvider))
}

// Generator returns the static export service.
func (c *Container) Generator() *generator.Service {
	cfg := c.Config.Export
	return generator.NewService(generator.Config{
		OutputDir:       cfg.Dir,
		BaseURL:         cfg.BaseURL,
		GenerateSitemap: cfg.Sitemap,
		GenerateRobots:  cfg.Robots,
		Incremental:     cfg.Incremental,
	}, logging.GeneratorLogger(c.loggerProvider))
}
