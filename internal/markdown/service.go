package markdown

import (
	"context"
	"crypto/sha256"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Config controls discovery, front matter parsing and conversion.
type Config struct {
	Extensions      []string
	Slugify         bool
	FrontMatterMode string
	Parser          interfaces.ParseOptions
	// WrapMain wraps converted HTML in a <main> element.
	WrapMain bool
}

// Document is a loaded source: its front matter, Markdown body and HTML.
type Document struct {
	Source      Source
	FrontMatter FrontMatter
	Body        []byte
	BodyHTML    []byte
	Skipped     []SkippedLine
	// Checksum is the SHA-256 of the file as read from disk.
	Checksum []byte
	// ParseErr carries the yaml decoding failure when the simple parser was
	// used as a fallback.
	ParseErr error
}

// Service reads documents from a filesystem and converts them.
type Service struct {
	cfg    Config
	fs     fs.FS
	walker *Walker
	parser interfaces.MarkdownParser
	logger interfaces.Logger
}

// NewService builds a service over filesystem. A nil parser is replaced by a
// GoldmarkParser using cfg.Parser.
func NewService(filesystem fs.FS, cfg Config, parser interfaces.MarkdownParser, logger interfaces.Logger) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		cfg: cfg,
		fs:  filesystem,
		walker: NewWalker(filesystem, WalkerConfig{
			Extensions: cfg.Extensions,
			Slugify:    cfg.Slugify,
			Logger:     logger,
		}),
		parser: parser,
		logger: logger,
	}
}

// NewDirService builds a service rooted at dir on the local disk. It fails
// when dir does not exist or is not a directory.
func NewDirService(dir string, cfg Config, parser interfaces.MarkdownParser, logger interfaces.Logger) (*Service, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, wrapRootError(err, dir)
	}
	if !info.IsDir() {
		return nil, wrapRootError(&fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}, dir)
	}
	return NewService(os.DirFS(dir), cfg, parser, logger), nil
}

// Discover lists every document in the content root.
func (s *Service) Discover(ctx context.Context) ([]Source, WalkStats, error) {
	return s.walker.Walk(ctx, ".")
}

// Load reads src, splits its front matter and converts the body to HTML.
func (s *Service) Load(ctx context.Context, src Source) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fs, src.Path)
	if err != nil {
		return nil, wrapReadError(err, src.Path)
	}

	extraction := ParseFrontMatter(data, s.cfg.FrontMatterMode)
	if extraction.ParseErr != nil {
		s.logger.Warn("markdown.frontmatter.fallback", "path", src.Path, "error", extraction.ParseErr)
	}
	for _, skipped := range extraction.Skipped {
		s.logger.Debug("markdown.frontmatter.skipped", "path", src.Path, "line", skipped.Line, "text", skipped.Text)
	}

	body := []byte(extraction.Content)
	html, err := s.Render(ctx, body)
	if err != nil {
		return nil, wrapRenderError(err, src.Path)
	}

	sum := sha256.Sum256(data)
	return &Document{
		Source:      src,
		FrontMatter: extraction.FrontMatter,
		Body:        body,
		BodyHTML:    html,
		Skipped:     extraction.Skipped,
		Checksum:    sum[:],
		ParseErr:    extraction.ParseErr,
	}, nil
}

// LoadPath loads a single document by its path inside the content root,
// deriving the same base path the walker would.
func (s *Service) LoadPath(ctx context.Context, p string) (*Document, error) {
	return s.Load(ctx, s.SourceFor(p))
}

// SourceFor builds the Source the walker would produce for p.
func (s *Service) SourceFor(p string) Source {
	p = cleanRoot(p)
	dir, file := path.Split(p)

	base := ""
	for _, segment := range strings.Split(strings.Trim(dir, "/"), "/") {
		if segment != "" {
			base += "/" + s.walker.segment(segment)
		}
	}
	return Source{
		Path:     p,
		BasePath: base,
		Name:     s.walker.segment(strings.TrimSuffix(file, path.Ext(file))),
	}
}

// Render converts markdown to HTML with the configured options.
func (s *Service) Render(ctx context.Context, markdown []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	html, err := s.parser.ParseWithOptions(markdown, s.cfg.Parser)
	if err != nil {
		return nil, err
	}
	if !s.cfg.WrapMain {
		return html, nil
	}
	wrapped := make([]byte, 0, len(html)+13)
	wrapped = append(wrapped, "<main>"...)
	wrapped = append(wrapped, html...)
	wrapped = append(wrapped, "</main>"...)
	return wrapped, nil
}
