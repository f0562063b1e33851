package markdown

import (
	"context"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Source is a document discovered on disk.
type Source struct {
	// Path is the slash separated path of the file inside the content root.
	Path string
	// BasePath is the URL prefix of the file's directory: "" for the root,
	// "/guide" for a file under guide/.
	BasePath string
	// Name is the file name without its extension.
	Name string
}

// WalkStats counts what a walk saw besides the returned sources.
type WalkStats struct {
	Dirs    int
	Skipped []string
}

// WalkerConfig configures document discovery.
type WalkerConfig struct {
	// Extensions lists recognised document extensions including the dot.
	// Matching is case sensitive. Defaults to [".md"].
	Extensions []string
	// Slugify normalises directory and file names with go-slug before they
	// become URL segments.
	Slugify bool
	Logger  interfaces.Logger
}

// Walker enumerates documents in a filesystem.
type Walker struct {
	fs         fs.FS
	extensions []string
	slugify    bool
	logger     interfaces.Logger
}

// NewWalker returns a walker over filesystem.
func NewWalker(filesystem fs.FS, cfg WalkerConfig) *Walker {
	exts := slices.Clone(cfg.Extensions)
	if len(exts) == 0 {
		exts = []string{".md"}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Walker{
		fs:         filesystem,
		extensions: exts,
		slugify:    cfg.Slugify,
		logger:     logger,
	}
}

// Walk lists every document below root, depth first in directory order. A
// missing or unreadable directory aborts the walk.
func (w *Walker) Walk(ctx context.Context, root string) ([]Source, WalkStats, error) {
	root = cleanRoot(root)

	var (
		sources []Source
		stats   WalkStats
	)
	if err := w.walkDir(ctx, root, "", &sources, &stats); err != nil {
		return nil, stats, err
	}
	return sources, stats, nil
}

func (w *Walker) walkDir(ctx context.Context, dir, basePath string, sources *[]Source, stats *WalkStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.logger.Debug("walker.dir.read", "dir", dir, "base_path", basePath)
	entries, err := fs.ReadDir(w.fs, dir)
	if err != nil {
		if stats.Dirs == 0 {
			return wrapRootError(err, dir)
		}
		return wrapReadError(err, dir)
	}
	stats.Dirs++

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		full := path.Join(dir, name)

		switch {
		case entry.IsDir():
			child := basePath + "/" + w.segment(name)
			if err := w.walkDir(ctx, full, child, sources, stats); err != nil {
				return err
			}
		case entry.Type().IsRegular() && w.recognised(name):
			ext := path.Ext(name)
			src := Source{
				Path:     full,
				BasePath: basePath,
				Name:     w.segment(strings.TrimSuffix(name, ext)),
			}
			w.logger.Debug("walker.file.found", "path", src.Path, "base_path", src.BasePath)
			*sources = append(*sources, src)
		default:
			stats.Skipped = append(stats.Skipped, full)
		}
	}
	return nil
}

func (w *Walker) recognised(name string) bool {
	return slices.Contains(w.extensions, path.Ext(name))
}

func (w *Walker) segment(name string) string {
	if !w.slugify {
		return name
	}
	normalized, err := slug.Normalize(name)
	if err != nil || normalized == "" {
		w.logger.Warn("walker.slug.failed", "name", name, "error", err)
		return name
	}
	return normalized
}

func cleanRoot(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		return "."
	}
	return path.Clean(strings.TrimPrefix(root, "/"))
}
