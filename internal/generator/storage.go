package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryManifest writeCategory = "manifest"
)

// writeFileRequest describes one file written by a build.
type writeFileRequest struct {
	Path     string
	Content  []byte
	Category writeCategory
	Checksum string
}

// artifactWriter abstracts where build outputs land.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Exists(path string) bool
}

func newArtifactWriter(root string, dryRun bool) artifactWriter {
	if dryRun {
		return noopWriter{}
	}
	return &diskWriter{root: root}
}

// diskWriter writes below root. Paths are slash separated and relative.
type diskWriter struct {
	root string
}

func (w *diskWriter) resolve(path string) string {
	return filepath.Join(w.root, filepath.FromSlash(path))
}

func (w *diskWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" || path == "." {
		return os.MkdirAll(w.root, 0o755)
	}
	return os.MkdirAll(w.resolve(path), 0o755)
}

func (w *diskWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	return os.WriteFile(w.resolve(req.Path), req.Content, 0o644)
}

func (w *diskWriter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(w.resolve(path))
}

func (w *diskWriter) Exists(path string) bool {
	info, err := os.Stat(w.resolve(path))
	return err == nil && !info.IsDir()
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, writeFileRequest) error { return nil }

func (noopWriter) ReadFile(context.Context, string) ([]byte, error) { return nil, os.ErrNotExist }

func (noopWriter) Exists(string) bool { return false }
