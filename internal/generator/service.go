package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-docsite/internal/identity"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/routes"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

const exportFailedCode = "DOCSITE_EXPORT_FAILED"

// Config controls a static export.
type Config struct {
	OutputDir       string
	BaseURL         string
	GenerateSitemap bool
	GenerateRobots  bool
	// Incremental skips pages whose checksum matches the previous manifest.
	Incremental bool
}

// BuildOptions tune a single build.
type BuildOptions struct {
	// DryRun computes outputs without writing anything.
	DryRun bool
	// Force rewrites every page even when Incremental is set.
	Force bool
}

// RenderedPage describes one exported route.
type RenderedPage struct {
	RouteID  uuid.UUID
	Route    string
	Source   string
	Output   string
	Checksum string
	Skipped  bool
}

// BuildResult summarises a build.
type BuildResult struct {
	PagesBuilt   int
	PagesSkipped int
	Rendered     []RenderedPage
	DryRun       bool
	Duration     time.Duration
	Errors       []error
}

// Service writes a route table to disk as a static site.
type Service struct {
	cfg    Config
	logger interfaces.Logger
	now    func() time.Time
}

// NewService returns an export service.
func NewService(cfg Config, logger interfaces.Logger) *Service {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = "dist"
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{cfg: cfg, logger: logger, now: time.Now}
}

// Build writes every route in table as <route>/index.html below the output
// directory, followed by sitemap.xml, robots.txt and the build manifest.
func (s *Service) Build(ctx context.Context, table *routes.Table, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	generatedAt := s.now().UTC()
	writer := newArtifactWriter(s.cfg.OutputDir, opts.DryRun)
	result := &BuildResult{DryRun: opts.DryRun}

	previous, err := s.loadManifest(ctx, writer)
	if err != nil {
		s.logger.Warn("generator.manifest.invalid", "error", err)
		previous = nil
	}
	manifest := newBuildManifest()
	manifest.GeneratedAt = generatedAt

	if err := writer.EnsureDir(ctx, "."); err != nil {
		return nil, exportError(err, s.cfg.OutputDir)
	}

	dirs := map[string]struct{}{}
	for _, route := range table.Routes() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		output := buildOutputPath(route.Path)
		page := RenderedPage{
			RouteID:  route.ID,
			Route:    route.Path,
			Source:   route.Source.Path,
			Output:   output,
			Checksum: route.Checksum,
		}
		entry := manifestPage{
			RouteID:    route.ID.String(),
			Route:      route.Path,
			Source:     route.Source.Path,
			SourceID:   identity.SourceUUID(route.Source.Path).String(),
			Output:     output,
			Checksum:   route.Checksum,
			RenderedAt: generatedAt,
		}

		if s.cfg.Incremental && !opts.Force && previous.unchanged(route.Path, route.Checksum) && writer.Exists(output) {
			page.Skipped = true
			entry.RenderedAt = previous.Pages[route.Path].RenderedAt
			manifest.Pages[route.Path] = entry
			result.PagesSkipped++
			result.Rendered = append(result.Rendered, page)
			s.logger.Debug("generator.page.skipped", "route", route.Path, "output", output)
			continue
		}

		if err := ensureDir(ctx, writer, dirs, path.Dir(output)); err != nil {
			result.Errors = append(result.Errors, exportError(err, output))
			continue
		}
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:     output,
			Content:  route.Page,
			Category: categoryPage,
			Checksum: route.Checksum,
		}); err != nil {
			result.Errors = append(result.Errors, exportError(err, output))
			continue
		}
		manifest.Pages[route.Path] = entry
		result.PagesBuilt++
		result.Rendered = append(result.Rendered, page)
		s.logger.Debug("generator.page.written", "route", route.Path, "output", output)
	}

	if s.cfg.GenerateSitemap {
		sitemap := buildSitemap(s.cfg.BaseURL, result.Rendered, generatedAt)
		if err := writer.WriteFile(ctx, writeFileRequest{Path: "sitemap.xml", Content: []byte(sitemap), Category: categorySitemap}); err != nil {
			result.Errors = append(result.Errors, exportError(err, "sitemap.xml"))
		}
	}
	if s.cfg.GenerateRobots {
		robots := buildRobots(s.cfg.BaseURL, s.cfg.GenerateSitemap)
		if err := writer.WriteFile(ctx, writeFileRequest{Path: "robots.txt", Content: []byte(robots), Category: categoryRobots}); err != nil {
			result.Errors = append(result.Errors, exportError(err, "robots.txt"))
		}
	}

	if len(result.Errors) == 0 {
		if err := s.persistManifest(ctx, writer, manifest); err != nil {
			result.Errors = append(result.Errors, exportError(err, manifestFileName))
		}
	}

	result.Duration = time.Since(start)
	s.logger.Info("generator.build.complete",
		"built", result.PagesBuilt,
		"skipped", result.PagesSkipped,
		"dry_run", result.DryRun,
		"duration", result.Duration.String(),
	)
	if len(result.Errors) > 0 {
		return result, errors.Join(result.Errors...)
	}
	return result, nil
}

func (s *Service) loadManifest(ctx context.Context, writer artifactWriter) (*buildManifest, error) {
	if !s.cfg.Incremental {
		return nil, nil
	}
	data, err := writer.ReadFile(ctx, manifestFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return parseManifest(data)
}

func (s *Service) persistManifest(ctx context.Context, writer artifactWriter, manifest *buildManifest) error {
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	return writer.WriteFile(ctx, writeFileRequest{
		Path:     manifestFileName,
		Content:  data,
		Category: categoryManifest,
	})
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if _, ok := cache[dir]; ok {
		return nil
	}
	if err := writer.EnsureDir(ctx, dir); err != nil {
		return err
	}
	cache[dir] = struct{}{}
	return nil
}

func exportError(err error, target string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("export %s", target)).
		WithTextCode(exportFailedCode)
}
