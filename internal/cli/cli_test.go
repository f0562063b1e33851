package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docsite "github.com/goliatone/go-docsite"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/routes"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

type quietProvider struct{}

func (quietProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

// writeContent creates a docs tree in an isolated working directory and
// returns its path.
func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	root := filepath.Join(dir, "docs")
	for name, body := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
	return root
}

func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(docsite.WithLoggerProvider(quietProvider{}))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestRoutesCommand_Text(t *testing.T) {
	writeContent(t, map[string]string{
		"index.md":       "---\ntitle: Home\n---\n# Home",
		"guide/setup.md": "# Setup",
		"a/index.md":     "A dir",
		"a.md":           "A file",
	})

	out, err := run(t, context.Background(), "routes")
	require.NoError(t, err)

	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "/guide/setup")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "collision /a: kept a.md, dropped a/index.md")
}

func TestRoutesCommand_JSON(t *testing.T) {
	root := writeContent(t, map[string]string{
		"index.md":       "# Home",
		"guide/index.md": "---\ntitle: Guide\n---\n",
	})

	out, err := run(t, context.Background(), "routes", "--json", "--content-dir", root)
	require.NoError(t, err)

	var view routesView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Routes, 2)
	assert.Equal(t, "/guide", view.Routes[0].Path)
	assert.Equal(t, "Guide", view.Routes[0].Title)
	assert.Equal(t, "/", view.Routes[1].Path)
	assert.NotEmpty(t, view.Routes[1].ID)
	assert.Len(t, view.Routes[1].Checksum, 64)
	assert.Empty(t, view.Collisions)
}

func TestRoutesCommand_ConflictFlag(t *testing.T) {
	writeContent(t, map[string]string{
		"a/index.md": "A dir",
		"a.md":       "A file",
	})

	_, err := run(t, context.Background(), "routes", "--conflict", "error")
	require.ErrorIs(t, err, routes.ErrRouteConflict)
}

func TestRoutesCommand_MissingContentDir(t *testing.T) {
	writeContent(t, nil)

	_, err := run(t, context.Background(), "routes", "--content-dir", "missing")
	require.Error(t, err)
}

func TestRoutesCommand_InvalidLogLevel(t *testing.T) {
	writeContent(t, map[string]string{"index.md": "# Home"})

	_, err := run(t, context.Background(), "routes", "--log-level", "loud")
	require.ErrorIs(t, err, runtimeconfig.ErrLoggingLevelInvalid)
}

func TestRoutesCommand_ConfigFile(t *testing.T) {
	root := writeContent(t, map[string]string{"README.md": "# Readme"})
	cfgPath := filepath.Join(filepath.Dir(root), "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("content:\n  dir: docs\n  indexName: README\n"), 0o644))

	out, err := run(t, context.Background(), "--config", cfgPath, "routes", "--json")
	require.NoError(t, err)

	var view routesView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Routes, 1)
	assert.Equal(t, "/", view.Routes[0].Path)
}

func TestPreviewCommand(t *testing.T) {
	writeContent(t, map[string]string{
		"guide/setup.md": "---\ntitle: Setup Guide\nlang: en\n---\nInstall steps.",
	})

	out, err := run(t, context.Background(), "preview", "guide/setup.md")
	require.NoError(t, err)

	assert.Contains(t, out, "Route: /guide/setup")
	assert.Contains(t, out, "Title: Setup Guide")
	assert.Contains(t, out, `"lang": "en"`)
	assert.Contains(t, out, "<p>Install steps.</p>")

	page, err := run(t, context.Background(), "preview", "--page", "guide/setup.md")
	require.NoError(t, err)
	assert.Contains(t, page, "<title>Setup Guide</title>")
	assert.NotContains(t, page, "Route:")
}

func TestPreviewCommand_RequiresFile(t *testing.T) {
	writeContent(t, nil)

	_, err := run(t, context.Background(), "preview")
	require.Error(t, err)
}

func TestBuildCommand(t *testing.T) {
	root := writeContent(t, map[string]string{
		"index.md":       "# Home",
		"guide/setup.md": "# Setup",
	})
	outDir := filepath.Join(filepath.Dir(root), "public")

	out, err := run(t, context.Background(), "build", "--out", outDir, "--base-url", "https://example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote /guide/setup -> guide/setup/index.html")
	assert.Contains(t, out, "2 built, 0 unchanged")

	sitemap, err := os.ReadFile(filepath.Join(outDir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "https://example.com/guide/setup")
}

func TestBuildCommand_DryRun(t *testing.T) {
	root := writeContent(t, map[string]string{"index.md": "# Home"})
	outDir := filepath.Join(filepath.Dir(root), "public")

	out, err := run(t, context.Background(), "build", "--dry-run", "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "would write / -> index.html")

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestServeCommand_StopsOnCancel(t *testing.T) {
	writeContent(t, map[string]string{"index.md": "# Home"})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_, err := run(t, ctx, "serve", "--addr", "127.0.0.1:0")
	require.NoError(t, err)
}

func TestRootCommand_ShowsHelp(t *testing.T) {
	writeContent(t, nil)

	out, err := run(t, context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "routes")
}
