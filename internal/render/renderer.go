package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

const layoutLoadFailedCode = "DOCSITE_RENDER_FAILED"

const defaultLayout = `<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- range $name, $value := .Meta}}
<meta name="{{$name}}" content="{{$value}}">
{{- end}}
</head>
<body>
{{.Content}}
</body>
</html>
`

// LayoutData is the value a layout template executes against.
type LayoutData struct {
	Lang      string
	Title     string
	SiteTitle string
	Path      string
	Meta      map[string]string
	Content   template.HTML
}

// Config configures the layout renderer.
type Config struct {
	SiteTitle string
	Lang      string
	// Layout is an optional html/template file replacing the built-in layout.
	Layout string
}

// Renderer wraps converted content in an HTML layout.
type Renderer struct {
	cfg    Config
	layout *template.Template
}

var _ interfaces.PageRenderer = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplate replaces the layout with an already parsed template.
func WithTemplate(tpl *template.Template) Option {
	return func(r *Renderer) {
		if tpl != nil {
			r.layout = tpl
		}
	}
}

// New parses the configured layout. A layout file that cannot be read or
// parsed is an error.
func New(cfg Config, opts ...Option) (*Renderer, error) {
	if strings.TrimSpace(cfg.Lang) == "" {
		cfg.Lang = "en"
	}

	r := &Renderer{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.layout != nil {
		return r, nil
	}

	source := defaultLayout
	name := "layout"
	if layoutPath := strings.TrimSpace(cfg.Layout); layoutPath != "" {
		data, err := os.ReadFile(layoutPath)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("read layout %s", layoutPath)).
				WithTextCode(layoutLoadFailedCode)
		}
		source = string(data)
		name = filepath.Base(layoutPath)
	}

	tpl, err := template.New(name).Parse(source)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "parse layout").
			WithTextCode(layoutLoadFailedCode)
	}
	r.layout = tpl
	return r, nil
}

// Render executes the layout around content.
func (r *Renderer) Render(ctx context.Context, content []byte, opts interfaces.PageOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := LayoutData{
		Lang:      r.cfg.Lang,
		Title:     ResolveTitle(opts.Title, opts.TitleTemplate, r.cfg.SiteTitle),
		SiteTitle: r.cfg.SiteTitle,
		Path:      opts.Path,
		Meta:      opts.Meta,
		Content:   template.HTML(content),
	}

	var buf bytes.Buffer
	if err := r.layout.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render layout: %w", err)
	}
	return buf.Bytes(), nil
}

// ResolveTitle computes the document title. An empty title falls back to
// siteTitle. A titleTemplate containing ":title" has it replaced; any other
// non-empty template is appended as a suffix.
func ResolveTitle(title, titleTemplate, siteTitle string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSpace(siteTitle)
	}

	titleTemplate = strings.TrimSpace(titleTemplate)
	switch {
	case titleTemplate == "":
		return title
	case strings.Contains(titleTemplate, ":title"):
		return strings.ReplaceAll(titleTemplate, ":title", title)
	case title == "":
		return titleTemplate
	default:
		return title + " | " + titleTemplate
	}
}
