package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
)

const configInvalidCode = "DOCSITE_CONFIG_INVALID"

var ErrContentDirRequired = errors.New("docsite config: content directory is required")
var ErrContentExtensionsRequired = errors.New("docsite config: at least one document extension is required")
var ErrContentExtensionInvalid = errors.New("docsite config: document extensions must start with a dot")
var ErrFrontMatterModeInvalid = errors.New("docsite config: front matter mode is invalid")
var ErrRouteConflictPolicyInvalid = errors.New("docsite config: route conflict policy is invalid")
var ErrServerAddressRequired = errors.New("docsite config: server address is required")
var ErrServerTimeoutInvalid = errors.New("docsite config: server timeouts cannot be negative")
var ErrExportDirRequired = errors.New("docsite config: export output directory is required")
var ErrExportBaseURLInvalid = errors.New("docsite config: export base URL is invalid")
var ErrLoggingLevelInvalid = errors.New("docsite config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("docsite config: logging format is invalid")

// Front matter parsing modes.
const (
	FrontMatterSimple = "simple"
	FrontMatterYAML   = "yaml"
)

// Route conflict policies.
const (
	ConflictLast  = "last"
	ConflictFirst = "first"
	ConflictError = "error"
)

// Config is the full runtime configuration of the site builder and server.
type Config struct {
	Content  ContentConfig  `mapstructure:"content"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	Routes   RoutesConfig   `mapstructure:"routes"`
	Render   RenderConfig   `mapstructure:"render"`
	Server   ServerConfig   `mapstructure:"server"`
	Export   ExportConfig   `mapstructure:"export"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ContentConfig describes where documents live and how they are recognised.
type ContentConfig struct {
	Dir         string   `mapstructure:"dir"`
	Extensions  []string `mapstructure:"extensions"`
	IndexName   string   `mapstructure:"indexName"`
	FrontMatter string   `mapstructure:"frontMatter"`
	// Slugify normalises directory and file names before they become URL
	// segments.
	Slugify bool `mapstructure:"slugify"`
}

// MarkdownConfig mirrors interfaces.ParseOptions plus output wrapping.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	HardWraps  bool     `mapstructure:"hardWraps"`
	SafeMode   bool     `mapstructure:"safeMode"`
	Sanitize   bool     `mapstructure:"sanitize"`
	WrapMain   bool     `mapstructure:"wrapMain"`
}

// RoutesConfig controls route table construction.
type RoutesConfig struct {
	Conflict string `mapstructure:"conflict"`
}

// RenderConfig configures the page layout.
type RenderConfig struct {
	SiteTitle string `mapstructure:"siteTitle"`
	Lang      string `mapstructure:"lang"`
	Layout    string `mapstructure:"layout"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	HealthPath      string        `mapstructure:"healthPath"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// ExportConfig configures writing the site to disk.
type ExportConfig struct {
	Dir         string `mapstructure:"dir"`
	BaseURL     string `mapstructure:"baseURL"`
	Sitemap     bool   `mapstructure:"sitemap"`
	Robots      bool   `mapstructure:"robots"`
	Incremental bool   `mapstructure:"incremental"`
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"addSource"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:         "docs",
			Extensions:  []string{".md"},
			IndexName:   "index",
			FrontMatter: FrontMatterSimple,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm", "linkify", "tasklist"},
			WrapMain:   true,
		},
		Routes: RoutesConfig{
			Conflict: ConflictLast,
		},
		Render: RenderConfig{
			Lang: "en",
		},
		Server: ServerConfig{
			Address:         ":3000",
			HealthPath:      "/healthz",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Export: ExportConfig{
			Dir:     "dist",
			Sitemap: true,
			Robots:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs consistency checks. The returned error carries the
// go-errors validation category and wraps one of the sentinel errors above.
func (cfg Config) Validate() error {
	if err := cfg.validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration").
			WithTextCode(configInvalidCode)
	}
	return nil
}

func (cfg Config) validate() error {
	content := cfg.Content
	if err := validation.Validate(strings.TrimSpace(content.Dir), validation.Required); err != nil {
		return ErrContentDirRequired
	}
	if err := validation.Validate(content.Extensions, validation.Required); err != nil {
		return ErrContentExtensionsRequired
	}
	for _, ext := range content.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q", ErrContentExtensionInvalid, ext)
		}
	}
	if err := validation.Validate(normalize(content.FrontMatter),
		validation.In(FrontMatterSimple, FrontMatterYAML)); err != nil {
		return fmt.Errorf("%w: %s", ErrFrontMatterModeInvalid, content.FrontMatter)
	}
	if err := validation.Validate(normalize(cfg.Routes.Conflict),
		validation.In(ConflictLast, ConflictFirst, ConflictError)); err != nil {
		return fmt.Errorf("%w: %s", ErrRouteConflictPolicyInvalid, cfg.Routes.Conflict)
	}

	server := cfg.Server
	if err := validation.Validate(strings.TrimSpace(server.Address), validation.Required); err != nil {
		return ErrServerAddressRequired
	}
	if err := validation.ValidateStruct(&server,
		validation.Field(&server.ReadTimeout, validation.Min(time.Duration(0))),
		validation.Field(&server.WriteTimeout, validation.Min(time.Duration(0))),
		validation.Field(&server.ShutdownTimeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrServerTimeoutInvalid, err)
	}

	if err := validation.Validate(strings.TrimSpace(cfg.Export.Dir), validation.Required); err != nil {
		return ErrExportDirRequired
	}
	if err := validation.Validate(strings.TrimSpace(cfg.Export.BaseURL), is.URL); err != nil {
		return fmt.Errorf("%w: %s", ErrExportBaseURLInvalid, cfg.Export.BaseURL)
	}

	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// ConflictPolicy returns the normalised route conflict policy.
func (cfg Config) ConflictPolicy() string {
	if policy := normalize(cfg.Routes.Conflict); policy != "" {
		return policy
	}
	return ConflictLast
}

// FrontMatterMode returns the normalised front matter mode.
func (cfg Config) FrontMatterMode() string {
	if mode := normalize(cfg.Content.FrontMatter); mode != "" {
		return mode
	}
	return FrontMatterSimple
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
