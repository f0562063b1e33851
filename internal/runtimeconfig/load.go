package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. DOCSITE_CONTENT_DIR.
const EnvPrefix = "docsite"

// ApplyDefaults seeds v with DefaultConfig so every key is known to viper,
// which AutomaticEnv needs before Unmarshal can see environment overrides.
func ApplyDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("content.dir", def.Content.Dir)
	v.SetDefault("content.extensions", def.Content.Extensions)
	v.SetDefault("content.indexName", def.Content.IndexName)
	v.SetDefault("content.frontMatter", def.Content.FrontMatter)
	v.SetDefault("content.slugify", def.Content.Slugify)

	v.SetDefault("markdown.extensions", def.Markdown.Extensions)
	v.SetDefault("markdown.hardWraps", def.Markdown.HardWraps)
	v.SetDefault("markdown.safeMode", def.Markdown.SafeMode)
	v.SetDefault("markdown.sanitize", def.Markdown.Sanitize)
	v.SetDefault("markdown.wrapMain", def.Markdown.WrapMain)

	v.SetDefault("routes.conflict", def.Routes.Conflict)

	v.SetDefault("render.siteTitle", def.Render.SiteTitle)
	v.SetDefault("render.lang", def.Render.Lang)
	v.SetDefault("render.layout", def.Render.Layout)

	v.SetDefault("server.address", def.Server.Address)
	v.SetDefault("server.healthPath", def.Server.HealthPath)
	v.SetDefault("server.readTimeout", def.Server.ReadTimeout)
	v.SetDefault("server.writeTimeout", def.Server.WriteTimeout)
	v.SetDefault("server.shutdownTimeout", def.Server.ShutdownTimeout)

	v.SetDefault("export.dir", def.Export.Dir)
	v.SetDefault("export.baseURL", def.Export.BaseURL)
	v.SetDefault("export.sitemap", def.Export.Sitemap)
	v.SetDefault("export.robots", def.Export.Robots)
	v.SetDefault("export.incremental", def.Export.Incremental)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.addSource", def.Logging.AddSource)
	focus := def.Logging.Focus
	if focus == nil {
		focus = []string{}
	}
	v.SetDefault("logging.focus", focus)
}

// Load resolves configuration with precedence defaults < file < env < flags
// bound on v. A config file set through v.SetConfigFile must exist; when none
// is set, docsite.{yaml,toml,json} in the working directory is optional.
func Load(v *viper.Viper) (Config, error) {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("docsite")
		v.AddConfigPath(".")
	}

	ApplyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
