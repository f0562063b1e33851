package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	docsite "github.com/goliatone/go-docsite"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
)

type ctxKey string

const moduleKey ctxKey = "module"

// Execute builds the root command and runs it with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the docsite command tree. opts are passed to every
// module the commands build.
func NewRootCmd(opts ...docsite.Option) *cobra.Command {
	v := viper.New()
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "docsite",
		Short:         "Serve a directory of Markdown documents as HTML pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			// Machine readable output keeps stdout free of info logs.
			if jsonFlag := cmd.Flags().Lookup("json"); jsonFlag != nil && jsonFlag.Changed && !cmd.Flags().Changed("log-level") {
				v.Set("logging.level", "error")
			}
			cfg, err := runtimeconfig.Load(v)
			if err != nil {
				return err
			}
			module, err := docsite.New(cfg, opts...)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, moduleKey, module))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	flags.String("content-dir", "", "directory holding the Markdown documents")
	flags.String("log-level", "", "log level (trace|debug|info|warn|error|fatal)")
	flags.String("log-format", "", "log format (console|json|pretty)")
	_ = v.BindPFlag("content.dir", flags.Lookup("content-dir"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", flags.Lookup("log-format"))

	cmd.AddCommand(newServeCmd(v))
	cmd.AddCommand(newRoutesCmd(v))
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newBuildCmd(v))

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getModule(cmd *cobra.Command) (*docsite.Module, error) {
	if ctx := cmd.Context(); ctx != nil {
		if module, ok := ctx.Value(moduleKey).(*docsite.Module); ok {
			return module, nil
		}
	}
	return nil, errors.New("internal error: module not initialized")
}
