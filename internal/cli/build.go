package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	docsite "github.com/goliatone/go-docsite"
)

func newBuildCmd(v *viper.Viper) *cobra.Command {
	var opts docsite.ExportOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write every route to disk as a static site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := getModule(cmd)
			if err != nil {
				return err
			}
			result, err := module.Export(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "wrote"
			if result.DryRun {
				verb = "would write"
			}
			for _, page := range result.Rendered {
				if page.Skipped {
					continue
				}
				fmt.Fprintf(out, "%s %s -> %s\n", verb, page.Route, page.Output)
			}
			fmt.Fprintf(out, "%d built, %d unchanged in %s\n", result.PagesBuilt, result.PagesSkipped, module.Config().Export.Dir)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.DryRun, "dry-run", false, "compute outputs without writing")
	flags.BoolVar(&opts.Force, "force", false, "rewrite unchanged pages")
	flags.String("out", "", "output directory (overrides export.dir)")
	flags.String("base-url", "", "absolute site URL used in sitemap.xml")
	flags.Bool("incremental", false, "skip pages unchanged since the last build")
	_ = v.BindPFlag("export.dir", flags.Lookup("out"))
	_ = v.BindPFlag("export.baseURL", flags.Lookup("base-url"))
	_ = v.BindPFlag("export.incremental", flags.Lookup("incremental"))
	return cmd
}
