package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var pageOnly bool

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Render one document, given relative to the content directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := getModule(cmd)
			if err != nil {
				return err
			}
			route, err := module.Preview(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if pageOnly {
				_, err := out.Write(route.Page)
				return err
			}

			fmt.Fprintf(out, "Source: %s\nRoute: %s\nTitle: %s\nChecksum: %s\n\n", route.Source.Path, route.Path, route.Title, route.Checksum)
			if route.FrontMatter.Len() > 0 {
				frontmatter, err := json.MarshalIndent(route.FrontMatter.Map(), "", "  ")
				if err == nil {
					fmt.Fprintf(out, "Frontmatter:\n%s\n\n", frontmatter)
				}
			}
			fmt.Fprintf(out, "Rendered HTML:\n%s\n", route.Page)
			return nil
		},
	}
	cmd.Flags().BoolVar(&pageOnly, "page", false, "print only the rendered page")
	return cmd
}
