package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type routeView struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Source   string `json:"source"`
	Title    string `json:"title,omitempty"`
	Checksum string `json:"checksum"`
	Bytes    int    `json:"bytes"`
}

type collisionView struct {
	Path    string `json:"path"`
	Kept    string `json:"kept"`
	Dropped string `json:"dropped"`
}

type routesView struct {
	Routes     []routeView     `json:"routes"`
	Collisions []collisionView `json:"collisions"`
}

func newRoutesCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes built from the content directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := getModule(cmd)
			if err != nil {
				return err
			}
			table, err := module.Build(cmd.Context())
			if err != nil {
				return err
			}

			view := routesView{
				Routes:     make([]routeView, 0, table.Len()),
				Collisions: []collisionView{},
			}
			for _, route := range table.Routes() {
				view.Routes = append(view.Routes, routeView{
					ID:       route.ID.String(),
					Path:     route.Path,
					Source:   route.Source.Path,
					Title:    route.Title,
					Checksum: route.Checksum,
					Bytes:    len(route.Page),
				})
			}
			for _, c := range table.Collisions() {
				view.Collisions = append(view.Collisions, collisionView(c))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tSOURCE\tTITLE")
			for _, r := range view.Routes {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, r.Source, r.Title)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			for _, c := range view.Collisions {
				fmt.Fprintf(out, "collision %s: kept %s, dropped %s\n", c.Path, c.Kept, c.Dropped)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print routes as JSON")
	cmd.Flags().String("conflict", "", "route conflict policy (last|first|error)")
	_ = v.BindPFlag("routes.conflict", cmd.Flags().Lookup("conflict"))
	return cmd
}
