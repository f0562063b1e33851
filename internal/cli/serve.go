package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the route table and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := getModule(cmd)
			if err != nil {
				return err
			}
			return module.Serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides server.address)")
	_ = v.BindPFlag("server.address", cmd.Flags().Lookup("addr"))
	return cmd
}
