package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/bindgen/config"
)

var witCmd = &cobra.Command{
	Use:   "wit",
	Short: "Render the interface as WIT",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProject(cmd, func(cmd *cobra.Command, _ *config.Config, p *project) error {
			out, err := p.iface.WIT()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(witCmd)
}
