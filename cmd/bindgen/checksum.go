package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/bindgen/component"
	"github.com/wippyai/bindgen/config"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum",
	Short: "Print the interface checksum and FFI namespace",
	Long: `Print the 64-bit interface checksum followed by the FFI namespace
derived from its low 16 bits. Scripts can compare the checksum across
builds to detect interface changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProject(cmd, func(cmd *cobra.Command, cfg *config.Config, p *project) error {
			return writeChecksum(cmd.OutOrStdout(), cfg.Output.Format, p.iface)
		})
	},
}

func init() {
	rootCmd.AddCommand(checksumCmd)
}

func writeChecksum(w io.Writer, format string, iface *component.Interface) error {
	if format == "yaml" {
		return writeYAML(w, map[string]string{
			"checksum":      checksumHex(iface.Checksum()),
			"ffi_namespace": iface.FFINamespace(),
			"generator":     component.GeneratorVersion,
		})
	}
	_, err := fmt.Fprintf(w, "%s  %s\n", checksumHex(iface.Checksum()), iface.FFINamespace())
	return err
}
