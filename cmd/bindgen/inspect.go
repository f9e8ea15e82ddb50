package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/bindgen/config"
	"github.com/wippyai/bindgen/metadata"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize the interface and list its FFI symbols",
	Long: `Build the interface from the metadata directory and print a summary
of its declarations followed by the FFI symbol table.

Examples:
  bindgen inspect
  bindgen inspect -m ./meta -n bank`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProject(cmd, func(cmd *cobra.Command, cfg *config.Config, p *project) error {
			return writeInspect(cmd.OutOrStdout(), cfg.Output.Format, p)
		})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

type summary struct {
	Namespace          string         `yaml:"namespace"`
	Checksum           string         `yaml:"checksum"`
	FFINamespace       string         `yaml:"ffi_namespace"`
	Records            []string       `yaml:"records,omitempty"`
	Enums              []string       `yaml:"enums,omitempty"`
	Errors             []string       `yaml:"errors,omitempty"`
	Objects            []string       `yaml:"objects,omitempty"`
	CallbackInterfaces []string       `yaml:"callback_interfaces,omitempty"`
	Functions          []string       `yaml:"functions,omitempty"`
	Items              map[string]int `yaml:"metadata_items"`
	Symbols            []string       `yaml:"symbols"`
}

func summarize(p *project) summary {
	c := p.iface
	s := summary{
		Namespace:    c.Namespace(),
		Checksum:     checksumHex(c.Checksum()),
		FFINamespace: c.FFINamespace(),
		Items:        make(map[string]int),
	}
	for _, r := range c.RecordDefinitions() {
		s.Records = append(s.Records, r.Name())
	}
	for _, e := range c.EnumDefinitions() {
		s.Enums = append(s.Enums, e.Name())
	}
	for _, e := range c.ErrorDefinitions() {
		s.Errors = append(s.Errors, e.Name())
	}
	for _, o := range c.ObjectDefinitions() {
		s.Objects = append(s.Objects, o.Name())
	}
	for _, cb := range c.CallbackInterfaceDefinitions() {
		s.CallbackInterfaces = append(s.CallbackInterfaces, cb.Name())
	}
	for _, f := range c.FunctionDefinitions() {
		s.Functions = append(s.Functions, f.Name())
	}
	for kind, items := range metadata.ByKind(p.items) {
		s.Items[string(kind)] = len(items)
	}
	for f := range c.IterFFIFunctionDefinitions() {
		s.Symbols = append(s.Symbols, f.String())
	}
	return s
}

func writeInspect(w io.Writer, format string, p *project) error {
	s := summarize(p)
	if format == "yaml" {
		return writeYAML(w, s)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Interface " + s.Namespace))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %-20s %s\n", "checksum", s.Checksum)
	fmt.Fprintf(&b, "  %-20s %s\n", "ffi namespace", s.FFINamespace)
	fmt.Fprintf(&b, "  %-20s %d\n", "metadata items", len(p.items))
	b.WriteString("\n")

	for _, group := range []struct {
		label string
		names []string
	}{
		{"records", s.Records},
		{"enums", s.Enums},
		{"errors", s.Errors},
		{"objects", s.Objects},
		{"callback interfaces", s.CallbackInterfaces},
		{"functions", s.Functions},
	} {
		names := make([]string, len(group.names))
		for i, n := range group.names {
			names[i] = nameStyle.Render(n)
		}
		fmt.Fprintf(&b, "  %-20s %d  %s\n", group.label, len(group.names), strings.Join(names, ", "))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("FFI symbols"))
	b.WriteString("\n")
	for _, sym := range s.Symbols {
		b.WriteString("  ")
		b.WriteString(sym)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
