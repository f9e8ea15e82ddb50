package main

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/bindgen/config"
	"github.com/wippyai/bindgen/ffi"
)

var (
	ffiUserOnly bool
	ffiWasm     bool
)

var ffiCmd = &cobra.Command{
	Use:   "ffi",
	Short: "List the FFI functions of the interface",
	Long: `List every FFI function in declaration order: object frees,
constructors and methods, callback initializers, functions, then the
buffer built-ins.

With --wasm each entry also shows its wasm32 core signature.

Examples:
  bindgen ffi
  bindgen ffi --user-only --wasm`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProject(cmd, func(cmd *cobra.Command, cfg *config.Config, p *project) error {
			seq := p.iface.IterFFIFunctionDefinitions()
			if ffiUserOnly {
				seq = p.iface.IterUserFFIFunctionDefinitions()
			}
			return writeFFI(cmd.OutOrStdout(), cfg.Output.Format, seq, ffiWasm || cfg.Output.Wasm)
		})
	},
}

func init() {
	rootCmd.AddCommand(ffiCmd)

	ffiCmd.Flags().BoolVar(&ffiUserOnly, "user-only", false, "omit the buffer built-ins")
	ffiCmd.Flags().BoolVar(&ffiWasm, "wasm", false, "show wasm32 core signatures")
}

type symbol struct {
	Name      string   `yaml:"name"`
	Arguments []string `yaml:"arguments,omitempty"`
	Returns   string   `yaml:"returns,omitempty"`
	Wasm      string   `yaml:"wasm,omitempty"`
}

func newSymbol(f ffi.Function, wasm bool) symbol {
	s := symbol{Name: f.Name}
	for _, a := range f.Arguments {
		s.Arguments = append(s.Arguments, a.Name+": "+a.Type.String())
	}
	if f.ReturnType != nil {
		s.Returns = f.ReturnType.String()
	}
	if wasm {
		s.Wasm = ffi.FormatCoreSignature(ffi.CoreSignature(f))
	}
	return s
}

func writeFFI(w io.Writer, format string, funcs iter.Seq[ffi.Function], wasm bool) error {
	var syms []symbol
	for f := range funcs {
		syms = append(syms, newSymbol(f, wasm))
	}
	if format == "yaml" {
		return writeYAML(w, syms)
	}

	var b strings.Builder
	for _, s := range syms {
		b.WriteString(nameStyle.Render(s.Name))
		b.WriteString("(")
		b.WriteString(strings.Join(s.Arguments, ", "))
		b.WriteString(")")
		if s.Returns != "" {
			b.WriteString(" -> ")
			b.WriteString(typeStyle.Render(s.Returns))
		}
		if s.Wasm != "" {
			fmt.Fprintf(&b, "\n    %s", helpStyle.Render("wasm "+s.Wasm))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
