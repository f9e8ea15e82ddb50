package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/bindgen/component"
	"github.com/wippyai/bindgen/config"
	"github.com/wippyai/bindgen/metadata"
)

var (
	// Global flags
	cfgFile     string
	namespace   string
	metadataDir string
)

var rootCmd = &cobra.Command{
	Use:   "bindgen",
	Short: "Build and inspect checksummed component interfaces",
	Long: `bindgen reads declaration metadata (one JSON or YAML file per item,
e.g. mod.bank.fn.open_account.json) and builds a component interface
with a checksum and a derived FFI symbol table.

Views:
  bindgen inspect    # Summary and FFI symbol table
  bindgen ffi        # FFI functions, optionally with wasm32 signatures
  bindgen wit        # WIT rendering of the interface
  bindgen checksum   # Checksum and FFI namespace

Interactive:
  bindgen browse     # Terminal browser
  bindgen watch      # Rebuild whenever metadata changes`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "bindgen.yaml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&namespace, "namespace", "n", "", "interface namespace (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&metadataDir, "metadata-dir", "m", "", "metadata directory (overrides config)")
}

// loadConfig reads the config file when present, applies flag overrides and
// installs the configured logger in the library packages.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if namespace != "" {
		cfg.Namespace = namespace
	}
	if metadataDir != "" {
		cfg.Metadata.Dir = metadataDir
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	component.SetLogger(logger)
	metadata.SetLogger(logger)
	applyColor(cfg.Output.Color)
	return cfg, logger, nil
}

func newLogger(c config.LoggingConfig) (*zap.Logger, error) {
	var zc zap.Config
	if c.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// project is one build of the metadata directory.
type project struct {
	items []metadata.Item
	iface *component.Interface
}

func loadProject(ctx context.Context, cfg *config.Config) (*project, error) {
	items, err := metadata.LoadDir(ctx, cfg.Metadata.Dir)
	if err != nil {
		return nil, err
	}
	iface, err := component.NewBuilder().
		WithNamespace(namespaceFor(cfg, items)).
		AddMetadata(items...).
		Build()
	if err != nil {
		return nil, err
	}
	return &project{items: items, iface: iface}, nil
}

// namespaceFor prefers the configured namespace and otherwise takes the
// module of the first item that names one.
func namespaceFor(cfg *config.Config, items []metadata.Item) string {
	if cfg.Namespace != "" {
		return cfg.Namespace
	}
	for _, it := range items {
		if it.Module != "" {
			return it.Module
		}
	}
	return ""
}

// runProject is the common shape of the one-shot view commands.
func runProject(cmd *cobra.Command, view func(*cobra.Command, *config.Config, *project) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := loadProject(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return view(cmd, cfg, p)
}
