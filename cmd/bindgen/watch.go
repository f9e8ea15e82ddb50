package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bindgen/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the interface whenever metadata or config changes",
	Long: `Build once, then watch the metadata directory and the config file.
Every change triggers a rebuild; the new checksum is printed when it
succeeds and the error when it fails. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := ""
	if _, err := os.Stat(cfgFile); err == nil {
		path = cfgFile
	}
	w, err := config.NewWatcher(path, cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	rebuild(ctx, out, cfg, logger)
	w.OnChange(func(reloaded *config.Config) {
		// Flag overrides survive config reloads.
		c := *reloaded
		if namespace != "" {
			c.Namespace = namespace
		}
		if metadataDir != "" {
			c.Metadata.Dir = metadataDir
		}
		rebuild(ctx, out, &c, logger)
	})
	return w.Run(ctx)
}

func rebuild(ctx context.Context, out io.Writer, cfg *config.Config, logger *zap.Logger) {
	p, err := loadProject(ctx, cfg)
	if err != nil {
		logger.Warn("rebuild failed", zap.Error(err))
		fmt.Fprintln(out, errorStyle.Render("error: "+err.Error()))
		return
	}
	logger.Info("rebuilt interface",
		zap.String("ffi_namespace", p.iface.FFINamespace()),
		zap.Int("items", len(p.items)))
	_ = writeChecksum(out, "text", p.iface)
}
