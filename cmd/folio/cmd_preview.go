package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teachfolio/internal/logging"
	"teachfolio/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve the exported site locally",
	Long: `Serves the export directory over HTTP until interrupted. Run
"folio export" first. /health and /metrics are served next to the site.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	c := currentConfig()
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = c.Preview.Addr
	}
	base, _ := cmd.Flags().GetString("base")
	if base == "" {
		base = c.Assets.BaseURL
	}

	log := logging.For(currentLogger(), logging.CategoryPreview)
	srv, err := preview.NewServer(c.Export.OutDir, base, log)
	if err != nil {
		return fmt.Errorf("%w (run folio export first)", err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("serving preview",
		zap.String("addr", addr),
		zap.String("base", srv.BasePath()),
		zap.String("dir", c.Export.OutDir),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at http://%s%s\n", c.Export.OutDir, addr, srv.BasePath())
	return srv.ListenAndServe(ctx, addr, c.GetShutdownTimeout())
}
