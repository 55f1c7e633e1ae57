package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teachfolio/internal/assets"
	"teachfolio/internal/export"
	"teachfolio/internal/logging"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the portfolio as static HTML pages",
	Long: `Renders one HTML page per semester into the output directory.
The default semester is also written as index.html.

Example:
  folio export --out public`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	c := currentConfig()
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = c.Export.OutDir
	}

	p, err := loadContent()
	if err != nil {
		return err
	}

	log := logging.For(currentLogger(), logging.CategoryExport)
	exp, err := export.New(assets.NewResolver(c.Assets.BaseURL), log, export.Options{
		SiteTitle: c.Export.SiteTitle,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := exp.Export(ctx, p, outDir)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	log.Debug("export finished", zap.Int("files", len(files)))
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(outDir, f))
	}
	return nil
}
