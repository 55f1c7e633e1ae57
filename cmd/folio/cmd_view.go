package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teachfolio/cmd/folio/ui"
	"teachfolio/internal/assets"
	"teachfolio/internal/logging"
	"teachfolio/internal/watch"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive portfolio viewer",
	Long: `Opens the full-screen viewer.

Keys:
  ↑/↓ (k/j)        move between activity cards
  ←/→ (h/l)        previous/next image on the focused card
  enter            show more/less of the focused card
  tab / shift+tab  next/previous semester, 1-9 picks one
  ?                full help, q quits

With --watch the viewer reloads whenever the content file changes.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

// viewerOptions builds the viewer options from config and flags.
func viewerOptions(cmd *cobra.Command) ui.Options {
	c := currentConfig()
	semester, _ := cmd.Flags().GetString("semester")
	if semester == "" {
		semester = c.UI.DefaultSemester
	}
	styles := ui.NewStyles(ui.ThemeFor(c.UI.Theme))
	return ui.Options{
		Resolver:  assets.NewResolver(c.Assets.BaseURL),
		Semester:  semester,
		Styles:    &styles,
		Logger:    logging.For(currentLogger(), logging.CategoryUI),
		WrapWidth: c.UI.WrapWidth,
		Reload:    loadContent,
	}
}

func runView(cmd *cobra.Command, args []string) error {
	p, err := loadContent()
	if err != nil {
		return err
	}
	opts := viewerOptions(cmd)

	watchFlag, _ := cmd.Flags().GetBool("watch")
	c := currentConfig()
	if watchFlag || c.Content.Watch {
		if c.Content.Path == "" {
			return fmt.Errorf("--watch needs content.path; the embedded sample never changes")
		}
		w, err := watch.New(c.Content.Path, c.GetWatchDebounce(), logging.For(currentLogger(), logging.CategoryWatch))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(commandContext(cmd))
		defer cancel()
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
		opts.Changes = w.Events()
	}

	model, err := ui.New(p, opts)
	if err != nil {
		return err
	}

	currentLogger().Info("starting viewer", zap.String("semester", model.SemesterKey()))
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
