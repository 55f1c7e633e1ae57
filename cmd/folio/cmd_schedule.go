package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"teachfolio/cmd/folio/ui"
	"teachfolio/internal/schedule"
	"teachfolio/internal/semester"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print a semester's timetable",
	Args:  cobra.NoArgs,
	RunE:  runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	p, err := loadContent()
	if err != nil {
		return err
	}
	catalog, err := semester.NewCatalog(p.Semesters)
	if err != nil {
		return err
	}

	key, _ := cmd.Flags().GetString("semester")
	if key == "" {
		key = currentConfig().UI.DefaultSemester
	}
	if key == "" {
		key = p.DefaultKey()
	}
	sem, ok := catalog.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s (have %v)", semester.ErrUnknownSemester, key, catalog.Keys())
	}

	styles := ui.NewStyles(ui.ThemeFor(currentConfig().UI.Theme))
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, orKey(sem.Label, sem.Key))
	fmt.Fprintln(out, ui.RenderSchedule(schedule.Layout(&sem.Schedule), styles))
	return nil
}

func orKey(label, key string) string {
	if label == "" {
		return key
	}
	return label
}
