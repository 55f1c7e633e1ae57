package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teachfolio/internal/content"
	"teachfolio/internal/logging"
	"teachfolio/internal/schedule"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the content file for errors",
	Long: `Loads the content file and reports every schema problem. Timetable
cells that would be hidden or overflow the grid are listed as warnings;
they do not fail validation.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	log := logging.For(currentLogger(), logging.CategoryContent)

	p, err := loadContent()
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			for _, prob := range verr.Problems {
				fmt.Fprintf(out, "error: %s\n", prob)
			}
			return fmt.Errorf("%d content problem(s)", len(verr.Problems))
		}
		return err
	}

	warnings := 0
	for i := range p.Semesters {
		s := &p.Semesters[i]
		for _, issue := range schedule.Check(&s.Schedule) {
			fmt.Fprintf(out, "warning: semester %s: %s\n", s.Key, issue)
			warnings++
		}
	}

	log.Debug("content validated",
		zap.Int("activities", len(p.Activities)),
		zap.Int("semesters", len(p.Semesters)),
		zap.Int("warnings", warnings),
	)
	fmt.Fprintf(out, "ok: %d activities, %d semesters, %d warning(s)\n",
		len(p.Activities), len(p.Semesters), warnings)
	return nil
}
