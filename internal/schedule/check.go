package schedule

import (
	"fmt"

	"teachfolio/internal/content"
)

// IssueKind classifies a layout issue.
type IssueKind string

const (
	// IssueOverflow: a span runs past the last period.
	IssueOverflow IssueKind = "overflow"
	// IssueOverlap: a cell sits in a period covered by an earlier span and is never shown.
	IssueOverlap IssueKind = "overlap"
	// IssueBreakCell: a cell sits on a break period and is never shown.
	IssueBreakCell IssueKind = "break_cell"
	// IssueIgnoredSpan: a span value was given but is treated as 1.
	IssueIgnoredSpan IssueKind = "ignored_span"
)

// Issue is a problem in the grid data that the layout tolerates silently.
type Issue struct {
	Kind      IssueKind
	DayKey    string
	PeriodKey string
	Detail    string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s/%s: %s: %s", i.DayKey, i.PeriodKey, i.Kind, i.Detail)
}

// Check reports grid data the layout would hide or render out of bounds.
// Layout never depends on Check; it is a diagnostic for content authors.
func Check(s *content.Schedule) []Issue {
	if s == nil {
		return nil
	}
	var issues []Issue
	for _, d := range s.Days {
		cells := s.CellsFor(d.Key)
		shown := make(map[string]bool)

		for _, c := range LayoutRow(s.Periods, cells) {
			if c.Kind != KindLesson {
				continue
			}
			shown[c.PeriodKey] = true
			for col := c.Column + 1; col < c.Column+c.Span; col++ {
				if col >= len(s.Periods) {
					issues = append(issues, Issue{
						Kind:      IssueOverflow,
						DayKey:    d.Key,
						PeriodKey: c.PeriodKey,
						Detail:    fmt.Sprintf("span %d needs %d more period(s) than the schedule has", c.Span, c.Column+c.Span-len(s.Periods)),
					})
					break
				}
				covered := s.Periods[col].Key
				if cells[covered] != nil {
					issues = append(issues, Issue{
						Kind:      IssueOverlap,
						DayKey:    d.Key,
						PeriodKey: covered,
						Detail:    fmt.Sprintf("hidden by span of %s starting at %s", cells[c.PeriodKey].Code, c.PeriodKey),
					})
				}
			}
		}

		for _, p := range s.Periods {
			cell := cells[p.Key]
			if cell == nil {
				continue
			}
			if p.IsBreak {
				issues = append(issues, Issue{
					Kind:      IssueBreakCell,
					DayKey:    d.Key,
					PeriodKey: p.Key,
					Detail:    fmt.Sprintf("%s is placed on a break period", cell.Code),
				})
				continue
			}
			if shown[p.Key] && cell.Span.IsSet() && EffectiveSpan(cell.Span) == 1 {
				if v, ok := cell.Span.Number(); ok && v == 1 {
					continue
				}
				issues = append(issues, Issue{
					Kind:      IssueIgnoredSpan,
					DayKey:    d.Key,
					PeriodKey: p.Key,
					Detail:    fmt.Sprintf("span %q is treated as 1", cell.Span.String()),
				})
			}
		}
	}
	return issues
}
