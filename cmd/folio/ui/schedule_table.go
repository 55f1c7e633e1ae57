package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"teachfolio/internal/schedule"
)

const cornerLabel = "Time / Day"

// RenderSchedule draws a laid-out timetable as a text grid. Each period
// is one column; a lesson covering several periods is drawn as one merged
// cell across them. A span running past the last period is cut at the
// edge of the grid.
func RenderSchedule(t schedule.Table, s Styles) string {
	n := len(t.Periods)
	if n == 0 {
		return s.Muted.Render("No periods defined")
	}

	widths := make([]int, n)
	for i, p := range t.Periods {
		widths[i] = max(MinPeriodWidth, lipgloss.Width(p.Time), lipgloss.Width(periodLabel(p.Label, p.IsBreak)))
	}
	dayWidth := lipgloss.Width(cornerLabel)
	for _, r := range t.Rows {
		dayWidth = max(dayWidth, lipgloss.Width(dayLabel(r)))
	}

	sep := s.Muted.Render("│")
	var lines []string

	// Header: time on the first line, period label (or "Break") below.
	top := []string{s.Bold.Render(pad(cornerLabel, dayWidth))}
	bottom := []string{pad("", dayWidth)}
	for i, p := range t.Periods {
		style := s.Bold
		if p.IsBreak {
			style = s.BreakCell
		}
		top = append(top, style.Render(pad(p.Time, widths[i])))
		bottom = append(bottom, style.Render(pad(periodLabel(p.Label, p.IsBreak), widths[i])))
	}
	lines = append(lines, strings.Join(top, sep), strings.Join(bottom, sep))

	total := dayWidth + n
	for _, w := range widths {
		total += w
	}
	divider := s.RenderDivider(total)
	lines = append(lines, divider)

	for _, r := range t.Rows {
		first := []string{s.Bold.Render(pad(dayLabel(r), dayWidth))}
		second := []string{pad("", dayWidth)}
		for _, c := range r.Cells {
			span := c.Span
			if remaining := n - c.Column; span > remaining {
				span = remaining
			}
			if span < 1 {
				continue
			}
			w := span - 1 // separators swallowed by the merge
			for _, cw := range widths[c.Column : c.Column+span] {
				w += cw
			}

			switch c.Kind {
			case schedule.KindLesson:
				first = append(first, s.Lesson.Render(pad(c.Code, w)))
				second = append(second, s.Body.Render(pad(c.Room, w)))
			case schedule.KindBreak:
				first = append(first, s.BreakCell.Render(pad("", w)))
				second = append(second, s.BreakCell.Render(pad("", w)))
			default:
				first = append(first, pad("", w))
				second = append(second, pad("", w))
			}
		}
		lines = append(lines, strings.Join(first, sep), strings.Join(second, sep), divider)
	}

	return strings.Join(lines, "\n")
}

func periodLabel(label string, isBreak bool) string {
	if isBreak {
		return "Break"
	}
	return label
}

func dayLabel(r schedule.Row) string {
	if r.Day.Label != "" {
		return r.Day.Label
	}
	return r.Day.Key
}

// pad fits plain text into exactly w cells, truncating with an ellipsis.
func pad(text string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(text) > w {
		runes := []rune(text)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
			runes = runes[:len(runes)-1]
		}
		text = string(runes) + "…"
	}
	return text + strings.Repeat(" ", max(0, w-lipgloss.Width(text)))
}
