// Package schedule lays out a timetable as rows of cells over a shared
// period header, merging multi-period lessons into one wide cell.
package schedule

import (
	"math"

	"teachfolio/internal/content"
)

// Kind is the kind of a laid-out cell.
type Kind int

const (
	// KindBreak is a muted cell under a break period.
	KindBreak Kind = iota
	// KindEmpty is a teaching period without a lesson.
	KindEmpty
	// KindLesson shows a subject code and room and may span several periods.
	KindLesson
)

func (k Kind) String() string {
	switch k {
	case KindBreak:
		return "break"
	case KindEmpty:
		return "empty"
	default:
		return "lesson"
	}
}

// Cell is one emitted table cell.
type Cell struct {
	Kind      Kind
	PeriodKey string // period the cell starts at
	Column    int    // index of that period
	Span      int    // number of period columns covered, >= 1
	Code      string
	Room      string
}

// Row is the laid-out cells of one day.
type Row struct {
	Day   content.Day
	Cells []Cell
}

// Width sums the spans of the row's cells. For well-formed schedules this
// equals the number of periods.
func (r Row) Width() int {
	w := 0
	for _, c := range r.Cells {
		w += c.Span
	}
	return w
}

// Table is a laid-out schedule.
type Table struct {
	Periods []content.Period
	Rows    []Row
}

// EffectiveSpan returns floor(span) for finite numeric spans above 1 and 1
// for everything else.
func EffectiveSpan(span content.Span) int {
	v, ok := span.Number()
	if !ok || !span.IsFinite() || v <= 1 {
		return 1
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(v))
}

// Layout lays out every day of s. Rows are independent of each other.
func Layout(s *content.Schedule) Table {
	if s == nil {
		return Table{}
	}
	t := Table{
		Periods: s.Periods,
		Rows:    make([]Row, 0, len(s.Days)),
	}
	for _, d := range s.Days {
		t.Rows = append(t.Rows, Row{Day: d, Cells: LayoutRow(s.Periods, s.CellsFor(d.Key))})
	}
	return t
}

// LayoutRow scans periods left to right. Breaks and empty periods emit one
// single-column cell. A lesson emits one cell covering its effective span
// and the cursor skips the periods it covers, so those contribute no cell.
//
// A span running past the last period is emitted as written; keeping spans
// in bounds is up to the content (see Check).
func LayoutRow(periods []content.Period, cells map[string]*content.Cell) []Cell {
	out := make([]Cell, 0, len(periods))
	for i := 0; i < len(periods); {
		p := periods[i]

		if p.IsBreak {
			out = append(out, Cell{Kind: KindBreak, PeriodKey: p.Key, Column: i, Span: 1})
			i++
			continue
		}

		cell := cells[p.Key]
		if cell == nil {
			out = append(out, Cell{Kind: KindEmpty, PeriodKey: p.Key, Column: i, Span: 1})
			i++
			continue
		}

		span := EffectiveSpan(cell.Span)
		out = append(out, Cell{
			Kind:      KindLesson,
			PeriodKey: p.Key,
			Column:    i,
			Span:      span,
			Code:      cell.Code,
			Room:      cell.Room,
		})
		i += span
	}
	return out
}
