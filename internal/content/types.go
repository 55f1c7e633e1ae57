// Package content defines the portfolio data model (activities, semesters,
// schedules, lesson plans) and loads it from YAML.
//
// All content is read-only for the lifetime of a process. Lists default to
// empty and optional scalars to "", so renderers never need shape checks.
package content

import (
	"math"

	"gopkg.in/yaml.v3"
)

// Portfolio is the complete content bundle rendered by the viewer and the exporter.
type Portfolio struct {
	Profile         Profile    `yaml:"profile"`
	DefaultSemester string     `yaml:"default_semester"`
	Activities      []Activity `yaml:"activities"`
	Semesters       []Semester `yaml:"semesters"`
}

// Profile holds the header and footer text.
type Profile struct {
	SiteTitle   string   `yaml:"site_title"`
	Subtitle    string   `yaml:"subtitle"`
	Name        string   `yaml:"name"`
	Role        string   `yaml:"role"`
	Program     string   `yaml:"program"`
	Institution string   `yaml:"institution"`
	Contact     []string `yaml:"contact"`
	FooterTitle string   `yaml:"footer_title"`
}

// Activity is one card on the activities list.
type Activity struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Location    string   `yaml:"location"`
	Description string   `yaml:"description"`
	Images      []string `yaml:"images"`
	Highlights  []string `yaml:"highlights"`
}

// Semester bundles the schedule and lesson plans shown for one term.
type Semester struct {
	Key                string       `yaml:"key"`
	Label              string       `yaml:"label"`
	TeachingProjectURL string       `yaml:"teaching_project_url"`
	Schedule           Schedule     `yaml:"schedule"`
	LessonPlans        []LessonPlan `yaml:"lesson_plans"`
}

// Schedule is a class timetable: metadata, a subjects list and a
// days x periods grid.
type Schedule struct {
	Meta     Meta      `yaml:"meta"`
	Subjects []Subject `yaml:"subjects"`
	Periods  []Period  `yaml:"periods"`
	Days     []Day     `yaml:"days"`

	// Grid maps day key -> period key -> cell. A nil cell is an empty slot.
	Grid map[string]map[string]*Cell `yaml:"grid"`
}

// CellsFor returns the period -> cell mapping for a day, or nil.
func (s *Schedule) CellsFor(dayKey string) map[string]*Cell {
	if s == nil || s.Grid == nil {
		return nil
	}
	return s.Grid[dayKey]
}

// Meta is the schedule header block.
type Meta struct {
	School    string `yaml:"school"`
	Term      string `yaml:"term"`
	Teacher   string `yaml:"teacher"`
	GroupCode string `yaml:"group_code"`
	GroupName string `yaml:"group_name"`
}

// Subject is one row of the subjects table. Hours is the
// theory/practice/credits triple, e.g. "2-2-3".
type Subject struct {
	Code  string `yaml:"code"`
	Name  string `yaml:"name"`
	Hours string `yaml:"tpn"`
}

// Period is one column of the schedule grid.
type Period struct {
	Key     string `yaml:"key"`
	Label   string `yaml:"label"`
	Time    string `yaml:"time"`
	IsBreak bool   `yaml:"is_break"`
}

// Day is one row of the schedule grid.
type Day struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Cell is a lesson placed in the grid. It occupies Span consecutive periods
// starting at its own period.
type Cell struct {
	Code string `yaml:"code"`
	Room string `yaml:"room"`
	Span Span   `yaml:"span"`
}

// LessonPlan is a downloadable lesson plan document.
type LessonPlan struct {
	ID          string `yaml:"id"`
	Subject     string `yaml:"subject"`
	Topic       string `yaml:"topic"`
	DownloadURL string `yaml:"download_url"`
}

// Span is the raw span value of a cell as written in the content file.
// Content may carry a number, a non-numeric string, or nothing at all;
// the layout decides what an unusable value means.
type Span struct {
	set     bool
	numeric bool
	value   float64
	raw     string
}

// SpanOf returns a numeric span.
func SpanOf(v float64) Span {
	return Span{set: true, numeric: true, value: v}
}

// RawSpan returns a non-numeric span, as produced by a value like "two".
func RawSpan(raw string) Span {
	return Span{set: true, raw: raw}
}

// IsSet reports whether the content file gave a span at all.
func (s Span) IsSet() bool { return s.set }

// Number returns the numeric value and whether the span is numeric.
func (s Span) Number() (float64, bool) {
	if !s.numeric {
		return 0, false
	}
	return s.value, true
}

// IsFinite reports whether the span is a finite number.
func (s Span) IsFinite() bool {
	return s.numeric && !math.IsNaN(s.value) && !math.IsInf(s.value, 0)
}

// String returns the span as written.
func (s Span) String() string {
	if !s.set {
		return ""
	}
	if !s.numeric {
		return s.raw
	}
	out, _ := yaml.Marshal(s.value)
	return string(trimNewline(out))
}

// UnmarshalYAML accepts ints, floats (including .inf and .nan), strings and null.
func (s *Span) UnmarshalYAML(node *yaml.Node) error {
	*s = Span{}
	if node.Kind != yaml.ScalarNode {
		s.set = true
		s.raw = node.Tag
		return nil
	}
	switch node.ShortTag() {
	case "!!null":
		return nil
	case "!!int", "!!float":
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = SpanOf(v)
	default:
		*s = RawSpan(node.Value)
	}
	return nil
}

// MarshalYAML writes the span back in its original shape.
func (s Span) MarshalYAML() (interface{}, error) {
	if !s.set {
		return nil, nil
	}
	if !s.numeric {
		return s.raw, nil
	}
	return s.value, nil
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
