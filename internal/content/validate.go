package content

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrNoSemesters is returned for content without any semester.
var ErrNoSemesters = errors.New("content defines no semesters")

// Problem is one schema violation, located by a dotted path.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// ValidationError collects every problem found in a document.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid content: " + e.Problems[0].String()
	}
	lines := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		lines = append(lines, "  "+p.String())
	}
	return fmt.Sprintf("invalid content (%d problems):\n%s", len(e.Problems), strings.Join(lines, "\n"))
}

// Validate checks keys and cross references once, so rendering can trust
// the shape of the data. Span overlaps are not checked here; see
// schedule.Check.
func (p *Portfolio) Validate() error {
	if len(p.Semesters) == 0 {
		return ErrNoSemesters
	}

	v := &validator{}

	activityIDs := make(map[string]int)
	for i, a := range p.Activities {
		path := fmt.Sprintf("activities[%d]", i)
		v.unique(activityIDs, a.ID, i, path+".id", "activity id")
		if strings.TrimSpace(a.Title) == "" {
			v.add(path+".title", "title is required")
		}
	}

	semesterKeys := make(map[string]int)
	for i, s := range p.Semesters {
		path := fmt.Sprintf("semesters[%d]", i)
		if s.Key == "" {
			v.add(path+".key", "key is required")
		} else {
			v.unique(semesterKeys, s.Key, i, path+".key", "semester key")
		}
		v.schedule(path+".schedule", &s.Schedule)

		planIDs := make(map[string]int)
		for j, lp := range s.LessonPlans {
			v.unique(planIDs, lp.ID, j, fmt.Sprintf("%s.lesson_plans[%d].id", path, j), "lesson plan id")
		}
	}

	if p.DefaultSemester != "" {
		if _, ok := semesterKeys[p.DefaultSemester]; !ok {
			v.add("default_semester", fmt.Sprintf("unknown semester %q", p.DefaultSemester))
		}
	}

	return v.err()
}

type validator struct {
	problems []Problem
}

func (v *validator) add(path, msg string) {
	v.problems = append(v.problems, Problem{Path: path, Message: msg})
}

func (v *validator) unique(seen map[string]int, key string, idx int, path, what string) {
	if prev, dup := seen[key]; dup {
		v.add(path, fmt.Sprintf("duplicate %s %q (first at index %d)", what, key, prev))
		return
	}
	seen[key] = idx
}

func (v *validator) schedule(path string, s *Schedule) {
	periods := make(map[string]int, len(s.Periods))
	for i, p := range s.Periods {
		ppath := fmt.Sprintf("%s.periods[%d].key", path, i)
		if p.Key == "" {
			v.add(ppath, "key is required")
			continue
		}
		v.unique(periods, p.Key, i, ppath, "period key")
	}

	days := make(map[string]int, len(s.Days))
	for i, d := range s.Days {
		dpath := fmt.Sprintf("%s.days[%d].key", path, i)
		if d.Key == "" {
			v.add(dpath, "key is required")
			continue
		}
		v.unique(days, d.Key, i, dpath, "day key")
	}

	for _, dayKey := range sortedKeys(s.Grid) {
		if _, ok := days[dayKey]; !ok {
			v.add(path+".grid."+dayKey, "unknown day")
			continue
		}
		for _, periodKey := range sortedKeys(s.Grid[dayKey]) {
			cpath := path + ".grid." + dayKey + "." + periodKey
			if _, ok := periods[periodKey]; !ok {
				v.add(cpath, "unknown period")
			}
			cell := s.Grid[dayKey][periodKey]
			if cell == nil {
				continue
			}
			if n, ok := cell.Span.Number(); ok && cell.Span.IsFinite() && n < 1 {
				v.add(cpath+".span", fmt.Sprintf("span must be at least 1, got %s", cell.Span))
			}
		}
	}
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
