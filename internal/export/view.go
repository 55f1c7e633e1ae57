package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"teachfolio/internal/assets"
	"teachfolio/internal/card"
	"teachfolio/internal/carousel"
	"teachfolio/internal/content"
	"teachfolio/internal/schedule"
)

// pageView is the data handed to page.html.tmpl for one semester page.
type pageView struct {
	Title      string
	Stylesheet template.CSS
	Profile    content.Profile
	AuthorLine string
	Cards      []cardView
	Tabs       []tabView
	Semester   *semesterView
	Year       int
}

type cardView struct {
	ID          string
	Title       string
	Date        string
	Location    string
	Description template.HTML
	Highlights  []string
	CanExpand   bool
	Reverse     bool
	ImageCount  int
	Slides      []slideView
}

type slideView struct {
	ID        string
	Src       any // string, or template.URL for data:image sources
	Alt       string
	Navigable bool
	PrevID    string
	NextID    string
	Position  int
	Total     int
}

type tabView struct {
	Label  string
	Href   string
	Active bool
}

type semesterView struct {
	Label           string
	TeachingProject any
	Meta            metaView
	Subjects        []content.Subject
	Periods         []periodView
	Rows            []rowView
	LessonPlans     []planView
}

type metaView struct {
	School    string
	Term      string
	Teacher   string
	GroupCode string
	GroupName string
}

type periodView struct {
	Label   string
	Time    string
	IsBreak bool
}

type rowView struct {
	Label string
	Cells []cellView
}

type cellView struct {
	Class    string
	ColSpan  int
	IsLesson bool
	Code     string
	Room     string
}

type planView struct {
	ID      string
	Subject string
	Topic   string
	Href    any
	Raw     string
}

// buildCards turns the activity deck into card views. Every card starts
// on its first image, matching a freshly loaded page.
func (e *Exporter) buildCards(deck *card.Deck) ([]cardView, error) {
	out := make([]cardView, 0, deck.Len())
	for _, c := range deck.Cards() {
		desc, err := e.markdown(c.Activity.Description)
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", c.Activity.ID, err)
		}
		out = append(out, cardView{
			ID:          c.Activity.ID,
			Title:       c.Activity.Title,
			Date:        c.Activity.Date,
			Location:    c.Activity.Location,
			Description: desc,
			Highlights:  c.Activity.Highlights,
			CanExpand:   c.Panel.CanExpand(),
			Reverse:     c.Reverse,
			ImageCount:  c.ImageCount(),
			Slides:      slides(e.resolver, c),
		})
	}
	return out, nil
}

func slides(r assets.Resolver, c *card.Card) []slideView {
	images := c.Carousel.Images()
	n := len(images)
	if n == 0 {
		return nil
	}
	navigable := c.Carousel.Mode() == carousel.Multi
	out := make([]slideView, 0, n)
	for i, img := range images {
		prev, next := carousel.Neighbors(i, n)
		out = append(out, slideView{
			ID:        slideID(c.Activity.ID, i),
			Src:       assetURL(r, img),
			Alt:       fmt.Sprintf("%s image %d", c.Activity.Title, i+1),
			Navigable: navigable,
			PrevID:    slideID(c.Activity.ID, prev),
			NextID:    slideID(c.Activity.ID, next),
			Position:  i + 1,
			Total:     n,
		})
	}
	return out
}

func slideID(activityID string, i int) string {
	return fmt.Sprintf("%s-slide-%d", activityID, i+1)
}

// assetURL resolves path for use in src and href attributes. data: and
// blob: URLs are passed through as trusted so html/template does not
// replace them with #ZgotmplZ.
func assetURL(r assets.Resolver, path string) any {
	resolved := r.Resolve(path)
	lower := strings.ToLower(resolved)
	if resolved == path && (strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "blob:")) {
		return template.URL(resolved)
	}
	return resolved
}

func (e *Exporter) markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render description: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func buildTabs(semesters []content.Semester, active string) []tabView {
	tabs := make([]tabView, 0, len(semesters))
	for _, s := range semesters {
		label := s.Label
		if label == "" {
			label = s.Key
		}
		tabs = append(tabs, tabView{
			Label:  label,
			Href:   PageName(s.Key),
			Active: s.Key == active,
		})
	}
	return tabs
}

func buildSemester(r assets.Resolver, s *content.Semester) *semesterView {
	label := s.Label
	if label == "" {
		label = s.Key
	}
	v := &semesterView{
		Label:           label,
		TeachingProject: assetURL(r, s.TeachingProjectURL),
		Meta: metaView{
			School:    orDefault(s.Schedule.Meta.School, "School"),
			Term:      orDefault(s.Schedule.Meta.Term, "-"),
			Teacher:   orDefault(s.Schedule.Meta.Teacher, "-"),
			GroupCode: orDefault(s.Schedule.Meta.GroupCode, "-"),
			GroupName: orDefault(s.Schedule.Meta.GroupName, "-"),
		},
		Subjects: s.Schedule.Subjects,
	}

	table := schedule.Layout(&s.Schedule)
	for _, p := range table.Periods {
		label := p.Label
		if p.IsBreak {
			label = "Break"
		}
		v.Periods = append(v.Periods, periodView{Label: label, Time: p.Time, IsBreak: p.IsBreak})
	}
	for _, row := range table.Rows {
		rv := rowView{Label: orDefault(row.Day.Label, row.Day.Key)}
		for _, c := range row.Cells {
			rv.Cells = append(rv.Cells, cellView{
				Class:    c.Kind.String(),
				ColSpan:  c.Span,
				IsLesson: c.Kind == schedule.KindLesson,
				Code:     c.Code,
				Room:     c.Room,
			})
		}
		v.Rows = append(v.Rows, rv)
	}

	for _, lp := range s.LessonPlans {
		v.LessonPlans = append(v.LessonPlans, planView{
			ID:      lp.ID,
			Subject: lp.Subject,
			Topic:   lp.Topic,
			Href:    assetURL(r, lp.DownloadURL),
			Raw:     lp.DownloadURL,
		})
	}
	return v
}

func authorLine(p content.Profile) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{p.Program, p.Institution} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
