package export

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"teachfolio/internal/assets"
	"teachfolio/internal/content"
	"teachfolio/internal/semester"
)

func fixedNow() time.Time {
	return time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC)
}

func newTestExporter(t *testing.T, logger *zap.Logger) *Exporter {
	t.Helper()
	e, err := New(assets.NewResolver("/portfolio/"), logger, Options{Now: fixedNow})
	require.NoError(t, err)
	return e
}

func renderDoc(t *testing.T, key string) *html.Node {
	t.Helper()
	p, err := content.Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, newTestExporter(t, nil).RenderPage(&buf, p, key))

	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

// --- html helpers ---

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag && hasClass(n, class) }
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, "id") == id }
}

func first(t *testing.T, n *html.Node, match func(*html.Node) bool) *html.Node {
	t.Helper()
	found := findAll(n, match)
	require.NotEmpty(t, found)
	return found[0]
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// --- tests ---

func TestPageName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"1/2568", "semester-1-2568.html"},
		{"2/2568", "semester-2-2568.html"},
		{"Fall 2025", "semester-fall-2025.html"},
		{"--x--", "semester-x.html"},
		{"///", "semester-default.html"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, PageName(tt.key))
		})
	}
}

func TestExport_WritesEverySemesterAndIndex(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := newTestExporter(t, zap.New(core))

	p, err := content.Default()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "dist")
	files, err := e.Export(context.Background(), p, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "semester-1-2568.html", "semester-2-2568.html"}, files)

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	page, err := os.ReadFile(filepath.Join(dir, "semester-1-2568.html"))
	require.NoError(t, err)
	assert.Equal(t, page, index)

	assert.Equal(t, 1, logs.FilterMessage("export complete").Len())
	assert.Equal(t, 2, logs.FilterMessage("page written").Len())
}

func TestExport_SlugCollision(t *testing.T) {
	p := &content.Portfolio{Semesters: []content.Semester{{Key: "1/2568"}, {Key: "1-2568"}}}
	_, err := newTestExporter(t, nil).Export(context.Background(), p, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "semester-1-2568.html")
}

func TestExport_CancelledContext(t *testing.T) {
	p, err := content.Default()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newTestExporter(t, nil).Export(ctx, p, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderPage_UnknownSemester(t *testing.T) {
	p, err := content.Default()
	require.NoError(t, err)
	err = newTestExporter(t, nil).RenderPage(&bytes.Buffer{}, p, "9/9999")
	assert.ErrorIs(t, err, semester.ErrUnknownSemester)
}

func TestRenderPage_ScheduleMergesSpans(t *testing.T) {
	doc := renderDoc(t, "1/2568")
	grid := first(t, doc, byClass("table", "grid"))

	headers := findAll(first(t, grid, byTag("thead")), byTag("th"))
	require.Len(t, headers, 8)
	assert.Equal(t, "Time / Day", text(headers[0]))
	assert.Equal(t, "11:30-12:30 Break", text(headers[4]))
	assert.True(t, hasClass(headers[4], "break"))

	rows := findAll(first(t, grid, byTag("tbody")), byTag("tr"))
	require.Len(t, rows, 5)

	// Monday: a 3-period lesson, the lunch break, three empty periods.
	mon := findAll(rows[0], byTag("td"))
	require.Len(t, mon, 5)
	assert.Equal(t, "3", attr(mon[0], "colspan"))
	assert.Equal(t, "20204-2105 LAB 2", text(mon[0]))
	assert.True(t, hasClass(mon[1], "break"))
	for _, td := range mon[2:] {
		assert.True(t, hasClass(td, "empty"))
	}

	// Every row covers exactly the seven periods.
	for _, row := range rows {
		width := 0
		for _, td := range findAll(row, byTag("td")) {
			if cs := attr(td, "colspan"); cs != "" {
				width += int(cs[0] - '0')
			} else {
				width++
			}
		}
		assert.Equal(t, 7, width, text(row))
	}
}

func TestRenderPage_Carousel(t *testing.T) {
	doc := renderDoc(t, "1/2568")

	orientation := first(t, doc, byID("orientation"))
	slides := findAll(orientation, byClass("figure", "slide"))
	require.Len(t, slides, 3)
	assert.Equal(t, "/portfolio/images/orientation/01.jpg", attr(first(t, slides[0], byTag("img")), "src"))
	assert.Equal(t, "#orientation-slide-3", attr(first(t, slides[0], byClass("a", "prev")), "href"))
	assert.Equal(t, "#orientation-slide-1", attr(first(t, slides[2], byClass("a", "next")), "href"))
	assert.Equal(t, "1 / 3", text(first(t, slides[0], byTag("figcaption"))))

	// One image: no controls.
	sports := first(t, doc, byID("sports-day"))
	require.Len(t, findAll(sports, byClass("figure", "slide")), 1)
	assert.Empty(t, findAll(sports, byClass("a", "nav")))

	// Empty entries are dropped from the slides but counted as written.
	openHouse := first(t, doc, byID("open-house"))
	ohSlides := findAll(openHouse, byClass("figure", "slide"))
	require.Len(t, ohSlides, 3)
	assert.Equal(t, "https://images.example.org/open-house/booth.jpg", attr(first(t, ohSlides[0], byTag("img")), "src"))
	assert.Contains(t, text(openHouse), "Images: 4")

	// No images: a placeholder instead of the carousel.
	observation := first(t, doc, byID("lesson-observation"))
	assert.Empty(t, findAll(observation, byClass("div", "carousel")))
	assert.Equal(t, "No images", text(first(t, observation, byClass("div", "placeholder"))))
}

func TestRenderPage_PanelExpansion(t *testing.T) {
	doc := renderDoc(t, "1/2568")

	// Long description.
	orientation := first(t, doc, byID("orientation"))
	require.Len(t, findAll(orientation, byTag("details")), 1)
	highlights := first(t, orientation, byClass("div", "highlights"))
	assert.Len(t, findAll(highlights, byTag("li")), 3)
	assert.NotEmpty(t, findAll(first(t, orientation, byClass("div", "description")), byTag("br")))
	assert.Equal(t, "Show more Show less", text(first(t, orientation, byTag("summary"))))

	// Short description with highlights.
	observation := first(t, doc, byID("lesson-observation"))
	assert.Len(t, findAll(observation, byTag("details")), 1)

	// Short description, no highlights.
	sports := first(t, doc, byID("sports-day"))
	assert.Empty(t, findAll(sports, byTag("details")))

	// Cards alternate sides.
	assert.False(t, hasClass(orientation, "reverse"))
	assert.True(t, hasClass(sports, "reverse"))
}

func TestRenderPage_ToggleOutsideClippedPanel(t *testing.T) {
	doc := renderDoc(t, "1/2568")

	summaries := findAll(doc, byTag("summary"))
	require.NotEmpty(t, summaries)
	for _, s := range summaries {
		for n := s.Parent; n != nil; n = n.Parent {
			assert.False(t, hasClass(n, "panel"), "summary nested in .panel")
		}
	}

	// Highlights stay inside the panel.
	for _, h := range findAll(doc, byClass("div", "highlights")) {
		assert.True(t, hasClass(h.Parent, "panel"))
	}
}

func TestRenderPage_SemesterSections(t *testing.T) {
	doc := renderDoc(t, "1/2568")

	tabs := findAll(doc, byClass("a", "tab"))
	require.Len(t, tabs, 2)
	assert.Equal(t, "semester-1-2568.html", attr(tabs[0], "href"))
	assert.Equal(t, "page", attr(tabs[0], "aria-current"))
	assert.Equal(t, "", attr(tabs[1], "aria-current"))

	schedule := first(t, doc, byID("schedule"))
	links := findAll(first(t, schedule, byClass("div", "links")), byTag("a"))
	require.Len(t, links, 2)
	assert.Equal(t, "/portfolio/docs/2568-1/teaching-project.pdf", attr(links[0], "href"))
	assert.Equal(t, "_blank", attr(links[0], "target"))
	assert.Equal(t, "noreferrer", attr(links[0], "rel"))

	plans := findAll(doc, byClass("div", "plan"))
	require.Len(t, plans, 2)
	view := first(t, plans[0], byTag("a"))
	assert.Equal(t, "/portfolio/docs/2568-1/lesson-plan-2105-01.pdf", attr(view, "href"))
	assert.Contains(t, text(plans[0]), "Link: docs/2568-1/lesson-plan-2105-01.pdf")
	assert.Contains(t, text(plans[0]), "Topic: Formulas and cell references")

	subjects := findAll(first(t, doc, byClass("table", "subjects")), byTag("tr"))
	assert.Len(t, subjects, 3)

	footer := first(t, doc, byTag("footer"))
	assert.Contains(t, text(footer), "© 2025")
}

func TestRenderPage_SecondSemesterFallbacks(t *testing.T) {
	doc := renderDoc(t, "2/2568")

	schedule := first(t, doc, byID("schedule"))
	assert.Empty(t, findAll(schedule, byClass("div", "links")))

	meta := first(t, schedule, byClass("td", "meta-block"))
	assert.Equal(t, "School", text(first(t, meta, byClass("div", "strong"))))
	dds := findAll(meta, byTag("dd"))
	require.Len(t, dds, 4)
	assert.Equal(t, "-", text(dds[3]))

	plans := findAll(doc, byClass("div", "plan"))
	require.Len(t, plans, 1)
	assert.Equal(t, "https://files.example.org/2568-2/content-calendar.pdf", attr(first(t, plans[0], byTag("a")), "href"))
}

func TestRenderPage_NoSubjects(t *testing.T) {
	p := &content.Portfolio{Semesters: []content.Semester{{Key: "x", Label: "X"}}}

	var buf bytes.Buffer
	require.NoError(t, newTestExporter(t, nil).RenderPage(&buf, p, "x"))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)

	empty := first(t, doc, byClass("td", "no-subjects"))
	assert.Equal(t, "No subjects yet", text(empty))
	assert.Equal(t, "3", attr(empty, "colspan"))
}

func TestAssetURL(t *testing.T) {
	r := assets.NewResolver("/portfolio/")

	assert.Equal(t, "/portfolio/a.png", assetURL(r, "a.png"))
	assert.Equal(t, "", assetURL(r, ""))
	assert.Equal(t, template.URL("data:image/png;base64,AAAA"), assetURL(r, "data:image/png;base64,AAAA"))
	assert.Equal(t, template.URL("data:application/pdf;base64,AAAA"), assetURL(r, "data:application/pdf;base64,AAAA"))
	assert.Equal(t, template.URL("blob:https://x/1234"), assetURL(r, "blob:https://x/1234"))

	// Only resolver pass-through gets trusted.
	_, isString := assetURL(r, "javascript:alert(1)").(string)
	assert.True(t, isString)
}

func TestRenderPage_KeepsBlobAndDataLinks(t *testing.T) {
	p, err := content.Default()
	require.NoError(t, err)
	p.Semesters[0].LessonPlans[0].DownloadURL = "blob:https://x/1234"
	p.Semesters[0].TeachingProjectURL = "data:application/pdf;base64,AAAA"

	var buf bytes.Buffer
	require.NoError(t, newTestExporter(t, nil).RenderPage(&buf, p, "1/2568"))
	assert.NotContains(t, buf.String(), "ZgotmplZ")

	doc, err := html.Parse(&buf)
	require.NoError(t, err)

	plan := findAll(doc, byClass("div", "plan"))[0]
	for _, a := range findAll(plan, byTag("a")) {
		assert.Equal(t, "blob:https://x/1234", attr(a, "href"))
	}
	links := findAll(first(t, doc, byClass("div", "links")), byTag("a"))
	require.Len(t, links, 2)
	assert.Equal(t, "data:application/pdf;base64,AAAA", attr(links[0], "href"))
}
