package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"teachfolio/internal/assets"
	"teachfolio/internal/card"
	"teachfolio/internal/carousel"
)

// cardRenderer draws activity cards. Rendered descriptions are cached per
// card, width and theme.
type cardRenderer struct {
	styles   Styles
	resolver assets.Resolver
	markdown *glamour.TermRenderer
	cache    *RenderCache
}

// cardView is one rendered card plus what the page needs to scroll to it.
type cardView struct {
	body string
	// panelLines is the full line count of the expanded text panel, used
	// to clamp panel scrolling.
	panelLines int
}

// markdownMargin is the document margin glamour adds on both sides.
const markdownMargin = 4

func newMarkdownRenderer(theme Theme, width int) *glamour.TermRenderer {
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// render draws c at width. scroll is the first visible line of the
// expanded panel.
func (r *cardRenderer) render(c *card.Card, width int, compact, focused bool, scroll int) cardView {
	style := r.styles.Card
	if focused {
		style = r.styles.CardFocused
	}
	inner := PanelContentWidth(width)

	var textWidth, mediaWidth int
	if compact {
		textWidth, mediaWidth = inner, inner
	} else {
		textWidth, mediaWidth = SplitPaneWidths(inner)
	}

	text, panelLines := r.textColumn(c, textWidth, scroll)
	media := r.mediaColumn(c, mediaWidth)

	var body string
	switch {
	case compact:
		body = lipgloss.JoinVertical(lipgloss.Left, text, "", media)
	case c.Reverse:
		body = lipgloss.JoinHorizontal(lipgloss.Top, media, strings.Repeat(" ", SplitPaneDivider), text)
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, text, strings.Repeat(" ", SplitPaneDivider), media)
	}

	return cardView{
		body:       style.Width(width - PanelBorderWidth*2).Render(body),
		panelLines: panelLines,
	}
}

func (r *cardRenderer) textColumn(c *card.Card, width int, scroll int) (string, int) {
	a := c.Activity
	var parts []string

	var pills []string
	for _, p := range []string{a.Date, a.Location} {
		if p != "" {
			pills = append(pills, r.styles.Pill.Render(p))
		}
	}
	if len(pills) > 0 {
		parts = append(parts, strings.Join(pills, " "))
	}

	expanded := c.Panel.Expanded()
	title := wrapLines(a.Title, width)
	if !expanded {
		title = clampLines(title, TitleLines, width)
	}
	parts = append(parts, r.styles.Title.Render(strings.Join(title, "\n")))

	panel := r.describe(a.ID, a.Description, width)
	if expanded && len(a.Highlights) > 0 {
		panel = append(panel, "", r.styles.Bold.Render("Highlights"))
		for _, h := range a.Highlights {
			for i, line := range wrapLines(h, width-2) {
				prefix := "• "
				if i > 0 {
					prefix = "  "
				}
				panel = append(panel, prefix+line)
			}
		}
	}
	panelLines := len(panel)

	switch {
	case expanded:
		parts = append(parts, strings.Join(window(panel, scroll, ExpandedLines), "\n"))
		hint := "enter: show less"
		if panelLines > ExpandedLines {
			hint = fmt.Sprintf("J/K: scroll %d/%d · %s", min(scroll+ExpandedLines, panelLines), panelLines, hint)
		}
		parts = append(parts, r.styles.Muted.Render(hint))
	default:
		parts = append(parts, strings.Join(window(panel, 0, CollapsedLines), "\n"))
		// The fade line carries the toggle hint when the panel can expand.
		switch {
		case !c.Panel.ShowFade():
		case c.Panel.CanExpand():
			parts = append(parts, r.styles.Muted.Render("⋯ enter: show more"))
		case panelLines > CollapsedLines:
			parts = append(parts, r.styles.Muted.Render("⋯"))
		}
	}

	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, "\n")), panelLines
}

// describe renders the description as markdown, falling back to plain
// wrapped text when no renderer is available.
func (r *cardRenderer) describe(id, description string, width int) []string {
	if strings.TrimSpace(description) == "" {
		return nil
	}
	key := ComputeKey(id, description, width, r.styles.Theme.IsDark)
	out := r.cache.GetOrCompute(key, func() string {
		if r.markdown != nil {
			// Single newlines are line breaks in descriptions.
			src := strings.ReplaceAll(strings.TrimSpace(description), "\n", "  \n")
			if rendered, err := r.markdown.Render(src); err == nil {
				return strings.Trim(rendered, "\n")
			}
		}
		return strings.Join(wrapLines(description, width), "\n")
	})
	return strings.Split(out, "\n")
}

func (r *cardRenderer) mediaColumn(c *card.Card, width int) string {
	boxWidth := width - 2
	if boxWidth < 1 {
		boxWidth = 1
	}

	var lines []string
	switch c.Carousel.Mode() {
	case carousel.Empty:
		lines = []string{"", r.styles.Muted.Render("No images"), ""}
	case carousel.Single:
		src, _ := c.Carousel.Current()
		lines = []string{"", pad(r.resolver.Resolve(src), boxWidth), ""}
	default:
		src, _ := c.Carousel.Current()
		lines = []string{
			"",
			"‹ " + pad(r.resolver.Resolve(src), max(1, boxWidth-4)) + " ›",
			r.styles.Muted.Render(fmt.Sprintf("%d / %d", c.Carousel.Index()+1, c.Carousel.Len())),
		}
	}

	box := r.styles.Media.Width(boxWidth).Render(strings.Join(lines, "\n"))
	count := r.styles.Muted.Render(fmt.Sprintf("Images: %d", c.ImageCount()))
	return lipgloss.JoinVertical(lipgloss.Left, box, count)
}

// wrapLines word-wraps plain text to width.
func wrapLines(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(text))
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// clampLines keeps the first n lines, marking the cut with an ellipsis.
func clampLines(lines []string, n, width int) []string {
	if len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n]...)
	last := out[n-1]
	if lipgloss.Width(last)+1 > width {
		last = pad(last, width-1)
	}
	out[n-1] = strings.TrimRight(last, " ") + "…"
	return out
}

// window returns at most n lines starting at offset, clamped to lines.
func window(lines []string, offset, n int) []string {
	if offset > len(lines)-n {
		offset = len(lines) - n
	}
	if offset < 0 {
		offset = 0
	}
	end := min(offset+n, len(lines))
	return lines[offset:end]
}
