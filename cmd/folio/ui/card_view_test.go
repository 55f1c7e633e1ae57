package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"teachfolio/internal/assets"
	"teachfolio/internal/card"
	"teachfolio/internal/content"
)

func testCardRenderer() *cardRenderer {
	return &cardRenderer{
		styles:   NewStyles(LightTheme()),
		resolver: assets.NewResolver("/"),
		cache:    NewRenderCache(16),
	}
}

func TestCardRender_TitleClamp(t *testing.T) {
	long := strings.Repeat("practicum ", 20)
	deck := card.NewDeck([]content.Activity{{
		ID:          "a",
		Title:       long,
		Description: strings.Repeat("x", 300),
	}})
	c := deck.At(0)
	r := testCardRenderer()

	collapsed := r.render(c, 60, true, false, 0).body
	assert.Contains(t, collapsed, "…")
	assert.Contains(t, collapsed, "enter: show more")

	c.Panel.Toggle()
	expanded := r.render(c, 60, true, false, 0).body
	assert.Contains(t, expanded, "enter: show less")
	assert.Greater(t, strings.Count(expanded, "practicum"), strings.Count(collapsed, "practicum"))
}

func TestCardRender_FadeOnTruncatedText(t *testing.T) {
	deck := card.NewDeck([]content.Activity{
		{ID: "tall", Title: "Tall", Description: "a\nb\nc\nd\ne\nf\ng\nh"},
		{ID: "short", Title: "Short", Description: "one line"},
	})
	r := testCardRenderer()

	tall := r.render(deck.At(0), 60, true, false, 0).body
	assert.False(t, deck.At(0).Panel.CanExpand())
	assert.Contains(t, tall, "⋯")
	assert.NotContains(t, tall, "show more")

	short := r.render(deck.At(1), 60, true, false, 0).body
	assert.NotContains(t, short, "⋯")
}

func TestCardRender_Media(t *testing.T) {
	deck := card.NewDeck([]content.Activity{
		{ID: "none", Title: "None"},
		{ID: "one", Title: "One", Images: []string{"a.jpg"}},
		{ID: "many", Title: "Many", Images: []string{"a.jpg", "", "b.jpg"}},
	})
	r := testCardRenderer()

	none := r.render(deck.At(0), 110, false, false, 0).body
	assert.Contains(t, none, "No images")
	assert.Contains(t, none, "Images: 0")

	one := r.render(deck.At(1), 110, false, false, 0).body
	assert.Contains(t, one, "/a.jpg")
	assert.NotContains(t, one, "‹")

	many := r.render(deck.At(2), 110, false, true, 0).body
	assert.Contains(t, many, "‹ /a.jpg")
	assert.Contains(t, many, "1 / 2")
	assert.Contains(t, many, "Images: 3")
}

func TestCardRender_PlainDescriptionFallback(t *testing.T) {
	deck := card.NewDeck([]content.Activity{{ID: "a", Title: "A", Description: "line one\nline two"}})
	r := testCardRenderer()

	lines := r.describe("a", deck.At(0).Activity.Description, 40)
	assert.Equal(t, []string{"line one", "line two"}, lines)
	assert.Equal(t, 1, r.cache.Len())
}

func TestWindowAndClamp(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	assert.Equal(t, []string{"a", "b"}, window(lines, 0, 2))
	assert.Equal(t, []string{"c", "d"}, window(lines, 5, 2))
	assert.Equal(t, lines, window(lines, -1, 10))
	assert.Empty(t, window(nil, 0, 3))

	assert.Equal(t, []string{"a", "b…"}, clampLines(lines, 2, 10))
	assert.Equal(t, []string{"a"}, clampLines([]string{"a"}, 2, 10))
}
