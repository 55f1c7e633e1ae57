package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teachfolio/internal/content"
)

func activities() []content.Activity {
	return []content.Activity{
		{ID: "a", Title: "A", Images: []string{"1", "2", "3"}, Highlights: []string{"h"}},
		{ID: "b", Title: "B", Images: []string{"1", "", "2"}},
		{ID: "c", Title: "C", Description: strings.Repeat("x", 300)},
	}
}

func TestNewDeck(t *testing.T) {
	d := NewDeck(activities())
	require.Equal(t, 3, d.Len())

	assert.False(t, d.At(0).Reverse)
	assert.True(t, d.At(1).Reverse)
	assert.False(t, d.At(2).Reverse)
	assert.Nil(t, d.At(3))
	assert.Nil(t, d.At(-1))

	b, ok := d.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, b.ImageCount(), "raw count includes empty entries")
	assert.Equal(t, 2, b.Carousel.Len())
	assert.False(t, b.Panel.CanExpand())

	c, _ := d.Get("c")
	assert.True(t, c.Panel.CanExpand())
}

func TestDeck_StateIsPerCard(t *testing.T) {
	d := NewDeck(activities())
	a, _ := d.Get("a")
	b, _ := d.Get("b")

	a.Carousel.Next()
	a.Panel.Toggle()

	assert.Equal(t, 1, a.Carousel.Index())
	assert.True(t, a.Panel.Expanded())
	assert.Equal(t, 0, b.Carousel.Index())
	assert.False(t, b.Panel.Expanded())
}

func TestDeck_Reconcile(t *testing.T) {
	d := NewDeck(activities())
	a, _ := d.Get("a")
	a.Carousel.Prev() // index 2
	a.Panel.Toggle()

	updated := []content.Activity{
		{ID: "new", Title: "N"},
		{ID: "a", Title: "A2", Images: []string{"1", "2"}, Highlights: []string{"h"}},
	}
	next := d.Reconcile(updated)
	require.Equal(t, 2, next.Len())

	got, ok := next.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A2", got.Activity.Title)
	assert.Equal(t, 1, got.Carousel.Index(), "index clamped to the shorter list")
	assert.True(t, got.Panel.Expanded())
	assert.True(t, got.Reverse, "layout follows the new position")

	_, ok = next.Get("b")
	assert.False(t, ok)
}
