package panel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligibility(t *testing.T) {
	short := strings.Repeat("a", DescriptionThreshold)
	long := strings.Repeat("a", DescriptionThreshold+1)

	assert.False(t, New("", nil).CanExpand())
	assert.False(t, New(short, nil).CanExpand(), "exactly the threshold is not long")
	assert.False(t, New(short, []string{}).CanExpand())
	assert.True(t, New(long, nil).CanExpand())
	assert.True(t, New("", []string{"one"}).CanExpand())
}

func TestTextLengthCountsUTF16Units(t *testing.T) {
	assert.Equal(t, 3, TextLength("abc"))
	assert.Equal(t, 6, TextLength("ครูสอน"))
	assert.Equal(t, 2, TextLength("😀"))

	// 110 emoji are 220 units: not long.
	assert.False(t, Eligible(strings.Repeat("😀", 110), nil))
	assert.True(t, Eligible(strings.Repeat("😀", 111), nil))
}

func TestToggle(t *testing.T) {
	p := New("", []string{"h"})
	assert.False(t, p.Expanded())
	assert.True(t, p.ShowFade())
	assert.False(t, p.ShowHighlights())

	p.Toggle()
	assert.True(t, p.Expanded())
	assert.False(t, p.ShowFade())
	assert.True(t, p.ShowHighlights())

	p.Toggle()
	assert.False(t, p.Expanded())
}

func TestToggleWithoutEligibility(t *testing.T) {
	p := New("short", nil)
	p.Toggle()
	assert.False(t, p.Expanded())
	assert.True(t, p.ShowFade())

	var zero Panel
	zero.Toggle()
	assert.False(t, zero.Expanded())
}

func TestReset(t *testing.T) {
	p := New("", []string{"h"})
	p.Toggle()

	p.Reset("", []string{"h", "i"})
	assert.True(t, p.Expanded())

	p.Reset("short", nil)
	assert.False(t, p.CanExpand())
	assert.False(t, p.Expanded())
}
