// Package card owns the per-activity UI state: each activity card gets its
// own carousel and text panel, never shared between cards.
package card

import (
	"teachfolio/internal/carousel"
	"teachfolio/internal/content"
	"teachfolio/internal/panel"
)

// Card is one activity with its independent interaction state.
type Card struct {
	Activity content.Activity
	Carousel *carousel.Carousel
	Panel    *panel.Panel

	// Reverse puts the images on the leading side. Odd cards are reversed
	// so the layout alternates down the page.
	Reverse bool
}

// ImageCount is the number of image entries as written, before empty
// references are dropped.
func (c *Card) ImageCount() int {
	return len(c.Activity.Images)
}

// Deck is the ordered arena of cards, keyed by activity ID.
type Deck struct {
	cards []*Card
	byID  map[string]*Card
}

// NewDeck creates fresh state for every activity.
func NewDeck(activities []content.Activity) *Deck {
	d := &Deck{
		cards: make([]*Card, 0, len(activities)),
		byID:  make(map[string]*Card, len(activities)),
	}
	for i, a := range activities {
		c := &Card{
			Activity: a,
			Carousel: carousel.New(a.Images),
			Panel:    panel.New(a.Description, a.Highlights),
			Reverse:  i%2 == 1,
		}
		d.cards = append(d.cards, c)
		d.byID[a.ID] = c
	}
	return d
}

// Reconcile returns a deck for new activities that keeps the state of
// cards whose activity ID is still present. Carousel indexes are clamped to
// the new image lists.
func (d *Deck) Reconcile(activities []content.Activity) *Deck {
	next := NewDeck(activities)
	for _, c := range next.cards {
		prev, ok := d.byID[c.Activity.ID]
		if !ok {
			continue
		}
		prev.Carousel.SetImages(c.Activity.Images)
		prev.Panel.Reset(c.Activity.Description, c.Activity.Highlights)
		c.Carousel = prev.Carousel
		c.Panel = prev.Panel
	}
	return next
}

// Cards returns the cards in activity order.
func (d *Deck) Cards() []*Card { return d.cards }

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// At returns the card at position i, or nil.
func (d *Deck) At(i int) *Card {
	if i < 0 || i >= len(d.cards) {
		return nil
	}
	return d.cards[i]
}

// Get returns the card for an activity ID.
func (d *Deck) Get(id string) (*Card, bool) {
	c, ok := d.byID[id]
	return c, ok
}
