// Package semester resolves semester keys through a fixed catalog and holds
// the current selection.
package semester

import (
	"errors"
	"fmt"

	"teachfolio/internal/content"
)

// ErrUnknownSemester is returned when a key is not in the catalog.
var ErrUnknownSemester = errors.New("unknown semester")

// Catalog is the fixed, ordered set of known semesters.
type Catalog struct {
	semesters []content.Semester
	index     map[string]int
}

// NewCatalog builds a catalog. Keys must be non-empty and unique.
func NewCatalog(semesters []content.Semester) (*Catalog, error) {
	if len(semesters) == 0 {
		return nil, content.ErrNoSemesters
	}
	c := &Catalog{
		semesters: semesters,
		index:     make(map[string]int, len(semesters)),
	}
	for i, s := range semesters {
		if s.Key == "" {
			return nil, fmt.Errorf("semester %d: empty key", i)
		}
		if _, dup := c.index[s.Key]; dup {
			return nil, fmt.Errorf("semester %d: duplicate key %q", i, s.Key)
		}
		c.index[s.Key] = i
	}
	return c, nil
}

// Lookup returns the semester for key.
func (c *Catalog) Lookup(key string) (*content.Semester, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return &c.semesters[i], true
}

// Keys returns the keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.semesters))
	for i, s := range c.semesters {
		keys[i] = s.Key
	}
	return keys
}

// Len returns the number of semesters.
func (c *Catalog) Len() int { return len(c.semesters) }

// At returns the semester at position i.
func (c *Catalog) At(i int) *content.Semester { return &c.semesters[i] }

// Selector holds the active semester. Exactly one semester is active.
type Selector struct {
	catalog *Catalog
	current int
}

// NewSelector returns a selector positioned at key.
func NewSelector(catalog *Catalog, key string) (*Selector, error) {
	i, ok := catalog.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSemester, key)
	}
	return &Selector{catalog: catalog, current: i}, nil
}

// Catalog returns the catalog the selector resolves keys through.
func (s *Selector) Catalog() *Catalog { return s.catalog }

// Select makes key the active semester. Unknown keys leave the selection
// unchanged.
func (s *Selector) Select(key string) error {
	i, ok := s.catalog.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSemester, key)
	}
	s.current = i
	return nil
}

// SelectIndex makes the semester at position i active.
func (s *Selector) SelectIndex(i int) error {
	if i < 0 || i >= s.catalog.Len() {
		return fmt.Errorf("%w: position %d", ErrUnknownSemester, i)
	}
	s.current = i
	return nil
}

// Current returns the active semester.
func (s *Selector) Current() *content.Semester {
	return s.catalog.At(s.current)
}

// Key returns the active semester's key.
func (s *Selector) Key() string {
	return s.Current().Key
}

// Position returns the active semester's position in the catalog.
func (s *Selector) Position() int { return s.current }

// Next selects the following semester, wrapping around.
func (s *Selector) Next() {
	s.current = (s.current + 1) % s.catalog.Len()
}

// Prev selects the preceding semester, wrapping around.
func (s *Selector) Prev() {
	n := s.catalog.Len()
	s.current = (s.current - 1 + n) % n
}
