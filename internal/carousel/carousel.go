// Package carousel holds the per-activity image carousel state.
package carousel

// Mode describes which controls a carousel offers.
type Mode int

const (
	// Empty shows a placeholder and no controls.
	Empty Mode = iota
	// Single shows the only image and no controls.
	Single
	// Multi shows navigation controls that wrap around.
	Multi
)

func (m Mode) String() string {
	switch m {
	case Empty:
		return "empty"
	case Single:
		return "single"
	default:
		return "multi"
	}
}

// Carousel cycles through an ordered list of image references.
// The zero value is an empty carousel.
type Carousel struct {
	images []string
	index  int
}

// New returns a carousel over images with empty references dropped.
func New(images []string) *Carousel {
	c := &Carousel{}
	c.SetImages(images)
	return c
}

// SetImages replaces the image list and clamps the index into range.
func (c *Carousel) SetImages(images []string) {
	filtered := make([]string, 0, len(images))
	for _, img := range images {
		if img != "" {
			filtered = append(filtered, img)
		}
	}
	c.images = filtered
	c.index = c.clamped()
}

// Images returns the filtered image list.
func (c *Carousel) Images() []string {
	return c.images
}

// Len returns the number of usable images.
func (c *Carousel) Len() int {
	return len(c.images)
}

// Index returns the position of the current image, clamped to the list.
func (c *Carousel) Index() int {
	return c.clamped()
}

// Mode reports whether the carousel is empty, single or navigable.
func (c *Carousel) Mode() Mode {
	switch len(c.images) {
	case 0:
		return Empty
	case 1:
		return Single
	default:
		return Multi
	}
}

// CanNavigate reports whether prev/next controls are offered.
func (c *Carousel) CanNavigate() bool {
	return c.Mode() == Multi
}

// Current returns the image at the current index.
func (c *Carousel) Current() (string, bool) {
	if len(c.images) == 0 {
		return "", false
	}
	return c.images[c.clamped()], true
}

// Next advances with wraparound. It is a no-op without navigation.
func (c *Carousel) Next() {
	if !c.CanNavigate() {
		return
	}
	_, c.index = Neighbors(c.clamped(), len(c.images))
}

// Prev steps back with wraparound. It is a no-op without navigation.
func (c *Carousel) Prev() {
	if !c.CanNavigate() {
		return
	}
	c.index, _ = Neighbors(c.clamped(), len(c.images))
}

func (c *Carousel) clamped() int {
	if len(c.images) == 0 {
		return 0
	}
	return min(max(c.index, 0), len(c.images)-1)
}

// Neighbors returns the wrapped previous and next positions of i in a list
// of n images. It returns (0, 0) for an empty list.
func Neighbors(i, n int) (prev, next int) {
	if n <= 0 {
		return 0, 0
	}
	return (i - 1 + n) % n, (i + 1) % n
}
