package render

// SwipeThresholdPx is the minimum horizontal displacement for a drag to
// count as a carousel swipe.
const SwipeThresholdPx = 50.0

// SwipeDirection classifies a completed drag gesture.
type SwipeDirection int

const (
	SwipeNone  SwipeDirection = iota
	SwipeLeft                 // advance to the next slide
	SwipeRight                // go back to the previous slide
)

// DetectSwipe classifies a drag by its displacement. A swipe is
// recognized only when the horizontal displacement exceeds both the
// pixel threshold and the vertical displacement — vertical scrolling
// must not flip slides.
func DetectSwipe(dx, dy float64) SwipeDirection {
	absX, absY := dx, dy
	if absX < 0 {
		absX = -absX
	}
	if absY < 0 {
		absY = -absY
	}
	if absX <= SwipeThresholdPx || absX <= absY {
		return SwipeNone
	}
	if dx < 0 {
		return SwipeLeft
	}
	return SwipeRight
}

// Carousel is the slide-index model behind the multi-image strip:
// previous/next controls, clickable position dots, and swipe handling.
type Carousel struct {
	images []string
	index  int
}

// NewCarousel builds a carousel over an ordered image list.
func NewCarousel(images []string) *Carousel {
	return &Carousel{images: images}
}

// Len returns the number of slides.
func (c *Carousel) Len() int { return len(c.images) }

// Index returns the current slide index.
func (c *Carousel) Index() int { return c.index }

// Current returns the current image URL, or "" for an empty carousel.
func (c *Carousel) Current() string {
	if len(c.images) == 0 {
		return ""
	}
	return c.images[c.index]
}

// Next advances one slide, wrapping at the end.
func (c *Carousel) Next() {
	if len(c.images) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.images)
}

// Prev goes back one slide, wrapping at the start.
func (c *Carousel) Prev() {
	if len(c.images) == 0 {
		return
	}
	c.index = (c.index - 1 + len(c.images)) % len(c.images)
}

// GoTo jumps to a dot's slide; out-of-range indices are ignored.
func (c *Carousel) GoTo(i int) {
	if i < 0 || i >= len(c.images) {
		return
	}
	c.index = i
}

// HandleSwipe applies a drag gesture and reports whether the slide
// changed.
func (c *Carousel) HandleSwipe(dx, dy float64) bool {
	switch DetectSwipe(dx, dy) {
	case SwipeLeft:
		c.Next()
		return true
	case SwipeRight:
		c.Prev()
		return true
	default:
		return false
	}
}
