package render

import "testing"

func TestDetectSwipe(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   SwipeDirection
	}{
		{"long left drag", -120, 10, SwipeLeft},
		{"long right drag", 120, -10, SwipeRight},
		{"below threshold", -30, 5, SwipeNone},
		{"exactly at threshold", -SwipeThresholdPx, 0, SwipeNone},
		{"vertical scroll dominates", -80, 90, SwipeNone},
		{"diagonal but mostly horizontal", -80, 60, SwipeLeft},
	}
	for _, tt := range tests {
		if got := DetectSwipe(tt.dx, tt.dy); got != tt.want {
			t.Errorf("%s: DetectSwipe(%v, %v) = %v; want %v", tt.name, tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestCarouselNavigationWraps(t *testing.T) {
	c := NewCarousel([]string{"a.jpg", "b.jpg", "c.jpg"})

	if c.Current() != "a.jpg" {
		t.Errorf("initial slide: got %q", c.Current())
	}
	c.Next()
	c.Next()
	if c.Index() != 2 {
		t.Errorf("after two Next: index %d", c.Index())
	}
	c.Next()
	if c.Index() != 0 {
		t.Error("Next at the last slide should wrap to the first")
	}
	c.Prev()
	if c.Index() != 2 {
		t.Error("Prev at the first slide should wrap to the last")
	}
}

func TestCarouselGoTo(t *testing.T) {
	c := NewCarousel([]string{"a.jpg", "b.jpg", "c.jpg"})
	c.GoTo(1)
	if c.Current() != "b.jpg" {
		t.Errorf("GoTo(1): got %q", c.Current())
	}
	c.GoTo(7)
	if c.Index() != 1 {
		t.Error("out-of-range GoTo must be ignored")
	}
	c.GoTo(-1)
	if c.Index() != 1 {
		t.Error("negative GoTo must be ignored")
	}
}

func TestCarouselHandleSwipe(t *testing.T) {
	c := NewCarousel([]string{"a.jpg", "b.jpg"})

	if !c.HandleSwipe(-100, 5) {
		t.Error("left swipe should change the slide")
	}
	if c.Index() != 1 {
		t.Errorf("left swipe should advance, index %d", c.Index())
	}
	if c.HandleSwipe(-10, 2) {
		t.Error("sub-threshold drag should not change the slide")
	}
	if !c.HandleSwipe(100, 5) {
		t.Error("right swipe should change the slide")
	}
	if c.Index() != 0 {
		t.Errorf("right swipe should retreat, index %d", c.Index())
	}
}

func TestEmptyCarouselIsInert(t *testing.T) {
	c := NewCarousel(nil)
	c.Next()
	c.Prev()
	if c.Current() != "" || c.Index() != 0 {
		t.Error("empty carousel should stay at index 0 with no current image")
	}
}
