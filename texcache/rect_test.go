package texcache

import "testing"

func TestRectEmpty(t *testing.T) {
	if !(Rect{}).Empty() {
		t.Error("zero Rect should be Empty")
	}
	if NewRect(0, 0, 1, 1).Empty() {
		t.Error("1x1 Rect should not be Empty")
	}
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)
	inner := NewRect(10, 10, 20, 20)
	if !outer.Contains(inner) {
		t.Error("outer should contain inner")
	}
	if outer.Contains(NewRect(90, 90, 20, 20)) {
		t.Error("outer should not contain a rect overflowing its bounds")
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	c := NewRect(10, 10, 10, 10)

	if !a.Intersects(b) {
		t.Error("a and b overlap, want Intersects true")
	}
	if a.Intersects(c) {
		t.Error("a and c only touch at a corner (exclusive edges), want Intersects false")
	}
	if a.Intersects(Rect{}) {
		t.Error("nothing intersects an empty rect")
	}
}

func TestRectInclude(t *testing.T) {
	var r Rect
	r = r.Include(NewRect(5, 5, 10, 10))
	r = r.Include(NewRect(20, 1, 5, 5))

	want := Rect{Left: 5, Top: 1, Right: 25, Bottom: 15}
	if r != want {
		t.Errorf("Include result = %+v, want %+v", r, want)
	}
}
