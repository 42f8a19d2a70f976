package sapling

import (
	"image/color"
	"testing"
)

func solid(name string, w, h int, c Color, x, y float64) *Node {
	n := NewSprite(name, NewSolidBitmap(w, h, c))
	n.SetPos(x, y)
	return n
}

func TestDrawChildrenOverParent(t *testing.T) {
	c := NewCanvas(4, 4)
	parent := solid("parent", 4, 4, RGB8(255, 0, 0), 0, 0)
	parent.AddChild(solid("child", 2, 2, RGB8(0, 255, 0), 1, 1))
	n := parent.draw(c)

	if n != 2 {
		t.Errorf("drawn = %d, want 2", n)
	}
	if got := c.RGBAt(1, 1); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("child pixel = %v, want green", got)
	}
	if got := c.RGBAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("parent pixel = %v, want red", got)
	}
}

func TestDrawLaterSiblingsOnTop(t *testing.T) {
	c := NewCanvas(4, 4)
	group := NewContainer("group")
	group.AddChild(solid("a", 3, 3, RGB8(255, 0, 0), 0, 0))
	group.AddChild(solid("b", 3, 3, RGB8(0, 0, 255), 1, 1))
	group.Draw(c)

	if got := c.RGBAt(2, 2); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("overlap = %v, want blue (later sibling)", got)
	}
	if got := c.RGBAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("a only = %v, want red", got)
	}
}

func TestWindowDrawLaterRootsOnTop(t *testing.T) {
	w := newTestWindow(t, newFakeSurface(), quietConfig())
	w.Add(solid("a", 8, 8, RGB8(255, 0, 0), 0, 0))
	w.Add(solid("b", 1, 1, RGB8(0, 255, 0), 4, 4))

	if drawn := w.Draw(); drawn != 2 {
		t.Errorf("drawn = %d, want 2", drawn)
	}
	if got := w.Canvas().RGBAt(4, 4); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("pixel = %v, want green", got)
	}
}

func TestDrawInvisibleSkipsSubtree(t *testing.T) {
	c := NewCanvas(4, 4)
	group := NewContainer("group")
	child := solid("child", 4, 4, RGB8(255, 255, 255), 0, 0)
	group.AddChild(child)
	group.Visible = false

	if n := group.draw(c); n != 0 {
		t.Errorf("drawn = %d, want 0", n)
	}
	if got := c.RGBAt(2, 2); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("pixel = %v, want untouched black", got)
	}

	group.Visible = true
	child.Visible = false
	if n := group.draw(c); n != 1 {
		t.Errorf("drawn = %d, want 1 (container only)", n)
	}
}

func TestWindowDrawClearsEachFrame(t *testing.T) {
	cfg := quietConfig()
	cfg.Background = RGB8(0, 0, 10)
	w := newTestWindow(t, newFakeSurface(), cfg)
	s := solid("s", 2, 2, RGB8(255, 0, 0), 0, 0)
	w.Add(s)
	w.Draw()
	s.SetPos(5, 5)
	w.Draw()

	if got := w.Canvas().RGBAt(0, 0); got != (color.RGBA{0, 0, 10, 255}) {
		t.Errorf("old position = %v, want background", got)
	}
	if got := w.Canvas().RGBAt(5, 5); got.R != 255 {
		t.Errorf("new position = %v, want red", got)
	}
}
