package sapling

import (
	"errors"
	"image/color"
	"testing"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func drawOn(c *Canvas, nodes ...*Node) {
	for _, n := range nodes {
		n.Draw(c)
	}
}

func TestDrawSpriteOpaque(t *testing.T) {
	c := NewCanvas(5, 5)
	s := NewSprite("s", NewSolidBitmap(2, 2, RGB8(255, 0, 0)))
	s.SetPos(2, 3)
	drawOn(c, s)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := black
			if x >= 2 && x < 4 && y >= 3 {
				want = red
			}
			if got := c.RGBAt(x, y); got != want {
				t.Errorf("RGBAt(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawSpriteClipping(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		inside  [][2]int
		outside [][2]int
	}{
		{"top-left overhang", -2, -2, [][2]int{{0, 0}, {1, 1}}, [][2]int{{2, 2}, {2, 0}}},
		{"bottom-right overhang", 3, 3, [][2]int{{3, 3}, {4, 4}}, [][2]int{{2, 2}, {2, 4}}},
		{"fractional floors", 1.7, 0.2, [][2]int{{1, 0}, {4, 3}}, [][2]int{{0, 0}, {1, 4}}},
		{"off right", 10, 0, nil, [][2]int{{4, 0}}},
		{"off left", -10, 0, nil, [][2]int{{0, 0}}},
		{"off bottom", 0, 5, nil, [][2]int{{0, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(5, 5)
			s := NewSprite("s", NewSolidBitmap(4, 4, RGB8(255, 0, 0)))
			s.SetPos(tt.x, tt.y)
			drawOn(c, s)
			for _, p := range tt.inside {
				if got := c.RGBAt(p[0], p[1]); got != red {
					t.Errorf("RGBAt%v = %v, want red", p, got)
				}
			}
			for _, p := range tt.outside {
				if got := c.RGBAt(p[0], p[1]); got != black {
					t.Errorf("RGBAt%v = %v, want black", p, got)
				}
			}
		})
	}
}

func TestDrawSpriteAlphaBlend(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Clear(RGB8(100, 100, 100))

	bmp, _ := NewBitmap(3, 1, 4)
	bmp.Set(0, 0, color.NRGBA{200, 0, 50, 128})
	bmp.Set(1, 0, color.NRGBA{200, 0, 50, 0})
	bmp.Set(2, 0, color.NRGBA{200, 0, 50, 255})
	drawOn(c, NewSprite("s", bmp))

	want := []color.RGBA{
		{150, 50, 75, 255},
		{100, 100, 100, 255},
		{200, 0, 50, 255},
	}
	for x, w := range want {
		if got := c.RGBAt(x, 0); got != w {
			t.Errorf("RGBAt(%d,0) = %v, want %v", x, got, w)
		}
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		dst, src uint8
		a        uint32
		want     uint8
	}{
		{0, 255, 0, 0},
		{0, 255, 255, 255},
		{100, 200, 128, 150},
		{255, 0, 1, 254},
		{10, 10, 77, 10},
	}
	for _, tt := range tests {
		if got := blend(tt.dst, tt.src, tt.a); got != tt.want {
			t.Errorf("blend(%d, %d, %d) = %d, want %d", tt.dst, tt.src, tt.a, got, tt.want)
		}
	}
}

func TestDrawSpriteSeesBitmapMutation(t *testing.T) {
	c := NewCanvas(1, 1)
	s := NewSprite("s", NewSolidBitmap(1, 1, ColorBlack))
	s.Bitmap.Pix[2] = 99
	drawOn(c, s)
	if got := c.RGBAt(0, 0).B; got != 99 {
		t.Errorf("blue = %d, want 99", got)
	}
}

func TestDrawSpriteSkipsTruncatedPix(t *testing.T) {
	c := NewCanvas(20, 20)
	b := NewSolidBitmap(8, 8, RGB8(255, 0, 0))
	b.Pix = b.Pix[:4*4*3]
	s := NewSprite("s", b)

	drawOn(c, s)
	if got := c.RGBAt(0, 0); got != black {
		t.Errorf("RGBAt(0,0) = %v, want untouched black", got)
	}
	if s.Width() != 8 || s.Height() != 8 {
		t.Errorf("size = %vx%v, want 8x8 from the bitmap shape", s.Width(), s.Height())
	}
	if err := s.Scale(2); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Scale err = %v, want InvalidOperation", err)
	}
}

func TestScale(t *testing.T) {
	s := NewSprite("s", NewSolidBitmap(4, 2, RGB8(0, 255, 0)))
	if err := s.Scale(2.5); err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if s.Width() != 10 || s.Height() != 5 {
		t.Errorf("size = %vx%v, want 10x5", s.Width(), s.Height())
	}
	if s.Bitmap.HasAlpha() {
		t.Error("opaque bitmap should stay 3-channel")
	}
	if got := s.Bitmap.At(5, 2); got.G < 250 || got.R > 5 || got.B > 5 {
		t.Errorf("At(5,2) = %v, want green", got)
	}

	if err := s.Scale(0.5); err != nil {
		t.Fatalf("Scale(0.5): %v", err)
	}
	if s.Width() != 5 || s.Height() != 3 {
		t.Errorf("size = %vx%v, want 5x3", s.Width(), s.Height())
	}
}

func TestScaleInvalid(t *testing.T) {
	sprite := NewSprite("s", NewSolidBitmap(4, 2, ColorWhite))
	tests := map[string]func() error{
		"container": func() error { return NewContainer("c").Scale(2) },
		"text":      func() error { return NewText("t", "x", nil).Scale(2) },
		"zero":      func() error { return sprite.Scale(0) },
		"negative":  func() error { return sprite.Scale(-1) },
		"vanishing": func() error { return sprite.Scale(0.1) },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			if err := fn(); !errors.Is(err, ErrInvalidOperation) {
				t.Errorf("err = %v, want InvalidOperation", err)
			}
		})
	}
	if sprite.Width() != 4 || sprite.Height() != 2 {
		t.Errorf("failed Scale changed size to %vx%v", sprite.Width(), sprite.Height())
	}
}
