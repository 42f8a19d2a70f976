package sapling

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	ColorBlack   = Color{0, 0, 0, 1}
	ColorWhite   = Color{1, 1, 1, 1}
	ColorMagenta = Color{1, 0, 1, 1}
)

// RGB8 builds an opaque Color from 8-bit channel values.
func RGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// RGBA8 converts the color to a straight-alpha 8-bit color.NRGBA value.
// Components outside [0, 1] are clamped.
func (c Color) RGBA8() color.NRGBA {
	return color.NRGBA{
		R: unitToByte(c.R),
		G: unitToByte(c.G),
		B: unitToByte(c.B),
		A: unitToByte(c.A),
	}
}

func unitToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa" (leading '#' optional).
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b, a uint8 = 0, 0, 0, 255
	var err error
	switch len(s) {
	case 3:
		_, err = fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return Color{}, newError(CodeInvalidOperation, "ParseHexColor", "bad color %q", s)
	}
	if err != nil {
		return Color{}, wrapError(CodeInvalidOperation, "ParseHexColor", err, "bad color %q", s)
	}
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}, nil
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive, matching pixel coverage.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle (zero width and height) is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// NodeType distinguishes drawing behavior for a Node. The set is closed:
// every node is exactly one of these kinds.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // paints a Bitmap with clipping and alpha blending
	NodeTypeText                      // paints a single-line label through a Font
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeContainer:
		return "container"
	case NodeTypeSprite:
		return "sprite"
	case NodeTypeText:
		return "text"
	default:
		return fmt.Sprintf("NodeType(%d)", uint8(t))
	}
}

// TextAlign controls horizontal placement of a label relative to its x.
type TextAlign uint8

const (
	TextAlignStart  TextAlign = iota // x is the left edge
	TextAlignCenter                  // x is the horizontal center
	TextAlignEnd                     // x is the right edge
)

// ParseTextAlign accepts "start"/"left", "center" and "end"/"right".
func ParseTextAlign(s string) (TextAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start", "left":
		return TextAlignStart, nil
	case "center", "":
		return TextAlignCenter, nil
	case "end", "right":
		return TextAlignEnd, nil
	}
	return 0, newError(CodeInvalidOperation, "ParseTextAlign", "unknown alignment %q", s)
}
