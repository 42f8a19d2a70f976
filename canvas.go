package sapling

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Canvas is the fixed-size pixel buffer drawables paint into. It is stored as
// an *image.RGBA whose alpha is always 255, so it behaves as a 3-channel RGB
// buffer while remaining a draw.Image for text rendering.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a width x height canvas filled with opaque black.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
	c.Clear(ColorBlack)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Image returns the backing image. Writes through it are visible on the canvas.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear fills the whole canvas with bg. bg's alpha is ignored.
func (c *Canvas) Clear(bg Color) {
	px := bg.RGBA8()
	pix := c.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = px.R, px.G, px.B, 255
	// Doubling copy fills the buffer in O(log n) copy calls.
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// RGBAt returns the pixel at (x, y).
func (c *Canvas) RGBAt(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// SavePNG encodes the canvas to a PNG file at path.
func (c *Canvas) SavePNG(path string) error {
	return WritePNG(path, c.img)
}

// WritePNG encodes an image to a PNG file at the given path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
