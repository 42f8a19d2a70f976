package sapling

import (
	"math"

	"github.com/anthonynsimon/bild/transform"
)

// drawSprite copies the part of the node's bitmap that overlaps the canvas.
// 4-channel bitmaps are alpha blended per pixel and per channel:
//
//	out = (1 - a) * canvas + a * sprite,  a = alpha / 255
//
// 3-channel bitmaps overwrite the canvas directly. A bitmap whose Pix no
// longer covers its shape is skipped.
func drawSprite(n *Node, c *Canvas) {
	b := n.Bitmap
	if b == nil || b.width == 0 || b.height == 0 || !b.complete() {
		return
	}
	x := int(math.Floor(n.x))
	y := int(math.Floor(n.y))
	cw, ch := c.Width(), c.Height()

	// Clip to the canvas: [sx, ex) x [sy, ey) in bitmap space.
	sx := max(-x, 0)
	sy := max(-y, 0)
	ex := b.width - max(x+b.width-cw, 0)
	ey := b.height - max(y+b.height-ch, 0)
	if sx >= ex || sy >= ey {
		return
	}

	dst := c.img
	bc := b.channels
	for row := sy; row < ey; row++ {
		src := b.Pix[b.PixOffset(sx, row):b.PixOffset(ex-1, row)+bc]
		out := dst.Pix[dst.PixOffset(x+sx, y+row):]
		if bc == 3 {
			for i, j := 0, 0; i < len(src); i, j = i+3, j+4 {
				out[j], out[j+1], out[j+2] = src[i], src[i+1], src[i+2]
			}
			continue
		}
		for i, j := 0, 0; i < len(src); i, j = i+4, j+4 {
			a := uint32(src[i+3])
			switch a {
			case 0:
				continue
			case 255:
				out[j], out[j+1], out[j+2] = src[i], src[i+1], src[i+2]
				continue
			}
			out[j] = blend(out[j], src[i], a)
			out[j+1] = blend(out[j+1], src[i+1], a)
			out[j+2] = blend(out[j+2], src[i+2], a)
		}
	}
}

// blend mixes src over dst with straight alpha a in [0, 255], rounded.
func blend(dst, src uint8, a uint32) uint8 {
	return uint8((uint32(dst)*(255-a) + uint32(src)*a + 127) / 255)
}

// Scale resamples the sprite's bitmap by factor on both axes (0.5 halves
// each dimension) and replaces the stored bitmap. Dimensions are rounded to
// the nearest pixel. Fails with InvalidOperation for non-sprites, for
// factor <= 0, and for factors that shrink the bitmap to nothing.
func (n *Node) Scale(factor float64) error {
	if n.Type != NodeTypeSprite || n.Bitmap == nil {
		return newError(CodeInvalidOperation, "Node.Scale", "node %q is not a sprite with a bitmap", n.Name)
	}
	if !(factor > 0) {
		return newError(CodeInvalidOperation, "Node.Scale", "factor must be positive, got %v", factor)
	}
	b := n.Bitmap
	if !b.complete() {
		return newError(CodeInvalidOperation, "Node.Scale", "node %q bitmap pixels do not cover %dx%d", n.Name, b.width, b.height)
	}
	w := int(math.Round(float64(b.width) * factor))
	h := int(math.Round(float64(b.height) * factor))
	if w < 1 || h < 1 {
		return newError(CodeInvalidOperation, "Node.Scale", "factor %v leaves %dx%d bitmap empty", factor, b.width, b.height)
	}
	resized := transform.Resize(b.Image(), w, h, transform.Linear)
	n.Bitmap = BitmapFromImage(resized, b.HasAlpha())
	return nil
}
