package sapling

import (
	"image"
	"image/color"
	"image/draw"
)

// Bitmap is a row-major 8-bit pixel array with 3 (RGB) or 4 (RGBA, straight
// alpha) channels. It is the pixel storage behind Sprite nodes. Pix may be
// mutated in place between frames and the next draw picks the changes up;
// the shape is fixed when the bitmap is built.
type Bitmap struct {
	width, height int
	channels      int
	Pix           []uint8
}

// NewBitmap allocates a zeroed bitmap. Channels must be 3 or 4.
func NewBitmap(width, height, channels int) (*Bitmap, error) {
	if channels != 3 && channels != 4 {
		return nil, newError(CodeInvalidOperation, "NewBitmap", "channels must be 3 or 4, got %d", channels)
	}
	if width < 0 || height < 0 {
		return nil, newError(CodeInvalidOperation, "NewBitmap", "negative size %dx%d", width, height)
	}
	return &Bitmap{
		width:    width,
		height:   height,
		channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// NewSolidBitmap returns a bitmap filled with c. Fully opaque colors produce a
// 3-channel bitmap; anything translucent keeps an alpha channel.
func NewSolidBitmap(width, height int, c Color) *Bitmap {
	channels := 3
	if c.A < 1 {
		channels = 4
	}
	b := &Bitmap{
		width:    max(width, 0),
		height:   max(height, 0),
		channels: channels,
	}
	b.Pix = make([]uint8, b.width*b.height*channels)
	b.Fill(c)
	return b
}

// BitmapFromImage copies img into a new bitmap. With keepAlpha the result has
// 4 channels of straight alpha; otherwise alpha is dropped.
func BitmapFromImage(img image.Image, keepAlpha bool) *Bitmap {
	bounds := img.Bounds()
	channels := 3
	if keepAlpha {
		channels = 4
	}
	b := &Bitmap{
		width:    bounds.Dx(),
		height:   bounds.Dy(),
		channels: channels,
	}
	b.Pix = make([]uint8, b.width*b.height*channels)

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
		bounds = nrgba.Bounds()
	}
	for y := 0; y < b.height; y++ {
		src := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dst := b.Pix[y*b.Stride():]
		for x := 0; x < b.width; x++ {
			copy(dst[x*channels:x*channels+channels], src[x*4:x*4+channels])
		}
	}
	return b
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Channels returns 3 for RGB or 4 for RGBA bitmaps.
func (b *Bitmap) Channels() int { return b.channels }

// complete reports whether Pix still holds every pixel of the bitmap's shape.
// Pix is exported and may have been replaced by a shorter slice.
func (b *Bitmap) complete() bool {
	return (b.channels == 3 || b.channels == 4) && len(b.Pix) >= b.width*b.height*b.channels
}

// Stride returns the number of bytes per row.
func (b *Bitmap) Stride() int {
	return b.width * b.channels
}

// HasAlpha reports whether the bitmap carries an alpha channel.
func (b *Bitmap) HasAlpha() bool {
	return b.channels == 4
}

// PixOffset returns the index of the first channel of pixel (x, y) in Pix.
func (b *Bitmap) PixOffset(x, y int) int {
	return y*b.Stride() + x*b.channels
}

// At returns the pixel at (x, y). 3-channel bitmaps report alpha 255.
// Out-of-range coordinates return the zero color.
func (b *Bitmap) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.NRGBA{}
	}
	i := b.PixOffset(x, y)
	c := color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: 255}
	if b.channels == 4 {
		c.A = b.Pix[i+3]
	}
	return c
}

// Set writes the pixel at (x, y). Alpha is ignored on 3-channel bitmaps.
func (b *Bitmap) Set(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	i := b.PixOffset(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.R, c.G, c.B
	if b.channels == 4 {
		b.Pix[i+3] = c.A
	}
}

// Fill sets every pixel to c.
func (b *Bitmap) Fill(c Color) {
	px := c.RGBA8()
	pattern := []uint8{px.R, px.G, px.B, px.A}[:b.channels]
	for i := 0; i < len(b.Pix); i += b.channels {
		copy(b.Pix[i:i+b.channels], pattern)
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	c := *b
	c.Pix = append([]uint8(nil), b.Pix...)
	return &c
}

// SubBitmap copies the part of b inside r into a new bitmap with the same
// channel count. r is clipped to b's bounds.
func (b *Bitmap) SubBitmap(r image.Rectangle) *Bitmap {
	r = r.Intersect(image.Rect(0, 0, b.width, b.height))
	out := &Bitmap{width: r.Dx(), height: r.Dy(), channels: b.channels}
	out.Pix = make([]uint8, out.width*out.height*out.channels)
	rowLen := out.Stride()
	for y := 0; y < out.height; y++ {
		src := b.PixOffset(r.Min.X, r.Min.Y+y)
		copy(out.Pix[y*rowLen:(y+1)*rowLen], b.Pix[src:src+rowLen])
	}
	return out
}

// Image returns a straight-alpha copy of the bitmap as an *image.NRGBA.
func (b *Bitmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := b.PixOffset(x, y)
			j := img.PixOffset(x, y)
			img.Pix[j], img.Pix[j+1], img.Pix[j+2] = b.Pix[i], b.Pix[i+1], b.Pix[i+2]
			if b.channels == 4 {
				img.Pix[j+3] = b.Pix[i+3]
			} else {
				img.Pix[j+3] = 255
			}
		}
	}
	return img
}
