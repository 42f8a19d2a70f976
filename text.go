package sapling

import (
	"image"
	"image/draw"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the em size, in pixels, of new text nodes. With the
// default font it draws capitals about 44 px tall.
const DefaultFontSize = 60

// Font supplies sized faces for measuring and painting labels.
type Font interface {
	Face(size float64) font.Face
}

// --- TextBlock ---

// TextBlock holds a label's content and styling. Measurements are not cached:
// changing Content or Size is reflected by the next Measure or draw.
type TextBlock struct {
	Content   string
	Font      Font    // nil = DefaultFont()
	Size      float64 // em size in pixels
	Color     Color
	Thickness int  // stroke thickness in pixels; 1 is the plain glyph outline
	Antialias bool // false snaps glyph coverage to fully on or off
	Align     TextAlign
}

func (tb *TextBlock) face() font.Face {
	f := tb.Font
	if f == nil {
		f = DefaultFont()
	}
	return f.Face(tb.Size)
}

// Measure returns the rendered width (advance) and height (extent above the
// baseline) of the content with the current font settings.
func (tb *TextBlock) Measure() (width, height float64) {
	if tb == nil || tb.Content == "" {
		return 0, 0
	}
	bounds, advance := font.BoundString(tb.face(), tb.Content)
	pad := float64(2 * tb.strokeRadius())
	return float64(advance.Ceil()) + pad, float64((-bounds.Min.Y).Ceil()) + pad
}

// strokeRadius is the dilation applied to glyph coverage for thick strokes.
func (tb *TextBlock) strokeRadius() int {
	if tb.Thickness <= 1 {
		return 0
	}
	return tb.Thickness / 2
}

// alignOffset returns the x shift applied to a label of width w.
func alignOffset(align TextAlign, w float64) float64 {
	switch align {
	case TextAlignCenter:
		return math.Floor(-w / 2)
	case TextAlignEnd:
		return -w
	default:
		return 0
	}
}

// drawText paints the node's label with its baseline at the node's y and its
// alignment anchor at the node's x. The label is not clipped; coverage
// falling outside the canvas is discarded by the compositor.
func drawText(n *Node, c *Canvas) {
	tb := n.TextBlock
	if tb == nil || tb.Content == "" {
		return
	}
	face := tb.face()
	r := tb.strokeRadius()
	bounds, advance := font.BoundString(face, tb.Content)
	width := float64(advance.Ceil() + 2*r)

	dotX := int(math.Floor(n.x+alignOffset(tb.Align, width))) + r
	dotY := int(math.Floor(n.y))

	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	mask := image.NewAlpha(image.Rect(0, 0, maxX-minX+2*r, maxY-minY+2*r))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(r-minX, r-minY),
	}
	d.DrawString(tb.Content)

	if r > 0 {
		mask = dilate(mask, r)
	}
	if !tb.Antialias {
		for i, v := range mask.Pix {
			if v >= 128 {
				mask.Pix[i] = 255
			} else {
				mask.Pix[i] = 0
			}
		}
	}

	origin := image.Pt(dotX+minX-r, dotY+minY-r)
	dst := mask.Bounds().Add(origin)
	src := image.NewUniform(tb.Color.RGBA8())
	draw.DrawMask(c.img, dst, src, image.Point{}, mask, image.Point{}, draw.Over)
}

// dilate grows coverage by radius r using a disc-shaped maximum filter.
func dilate(src *image.Alpha, r int) *image.Alpha {
	b := src.Bounds()
	out := image.NewAlpha(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var m uint8
			for dy := -r; dy <= r && m < 255; dy++ {
				for dx := -r; dx <= r; dx++ {
					if dx*dx+dy*dy > r*r {
						continue
					}
					px, py := x+dx, y+dy
					if px < b.Min.X || py < b.Min.Y || px >= b.Max.X || py >= b.Max.Y {
						continue
					}
					if v := src.Pix[src.PixOffset(px, py)]; v > m {
						m = v
					}
				}
			}
			out.Pix[out.PixOffset(x, y)] = m
		}
	}
	return out
}

// --- TTFFont ---

// TTFFont wraps a parsed TrueType/OpenType font and hands out faces per size.
type TTFFont struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// LoadTTFFont parses raw TTF/OTF data. Parse failures are MalformedAsset errors.
func LoadTTFFont(data []byte) (*TTFFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, wrapError(CodeMalformedAsset, "LoadTTFFont", err, "parse font data")
	}
	return &TTFFont{font: f, faces: make(map[float64]font.Face)}, nil
}

// LoadTTFFontFile reads and parses a font file.
func LoadTTFFontFile(path string) (*TTFFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(CodeMalformedAsset, "LoadTTFFontFile", err, "read %s", path)
	}
	return LoadTTFFont(data)
}

// Face returns the face for size, creating it on first use. Non-positive
// sizes select DefaultFontSize.
func (f *TTFFont) Face(size float64) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	f.faces[size] = face
	return face
}

// default font singleton; sapling is single-threaded, so no sync.Once
var defaultFont *TTFFont

// DefaultFont returns the built-in Go Regular font.
func DefaultFont() *TTFFont {
	if defaultFont == nil {
		f, err := LoadTTFFont(goregular.TTF)
		if err != nil {
			panic("sapling: embedded font: " + err.Error())
		}
		defaultFont = f
	}
	return defaultFont
}
