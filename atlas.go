package sapling

import (
	"encoding/json"
	"image"
)

// AtlasRegion describes a sub-rectangle within an atlas page.
type AtlasRegion struct {
	Page      int  // index into Atlas.Pages
	X, Y      int  // top-left corner of the stored rect within the page
	Width     int  // stored width (after rotation and trimming)
	Height    int  // stored height (after rotation and trimming)
	OriginalW int  // untrimmed sprite width as authored
	OriginalH int  // untrimmed sprite height as authored
	OffsetX   int  // horizontal trim offset from TexturePacker
	OffsetY   int  // vertical trim offset from TexturePacker
	Rotated   bool // true if the region is stored 90 degrees clockwise in the page
}

// Atlas holds one or more decoded page bitmaps and a map of named regions.
type Atlas struct {
	// Pages contains the page bitmaps indexed by page number.
	Pages   []*Bitmap
	regions map[string]AtlasRegion
}

// LoadAtlas parses TexturePacker JSON data and associates the given pages.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*Bitmap) (*Atlas, error) {
	// Read the top-level keys to detect the format.
	var head struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &head); err != nil {
		return nil, wrapError(CodeMalformedAsset, "LoadAtlas", err, "parse atlas JSON")
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]AtlasRegion),
	}

	switch {
	case head.Textures != nil:
		if err := parseArrayFormat(head.Textures, atlas); err != nil {
			return nil, err
		}
	case head.Frames != nil:
		if err := parseHashFrames(head.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, newError(CodeMalformedAsset, "LoadAtlas", "atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	for name, r := range atlas.regions {
		if r.Page >= len(pages) || pages[r.Page] == nil {
			return nil, newError(CodeMalformedAsset, "LoadAtlas", "region %q references missing page %d", name, r.Page)
		}
		page := pages[r.Page]
		if r.X < 0 || r.Y < 0 || r.X+r.Width > page.width || r.Y+r.Height > page.height {
			return nil, newError(CodeMalformedAsset, "LoadAtlas", "region %q lies outside page %d", name, r.Page)
		}
	}
	return atlas, nil
}

// Region returns the named region and whether it exists.
func (a *Atlas) Region(name string) (AtlasRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Len returns the number of regions in the atlas.
func (a *Atlas) Len() int {
	return len(a.regions)
}

// Bitmap copies the named region into a new bitmap, undoing rotation and
// restoring trimmed transparent margins. Unknown names yield a 1x1 magenta
// placeholder so a missing frame is visible rather than fatal.
func (a *Atlas) Bitmap(name string) *Bitmap {
	r, ok := a.regions[name]
	if !ok {
		return NewSolidBitmap(1, 1, ColorMagenta)
	}
	page := a.Pages[r.Page]
	stored := page.SubBitmap(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height))
	if r.Rotated {
		stored = rotateCCW(stored)
	}
	if r.OriginalW <= stored.width && r.OriginalH <= stored.height &&
		r.OffsetX == 0 && r.OffsetY == 0 {
		return stored
	}
	// Trimmed: paste into a transparent canvas of the authored size.
	out, _ := NewBitmap(max(r.OriginalW, stored.width), max(r.OriginalH, stored.height), 4)
	for y := 0; y < stored.height; y++ {
		for x := 0; x < stored.width; x++ {
			out.Set(x+r.OffsetX, y+r.OffsetY, stored.At(x, y))
		}
	}
	return out
}

// Sprite builds a sprite node named name from the region of the same name.
func (a *Atlas) Sprite(name string) *Node {
	return NewSprite(name, a.Bitmap(name))
}

// rotateCCW rotates b by 90 degrees counter-clockwise.
func rotateCCW(b *Bitmap) *Bitmap {
	out := &Bitmap{width: b.height, height: b.width, channels: b.channels}
	out.Pix = make([]uint8, len(b.Pix))
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			src := b.PixOffset(b.width-1-y, x)
			dst := out.PixOffset(x, y)
			copy(out.Pix[dst:dst+b.channels], b.Pix[src:src+b.channels])
		}
	}
	return out
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, pageIndex int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return wrapError(CodeMalformedAsset, "LoadAtlas", err, "parse atlas frames")
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, pageIndex)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return wrapError(CodeMalformedAsset, "LoadAtlas", err, "parse atlas textures array")
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, i)
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page int) AtlasRegion {
	return AtlasRegion{
		Page:      page,
		X:         f.Frame.X,
		Y:         f.Frame.Y,
		Width:     f.Frame.W,
		Height:    f.Frame.H,
		OriginalW: f.SourceSize.W,
		OriginalH: f.SourceSize.H,
		OffsetX:   f.SpriteSourceSize.X,
		OffsetY:   f.SpriteSourceSize.Y,
		Rotated:   f.Rotated,
	}
}
