package sapling

import (
	"bytes"
	"errors"
	"image"
	"io/fs"
	"os"

	// Registered decoders for DecodeBitmap.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadBitmap reads and decodes the image file at path. A missing, unreadable
// or corrupt file yields a MalformedAsset error.
func LoadBitmap(path string) (*Bitmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "read %s"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "missing %s"
		}
		return nil, wrapError(CodeMalformedAsset, "LoadBitmap", err, msg, path)
	}
	bmp, err := DecodeBitmap(data)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Message += " (" + path + ")"
		}
		return nil, err
	}
	return bmp, nil
}

// DecodeBitmap decodes PNG, JPEG, GIF, BMP or WebP data. Images with any
// translucent pixel keep an alpha channel; opaque images decode to 3 channels.
func DecodeBitmap(data []byte) (*Bitmap, error) {
	if len(data) == 0 {
		return nil, newError(CodeMalformedAsset, "DecodeBitmap", "empty image data")
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, newError(CodeMalformedAsset, "DecodeBitmap", "not an image (detected %s)", kindName(kind.MIME.Value))
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, wrapError(CodeMalformedAsset, "DecodeBitmap", err, "decode image")
	}
	if img.Bounds().Empty() {
		return nil, newError(CodeMalformedAsset, "DecodeBitmap", "%s image has no pixels", format)
	}
	return BitmapFromImage(img, !isOpaque(img)), nil
}

func kindName(mime string) string {
	if mime == "" {
		return "unknown"
	}
	return mime
}

// isOpaque reports whether every pixel of img is fully opaque.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
