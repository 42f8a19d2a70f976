package sapling

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeBitmapOpaque(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetNRGBA(2, 1, color.NRGBA{10, 20, 30, 255})

	b, err := DecodeBitmap(encodePNG(t, img))
	if err != nil {
		t.Fatalf("DecodeBitmap: %v", err)
	}
	if b.Width() != 3 || b.Height() != 2 || b.Channels() != 3 {
		t.Errorf("bitmap = %dx%dx%d, want 3x2x3", b.Width(), b.Height(), b.Channels())
	}
	if got := b.At(2, 1); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("At(2,1) = %v", got)
	}
}

func TestDecodeBitmapTranslucent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 64})

	b, err := DecodeBitmap(encodePNG(t, img))
	if err != nil {
		t.Fatalf("DecodeBitmap: %v", err)
	}
	if b.Channels() != 4 {
		t.Fatalf("Channels = %d, want 4", b.Channels())
	}
	if got := b.At(0, 0); got != (color.NRGBA{255, 0, 0, 64}) {
		t.Errorf("At(0,0) = %v, want straight alpha {255 0 0 64}", got)
	}
}

func TestDecodeBitmapMalformed(t *testing.T) {
	truncated := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	truncated = truncated[:len(truncated)/2]

	tests := map[string][]byte{
		"empty":     nil,
		"text":      []byte("hello, this is not an image"),
		"pdf":       []byte("%PDF-1.4\n%..."),
		"truncated": truncated,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBitmap(data)
			if !errors.Is(err, ErrMalformedAsset) {
				t.Errorf("err = %v, want MalformedAsset", err)
			}
		})
	}
}

func TestLoadBitmap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	if err := os.WriteFile(path, encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 5, 4))), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := LoadBitmap(path)
	if err != nil {
		t.Fatalf("LoadBitmap: %v", err)
	}
	if b.Width() != 5 || b.Height() != 4 {
		t.Errorf("size = %dx%d, want 5x4", b.Width(), b.Height())
	}

	s, err := LoadSprite("img", path)
	if err != nil {
		t.Fatalf("LoadSprite: %v", err)
	}
	if s.Type != NodeTypeSprite || s.Width() != 5 {
		t.Errorf("sprite = %v %vpx wide", s.Type, s.Width())
	}
}

func TestLoadBitmapErrorsNamePath(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{bad, filepath.Join(dir, "missing.png")} {
		_, err := LoadBitmap(path)
		if !errors.Is(err, ErrMalformedAsset) {
			t.Errorf("LoadBitmap(%s) err = %v, want MalformedAsset", path, err)
			continue
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q should name %s", err, path)
		}
	}
}
