package raylibsurface

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phanxgames/sapling"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		in   int32
		want sapling.Key
	}{
		{rl.KeyA, 'a'},
		{rl.KeyD, 'd'},
		{rl.KeyZero, '0'},
		{rl.KeySpace, sapling.KeySpace},
		{rl.KeyEscape, sapling.KeyEscape},
		{rl.KeyEnter, sapling.KeyEnter},
		{rl.KeyKpEnter, sapling.KeyEnter},
		{rl.KeyBackspace, sapling.KeyBackspace},
		{rl.KeyLeft, sapling.KeyLeft},
		{rl.KeyPageDown, sapling.KeyPageDown},
		{rl.KeyF1, sapling.KeyF1},
		{rl.KeyF12, sapling.KeyF12},
		{rl.KeyLeftShift, sapling.KeyNone},
	}
	for _, tt := range tests {
		if got := mapKey(tt.in); got != tt.want {
			t.Errorf("mapKey(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCloseUnopened(t *testing.T) {
	if err := New().Close(); err == nil {
		t.Error("Close on an unopened surface should report ResourceUnavailable")
	}
}
