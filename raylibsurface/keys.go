package raylibsurface

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phanxgames/sapling"
)

// mapKey translates a raylib key code to a sapling key code, or KeyNone for
// keys sapling does not report. Printable keys arrive as their upper-case
// ASCII code and map to the lower-case rune.
func mapKey(k int32) sapling.Key {
	switch k {
	case rl.KeyEscape:
		return sapling.KeyEscape
	case rl.KeyEnter, rl.KeyKpEnter:
		return sapling.KeyEnter
	case rl.KeyTab:
		return sapling.KeyTab
	case rl.KeyBackspace:
		return sapling.KeyBackspace
	case rl.KeyDelete:
		return sapling.KeyDelete
	case rl.KeyInsert:
		return sapling.KeyInsert
	case rl.KeyLeft:
		return sapling.KeyLeft
	case rl.KeyRight:
		return sapling.KeyRight
	case rl.KeyUp:
		return sapling.KeyUp
	case rl.KeyDown:
		return sapling.KeyDown
	case rl.KeyHome:
		return sapling.KeyHome
	case rl.KeyEnd:
		return sapling.KeyEnd
	case rl.KeyPageUp:
		return sapling.KeyPageUp
	case rl.KeyPageDown:
		return sapling.KeyPageDown
	}
	if k >= rl.KeyF1 && k <= rl.KeyF12 {
		return sapling.KeyF1 + sapling.Key(k-rl.KeyF1)
	}
	if k >= ' ' && k <= '~' {
		return sapling.KeyRune(rune(k))
	}
	return sapling.KeyNone
}
