package ebitensurface

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sapling"
)

var letterKeys = [...]ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
	ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
	ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
	ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
	ebiten.KeyY, ebiten.KeyZ,
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var functionKeys = [...]ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
	ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
}

var keyMap = buildKeyMap()

func buildKeyMap() map[ebiten.Key]sapling.Key {
	m := map[ebiten.Key]sapling.Key{
		ebiten.KeyEscape:       sapling.KeyEscape,
		ebiten.KeyEnter:        sapling.KeyEnter,
		ebiten.KeyNumpadEnter:  sapling.KeyEnter,
		ebiten.KeyTab:          sapling.KeyTab,
		ebiten.KeyBackspace:    sapling.KeyBackspace,
		ebiten.KeyDelete:       sapling.KeyDelete,
		ebiten.KeySpace:        sapling.KeySpace,
		ebiten.KeyArrowLeft:    sapling.KeyLeft,
		ebiten.KeyArrowRight:   sapling.KeyRight,
		ebiten.KeyArrowUp:      sapling.KeyUp,
		ebiten.KeyArrowDown:    sapling.KeyDown,
		ebiten.KeyHome:         sapling.KeyHome,
		ebiten.KeyEnd:          sapling.KeyEnd,
		ebiten.KeyPageUp:       sapling.KeyPageUp,
		ebiten.KeyPageDown:     sapling.KeyPageDown,
		ebiten.KeyInsert:       sapling.KeyInsert,
		ebiten.KeyMinus:        sapling.KeyRune('-'),
		ebiten.KeyEqual:        sapling.KeyRune('='),
		ebiten.KeyComma:        sapling.KeyRune(','),
		ebiten.KeyPeriod:       sapling.KeyRune('.'),
		ebiten.KeySlash:        sapling.KeyRune('/'),
		ebiten.KeySemicolon:    sapling.KeyRune(';'),
		ebiten.KeyQuote:        sapling.KeyRune('\''),
		ebiten.KeyBracketLeft:  sapling.KeyRune('['),
		ebiten.KeyBracketRight: sapling.KeyRune(']'),
		ebiten.KeyBackslash:    sapling.KeyRune('\\'),
		ebiten.KeyBackquote:    sapling.KeyRune('`'),
	}
	for i, k := range letterKeys {
		m[k] = sapling.KeyRune(rune('a' + i))
	}
	for i, k := range digitKeys {
		m[k] = sapling.KeyRune(rune('0' + i))
	}
	for i, k := range functionKeys {
		m[k] = sapling.KeyF1 + sapling.Key(i)
	}
	return m
}

// mapKey translates an Ebitengine key to a sapling key code, or KeyNone for
// keys sapling does not report (modifiers, numpad digits, media keys).
func mapKey(k ebiten.Key) sapling.Key {
	return keyMap[k]
}
