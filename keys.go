package sapling

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Key is a keyboard key code delivered with EventKeyDown. Printable keys use
// the code point of their lower-case character ('d' is 100), control keys use
// their ASCII control code, and navigation keys sit above the 8-bit range.
type Key int

const (
	KeyNone      Key = 0
	KeyBackspace Key = 8
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyEscape    Key = 27
	KeySpace     Key = 32
	KeyDelete    Key = 127
)

// Navigation and function keys.
const (
	KeyLeft Key = 0x100 + iota
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeySpace:     "space",
	KeyDelete:    "delete",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyInsert:    "insert",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames)+2)
	for k, name := range keyNames {
		m[name] = k
	}
	m["esc"] = KeyEscape
	m["return"] = KeyEnter
	return m
}()

// KeyRune returns the Key for a printable character.
func KeyRune(r rune) Key {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return Key(r)
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k > KeySpace && k < KeyDelete {
		return string(rune(k))
	}
	return "key(" + strconv.Itoa(int(k)) + ")"
}

// ParseKey accepts a key name ("escape", "left"), a single character ("d"),
// or a decimal key code ("27").
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if k, ok := keysByName[strings.ToLower(s)]; ok {
		return k, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return KeyRune(r), nil
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return Key(n), nil
	}
	return KeyNone, newError(CodeInvalidOperation, "ParseKey", "unknown key %q", s)
}
